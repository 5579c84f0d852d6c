package favicon

import (
	"image"
	"log"
)

// Loader opens and decodes a source image. *imaging.ImageCache satisfies it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// Result describes a completed (or partially exported) run.
type Result struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Stats  Stats    `json:"stats"`
	Files  []string `json:"files"`
}

// Run executes one batch conversion: validate, decode, process, export.
//
// Config problems return *ConfigError and decode problems return *DecodeError,
// both before anything is written. A failed write returns *WriteError along
// with a Result listing the files that did get written.
func Run(cfg Config, loader Loader, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.validatePaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Printf("Opening %s...", cfg.SourcePath)
	img, err := loader.Load(cfg.SourcePath)
	if err != nil {
		return nil, &DecodeError{Path: cfg.SourcePath, Err: err}
	}

	out, stats, err := Process(img, cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Strategy {
	case StrategyLuminance:
		logger.Printf("Background pixels dropped: %d", stats.Dropped)
	default:
		logger.Printf("Accent pixels removed: %d", stats.Accent)
	}
	logger.Printf("Content pixels kept: %d", stats.Content)

	b := out.Bounds()
	res := &Result{Width: b.Dx(), Height: b.Dy(), Stats: stats}

	files, err := NewExporter(cfg, logger).Export(out)
	res.Files = files
	if err != nil {
		logger.Printf("Export stopped after %d files: %v", len(files), err)
		return res, err
	}
	logger.Printf("Done: %d files in %s", len(files), cfg.OutputDir)
	return res, nil
}
