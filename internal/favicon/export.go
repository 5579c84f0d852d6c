package favicon

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// Output file names. Other tooling looks these up by name.
const (
	LogoFileName    = "logo_white.png"
	FaviconFileName = "favicon.png"
	IconFileName    = "favicon.ico"
)

// SizedFileName returns the file name used for a resampled favicon.
func SizedFileName(s Size) string {
	return fmt.Sprintf("favicon-%dx%d.png", s.Width, s.Height)
}

// Resample scales img to exactly s with a Lanczos filter, which keeps partial
// alpha smooth. Upscaling and downscaling use the same filter.
func Resample(img image.Image, s Size) *image.NRGBA {
	return imaging.Resize(img, s.Width, s.Height, imaging.Lanczos)
}

// EncodeIcon writes an ICO container holding one square entry per size, in
// the given order, each resampled from img.
func EncodeIcon(w io.Writer, img image.Image, sizes []int) error {
	entries := make([]image.Image, 0, len(sizes))
	for _, n := range sizes {
		entries = append(entries, Resample(img, Size{Width: n, Height: n}))
	}
	return ico.EncodeAll(w, entries)
}

// Exporter writes the output set for one composited image.
type Exporter struct {
	Dir         string
	TargetSizes []Size
	IconSizes   []int
	Container   bool
	Logger      *log.Logger
}

// NewExporter returns an Exporter configured from cfg.
func NewExporter(cfg Config, logger *log.Logger) *Exporter {
	return &Exporter{
		Dir:         cfg.OutputDir,
		TargetSizes: cfg.TargetSizes,
		IconSizes:   cfg.IconSizes,
		Container:   cfg.ExportContainer,
		Logger:      logger,
	}
}

// Export creates the destination directory once and writes every artifact.
// It returns the paths written so far, which on error is a partial set.
func (e *Exporter) Export(img image.Image) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, &WriteError{Path: e.Dir, Stage: StageMkdir, Err: err}
	}

	var written []string
	save := func(name, stage string, m image.Image) error {
		path := filepath.Join(e.Dir, name)
		if err := imaging.Save(m, path); err != nil {
			return &WriteError{Path: path, Stage: stage, Err: err}
		}
		written = append(written, path)
		e.logf("Saved %s", path)
		return nil
	}

	if err := save(LogoFileName, StageLogo, img); err != nil {
		return written, err
	}
	if err := save(FaviconFileName, StageFavicon, img); err != nil {
		return written, err
	}
	for _, s := range e.TargetSizes {
		if err := save(SizedFileName(s), StageResample, Resample(img, s)); err != nil {
			return written, err
		}
	}

	if e.Container {
		path := filepath.Join(e.Dir, IconFileName)
		var buf bytes.Buffer
		if err := EncodeIcon(&buf, img, e.IconSizes); err != nil {
			return written, &WriteError{Path: path, Stage: StageContainer, Err: err}
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, &WriteError{Path: path, Stage: StageContainer, Err: err}
		}
		written = append(written, path)
		e.logf("Saved %s", path)
	}

	return written, nil
}

func (e *Exporter) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}
