package favicon

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Strategy selects how kept pixels and their opacity are derived.
type Strategy string

const (
	// StrategyBinary removes accent pixels and thickens the rest before compositing.
	StrategyBinary Strategy = "binary"

	// StrategyLuminance maps brightness to opacity with no accent removal.
	// Meant for sources on a uniformly dark background.
	StrategyLuminance Strategy = "luminance"
)

// AlphaMode selects the alpha written for kept pixels in the binary strategy.
type AlphaMode string

const (
	AlphaOpaque   AlphaMode = "opaque"
	AlphaPreserve AlphaMode = "preserve"
)

// Size is a pixel width and height.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// maxIconSize is the largest edge an ICO directory entry can describe.
const maxIconSize = 256

// Config holds every tuning value for one run. The right values depend on the
// source asset; see Presets.
type Config struct {
	// SourcePath is the image to convert. Required by Run.
	SourcePath string `json:"source_path"`

	// OutputDir receives the output set. Created with parents if missing.
	OutputDir string `json:"output_dir"`

	Strategy Strategy `json:"strategy"`

	// DominanceMargin is D in the accent test g > r+D && g > b+D.
	DominanceMargin int `json:"dominance_margin"`

	// AlphaCutoff is T_a: pixels with alpha <= T_a are treated as already
	// transparent. 0 skips only fully transparent pixels.
	AlphaCutoff int `json:"alpha_cutoff"`

	// DilationKernelSize is the edge of the square max-filter. 1 disables thickening.
	DilationKernelSize int `json:"dilation_kernel_size"`

	// MaskCutoff re-binarizes the thickened mask: cells above it are kept.
	MaskCutoff int `json:"mask_cutoff"`

	AlphaMode AlphaMode `json:"alpha_mode"`

	// LuminanceMin drops pixels darker than this as background noise.
	LuminanceMin int `json:"luminance_min"`

	// AlphaBoost scales luminance into alpha, clamped at 255.
	AlphaBoost float64 `json:"alpha_boost"`

	// TargetSizes are written as favicon-{W}x{H}.png, in order.
	TargetSizes []Size `json:"target_sizes"`

	// IconSizes are the square entries embedded in favicon.ico.
	IconSizes []int `json:"icon_sizes"`

	ExportContainer bool `json:"export_container"`
}

// Preset names.
const (
	PresetFavicon   = "favicon"
	PresetShield    = "shield"
	PresetLuminance = "luminance"
)

var presets = map[string]func() Config{
	// Green tick removal with stroke thickening.
	PresetFavicon: func() Config {
		return baseConfig(StrategyBinary, 30, 20, 3, AlphaOpaque)
	},
	// Green tick removal keeping the source's anti-aliased edges.
	PresetShield: func() Config {
		return baseConfig(StrategyBinary, 20, 20, 1, AlphaPreserve)
	},
	// Bright artwork on a black background.
	PresetLuminance: func() Config {
		return baseConfig(StrategyLuminance, 20, 0, 1, AlphaOpaque)
	},
}

func baseConfig(s Strategy, margin, alphaCutoff, kernel int, mode AlphaMode) Config {
	return Config{
		Strategy:           s,
		DominanceMargin:    margin,
		AlphaCutoff:        alphaCutoff,
		DilationKernelSize: kernel,
		MaskCutoff:         128,
		AlphaMode:          mode,
		LuminanceMin:       10,
		AlphaBoost:         1.5,
		TargetSizes:        []Size{{32, 32}, {16, 16}},
		IconSizes:          []int{64, 32, 16},
		ExportContainer:    true,
	}
}

// DefaultConfig returns the favicon preset.
func DefaultConfig() Config {
	return presets[PresetFavicon]()
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (Config, error) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, &ConfigError{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", name)}
	}
	return fn(), nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig reads a JSON config file. An optional "preset" key picks the
// base values; every other key present in the file overrides them.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory JSON.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Preset string `json:"preset"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Config{}, &ConfigError{Field: "json", Reason: err.Error()}
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		p, err := Preset(head.Preset)
		if err != nil {
			return Config{}, err
		}
		cfg = p
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Field: "json", Reason: err.Error()}
	}
	return cfg, nil
}

// Classifier returns the pixel classifier described by c.
func (c Config) Classifier() Classifier {
	return Classifier{DominanceMargin: c.DominanceMargin, AlphaCutoff: c.AlphaCutoff}
}

// Validate checks the processing and export parameters. Paths are checked
// separately by Run so that Process can be used on in-memory images.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyBinary, StrategyLuminance:
	default:
		return &ConfigError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", c.Strategy)}
	}
	switch c.AlphaMode {
	case AlphaOpaque, AlphaPreserve:
	default:
		return &ConfigError{Field: "alpha_mode", Reason: fmt.Sprintf("unknown alpha mode %q", c.AlphaMode)}
	}
	if c.DominanceMargin < 0 || c.DominanceMargin > 255 {
		return &ConfigError{Field: "dominance_margin", Reason: "must be within 0-255"}
	}
	if c.AlphaCutoff < 0 || c.AlphaCutoff > 255 {
		return &ConfigError{Field: "alpha_cutoff", Reason: "must be within 0-255"}
	}
	if c.DilationKernelSize <= 0 || c.DilationKernelSize%2 == 0 {
		return &ConfigError{Field: "dilation_kernel_size", Reason: "must be a positive odd number"}
	}
	if c.MaskCutoff < 0 || c.MaskCutoff > 254 {
		return &ConfigError{Field: "mask_cutoff", Reason: "must be within 0-254"}
	}
	if c.LuminanceMin < 0 || c.LuminanceMin > 255 {
		return &ConfigError{Field: "luminance_min", Reason: "must be within 0-255"}
	}
	if c.AlphaBoost <= 0 {
		return &ConfigError{Field: "alpha_boost", Reason: "must be positive"}
	}
	for _, s := range c.TargetSizes {
		if s.Width <= 0 || s.Height <= 0 {
			return &ConfigError{Field: "target_sizes", Reason: fmt.Sprintf("non-positive size %s", s)}
		}
	}
	if c.ExportContainer {
		if len(c.IconSizes) == 0 {
			return &ConfigError{Field: "icon_sizes", Reason: "container export needs at least one size"}
		}
		for _, n := range c.IconSizes {
			if n <= 0 || n > maxIconSize {
				return &ConfigError{Field: "icon_sizes", Reason: fmt.Sprintf("size %d outside 1-%d", n, maxIconSize)}
			}
		}
	}
	return nil
}

func (c Config) validatePaths() error {
	if c.SourcePath == "" {
		return &ConfigError{Field: "source_path", Reason: "required"}
	}
	if c.OutputDir == "" {
		return &ConfigError{Field: "output_dir", Reason: "required"}
	}
	return nil
}
