package favicon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// fileLoader decodes straight from disk with no caching.
type fileLoader struct{}

func (fileLoader) Load(path string) (image.Image, error) {
	return imaging.Open(path)
}

// writePNG writes img to dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func runConfig(src, out string) Config {
	cfg := DefaultConfig()
	cfg.SourcePath = src
	cfg.OutputDir = out
	return cfg
}

func TestRun_AllAccent(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "green.png", newFilled(100, 100, color.NRGBA{0, 200, 0, 255}))
	out := filepath.Join(dir, "out")

	res, err := Run(runConfig(src, out), fileLoader{}, quietLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stats.Accent != 10000 || res.Stats.Kept != 0 {
		t.Errorf("stats: got %s", res.Stats)
	}
	if len(res.Files) != 5 {
		t.Errorf("files: got %v", res.Files)
	}

	logo, err := imaging.Open(filepath.Join(out, LogoFileName))
	if err != nil {
		t.Fatalf("open logo: %v", err)
	}
	assertAllAlpha(t, logo, 0)

	small, err := imaging.Open(filepath.Join(out, "favicon-16x16.png"))
	if err != nil {
		t.Fatalf("open 16x16: %v", err)
	}
	if small.Bounds().Dx() != 16 {
		t.Errorf("16x16 width: got %d", small.Bounds().Dx())
	}
	assertAllAlpha(t, small, 0)
}

func TestRun_AllContent(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "white.png", newFilled(100, 100, color.NRGBA{255, 255, 255, 255}))
	out := filepath.Join(dir, "out")

	res, err := Run(runConfig(src, out), fileLoader{}, quietLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Width != 100 || res.Height != 100 || res.Stats.Kept != 10000 {
		t.Errorf("got %dx%d %s", res.Width, res.Height, res.Stats)
	}

	for _, name := range []string{LogoFileName, FaviconFileName, "favicon-32x32.png", "favicon-16x16.png"} {
		img, err := imaging.Open(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		assertAllAlpha(t, img, 0xffff)
	}

	data, err := os.ReadFile(filepath.Join(out, IconFileName))
	if err != nil {
		t.Fatalf("read icon: %v", err)
	}
	entries, err := ico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("icon entries: got %d, want 3", len(entries))
	}
	for i, e := range entries {
		r, g, b, a := e.At(e.Bounds().Dx()/2, e.Bounds().Dy()/2).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
			t.Errorf("icon entry %d: got (%d,%d,%d,%d), want opaque white", i, r, g, b, a)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "logo.png", newLogo(40, 40))

	outA := filepath.Join(dir, "a")
	outB := filepath.Join(dir, "b")
	if _, err := Run(runConfig(src, outA), fileLoader{}, quietLogger()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := Run(runConfig(src, outB), fileLoader{}, quietLogger()); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	for _, name := range []string{LogoFileName, FaviconFileName, "favicon-32x32.png", "favicon-16x16.png", IconFileName} {
		a, errA := os.ReadFile(filepath.Join(outA, name))
		b, errB := os.ReadFile(filepath.Join(outB, name))
		if errA != nil || errB != nil {
			t.Fatalf("read %s: %v %v", name, errA, errB)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestRun_OverwritesOutputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	green := writePNG(t, dir, "green.png", newFilled(8, 8, color.NRGBA{0, 200, 0, 255}))
	white := writePNG(t, dir, "white.png", newFilled(8, 8, color.NRGBA{255, 255, 255, 255}))

	if _, err := Run(runConfig(white, out), fileLoader{}, quietLogger()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := Run(runConfig(green, out), fileLoader{}, quietLogger()); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	logo, err := imaging.Open(filepath.Join(out, LogoFileName))
	if err != nil {
		t.Fatalf("open logo: %v", err)
	}
	assertAllAlpha(t, logo, 0)
}

func TestRun_DecodeError(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		src  string
	}{
		{"missing", filepath.Join(dir, "missing.png")},
		{"garbage", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "out-"+tt.name)
			res, err := Run(runConfig(tt.src, out), fileLoader{}, quietLogger())

			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if derr.Path != tt.src {
				t.Errorf("Path: got %s, want %s", derr.Path, tt.src)
			}
			if res != nil {
				t.Errorf("no result expected, got %+v", res)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Error("output directory should not be created")
			}
		})
	}
}

func TestRun_ConfigError(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "logo.png", newLogo(10, 10))

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"no source", func(c *Config) { c.SourcePath = "" }, "source_path"},
		{"no output", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"even kernel", func(c *Config) { c.DilationKernelSize = 2 }, "dilation_kernel_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "out")
			cfg := runConfig(src, out)
			tt.modify(&cfg)

			_, err := Run(cfg, fileLoader{}, quietLogger())
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field: got %s, want %s", cfgErr.Field, tt.field)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Error("output directory should not be created")
			}
		})
	}
}

func TestRun_WriteError(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "logo.png", newLogo(10, 10))
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}

	res, err := Run(runConfig(src, filepath.Join(blocker, "out")), fileLoader{}, quietLogger())
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if res == nil || len(res.Files) != 0 {
		t.Errorf("expected an empty result, got %+v", res)
	}
}

func TestRun_Logging(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "logo.png", newLogo(10, 10))

	var buf bytes.Buffer
	if _, err := Run(runConfig(src, filepath.Join(dir, "out")), fileLoader{}, log.New(&buf, "", 0)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	logs := buf.String()
	for _, want := range []string{"Opening " + src, "Accent pixels removed: 4", "Content pixels kept: 16", "Saved ", "Done: 5 files"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log missing %q:\n%s", want, logs)
		}
	}
}

func TestRun_Luminance(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "dark.png", newFilled(20, 20, color.NRGBA{0, 0, 0, 255}))

	cfg, _ := Preset(PresetLuminance)
	cfg.SourcePath = src
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.ExportContainer = false

	res, err := Run(cfg, fileLoader{}, quietLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stats.Dropped != 400 || len(res.Files) != 4 {
		t.Errorf("got %s, files %v", res.Stats, res.Files)
	}
}

// assertAllAlpha checks that every pixel of img has the given 16-bit alpha.
func assertAllAlpha(t *testing.T, img image.Image, want uint32) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a != want {
				t.Fatalf("pixel (%d,%d): alpha %d, want %d", x, y, a, want)
			}
			if a != 0 && (r != a || g != a || bl != a) {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d,%d), want white", x, y, r, g, bl, a)
			}
		}
	}
}
