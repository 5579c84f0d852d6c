package favicon

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Stats are per-run pixel counts. They are reported for logging and never
// drive control flow.
type Stats struct {
	Total       int `json:"total"`
	Transparent int `json:"transparent"`
	Accent      int `json:"accent"`
	Content     int `json:"content"`
	Dropped     int `json:"dropped"`
	Kept        int `json:"kept"`
}

func (s *Stats) add(c Class) {
	switch c {
	case ClassTransparent:
		s.Transparent++
	case ClassAccent:
		s.Accent++
	case ClassContent:
		s.Content++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("total=%d transparent=%d accent=%d content=%d dropped=%d kept=%d",
		s.Total, s.Transparent, s.Accent, s.Content, s.Dropped, s.Kept)
}

// Composite builds the final image from a keep mask. Cells of keep above
// cutoff become pure white; their alpha comes from the alpha mask, or 255
// when alpha is nil. Everything else stays (0,0,0,0).
func Composite(keep, alpha *Mask, cutoff uint8) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, keep.Width, keep.Height))

	// Rows are disjoint, and Line returns only after every row is done.
	parallel.Line(keep.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < keep.Width; x++ {
				if keep.At(x, y) <= cutoff {
					continue
				}
				a := MaskKeep
				if alpha != nil {
					a = alpha.At(x, y)
				}
				if a == 0 {
					continue
				}
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = 255
				dst.Pix[i+1] = 255
				dst.Pix[i+2] = 255
				dst.Pix[i+3] = a
			}
		}
	})
	return dst
}

// Process runs classification, masking, thickening and compositing on an
// in-memory image. img is not modified.
func Process(img image.Image, cfg Config) (*image.NRGBA, Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}
	src := toNRGBA(img)

	switch cfg.Strategy {
	case StrategyLuminance:
		alpha, stats := BuildLuminanceMask(src, cfg.AlphaCutoff, cfg.LuminanceMin, cfg.AlphaBoost)
		stats.Kept = alpha.Count(0)
		return Composite(alpha, alpha, 0), stats, nil

	default:
		keep, alpha, stats := BuildBinaryMask(src, cfg.Classifier())
		cutoff := uint8(cfg.MaskCutoff)
		// The whole mask exists before dilation reads it.
		thick := Threshold(Dilate(keep, cfg.DilationKernelSize), cutoff)

		var alphaPlane *Mask
		if cfg.AlphaMode == AlphaPreserve {
			alphaPlane = Dilate(alpha, cfg.DilationKernelSize)
		}
		stats.Kept = thick.Count(cutoff)
		return Composite(thick, alphaPlane, cutoff), stats, nil
	}
}
