package favicon

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Mask values.
const (
	MaskDrop uint8 = 0
	MaskKeep uint8 = 255
)

// Mask is a single 8-bit channel with the same dimensions as its source.
// Values other than MaskDrop and MaskKeep only appear as filter output and
// must be thresholded before being read as keep/drop.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an all-drop mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

func (m *Mask) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

func (m *Mask) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Mask{Width: m.Width, Height: m.Height, Pix: pix}
}

// Count returns the number of cells strictly above cutoff.
func (m *Mask) Count(cutoff uint8) int {
	n := 0
	for _, v := range m.Pix {
		if v > cutoff {
			n++
		}
	}
	return n
}

// Gray copies the mask into a grayscale image.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(g.Pix, m.Pix)
	return g
}

// maskFromRGBA reads the red channel of a gray-valued RGBA image.
func maskFromRGBA(img *image.RGBA) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = row[x*4]
		}
	}
	return m
}

// toNRGBA normalizes any decoded image to a zero-origin NRGBA copy. Images
// without an alpha channel come out fully opaque.
func toNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// BuildBinaryMask classifies every pixel of src. The keep mask holds MaskKeep
// for content pixels and MaskDrop elsewhere; the alpha mask holds the source
// alpha of content pixels and 0 elsewhere.
func BuildBinaryMask(src *image.NRGBA, c Classifier) (keep, alpha *Mask, stats Stats) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	keep = NewMask(w, h)
	alpha = NewMask(w, h)
	stats.Total = w * h

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.NRGBAAt(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			class := c.Classify(px)
			stats.add(class)
			if class == ClassContent {
				keep.Set(x, y, MaskKeep)
				alpha.Set(x, y, px.A)
			}
		}
	}
	return keep, alpha, stats
}

// Luminance returns round(0.299r + 0.587g + 0.114b).
func Luminance(r, g, b uint8) int {
	return int(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

// BoostedAlpha maps a luminance value to output opacity. Values below min
// are dropped as background noise.
func BoostedAlpha(lum, min int, boost float64) uint8 {
	if lum < min {
		return 0
	}
	a := math.Round(float64(lum) * boost)
	if a > 255 {
		return 255
	}
	return uint8(a)
}

// BuildLuminanceMask derives opacity from brightness alone. Pixels at or
// below alphaCutoff stay transparent; no accent removal is done.
func BuildLuminanceMask(src *image.NRGBA, alphaCutoff, min int, boost float64) (*Mask, Stats) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := NewMask(w, h)
	stats := Stats{Total: w * h}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.NRGBAAt(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			if int(px.A) <= alphaCutoff {
				stats.Transparent++
				continue
			}
			a := BoostedAlpha(Luminance(px.R, px.G, px.B), min, boost)
			if a == 0 {
				stats.Dropped++
				continue
			}
			stats.Content++
			out.Set(x, y, a)
		}
	}
	return out, stats
}
