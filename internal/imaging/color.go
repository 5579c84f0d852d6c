package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is a non-premultiplied 8-bit color, as stored in PNG files.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA converts c back to the standard library type.
func (c RGBAColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains one color in several representations.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor returns the color at (x, y).
//
// Coordinates are 0-based from the top-left corner. The color is reported
// without premultiplication so that the RGB values match what a classifier
// working on the decoded file sees.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return describeColor(c), nil
}

func describeColor(c color.NRGBA) *ColorResult {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// ColorCount is one entry of a color census.
type ColorCount struct {
	Color      ColorResult `json:"color"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// ColorCensusResult summarizes the exact colors used by an image.
type ColorCensusResult struct {
	TotalPixels  int `json:"total_pixels"`
	UniqueColors int `json:"unique_colors"`

	// Alpha distribution: alpha == 0, 0 < alpha < 255, alpha == 255.
	Transparent int `json:"transparent"`
	Translucent int `json:"translucent"`
	Opaque      int `json:"opaque"`

	// Colors holds the most common exact RGBA values, most frequent first.
	Colors []ColorCount `json:"colors"`
}

// ColorCensus counts exact RGBA values across img and returns the top most
// common ones. Unlike a palette extraction there is no quantization, so
// anti-aliased edges show up as many distinct colors.
//
// Ties are broken by hex value so that the result is stable between runs.
func ColorCensus(img image.Image, top int) *ColorCensusResult {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	counts := make(map[color.NRGBA]int)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			counts[src.NRGBAAt(x, y)]++
		}
	}

	alpha := histogram.NewRGBAHistogram(src).A
	total := w * h
	result := &ColorCensusResult{
		TotalPixels:  total,
		UniqueColors: len(counts),
		Transparent:  alpha.Bins[0],
		Opaque:       alpha.Bins[255],
	}
	result.Translucent = total - result.Transparent - result.Opaque

	keys := make([]color.NRGBA, 0, len(counts))
	for c := range counts {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := counts[keys[i]], counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return nrgbaKey(keys[i]) < nrgbaKey(keys[j])
	})
	if top >= 0 && len(keys) > top {
		keys = keys[:top]
	}

	result.Colors = make([]ColorCount, 0, len(keys))
	for _, c := range keys {
		n := counts[c]
		result.Colors = append(result.Colors, ColorCount{
			Color:      *describeColor(c),
			Count:      n,
			Percentage: math.Round(float64(n)/float64(total)*10000) / 100,
		})
	}
	return result
}

func nrgbaKey(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
