package favicon

import (
	"image"
	"image/color"
)

// Class is the per-pixel decision made by a Classifier.
type Class uint8

const (
	// ClassTransparent marks pixels at or below the alpha cutoff. They are
	// excluded from accent and content counts.
	ClassTransparent Class = iota

	// ClassAccent marks green-dominant pixels that are removed.
	ClassAccent

	// ClassContent marks every other visible pixel. These become white.
	ClassContent
)

func (c Class) String() string {
	switch c {
	case ClassTransparent:
		return "transparent"
	case ClassAccent:
		return "accent"
	case ClassContent:
		return "content"
	}
	return "unknown"
}

// Classifier decides whether a pixel belongs to the accent region.
//
// The test is a plain dominance check on the green channel. It flags some
// yellow-greens and desaturated tints and misses dark greens whose channels
// are close together; tune DominanceMargin per asset instead of relying on it
// as a color-distance measure.
type Classifier struct {
	// DominanceMargin is how far green must exceed both red and blue.
	DominanceMargin int

	// AlphaCutoff treats alpha <= AlphaCutoff as already transparent.
	AlphaCutoff int
}

// IsAccent reports whether g exceeds both r and b by more than the margin.
func (c Classifier) IsAccent(r, g, b uint8) bool {
	d := c.DominanceMargin
	return int(g) > int(r)+d && int(g) > int(b)+d
}

// Classify places a non-premultiplied pixel into one of the three classes.
func (c Classifier) Classify(px color.NRGBA) Class {
	if int(px.A) <= c.AlphaCutoff {
		return ClassTransparent
	}
	if c.IsAccent(px.R, px.G, px.B) {
		return ClassAccent
	}
	return ClassContent
}

// Analyze classifies every pixel of img and returns the counts without
// building a mask.
func Analyze(img image.Image, c Classifier) Stats {
	src := toNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	stats := Stats{Total: w * h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			stats.add(c.Classify(src.NRGBAAt(x, y)))
		}
	}
	return stats
}
