package favicon

import (
	"github.com/anthonynsimon/bild/effect"
)

// Dilate applies a grayscale max-filter with a size×size square window and
// returns a new mask. Border cells only see in-bounds neighbours; there is no
// wraparound. A size of 1 returns an unchanged copy.
//
// Every kept cell bleeds into its neighbours, so strokes grow by size/2
// pixels on each side and the set of kept cells can only grow.
func Dilate(m *Mask, size int) *Mask {
	if size <= 1 || m.Width == 0 || m.Height == 0 {
		return m.Clone()
	}
	// bild pads by edge extension, which leaves the maximum of every border
	// window equal to the maximum of its in-bounds part.
	out := effect.Dilate(m.Gray(), float64(size/2))
	return maskFromRGBA(out)
}

// Threshold re-binarizes m: cells strictly above cutoff become MaskKeep,
// everything else MaskDrop.
func Threshold(m *Mask, cutoff uint8) *Mask {
	out := NewMask(m.Width, m.Height)
	for i, v := range m.Pix {
		if v > cutoff {
			out.Pix[i] = MaskKeep
		}
	}
	return out
}
