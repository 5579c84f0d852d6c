// Package favicon turns a colored logo raster into a white-on-transparent
// icon set.
//
// A run moves through fixed stages, each producing a new value and never
// touching its input:
//
//  1. Classification: every pixel is transparent, accent (green-dominant), or content.
//  2. Masking: content pixels become a single-channel keep mask (binary strategy),
//     or brightness becomes an opacity mask (luminance strategy).
//  3. Thickening: the keep mask is max-filtered with a square kernel and re-thresholded.
//  4. Compositing: kept cells are painted pure white with opaque, preserved, or
//     boosted alpha. This is the only stage that writes final colors.
//  5. Export: the composited image is written at native size, resampled to each
//     target size, and packed into an ICO container.
//
// # Accent Detection
//
// The accent test is a greenness-dominance heuristic:
//
//	g > r + D && g > b + D
//
// It is not a hue or color-distance test. Yellow-green and some desaturated
// colors can be flagged, and dark greens whose channels sit close together are
// missed. D is tuned per source asset, so it lives in Config rather than in code.
//
// # Output Layout
//
// Export writes a fixed set of names other tooling depends on:
//   - logo_white.png: full-resolution composited result
//   - favicon.png: the same image under the generic name
//   - favicon-{W}x{H}.png: one file per target size
//   - favicon.ico: container with one entry per icon size
package favicon
