// Package imaging provides source image loading and inspection for the
// favicon tools.
//
// It covers the steps around the conversion pipeline rather than the
// pipeline itself: decoding and caching source files, describing them,
// sampling and counting their colors to help pick a dominance margin, and
// encoding previews of results.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Color Representation
//
// Colors are reported non-premultiplied, the way PNG stores them:
//   - Hex: "#RRGGBB" (alpha excluded)
//   - RGBA: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and never modify the images passed to them.
package imaging
