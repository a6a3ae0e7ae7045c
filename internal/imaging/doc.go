// Package imaging turns a small image with a solid background into a
// wallpaper of any size.
//
// The work is split into four steps, each usable on its own:
//   - DetectBackground picks the background color from the image border.
//   - ResolveSize turns a preset name or "WxH" token into a canvas Size.
//   - Transform rotates, scales and shrinks the foreground to fit.
//   - Composite fills a canvas and pastes the foreground at an Anchor.
//
// Generate chains the four steps.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X grows rightward and Y downward. Paste
// offsets refer to the foreground's top-left corner and may be negative when
// the foreground is larger than the canvas; overflowing pixels are clipped.
//
// # Border Scan Order
//
// Edge-aware detection reads the top row, the bottom row, the left column and
// the right column, each in increasing coordinate order. Ties between equally
// frequent colors go to the color seen first in that order.
//
// # Error Handling
//
// Invalid input is reported through the sentinel errors declared in
// geometry.go, wrapped with the offending value. Use errors.Is to test them.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Every other function is stateless
// and never modifies its input images.
package imaging
