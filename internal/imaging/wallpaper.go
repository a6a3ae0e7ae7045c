package imaging

import (
	"image"
	"image/color"
)

// Options collects everything Generate needs besides the source image.
//
// The zero value is usable and equals DefaultOptions: source-sized canvas,
// centered, edge-aware detection ignoring covered edges, crop-to-fit on.
type Options struct {
	// Size is a preset name or "WxH". Empty keeps the source dimensions.
	Size string

	Anchor Anchor

	// Color overrides background detection when non-nil.
	Color *color.NRGBA

	Sampler   SamplerOptions
	Transform TransformOptions
}

// DefaultOptions returns the command-line defaults. It is the same as the
// zero Options, spelled out for readability at call sites.
func DefaultOptions() Options {
	return Options{
		Anchor:  Center,
		Sampler: DefaultSamplerOptions(),
	}
}

// Result is a finished wallpaper and the decisions that produced it.
type Result struct {
	Image      *image.NRGBA
	Background color.NRGBA
	Detected   *BackgroundResult // nil when the color was supplied
	Canvas     Size
	Foreground Size
	Offset     image.Point
}

// Generate builds a wallpaper from src.
//
// Parameters:
//   - src: The foreground image. It is never modified.
//   - opts: Canvas size, anchor, optional color and the sampler and
//     transform settings. The zero Options gives the command-line defaults.
//
// Returns:
//   - *Result: The finished canvas together with the chosen background, the
//     canvas and foreground sizes and the paste offset. Result.Detected is
//     nil when opts.Color was supplied.
//   - error: Non-nil if any step fails. No partial image is returned.
//
// The steps run in a fixed order: resolve the canvas size, pick the
// background color (opts.Color, or DetectBackground on src), transform the
// foreground, then composite it at the anchor. The color is chosen before
// the transform because rotating an opaque source fills the exposed corners
// with it.
//
// # Errors
//
//   - ErrInvalidAnchor for an anchor outside the enumeration
//   - ErrInvalidScale or ErrConflictingScale for bad scale settings
//   - ErrEmptyImage if src has no pixels
//   - ErrInvalidSizeFormat if opts.Size is neither a preset nor "WxH"
//   - ErrDegenerateForegroundSize if scaling or fitting leaves no pixels
func Generate(src image.Image, opts Options) (*Result, error) {
	if _, err := AnchorOffset(opts.Anchor, Size{}, Size{}); err != nil {
		return nil, err
	}
	if err := opts.Transform.Validate(); err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	canvas, err := ResolveSize(opts.Size, SizeOf(src))
	if err != nil {
		return nil, err
	}

	res := &Result{Canvas: canvas}
	if opts.Color != nil {
		res.Background = *opts.Color
	} else {
		detected, err := DetectBackground(src, opts.Sampler)
		if err != nil {
			return nil, err
		}
		res.Detected = detected
		res.Background = detected.NRGBA()
	}
	res.Background.A = 255

	fg, err := Transform(src, canvas, res.Background, opts.Transform)
	if err != nil {
		return nil, err
	}
	res.Foreground = SizeOf(fg)

	res.Image, res.Offset, err = Composite(canvas, res.Background, fg, opts.Anchor)
	if err != nil {
		return nil, err
	}
	return res, nil
}
