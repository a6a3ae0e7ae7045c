package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// TransformOptions describes how the foreground is reshaped before it is
// pasted. Rotation runs first, then scaling, then crop-to-fit.
type TransformOptions struct {
	// Rotation in degrees, clockwise. Any real value is accepted.
	Rotation float64 `json:"rotation"`

	// ScaleRelImage multiplies the foreground's own dimensions. Zero means unset.
	ScaleRelImage float64 `json:"scale_rel_image"`

	// ScaleRelCanvas sizes the foreground's height to this fraction of the
	// canvas height, keeping its aspect ratio. Zero means unset.
	ScaleRelCanvas float64 `json:"scale_rel_canvas"`

	// NoCrop keeps a foreground that is larger than the canvas at full size,
	// so the canvas clips it. By default it is shrunk until it fits.
	NoCrop bool `json:"no_crop"`
}

// Validate checks the scale settings.
func (o TransformOptions) Validate() error {
	if o.ScaleRelImage < 0 || math.IsNaN(o.ScaleRelImage) || math.IsInf(o.ScaleRelImage, 0) {
		return fmt.Errorf("%w: scale-rel-image %v", ErrInvalidScale, o.ScaleRelImage)
	}
	if o.ScaleRelCanvas < 0 || math.IsNaN(o.ScaleRelCanvas) || math.IsInf(o.ScaleRelCanvas, 0) {
		return fmt.Errorf("%w: scale-rel-canvas %v", ErrInvalidScale, o.ScaleRelCanvas)
	}
	if o.ScaleRelImage != 0 && o.ScaleRelCanvas != 0 {
		return ErrConflictingScale
	}
	if math.IsNaN(o.Rotation) || math.IsInf(o.Rotation, 0) {
		return fmt.Errorf("invalid rotation %v", o.Rotation)
	}
	return nil
}

// Transform reshapes src for a canvas of the given size.
//
// Parameters:
//   - src: The foreground image. It is never modified.
//   - canvas: The target canvas size, used by ScaleRelCanvas and crop-to-fit.
//   - bg: Fill for the corners exposed by rotating an opaque source.
//   - opts: Rotation, scale factor and crop-to-fit settings.
//
// Returns:
//   - *image.NRGBA: The transformed foreground. When no step changes the
//     size, this is the rotated copy without resampling.
//   - error: Non-nil if the options are invalid or the result has no pixels.
//
// Rotation runs first, then scaling, then crop-to-fit, which shrinks the
// result uniformly until both sides fit the canvas. Resampling uses Lanczos.
//
// # Errors
//
//   - ErrInvalidScale for a negative, NaN or infinite scale factor
//   - ErrConflictingScale if both scale factors are set
//   - ErrDegenerateForegroundSize if either dimension ends up zero
func Transform(src image.Image, canvas Size, bg color.NRGBA, opts TransformOptions) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	img := Rotate(src, opts.Rotation, bg)

	target, err := ScaledSize(SizeOf(img), canvas, opts)
	if err != nil {
		return nil, err
	}
	if !opts.NoCrop {
		target = FitSize(target, canvas)
	}
	if target.Width <= 0 || target.Height <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateForegroundSize, target)
	}

	if target == SizeOf(img) {
		return img, nil
	}
	return imaging.Resize(img, target.Width, target.Height, imaging.Lanczos), nil
}

// Rotate turns img clockwise by degrees around its center. The result is
// large enough to hold all of the rotated content. Exposed corners are
// transparent when img has any transparency, and bg otherwise.
func Rotate(img image.Image, degrees float64, bg color.NRGBA) *image.NRGBA {
	fill := color.Color(color.Transparent)
	if isOpaque(img) {
		bg.A = 255
		fill = bg
	}
	// imaging rotates counter-clockwise.
	return imaging.Rotate(img, -degrees, fill)
}

// maxDimension caps scaled dimensions so float results always fit an int.
const maxDimension = math.MaxInt32

// ScaledSize computes the foreground size after the requested scaling, before
// crop-to-fit. At most one scale factor may be set.
//
// Results larger than maxDimension on either side are scaled down uniformly
// to that limit, keeping the aspect ratio for the crop-to-fit step.
func ScaledSize(fg, canvas Size, opts TransformOptions) (Size, error) {
	if opts.ScaleRelImage != 0 && opts.ScaleRelCanvas != 0 {
		return Size{}, ErrConflictingScale
	}

	out := fg
	switch {
	case opts.ScaleRelImage != 0:
		out = floorSize(
			float64(fg.Width)*opts.ScaleRelImage,
			float64(fg.Height)*opts.ScaleRelImage,
		)
	case opts.ScaleRelCanvas != 0:
		if fg.Height <= 0 {
			return Size{}, fmt.Errorf("%w: %s", ErrDegenerateForegroundSize, fg)
		}
		h := math.Floor(opts.ScaleRelCanvas * float64(canvas.Height))
		out = floorSize(h/float64(fg.Height)*float64(fg.Width), h)
	}

	if out.Width <= 0 || out.Height <= 0 {
		return Size{}, fmt.Errorf("%w: %s", ErrDegenerateForegroundSize, out)
	}
	return out, nil
}

func floorSize(w, h float64) Size {
	if m := math.Max(w, h); m > maxDimension {
		w = w / m * maxDimension
		h = h / m * maxDimension
	}
	return Size{Width: int(math.Floor(w)), Height: int(math.Floor(h))}
}

// FitSize shrinks fg uniformly until it fits inside canvas. A size that
// already fits is returned unchanged.
func FitSize(fg, canvas Size) Size {
	if fg.Width <= canvas.Width && fg.Height <= canvas.Height {
		return fg
	}
	ratio := math.Min(
		float64(canvas.Width)/float64(fg.Width),
		float64(canvas.Height)/float64(fg.Height),
	)
	return Size{
		Width:  int(math.Floor(float64(fg.Width) * ratio)),
		Height: int(math.Floor(float64(fg.Height) * ratio)),
	}
}
