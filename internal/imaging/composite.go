package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Anchor names where the foreground sits on the canvas.
type Anchor int

// Center is the zero value.
const (
	Center Anchor = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	CenterTop
	CenterBottom
	CenterLeft
	CenterRight
)

var anchorNames = map[Anchor]string{
	TopLeft:      "top-left",
	TopRight:     "top-right",
	BottomLeft:   "bottom-left",
	BottomRight:  "bottom-right",
	Center:       "center",
	CenterTop:    "center-top",
	CenterBottom: "center-bottom",
	CenterLeft:   "center-left",
	CenterRight:  "center-right",
}

var anchorAliases = map[string]Anchor{
	"tl": TopLeft,
	"tr": TopRight,
	"bl": BottomLeft,
	"br": BottomRight,
	"c":  Center,
	"ct": CenterTop,
	"cb": CenterBottom,
	"cl": CenterLeft,
	"cr": CenterRight,
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// AnchorNames lists the canonical anchor names.
func AnchorNames() []string {
	names := make([]string, 0, len(anchorNames))
	for a := Center; a <= CenterRight; a++ {
		names = append(names, anchorNames[a])
	}
	return names
}

// ParseAnchor accepts a canonical anchor name or its short alias,
// case-insensitively.
func ParseAnchor(s string) (Anchor, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for a, name := range anchorNames {
		if name == key {
			return a, nil
		}
	}
	if a, ok := anchorAliases[key]; ok {
		return a, nil
	}
	return TopLeft, fmt.Errorf("%w: %q (want one of %s)",
		ErrInvalidAnchor, s, strings.Join(AnchorNames(), ", "))
}

// AnchorOffset returns where the foreground's top-left corner lands on the
// canvas. Offsets are negative when the foreground overflows the canvas.
func AnchorOffset(a Anchor, canvas, fg Size) (image.Point, error) {
	dx := canvas.Width - fg.Width
	dy := canvas.Height - fg.Height

	switch a {
	case TopLeft:
		return image.Pt(0, 0), nil
	case TopRight:
		return image.Pt(dx, 0), nil
	case BottomLeft:
		return image.Pt(0, dy), nil
	case BottomRight:
		return image.Pt(dx, dy), nil
	case Center:
		return image.Pt(half(dx), half(dy)), nil
	case CenterTop:
		return image.Pt(half(dx), 0), nil
	case CenterBottom:
		return image.Pt(half(dx), dy), nil
	case CenterLeft:
		return image.Pt(0, half(dy)), nil
	case CenterRight:
		return image.Pt(dx, half(dy)), nil
	default:
		return image.Point{}, fmt.Errorf("%w: %v", ErrInvalidAnchor, a)
	}
}

// half is floor division by two, also for negative values.
func half(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

// NewCanvas allocates a canvas of the given size filled with bg at full
// opacity.
func NewCanvas(size Size, bg color.NRGBA) *image.NRGBA {
	bg.A = 255
	return imaging.New(size.Width, size.Height, bg)
}

// Composite pastes fg onto a fresh bg-filled canvas at the anchor position.
//
// Parameters:
//   - size: Canvas dimensions.
//   - bg: Canvas fill. Its alpha is forced to 255.
//   - fg: The foreground. It may be larger than the canvas.
//   - anchor: Where fg sits; see AnchorOffset for the exact offsets.
//
// Returns:
//   - *image.NRGBA: The new canvas, exactly size in dimensions.
//   - image.Point: The offset of fg's top-left corner, possibly negative.
//   - error: Non-nil for an unknown anchor.
//
// A foreground with transparency is alpha-blended over the canvas; an opaque
// one overwrites it. Any part of fg that falls outside the canvas is clipped.
//
// # Errors
//
//   - ErrInvalidAnchor if anchor is not one of the defined values
func Composite(size Size, bg color.NRGBA, fg image.Image, anchor Anchor) (*image.NRGBA, image.Point, error) {
	offset, err := AnchorOffset(anchor, size, SizeOf(fg))
	if err != nil {
		return nil, image.Point{}, err
	}

	canvas := NewCanvas(size, bg)
	if isOpaque(fg) {
		return imaging.Paste(canvas, fg, offset), offset, nil
	}
	return imaging.Overlay(canvas, fg, offset, 1.0), offset, nil
}

// isOpaque reports whether every pixel of img is fully opaque. Types that
// can answer directly are trusted; others are scanned.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
