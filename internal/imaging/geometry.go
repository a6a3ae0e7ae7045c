package imaging

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Errors returned by the wallpaper pipeline. Each is wrapped with the
// offending input value, so callers should test with errors.Is.
var (
	ErrInvalidSizeFormat        = errors.New("invalid size format")
	ErrInvalidAnchor            = errors.New("invalid anchor")
	ErrDegenerateForegroundSize = errors.New("degenerate foreground size")
	ErrInvalidColor             = errors.New("invalid color")
	ErrConflictingScale         = errors.New("scale-rel-image and scale-rel-canvas are mutually exclusive")
	ErrInvalidScale             = errors.New("invalid scale factor")
	ErrEmptyImage               = errors.New("image has no pixels")
)

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String formats the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// SizeOf returns the dimensions of img.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Presets returns the named wallpaper sizes. A fresh map is built on every
// call so callers may modify the result.
func Presets() map[string]Size {
	return map[string]Size{
		"android-xxxhdpi": {1280, 1920},
		"android-xxhdpi":  {960, 1600},
		"android-xhdpi":   {640, 960},
		"android-hdpi":    {480, 800},
		"android-mdpi":    {320, 480},
		"android-ldpi":    {240, 320},
		"hd":              {1366, 768},
		"fullhd":          {1920, 1080},
		"4k-uhd":          {3840, 2160},
		"4k-dci":          {4096, 2160},
	}
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var sizePattern = regexp.MustCompile(`^(\d+)[xX](\d+)$`)

// ResolveSize turns a size token into a concrete Size.
//
// Parameters:
//   - token: A preset name such as "fullhd" or "android-hdpi", or
//     "<width>x<height>" with an 'x' or 'X' separator. Surrounding
//     whitespace is ignored.
//   - fallback: Returned for an empty token, normally the source image's
//     own size.
//
// Returns:
//   - Size: The canvas dimensions, both positive.
//   - error: Non-nil if the token cannot be resolved.
//
// Preset names are matched case-insensitively before the token is parsed as
// dimensions.
//
// # Errors
//
//   - ErrInvalidSizeFormat, wrapped with the token, if it matches neither
//     form, has a zero dimension or overflows an int
func ResolveSize(token string, fallback Size) (Size, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return fallback, nil
	}

	if s, ok := Presets()[strings.ToLower(token)]; ok {
		return s, nil
	}

	m := sizePattern.FindStringSubmatch(token)
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q (want WIDTHxHEIGHT or one of %s)",
			ErrInvalidSizeFormat, token, strings.Join(PresetNames(), ", "))
	}

	w, errW := strconv.Atoi(m[1])
	h, errH := strconv.Atoi(m[2])
	if errW != nil || errH != nil {
		return Size{}, fmt.Errorf("%w: %q (dimension out of range)", ErrInvalidSizeFormat, token)
	}
	if w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("%w: %q (dimensions must be positive)", ErrInvalidSizeFormat, token)
	}

	return Size{Width: w, Height: h}, nil
}
