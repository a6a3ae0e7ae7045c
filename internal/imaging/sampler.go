package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// SampleMode selects how DetectBackground inspects the border.
type SampleMode int

const (
	// EdgeAware counts every border pixel, optionally skipping covered edges.
	EdgeAware SampleMode = iota
	// Simple votes between the four corner pixels only. It costs the same
	// for any image size.
	Simple
)

func (m SampleMode) String() string {
	switch m {
	case EdgeAware:
		return "edge-aware"
	case Simple:
		return "simple"
	default:
		return fmt.Sprintf("SampleMode(%d)", int(m))
	}
}

// SamplerOptions controls background detection.
type SamplerOptions struct {
	Mode SampleMode

	// KeepCoveredEdges counts every side of the border. By default a side
	// whose pixels are all one color is dropped, since such a side usually
	// means the foreground runs off the image.
	KeepCoveredEdges bool

	// Tolerance is the per-channel distance (0-255) under which two colors
	// count as the same. Zero means exact matching.
	Tolerance uint8
}

// DefaultSamplerOptions returns edge-aware sampling with covered edges
// ignored, which is also the zero SamplerOptions.
func DefaultSamplerOptions() SamplerOptions {
	return SamplerOptions{Mode: EdgeAware}
}

// BackgroundResult reports the detected color and how strongly it won.
type BackgroundResult struct {
	Color   ColorResult `json:"color"`
	Mode    string      `json:"mode"`
	Votes   int         `json:"votes"`
	Sampled int         `json:"sampled"`

	// IgnoredEdges names the sides dropped as covered, in scan order.
	IgnoredEdges []string `json:"ignored_edges,omitempty"`

	nrgba color.NRGBA
}

// NRGBA returns the detected color.
func (r *BackgroundResult) NRGBA() color.NRGBA {
	return r.nrgba
}

// DetectBackground guesses the background color of img from its border.
//
// Parameters:
//   - img: Any non-empty image. Bounds need not start at (0,0).
//   - opts: Sampling mode, covered-edge handling and color tolerance.
//
// Returns:
//   - *BackgroundResult: The winning color in several representations, its
//     vote count, the number of pixels sampled and the names of any sides
//     that were ignored.
//   - error: Non-nil only for an empty image or an unknown mode.
//
// # Simple mode
//
// The corners are read in the order top-left, top-right, bottom-left,
// bottom-right. The most frequent value wins; ties go to the earliest corner.
//
// # Edge-aware mode
//
// The sides are scanned top row, bottom row, left column, right column, each
// in increasing coordinate order. A corner pixel is counted once for each side
// it belongs to. Unless KeepCoveredEdges is set, a side made of a single color
// from one corner to the other is dropped before counting, unless every side
// is like that (a uniform border), in which case nothing is dropped.
//
// The color with the most votes wins. Ties go to the color seen first in the
// scan.
//
// # Errors
//
//   - ErrEmptyImage if img has zero width or height
//   - Returns error if opts.Mode is not EdgeAware or Simple
func DetectBackground(img image.Image, opts SamplerOptions) (*BackgroundResult, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	var sides []borderSide
	switch opts.Mode {
	case Simple:
		sides = []borderSide{{name: "corners", pixels: []color.NRGBA{
			toNRGBA(img.At(b.Min.X, b.Min.Y)),
			toNRGBA(img.At(b.Max.X-1, b.Min.Y)),
			toNRGBA(img.At(b.Min.X, b.Max.Y-1)),
			toNRGBA(img.At(b.Max.X-1, b.Max.Y-1)),
		}}}
	case EdgeAware:
		sides = borderSides(img)
	default:
		return nil, fmt.Errorf("unknown sample mode %v", opts.Mode)
	}

	var ignored []string
	if opts.Mode == EdgeAware && !opts.KeepCoveredEdges {
		sides, ignored = dropCoveredSides(sides)
	}

	var tally colorTally
	for _, side := range sides {
		for _, px := range side.pixels {
			tally.add(px, opts.Tolerance)
		}
	}

	winner, votes := tally.best()
	return &BackgroundResult{
		Color:        *NewColorResult(winner),
		Mode:         opts.Mode.String(),
		Votes:        votes,
		Sampled:      tally.total,
		IgnoredEdges: ignored,
		nrgba:        winner,
	}, nil
}

type borderSide struct {
	name   string
	pixels []color.NRGBA
}

// covered reports whether the side is one uninterrupted run of a single
// color, which necessarily touches both of its corners.
func (s borderSide) covered() bool {
	for _, px := range s.pixels[1:] {
		if px != s.pixels[0] {
			return false
		}
	}
	return true
}

// borderSides reads the four sides in scan order.
func borderSides(img image.Image) []borderSide {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	top := make([]color.NRGBA, w)
	bottom := make([]color.NRGBA, w)
	for x := 0; x < w; x++ {
		top[x] = toNRGBA(img.At(b.Min.X+x, b.Min.Y))
		bottom[x] = toNRGBA(img.At(b.Min.X+x, b.Max.Y-1))
	}

	left := make([]color.NRGBA, h)
	right := make([]color.NRGBA, h)
	for y := 0; y < h; y++ {
		left[y] = toNRGBA(img.At(b.Min.X, b.Min.Y+y))
		right[y] = toNRGBA(img.At(b.Max.X-1, b.Min.Y+y))
	}

	return []borderSide{
		{name: "top", pixels: top},
		{name: "bottom", pixels: bottom},
		{name: "left", pixels: left},
		{name: "right", pixels: right},
	}
}

func dropCoveredSides(sides []borderSide) ([]borderSide, []string) {
	kept := make([]borderSide, 0, len(sides))
	var ignored []string
	for _, side := range sides {
		if side.covered() {
			ignored = append(ignored, side.name)
			continue
		}
		kept = append(kept, side)
	}
	if len(kept) == 0 {
		return sides, nil
	}
	return kept, ignored
}

// colorTally counts votes per color while remembering first-seen order.
type colorTally struct {
	colors []color.NRGBA
	counts []int
	index  map[color.NRGBA]int
	total  int
}

func (t *colorTally) add(c color.NRGBA, tolerance uint8) {
	if t.index == nil {
		t.index = make(map[color.NRGBA]int)
	}
	t.total++

	if i, ok := t.index[c]; ok {
		t.counts[i]++
		return
	}
	if tolerance > 0 {
		for i, seen := range t.colors {
			if withinTolerance(seen, c, tolerance) {
				t.index[c] = i
				t.counts[i]++
				return
			}
		}
	}

	t.index[c] = len(t.colors)
	t.colors = append(t.colors, c)
	t.counts = append(t.counts, 1)
}

// best returns the most counted color. A strict comparison keeps the
// earliest color on ties.
func (t *colorTally) best() (color.NRGBA, int) {
	bestIdx := 0
	for i, n := range t.counts {
		if n > t.counts[bestIdx] {
			bestIdx = i
		}
	}
	return t.colors[bestIdx], t.counts[bestIdx]
}

func withinTolerance(a, b color.NRGBA, tol uint8) bool {
	return absDiff(a.R, b.R) <= tol &&
		absDiff(a.G, b.G) <= tol &&
		absDiff(a.B, b.B) <= tol &&
		absDiff(a.A, b.A) <= tol
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
