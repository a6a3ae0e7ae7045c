package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"top-left", TopLeft},
		{"tl", TopLeft},
		{"TOP-RIGHT", TopRight},
		{"tr", TopRight},
		{"bottom-left", BottomLeft},
		{"bl", BottomLeft},
		{"bottom-right", BottomRight},
		{"br", BottomRight},
		{"center", Center},
		{" Center ", Center},
		{"center-top", CenterTop},
		{"ct", CenterTop},
		{"center-bottom", CenterBottom},
		{"cl", CenterLeft},
		{"center-right", CenterRight},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAnchor(tt.in)
			if err != nil {
				t.Fatalf("ParseAnchor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAnchor(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAnchor_Invalid(t *testing.T) {
	for _, in := range []string{"", "middle", "top", "left-top", "x"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAnchor(in)
			if !errors.Is(err, ErrInvalidAnchor) {
				t.Errorf("ParseAnchor(%q): got %v, want ErrInvalidAnchor", in, err)
			}
		})
	}
}

func TestAnchor_StringRoundTrip(t *testing.T) {
	for _, name := range AnchorNames() {
		a, err := ParseAnchor(name)
		if err != nil {
			t.Fatalf("ParseAnchor(%q) failed: %v", name, err)
		}
		if a.String() != name {
			t.Errorf("String: got %s, want %s", a.String(), name)
		}
	}
}

func TestAnchorOffset(t *testing.T) {
	canvas := Size{200, 200}
	fg := Size{100, 100}

	tests := []struct {
		anchor Anchor
		want   image.Point
	}{
		{TopLeft, image.Pt(0, 0)},
		{TopRight, image.Pt(100, 0)},
		{BottomLeft, image.Pt(0, 100)},
		{BottomRight, image.Pt(100, 100)},
		{Center, image.Pt(50, 50)},
		{CenterTop, image.Pt(50, 0)},
		{CenterBottom, image.Pt(50, 100)},
		{CenterLeft, image.Pt(0, 50)},
		{CenterRight, image.Pt(100, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			got, err := AnchorOffset(tt.anchor, canvas, fg)
			if err != nil {
				t.Fatalf("AnchorOffset failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnchorOffset_Truncates(t *testing.T) {
	got, err := AnchorOffset(Center, Size{101, 51}, Size{10, 10})
	if err != nil {
		t.Fatalf("AnchorOffset failed: %v", err)
	}
	if got != image.Pt(45, 20) {
		t.Errorf("got %v, want (45,20)", got)
	}

	// Overflowing foreground: floor, not truncation toward zero.
	got, err = AnchorOffset(Center, Size{10, 10}, Size{13, 10})
	if err != nil {
		t.Fatalf("AnchorOffset failed: %v", err)
	}
	if got != image.Pt(-2, 0) {
		t.Errorf("got %v, want (-2,0)", got)
	}
}

func TestAnchorOffset_Unknown(t *testing.T) {
	_, err := AnchorOffset(Anchor(42), Size{10, 10}, Size{1, 1})
	if !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("got %v, want ErrInvalidAnchor", err)
	}
}

func TestNewCanvas(t *testing.T) {
	canvas := NewCanvas(Size{30, 20}, color.NRGBA{10, 20, 30, 0})
	if SizeOf(canvas) != (Size{30, 20}) {
		t.Fatalf("size: got %s", SizeOf(canvas))
	}
	for _, p := range []image.Point{{0, 0}, {29, 19}, {15, 10}} {
		if got := canvas.NRGBAAt(p.X, p.Y); got != (color.NRGBA{10, 20, 30, 255}) {
			t.Errorf("pixel %v: got %v, want opaque fill", p, got)
		}
	}
}

func TestComposite_Anchors(t *testing.T) {
	fg := createInMemoryImage(100, 100, red)

	for _, tt := range []struct {
		anchor Anchor
		offset image.Point
	}{
		{BottomRight, image.Pt(100, 100)},
		{Center, image.Pt(50, 50)},
	} {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			out, offset, err := Composite(Size{200, 200}, blue, fg, tt.anchor)
			if err != nil {
				t.Fatalf("Composite failed: %v", err)
			}
			if offset != tt.offset {
				t.Errorf("offset: got %v, want %v", offset, tt.offset)
			}
			if got := out.NRGBAAt(tt.offset.X, tt.offset.Y); got != red {
				t.Errorf("foreground corner: got %v, want red", got)
			}
			if got := out.NRGBAAt(tt.offset.X+99, tt.offset.Y+99); got != red {
				t.Errorf("foreground far corner: got %v, want red", got)
			}
			if got := out.NRGBAAt(tt.offset.X-1, tt.offset.Y-1); got != blue {
				t.Errorf("outside foreground: got %v, want blue", got)
			}
		})
	}
}

func TestComposite_ClipsOverflow(t *testing.T) {
	// 30x30 foreground with a unique color per pixel, placed bottom-right on
	// a 20x20 canvas: offset (-10,-10), so fg pixel (x,y) lands at (x-10,y-10).
	fg := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			fg.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 7, 255})
		}
	}

	out, offset, err := Composite(Size{20, 20}, white, fg, BottomRight)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if offset != image.Pt(-10, -10) {
		t.Fatalf("offset: got %v, want (-10,-10)", offset)
	}
	if SizeOf(out) != (Size{20, 20}) {
		t.Fatalf("canvas size changed: got %s", SizeOf(out))
	}

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := color.NRGBA{uint8(x + 10), uint8(y + 10), 7, 255}
			if got := out.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComposite_AlphaBlending(t *testing.T) {
	fg := createInMemoryImage(10, 10, color.NRGBA{255, 255, 255, 0})
	fg.SetNRGBA(5, 5, color.NRGBA{255, 0, 0, 255})
	fg.SetNRGBA(6, 6, color.NRGBA{255, 255, 255, 128})

	out, _, err := Composite(Size{10, 10}, color.NRGBA{0, 0, 0, 255}, fg, TopLeft)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("transparent pixel: got %v, want canvas black", got)
	}
	if got := out.NRGBAAt(5, 5); got != red {
		t.Errorf("opaque pixel: got %v, want red", got)
	}
	got := out.NRGBAAt(6, 6)
	if got.A != 255 || got.R < 120 || got.R > 136 {
		t.Errorf("half-transparent white over black: got %v, want about 128 gray", got)
	}
}

func TestComposite_OpaqueOverwrites(t *testing.T) {
	fg := createInMemoryImage(2, 2, green)
	out, _, err := Composite(Size{4, 4}, blue, fg, TopLeft)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if got := out.NRGBAAt(1, 1); got != green {
		t.Errorf("got %v, want green", got)
	}
	if got := out.NRGBAAt(2, 2); got != blue {
		t.Errorf("got %v, want blue", got)
	}
}
