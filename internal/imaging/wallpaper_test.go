package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestGenerate_Defaults(t *testing.T) {
	src := createLogoImage(40, 20, green, red)

	res, err := Generate(src, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if res.Canvas != (Size{40, 20}) {
		t.Errorf("canvas: got %s, want source size 40x20", res.Canvas)
	}
	if res.Background != green {
		t.Errorf("background: got %v, want green", res.Background)
	}
	if res.Detected == nil {
		t.Error("Detected should be set when no color is supplied")
	}
	if res.Offset != image.Pt(0, 0) {
		t.Errorf("offset: got %v, want (0,0)", res.Offset)
	}
	if got := res.Image.NRGBAAt(20, 10); got != red {
		t.Errorf("center pixel: got %v, want red", got)
	}
}

func TestGenerate_PlacesOnLargerCanvas(t *testing.T) {
	src := createLogoImage(100, 100, white, blue)

	opts := DefaultOptions()
	opts.Size = "200x200"
	opts.Anchor = BottomRight

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Offset != image.Pt(100, 100) {
		t.Errorf("offset: got %v, want (100,100)", res.Offset)
	}
	if res.Foreground != (Size{100, 100}) {
		t.Errorf("foreground: got %s, want 100x100", res.Foreground)
	}
	// Top-left quadrant is plain canvas, the logo sits at 125..175.
	if got := res.Image.NRGBAAt(10, 10); got != white {
		t.Errorf("canvas pixel: got %v, want white", got)
	}
	if got := res.Image.NRGBAAt(150, 150); got != blue {
		t.Errorf("logo pixel: got %v, want blue", got)
	}
}

func TestGenerate_ExplicitColorSkipsDetection(t *testing.T) {
	src := createLogoImage(10, 10, white, blue)
	navy := color.NRGBA{0, 0, 128, 255}

	opts := DefaultOptions()
	opts.Size = "20x20"
	opts.Color = &navy
	opts.Anchor = TopLeft

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Detected != nil {
		t.Error("Detected should be nil when a color is supplied")
	}
	if got := res.Image.NRGBAAt(19, 19); got != navy {
		t.Errorf("canvas pixel: got %v, want navy", got)
	}
}

func TestGenerate_CropToFit(t *testing.T) {
	src := createInMemoryImage(400, 200, red)

	opts := DefaultOptions()
	opts.Size = "100x100"

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{100, 50}) {
		t.Errorf("foreground: got %s, want 100x50", res.Foreground)
	}
	if res.Offset != image.Pt(0, 25) {
		t.Errorf("offset: got %v, want (0,25)", res.Offset)
	}
}

func TestGenerate_DontCropClips(t *testing.T) {
	src := createInMemoryImage(400, 200, red)

	opts := DefaultOptions()
	opts.Size = "100x100"
	opts.Transform.NoCrop = true
	opts.Color = &blue

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{400, 200}) {
		t.Errorf("foreground: got %s, want 400x200", res.Foreground)
	}
	if SizeOf(res.Image) != (Size{100, 100}) {
		t.Errorf("canvas: got %s, want 100x100", SizeOf(res.Image))
	}
	// Every canvas pixel is covered by the red foreground.
	if got := res.Image.NRGBAAt(0, 0); got != red {
		t.Errorf("got %v, want red", got)
	}
}

func TestGenerate_ScaleRelCanvas(t *testing.T) {
	src := createInMemoryImage(50, 100, red)

	opts := DefaultOptions()
	opts.Size = "400x200"
	opts.Transform.ScaleRelCanvas = 0.5

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{50, 100}) {
		t.Errorf("foreground: got %s, want 50x100", res.Foreground)
	}

	opts.Transform.ScaleRelCanvas = 1
	res, err = Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{100, 200}) {
		t.Errorf("foreground: got %s, want 100x200", res.Foreground)
	}
}

func TestGenerate_Rotation(t *testing.T) {
	src := createLogoImage(40, 20, white, blue)

	opts := DefaultOptions()
	opts.Size = "100x100"
	opts.Transform.Rotation = 90

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{20, 40}) {
		t.Errorf("foreground: got %s, want 20x40", res.Foreground)
	}
}

func TestGenerate_Errors(t *testing.T) {
	src := createInMemoryImage(10, 10, red)

	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"bad size", func(o *Options) { o.Size = "bad" }, ErrInvalidSizeFormat},
		{"bad anchor", func(o *Options) { o.Anchor = Anchor(99) }, ErrInvalidAnchor},
		{"degenerate", func(o *Options) { o.Transform.ScaleRelImage = 0.01 }, ErrDegenerateForegroundSize},
		{"both scales", func(o *Options) {
			o.Transform.ScaleRelImage = 1
			o.Transform.ScaleRelCanvas = 1
		}, ErrConflictingScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			res, err := Generate(src, opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Error("no result should be returned on failure")
			}
		})
	}
}

func TestGenerate_EmptyImage(t *testing.T) {
	_, err := Generate(image.NewNRGBA(image.Rect(0, 0, 0, 5)), DefaultOptions())
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestPreview(t *testing.T) {
	src := createLogoImage(20, 10, green, red)
	opts := DefaultOptions()
	opts.Size = "200x100"

	res, err := Generate(src, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	preview, err := Preview(res, 50)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Width != 50 || preview.Height != 25 {
		t.Errorf("preview size: got %dx%d, want 50x25", preview.Width, preview.Height)
	}
	if preview.Canvas != (Size{200, 100}) {
		t.Errorf("canvas: got %s, want 200x100", preview.Canvas)
	}
	if preview.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", preview.MimeType)
	}
	if preview.Background.Hex != "#00FF00" {
		t.Errorf("background: got %s, want #00FF00", preview.Background.Hex)
	}

	data, err := base64.StdEncoding.DecodeString(preview.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if SizeOf(img) != (Size{50, 25}) {
		t.Errorf("decoded size: got %s", SizeOf(img))
	}
}

func TestPreview_FullSize(t *testing.T) {
	res, err := Generate(createInMemoryImage(30, 30, red), DefaultOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	preview, err := Preview(res, 0)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Width != 30 || preview.Height != 30 {
		t.Errorf("preview size: got %dx%d, want 30x30", preview.Width, preview.Height)
	}
}

func TestOptions_ZeroValueIsDefault(t *testing.T) {
	if (Options{}) != DefaultOptions() {
		t.Fatalf("zero Options differs from DefaultOptions: %+v", DefaultOptions())
	}

	// Crop-to-fit and centering apply without going through DefaultOptions.
	res, err := Generate(createInMemoryImage(400, 200, red), Options{Size: "100x100"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Foreground != (Size{100, 50}) {
		t.Errorf("foreground: got %s, want 100x50", res.Foreground)
	}
	if res.Offset != image.Pt(0, 25) {
		t.Errorf("offset: got %v, want (0,25)", res.Offset)
	}

	// Covered edges are ignored by default.
	res, err = Generate(createBleedImage(), Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Background != blue {
		t.Errorf("background: got %v, want blue", res.Background)
	}
}
