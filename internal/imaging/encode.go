package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PreviewResult is a wallpaper rendered as a base64 PNG for clients that
// cannot read files from disk.
type PreviewResult struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Canvas      Size        `json:"canvas"`
	Background  ColorResult `json:"background"`
	ImageBase64 string      `json:"image_base64"`
	MimeType    string      `json:"mime_type"`
}

// Preview encodes a generated wallpaper. When maxWidth is positive and
// smaller than the canvas, the image is downscaled to that width first.
func Preview(res *Result, maxWidth int) (*PreviewResult, error) {
	var img image.Image = res.Image
	if maxWidth > 0 && maxWidth < res.Canvas.Width {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	size := SizeOf(img)
	return &PreviewResult{
		Width:       size.Width,
		Height:      size.Height,
		Canvas:      res.Canvas,
		Background:  *NewColorResult(res.Background),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
