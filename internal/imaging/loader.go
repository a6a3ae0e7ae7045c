package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded source images.
//
// The MCP server answers several tool calls about the same file (detect the
// background, preview, then generate), so the decoded image is kept keyed by
// its path. Cached images remain in memory until Evict or Clear.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it from disk on first use.
// PNG, JPEG and GIF are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Open decodes the image at path without caching.
//
// Parameters:
//   - path: File path to a PNG, JPEG, GIF, BMP or WebP image.
//
// Returns:
//   - image.Image: The decoded image with its original bounds.
//   - error: Non-nil if the file is missing or cannot be decoded.
func Open(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Save encodes img to path.
//
// Parameters:
//   - path: Destination file. The extension picks the format: .png, .jpg or
//     .jpeg, or .bmp.
//   - img: The image to write.
//   - jpegQuality: JPEG quality 1-100. Other values fall back to 95. Ignored
//     for PNG and BMP.
//
// # Errors
//
//   - Returns error for any other extension, before a file is created
//   - Returns error if the file cannot be written
func Save(path string, img image.Image, jpegQuality int) error {
	enc, err := encoderFor(path, jpegQuality)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string, jpegQuality int) (imgio.Encoder, error) {
	switch formatOf(path) {
	case "png":
		return imgio.PNGEncoder(), nil
	case "jpeg":
		if jpegQuality <= 0 || jpegQuality > 100 {
			jpegQuality = 95
		}
		return imgio.JPEGEncoder(jpegQuality), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png, .jpg or .bmp)", filepath.Ext(path))
	}
}

// formatOf maps a file extension to a format name, or "unknown".
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is detected from the file extension, not the contents.
	Format string `json:"format"`

	// HasAlpha is true when the decoded image carries any transparent pixel.
	// Opaque sources get rotation corners filled with the background color.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := SizeOf(img)
	return &ImageInfo{
		Width:         size.Width,
		Height:        size.Height,
		Format:        formatOf(path),
		HasAlpha:      !isOpaque(img),
		FileSizeBytes: stat.Size(),
	}, nil
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*Size, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	size := SizeOf(img)
	return &size, nil
}
