// Package raster holds the rasterized page images that hybridoc places above
// the editable content of each page.
//
// Images come from an external rasterizer: a directory of rendered pages, or
// the page images returned by Document AI. This package only decodes enough of
// each payload to learn its dimensions and format; the payload itself is
// passed through untouched.
//
// Supported formats: PNG, JPEG, GIF, TIFF, BMP and WebP.
package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is one rasterized page
type Image struct {
	PageNumber int     // 1-based page number the image belongs to
	Width      float64 // Natural width in pixels
	Height     float64 // Natural height in pixels
	Data       []byte  // Encoded image payload
	Format     string  // Lower-case format name: png, jpeg, gif, tiff, bmp, webp
}

// Decode reads the dimensions and format of an encoded image
func Decode(pageNumber int, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image for page %d is empty", pageNumber)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image config for page %d: %w", pageNumber, err)
	}
	return Image{
		PageNumber: pageNumber,
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		Data:       data,
		Format:     strings.ToLower(format),
	}, nil
}

// FormatFromMIME maps an image MIME type to the format names used by Image
func FormatFromMIME(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/tiff":
		return "tiff"
	case "image/bmp":
		return "bmp"
	case "image/webp":
		return "webp"
	default:
		return ""
	}
}
