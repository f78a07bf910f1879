package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/gardar/hybridoc/pkg/hybrid"
	"github.com/gardar/hybridoc/pkg/raster"
)

// imageForPDF returns the fpdf image type and payload of an image block.
// fpdf embeds JPEG, PNG and GIF directly; other formats are re-encoded as PNG.
func imageForPDF(img *hybrid.Image) (string, []byte, error) {
	format := img.Format
	if format == "" {
		detected, err := detectImageType(img.Data)
		if err != nil {
			return "", nil, err
		}
		format = detected
	}

	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "JPG", img.Data, nil
	case "png":
		return "PNG", img.Data, nil
	case "gif":
		return "GIF", img.Data, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return "", nil, fmt.Errorf("failed to re-encode %s image as PNG: %w", format, err)
	}
	return "PNG", buf.Bytes(), nil
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	decoded, err := raster.Decode(0, data)
	if err != nil {
		return "", err
	}
	return decoded.Format, nil
}
