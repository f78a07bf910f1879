package gdocai

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/gardar/hybridoc/pkg/raster"
)

// ToJSON converts various types to a pretty-printed JSON string
// It handles both protocol buffer messages and regular Go structs
func ToJSON(data interface{}) (string, error) {
	switch v := data.(type) {
	case proto.Message:
		jsonData, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(jsonData), nil

	default:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	}
}

// ExtractImageFromPage pulls out the image of a Document AI page with its dimensions and format.
// When the response leaves the dimensions or MIME type out, they are read from the image itself.
func ExtractImageFromPage(page *documentaipb.Document_Page, pageNum int) (raster.Image, error) {
	if page == nil {
		return raster.Image{}, fmt.Errorf("no documentai page provided")
	}

	image := page.GetImage()
	if image == nil {
		return raster.Image{}, fmt.Errorf("no image found in documentai page %d", pageNum)
	}

	content := image.GetContent()
	if len(content) == 0 {
		return raster.Image{}, fmt.Errorf("image content is empty on page %d", pageNum)
	}

	img := raster.Image{
		PageNumber: pageNum,
		Width:      float64(image.GetWidth()),
		Height:     float64(image.GetHeight()),
		Data:       content,
		Format:     raster.FormatFromMIME(image.GetMimeType()),
	}
	if img.Width <= 0 || img.Height <= 0 || img.Format == "" {
		decoded, err := raster.Decode(pageNum, content)
		if err != nil {
			return raster.Image{}, err
		}
		img = decoded
	}
	return img, nil
}

// PageImages collects the page images of a Document AI response keyed by page number.
// Pages without a usable image are left out.
func PageImages(doc *documentaipb.Document) map[int]raster.Image {
	images := make(map[int]raster.Image)
	for i, page := range doc.GetPages() {
		img, err := ExtractImageFromPage(page, i+1)
		if err != nil {
			continue
		}
		images[i+1] = img
	}
	return images
}
