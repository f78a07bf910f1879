package pdfdoc

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config holds user options for rendering a document to PDF
type Config struct {
	PageSize  string             // "A4" or "Letter"
	Margin    float64            // Page margin in points
	Layers    bool               // Put page images and text on separate optional content layers
	SourcePDF []byte             // Input PDF; its pages stand in for missing page images
	Font      FontConfig         // Body font
	Logger    logrus.FieldLogger // Warnings about unencodable text (nil = discard)
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		PageSize: "A4",
		Margin:   56.7, // 2 cm
		Font:     DefaultFont,
	}
}

// FontConfig contains font settings for text rendering
type FontConfig struct {
	Name        string  // Core font name (e.g., "Helvetica")
	Size        float64 // Body font size in points
	LineSpacing float64 // Line height as a multiple of the font size
}

// DefaultFont sets the default font to Helvetica, which every PDF reader ships
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Size:        10,
	LineSpacing: 1.4,
}

// Layer names used when Config.Layers is set
const (
	ImageLayerName = "Page images"
	TextLayerName  = "Editable text"
)

// pointsPerPixel maps placed image units (CSS pixels) to points
const pointsPerPixel = 0.75

// logger returns the configured logger or one that discards everything
func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// lineHeight returns the height of one body text line
func (f FontConfig) lineHeight(size float64) float64 {
	spacing := f.LineSpacing
	if spacing <= 0 {
		spacing = DefaultFont.LineSpacing
	}
	return size * spacing
}

// headingSize returns the font size of a heading of the given level
func (f FontConfig) headingSize(level int) float64 {
	switch {
	case level <= 1:
		return f.Size * 1.8
	case level == 2:
		return f.Size * 1.5
	case level == 3:
		return f.Size * 1.3
	default:
		return f.Size * 1.1
	}
}
