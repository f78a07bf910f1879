package hocr

// Document represents a parsed hOCR document
type Document struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities, ...
	Pages    []Page            // Pages in document order
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // Physical page number from 'ppageno', 0 if absent
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates
	Lines      []Line      // Line-level elements in reading order
}

// Line is a line-level element
// Corresponds to hOCR elements with class 'ocr_line', 'ocr_header', 'ocr_caption' or 'ocr_textfloat'
type Line struct {
	ID    string      // Unique identifier
	Class string      // The hOCR class that made this a line
	BBox  BoundingBox // Line coordinates
	Words []string    // Text of each 'ocrx_word' in the line
	Text  string      // Element text, used when the line has no words
}

// Content returns the words joined by spaces, or the element text for lines without words
func (l Line) Content() string {
	if len(l.Words) == 0 {
		return l.Text
	}
	return joinWords(l.Words)
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// Width returns the horizontal extent of the box
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
