// Package docx serializes a reconstructed hybrid.Document into a
// WordprocessingML (.docx) package.
//
// Documents are built with godocx on top of its default template, which
// supplies the styles, theme and package relationships. Each page heading
// uses the built-in Heading<N> style, page images are placed inline at their
// computed size, tables use the TableGrid style, and an empty paragraph
// follows every image and every table. Core properties (title, creator,
// creation time) are rendered from an embedded template.
package docx

import (
	"strings"
	"time"
)

// PageSize is a page size in twentieths of a point
type PageSize struct {
	Width  int
	Height int
}

// Supported page sizes
var (
	PageA4     = PageSize{Width: 11906, Height: 16838}
	PageLetter = PageSize{Width: 12240, Height: 15840}
)

// PageSizeByName returns the page size for "A4" or "Letter" (case-insensitive).
// Unknown names fall back to A4.
func PageSizeByName(name string) PageSize {
	if strings.EqualFold(strings.TrimSpace(name), "letter") {
		return PageLetter
	}
	return PageA4
}

// Options controls document-level properties of the package
type Options struct {
	Title   string    // dc:title
	Creator string    // dc:creator
	Created time.Time // dcterms:created, now when zero
	Page    PageSize  // Section page size, A4 when zero
}

// DefaultOptions returns A4 options with hybridoc as creator
func DefaultOptions() Options {
	return Options{
		Creator: "hybridoc",
		Page:    PageA4,
	}
}

// pixelsPerInch maps placed image units (CSS pixels) to inches
const pixelsPerInch = 96

// pageMargin is the section margin on every side, in twips
const pageMargin = 1440

// tableStyle is the bordered table style of the default template
const tableStyle = "TableGrid"
