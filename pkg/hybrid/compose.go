package hybrid

import (
	"fmt"

	"github.com/gardar/hybridoc/pkg/layout"
	"github.com/gardar/hybridoc/pkg/raster"
)

// PageHeadingLevel is the heading level of the "Page N" heading
const PageHeadingLevel = 2

// TableCounter numbers tables across the whole document.
// The zero value starts at 1.
type TableCounter struct {
	n int
}

// Next advances the counter and returns the new table number
func (c *TableCounter) Next() int {
	c.n++
	return c.n
}

// Count returns how many numbers have been handed out
func (c *TableCounter) Count() int {
	return c.n
}

// TableLabel returns the caption of the n-th rendered table
func TableLabel(n int) string {
	return fmt.Sprintf("Table %d", n)
}

// ComposePage builds the blocks of one page: its heading, its image (when img
// is non-nil and carries data), the tables placed on it and the lines that are
// not already part of a table. spans must be built from the tables of the
// whole document. counter is shared by all pages of the document.
func ComposePage(page layout.Page, pageNumber int, tables []layout.Table, spans *SpanSet, img *raster.Image, counter *TableCounter) []Block {
	blocks := []Block{&Heading{Text: fmt.Sprintf("Page %d", pageNumber), Level: PageHeadingLevel}}

	if img != nil && len(img.Data) > 0 {
		w, h := PlaceImage(img.Width, img.Height)
		blocks = append(blocks, &Image{Data: img.Data, Width: w, Height: h, Format: img.Format})
	}

	for _, t := range tables {
		if !t.OnPage(pageNumber) {
			continue
		}
		n := counter.Next()
		blocks = append(blocks, &Table{
			Number: n,
			Label:  TableLabel(n),
			Grid:   BuildGrid(t),
		})
	}

	for _, line := range page.Lines {
		text := NormalizeText(line.Content)
		if text == "" {
			continue
		}
		// Lines without spans cannot be matched against tables and are always kept.
		if spans.OverlapsAny(line.Spans) {
			continue
		}
		blocks = append(blocks, &Paragraph{Text: text})
	}

	return blocks
}
