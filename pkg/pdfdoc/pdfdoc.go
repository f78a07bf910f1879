// Package pdfdoc renders a reconstructed hybrid.Document as a PDF.
//
// The PDF mirrors the .docx output: every page starts with its heading,
// followed by the page image, the labeled tables drawn as bordered grids and
// the remaining text lines. Page breaks start a new PDF page. Text is set in
// a core PDF font, so it is converted to ISO-8859-1 first; words that cannot
// be represented are replaced and reported through the configured logger.
//
// Key Features:
//
// - Page images scaled to the printable width
// - Tables with wrapped cell text, split across pages row by row
// - Optional content layers so viewers can hide the page images or the text
// - Pages of the source PDF imported as backdrops where no page image exists
//
// Main Functions:
//
// - Render: Renders a document to PDF bytes
// - PageCount: Counts the pages of a source PDF
package pdfdoc

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/gardar/hybridoc/pkg/hybrid"
)

// Render lays out the document blocks and returns the PDF bytes
func Render(doc *hybrid.Document, cfg Config) ([]byte, error) {
	if cfg.Font.Name == "" || cfg.Font.Size <= 0 {
		cfg.Font = DefaultFont
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	var blocks []hybrid.Block
	if doc != nil {
		blocks = doc.Blocks
	}
	if err := r.render(blocks); err != nil {
		return nil, err
	}

	if r.text.failures > 0 {
		cfg.logger().WithFields(logrus.Fields{
			"words": r.text.failures,
			"total": r.text.words,
		}).Warn("some words cannot be represented in ISO-8859-1 and were replaced")
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pageSize maps a page size name to an fpdf size name
func pageSize(name string) (string, error) {
	switch name {
	case "", "A4", "a4":
		return "A4", nil
	case "Letter", "letter", "LETTER":
		return "Letter", nil
	default:
		return "", fmt.Errorf("unsupported page size %q", name)
	}
}

// newPDF creates the fpdf document with the configured margins and font
func newPDF(cfg Config) (*fpdf.Fpdf, error) {
	size, err := pageSize(cfg.PageSize)
	if err != nil {
		return nil, err
	}
	pdf := fpdf.New("P", "pt", size, "")
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(false, cfg.Margin)
	pdf.SetFont(cfg.Font.Name, "", cfg.Font.Size)
	return pdf, nil
}
