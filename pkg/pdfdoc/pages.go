package pdfdoc

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// PageCount returns the number of pages in a PDF
func PageCount(pdfBytes []byte) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			n, err = 0, fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	if len(pdfBytes) == 0 {
		return 0, fmt.Errorf("failed to read PDF: empty input")
	}

	var rs io.ReadSeeker = bytes.NewReader(pdfBytes)
	importer := gofpdi.NewImporter()
	importer.ImportPageFromStream(fpdf.New("P", "pt", "A4", ""), &rs, 1, "/MediaBox")
	n = len(importer.GetPageSizes())
	if n == 0 {
		return 0, fmt.Errorf("failed to read PDF: no pages found")
	}
	return n, nil
}
