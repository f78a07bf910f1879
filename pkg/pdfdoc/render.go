package pdfdoc

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/hybridoc/pkg/hybrid"
)

// cellPadding is the inner padding of table cells in points
const cellPadding = 3

// Spacing around blocks in points
const (
	headingSpaceAfter   = 10
	paragraphSpaceAfter = 4
	labelSpace          = 6
)

type renderer struct {
	pdf  *fpdf.Fpdf
	cfg  Config
	text latin1Text

	imageLayer int
	textLayer  int
	images     int

	importer *gofpdi.Importer
	source   io.ReadSeeker
}

func newRenderer(cfg Config) (*renderer, error) {
	pdf, err := newPDF(cfg)
	if err != nil {
		return nil, err
	}
	r := &renderer{pdf: pdf, cfg: cfg, imageLayer: -1, textLayer: -1}
	if cfg.Layers {
		r.imageLayer = pdf.AddLayer(ImageLayerName, true)
		r.textLayer = pdf.AddLayer(TextLayerName, true)
	}
	if len(cfg.SourcePDF) > 0 {
		r.importer = gofpdi.NewImporter()
		r.source = bytes.NewReader(cfg.SourcePDF)
	}
	return r, nil
}

// render draws all blocks. Pages are delimited by PageBreak blocks.
func (r *renderer) render(blocks []hybrid.Block) error {
	r.pdf.AddPage()

	for pageNum, page := range splitPages(blocks) {
		if pageNum > 0 {
			r.pdf.AddPage()
		}
		backdrop := r.importer != nil && !hasImage(page)

		for _, block := range page {
			switch b := block.(type) {
			case *hybrid.Heading:
				r.writeText(b.Text, "B", r.cfg.Font.headingSize(b.Level), 0, headingSpaceAfter)
				if backdrop {
					if err := r.drawSourcePage(pageNum + 1); err != nil {
						return err
					}
					backdrop = false
				}
			case *hybrid.Image:
				if err := r.drawImage(b); err != nil {
					return err
				}
			case *hybrid.Table:
				r.drawTable(b)
			case *hybrid.Paragraph:
				r.writeText(b.Text, "", r.cfg.Font.Size, 0, paragraphSpaceAfter)
			}
		}

		if r.pdf.Err() {
			return fmt.Errorf("failed to render page %d: %w", pageNum+1, r.pdf.Error())
		}
	}
	return nil
}

// splitPages groups blocks into pages at each PageBreak
func splitPages(blocks []hybrid.Block) [][]hybrid.Block {
	var pages [][]hybrid.Block
	var current []hybrid.Block
	for _, b := range blocks {
		if b.Kind() == hybrid.KindPageBreak {
			pages = append(pages, current)
			current = nil
			continue
		}
		current = append(current, b)
	}
	if len(current) > 0 || len(pages) > 0 {
		pages = append(pages, current)
	}
	return pages
}

func hasImage(blocks []hybrid.Block) bool {
	for _, b := range blocks {
		if b.Kind() == hybrid.KindImage {
			return true
		}
	}
	return false
}

// inLayer draws fn on the given layer when layers are enabled
func (r *renderer) inLayer(layer int, fn func()) {
	if layer < 0 {
		fn()
		return
	}
	r.pdf.BeginLayer(layer)
	fn()
	r.pdf.EndLayer()
}

// printable returns the left edge, usable width and bottom edge of the page body
func (r *renderer) printable() (left, width, bottom float64) {
	pageW, pageH := r.pdf.GetPageSize()
	left, _, right, bottomMargin := r.pdf.GetMargins()
	return left, pageW - left - right, pageH - bottomMargin
}

// ensureSpace starts a new page when h does not fit below the current position.
// Content taller than a whole page is drawn from the top of the page and overflows.
func (r *renderer) ensureSpace(h float64) {
	_, top, _, _ := r.pdf.GetMargins()
	_, _, bottom := r.printable()
	if y := r.pdf.GetY(); y+h > bottom && y > top {
		r.pdf.AddPage()
	}
}

// writeText wraps text to the printable width and draws it line by line
func (r *renderer) writeText(text, style string, size, before, after float64) {
	left, width, _ := r.printable()
	r.pdf.SetFont(r.cfg.Font.Name, style, size)
	lh := r.cfg.Font.lineHeight(size)

	if before > 0 {
		r.pdf.Ln(before)
	}
	for _, line := range r.pdf.SplitText(r.text.prepare(text), width) {
		r.ensureSpace(lh)
		y := r.pdf.GetY()
		r.inLayer(r.textLayer, func() {
			r.pdf.SetXY(left, y)
			r.pdf.CellFormat(width, lh, r.text.encode(line), "", 0, "L", false, 0, "")
		})
		r.pdf.SetXY(left, y+lh)
	}
	if after > 0 {
		r.pdf.Ln(after)
	}
	r.pdf.SetFont(r.cfg.Font.Name, "", r.cfg.Font.Size)
}

// spacer leaves one empty body line
func (r *renderer) spacer() {
	r.pdf.Ln(r.cfg.Font.lineHeight(r.cfg.Font.Size))
}

// fit converts placed pixels to points and scales the box into the page body
func (r *renderer) fit(w, h float64) (float64, float64) {
	_, top, _, _ := r.pdf.GetMargins()
	_, width, bottom := r.printable()
	w, h = w*pointsPerPixel, h*pointsPerPixel
	if w > width {
		h = h * width / w
		w = width
	}
	if maxH := bottom - top; h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return w, h
}

// drawImage places a page image at the left margin below the current position
func (r *renderer) drawImage(img *hybrid.Image) error {
	imageType, data, err := imageForPDF(img)
	if err != nil {
		return err
	}

	r.images++
	name := fmt.Sprintf("page-image-%d", r.images)
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))

	w, h := r.fit(float64(img.Width), float64(img.Height))
	r.ensureSpace(h)
	left, _, _ := r.printable()
	y := r.pdf.GetY()
	r.inLayer(r.imageLayer, func() {
		r.pdf.ImageOptions(name, left, y, w, h, false, opts, 0, "")
	})
	r.pdf.SetY(y + h)
	r.spacer()
	return nil
}

// drawSourcePage imports a page of the source PDF and draws it like a page image
func (r *renderer) drawSourcePage(pageNum int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to import page %d of the source PDF: %v", pageNum, rec)
		}
	}()

	tpl := r.importer.ImportPageFromStream(r.pdf, &r.source, pageNum, "/MediaBox")
	box := r.importer.GetPageSizes()[pageNum]["/MediaBox"]
	if box["w"] <= 0 || box["h"] <= 0 {
		return fmt.Errorf("page %d of the source PDF has no media box", pageNum)
	}

	w, h := r.fit(float64(hybrid.MaxImageWidth), float64(hybrid.MaxImageWidth)*box["h"]/box["w"])
	r.ensureSpace(h)
	left, _, _ := r.printable()
	y := r.pdf.GetY()
	r.inLayer(r.imageLayer, func() {
		r.importer.UseImportedTemplate(r.pdf, tpl, left, y, w, h)
	})
	r.pdf.SetY(y + h)
	r.spacer()
	return nil
}

// drawTable draws the label and a bordered grid with equal column widths.
// Rows are never split; a row that does not fit starts a new page.
func (r *renderer) drawTable(t *hybrid.Table) {
	r.writeText(t.Label, "B", r.cfg.Font.Size, labelSpace, labelSpace)

	if len(t.Grid) > 0 && len(t.Grid[0]) > 0 {
		left, width, _ := r.printable()
		colW := width / float64(len(t.Grid[0]))
		lh := r.cfg.Font.lineHeight(r.cfg.Font.Size)

		for _, row := range t.Grid {
			cells := make([][]string, len(row))
			lines := 1
			for c, text := range row {
				cells[c] = r.pdf.SplitText(r.text.prepare(text), colW-2*cellPadding)
				lines = max(lines, len(cells[c]))
			}
			rowH := float64(lines)*lh + 2*cellPadding

			r.ensureSpace(rowH)
			y := r.pdf.GetY()
			r.inLayer(r.textLayer, func() {
				for c, cellLines := range cells {
					x := left + float64(c)*colW
					r.pdf.Rect(x, y, colW, rowH, "D")
					for i, line := range cellLines {
						r.pdf.SetXY(x+cellPadding, y+cellPadding+float64(i)*lh)
						r.pdf.CellFormat(colW-2*cellPadding, lh, r.text.encode(line), "", 0, "L", false, 0, "")
					}
				}
			})
			r.pdf.SetXY(left, y+rowH)
		}
	}
	r.spacer()
}
