package hybrid

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gardar/hybridoc/pkg/layout"
	"github.com/gardar/hybridoc/pkg/raster"
)

// Option configures Assemble
type Option func(*options)

type options struct {
	workers int
	issues  []layout.Issue
}

// WithWorkers composes up to n pages concurrently. Tables are renumbered in
// page order afterwards, so the result is the same as a sequential pass.
// n <= 1 keeps the sequential pass.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLayoutIssues carries the issues reported by layout.Normalize into the
// document diagnostics.
func WithLayoutIssues(issues []layout.Issue) Option {
	return func(o *options) { o.issues = append(o.issues, issues...) }
}

// Assemble reconstructs the whole document. Pages are composed in order with
// one table counter shared by all pages, and exactly one PageBreak separates
// consecutive pages. A nil or empty layout yields a Document without blocks.
func Assemble(res *layout.Result, images map[int]raster.Image, opts ...Option) *Document {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if res == nil {
		res = layout.Empty()
	}

	var diags diagnostics
	for _, issue := range o.issues {
		diags.add(DiagEnvelope, 0, 0, "%s: %s", issue.Code, issue.Message)
	}
	checkInputs(res, images, &diags)

	spans := newSpanSet(res.Tables, &diags)

	var pages [][]Block
	if o.workers > 1 && len(res.Pages) > 1 {
		pages = composeConcurrently(res, images, spans, o.workers)
	} else {
		pages = composeSequentially(res, images, spans)
	}

	doc := &Document{Blocks: []Block{}, Diagnostics: diags}
	for i, blocks := range pages {
		if i > 0 {
			doc.Blocks = append(doc.Blocks, &PageBreak{})
		}
		doc.Blocks = append(doc.Blocks, blocks...)
	}
	return doc
}

func composeSequentially(res *layout.Result, images map[int]raster.Image, spans *SpanSet) [][]Block {
	var counter TableCounter
	pages := make([][]Block, len(res.Pages))
	for i, page := range res.Pages {
		pageNumber := i + 1
		pages[i] = ComposePage(page, pageNumber, res.Tables, spans, imageFor(images, pageNumber), &counter)
	}
	return pages
}

// composeConcurrently gives each page its own counter and renumbers the
// tables in page order once every page is done.
func composeConcurrently(res *layout.Result, images map[int]raster.Image, spans *SpanSet, workers int) [][]Block {
	pages := make([][]Block, len(res.Pages))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, page := range res.Pages {
		i, page := i, page
		g.Go(func() error {
			pageNumber := i + 1
			var counter TableCounter
			pages[i] = ComposePage(page, pageNumber, res.Tables, spans, imageFor(images, pageNumber), &counter)
			return nil
		})
	}
	// ComposePage cannot fail, so Wait only joins the workers.
	_ = g.Wait()

	renumberTables(pages)
	return pages
}

// renumberTables assigns final document-wide numbers to table blocks in order
func renumberTables(pages [][]Block) {
	var counter TableCounter
	for _, blocks := range pages {
		for _, b := range blocks {
			if t, ok := b.(*Table); ok {
				t.Number = counter.Next()
				t.Label = TableLabel(t.Number)
			}
		}
	}
}

func imageFor(images map[int]raster.Image, pageNumber int) *raster.Image {
	img, ok := images[pageNumber]
	if !ok {
		return nil
	}
	return &img
}

// checkInputs records the diagnostics that do not depend on composition order
func checkInputs(res *layout.Result, images map[int]raster.Image, diags *diagnostics) {
	pageCount := len(res.Pages)

	for ti, t := range res.Tables {
		checkTable(t, ti+1, diags)

		placed := false
		for _, br := range t.BoundingRegions {
			if br.PageNumber >= 1 && br.PageNumber <= pageCount {
				placed = true
				break
			}
		}
		if !placed {
			diags.add(DiagTableNoPage, 0, ti+1, "table %d is not placed on any of the %d pages", ti+1, pageCount)
		}
	}

	pageNumbers := make([]int, 0, len(images))
	for n := range images {
		pageNumbers = append(pageNumbers, n)
	}
	sort.Ints(pageNumbers)
	for _, n := range pageNumbers {
		if n < 1 || n > pageCount {
			diags.add(DiagOrphanImage, n, 0, "image for page %d has no matching page", n)
			continue
		}
		if len(images[n].Data) == 0 {
			diags.add(DiagImageNoData, n, 0, "image for page %d has no data", n)
		}
	}
}
