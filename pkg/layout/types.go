package layout

// Result is the canonical layout-analysis model every source is normalized into.
// Pages are ordered; the page number of Pages[i] is always i+1.
type Result struct {
	Pages  []Page  // Pages in document order
	Tables []Table // Tables of the whole document
}

// Page holds the text lines of one page
type Page struct {
	Lines []Line // Lines in reading order
}

// Line is one line of recognized text with its positions in the source text stream
type Line struct {
	Content string // Raw line text, not normalized
	Spans   []Span // Character-offset spans, may be empty
}

// Span is the half-open interval [Offset, Offset+Length) in the source text stream
type Span struct {
	Offset int
	Length int
}

// End returns the exclusive end offset of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// Table is a table as reported by the analysis: a declared shape and a sparse cell list
type Table struct {
	RowCount        int              // Authoritative row count
	ColumnCount     int              // Authoritative column count
	Cells           []Cell           // Sparse, unordered cells
	Spans           []Span           // Spans of the table content in the source text
	BoundingRegions []BoundingRegion // Pages the table appears on
}

// OnPage reports whether any bounding region of the table names the given page
func (t Table) OnPage(pageNumber int) bool {
	for _, br := range t.BoundingRegions {
		if br.PageNumber == pageNumber {
			return true
		}
	}
	return false
}

// BoundingRegion associates a table with a page it visually appears on
type BoundingRegion struct {
	PageNumber int // 1-based page number
}

// Cell is one table cell at a grid coordinate
type Cell struct {
	RowIndex    int
	ColumnIndex int
	Content     string
}

// Empty returns a Result with no pages and no tables
func Empty() *Result {
	return &Result{
		Pages:  []Page{},
		Tables: []Table{},
	}
}
