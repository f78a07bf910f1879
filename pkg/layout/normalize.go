package layout

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// EnvelopeKey is the wrapper field the REST flavour of the analysis result nests its content under
const EnvelopeKey = "analyzeResult"

// Issue codes reported by the normalizer
const (
	IssueEmptyInput    = "empty_input"
	IssueInvalidJSON   = "invalid_json"
	IssueNotObject     = "not_object"
	IssueNotArray      = "not_array"
	IssueNegativeValue = "negative_value"
)

// Issue describes input the normalizer had to default or ignore.
// Issues never stop normalization.
type Issue struct {
	Code    string
	Message string
}

// Normalize converts a raw analysis result into the canonical model.
// Both the flat shape ({"pages": [...], "tables": [...]}) and the shape nested
// one level under EnvelopeKey are accepted. Anything else, including invalid
// JSON, null and non-object roots, yields an empty Result.
func Normalize(raw []byte) (*Result, []Issue) {
	n := &normalizer{}
	return n.run(raw), n.issues
}

// NormalizeValue normalizes an already decoded analysis result, such as a
// map[string]any or a struct with matching json tags.
func NormalizeValue(v any) (*Result, []Issue) {
	if v == nil {
		return Empty(), []Issue{{Code: IssueEmptyInput, Message: "analysis result is nil"}}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Empty(), []Issue{{Code: IssueInvalidJSON, Message: fmt.Sprintf("failed to encode analysis result: %v", err)}}
	}
	return Normalize(raw)
}

type normalizer struct {
	issues []Issue
}

func (n *normalizer) report(code, format string, args ...any) {
	n.issues = append(n.issues, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (n *normalizer) run(raw []byte) *Result {
	if len(raw) == 0 {
		n.report(IssueEmptyInput, "analysis result is empty")
		return Empty()
	}
	if !gjson.ValidBytes(raw) {
		n.report(IssueInvalidJSON, "analysis result is not valid JSON")
		return Empty()
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		n.report(IssueNotObject, "analysis result root is %s, not an object", root.Type)
		return Empty()
	}
	if nested := root.Get(EnvelopeKey); nested.IsObject() {
		root = nested
	}

	result := Empty()
	for i, p := range n.array(root.Get("pages"), "pages") {
		result.Pages = append(result.Pages, n.page(p, i+1))
	}
	for i, t := range n.array(root.Get("tables"), "tables") {
		result.Tables = append(result.Tables, n.table(t, i))
	}
	return result
}

// array returns the elements of v, or nothing when v is absent or not an array
func (n *normalizer) array(v gjson.Result, field string) []gjson.Result {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		n.report(IssueNotArray, "%s is %s, not an array", field, v.Type)
		return nil
	}
	return v.Array()
}

func (n *normalizer) page(v gjson.Result, pageNumber int) Page {
	lines := n.array(v.Get("lines"), fmt.Sprintf("pages[%d].lines", pageNumber-1))
	page := Page{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		page.Lines = append(page.Lines, Line{
			Content: text(l.Get("content")),
			Spans:   n.spans(l.Get("spans"), fmt.Sprintf("page %d line", pageNumber)),
		})
	}
	return page
}

func (n *normalizer) table(v gjson.Result, index int) Table {
	where := fmt.Sprintf("tables[%d]", index)
	t := Table{
		RowCount:    n.count(v.Get("rowCount"), where+".rowCount"),
		ColumnCount: n.count(v.Get("columnCount"), where+".columnCount"),
		Spans:       n.spans(v.Get("spans"), where),
	}

	cells := n.array(v.Get("cells"), where+".cells")
	t.Cells = make([]Cell, 0, len(cells))
	for _, c := range cells {
		// Cell indices are bounds-checked later; negative values are kept so they get dropped there.
		t.Cells = append(t.Cells, Cell{
			RowIndex:    integer(c.Get("rowIndex")),
			ColumnIndex: integer(c.Get("columnIndex")),
			Content:     text(c.Get("content")),
		})
	}

	for _, br := range n.array(v.Get("boundingRegions"), where+".boundingRegions") {
		t.BoundingRegions = append(t.BoundingRegions, BoundingRegion{PageNumber: integer(br.Get("pageNumber"))})
	}
	return t
}

func (n *normalizer) spans(v gjson.Result, where string) []Span {
	items := n.array(v, where+".spans")
	if len(items) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(items))
	for _, s := range items {
		spans = append(spans, Span{
			Offset: n.count(s.Get("offset"), where+" span offset"),
			Length: n.count(s.Get("length"), where+" span length"),
		})
	}
	return spans
}

// count reads a non-negative integer, clamping negative input to zero
func (n *normalizer) count(v gjson.Result, where string) int {
	i := integer(v)
	if i < 0 {
		n.report(IssueNegativeValue, "%s is negative (%d), using 0", where, i)
		return 0
	}
	return i
}

func integer(v gjson.Result) int {
	if v.Type != gjson.Number {
		return 0
	}
	return int(v.Int())
}

func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	default:
		return ""
	}
}
