package hybrid

import (
	"sort"

	"github.com/gardar/hybridoc/pkg/layout"
)

type interval struct {
	start, end int
}

// SpanSet is the union of all table spans of a document.
// It answers whether a line's text was already captured by a table.
type SpanSet struct {
	intervals []interval // sorted by start, pairwise non-overlapping
	stored    int
}

// NewSpanSet collects the spans of every table. Zero-length spans are left out.
func NewSpanSet(tables []layout.Table) *SpanSet {
	return newSpanSet(tables, nil)
}

func newSpanSet(tables []layout.Table, diags *diagnostics) *SpanSet {
	var all []interval
	for ti, t := range tables {
		for _, sp := range t.Spans {
			start, end := sp.Offset, sp.End()
			if end <= start {
				diags.add(DiagEmptySpan, 0, ti+1, "table %d has an empty span at offset %d", ti+1, sp.Offset)
				continue
			}
			all = append(all, interval{start, end})
		}
	}

	set := &SpanSet{stored: len(all)}
	if len(all) == 0 {
		return set
	}

	sort.Slice(all, func(i, j int) bool { return all[i].start < all[j].start })

	// Only strictly overlapping intervals are merged. Merging intervals that
	// merely touch would make an empty query at the shared boundary overlap.
	merged := []interval{all[0]}
	for _, iv := range all[1:] {
		last := &merged[len(merged)-1]
		if iv.start < last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	set.intervals = merged
	return set
}

// Len returns the number of table spans stored in the set
func (s *SpanSet) Len() int {
	if s == nil {
		return 0
	}
	return s.stored
}

// Overlaps reports whether [start, end) intersects any stored span,
// using the half-open rule a.start < b.end && b.start < a.end.
func (s *SpanSet) Overlaps(start, end int) bool {
	if s == nil || len(s.intervals) == 0 {
		return false
	}
	// First interval that ends after start; it is the only candidate.
	i := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].end > start })
	return i < len(s.intervals) && s.intervals[i].start < end
}

// OverlapsAny reports whether at least one of the spans overlaps the set
func (s *SpanSet) OverlapsAny(spans []layout.Span) bool {
	for _, sp := range spans {
		if s.Overlaps(sp.Offset, sp.End()) {
			return true
		}
	}
	return false
}
