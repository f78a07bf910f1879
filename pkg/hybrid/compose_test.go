package hybrid

import (
	"testing"

	"github.com/gardar/hybridoc/pkg/layout"
	"github.com/gardar/hybridoc/pkg/raster"
)

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind()
	}
	return out
}

func equalKinds(a, b []BlockKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func line(content string, spans ...layout.Span) layout.Line {
	return layout.Line{Content: content, Spans: spans}
}

func TestComposePageOrder(t *testing.T) {
	tables := []layout.Table{
		{RowCount: 1, ColumnCount: 1, BoundingRegions: []layout.BoundingRegion{{PageNumber: 1}}},
		{RowCount: 1, ColumnCount: 1, BoundingRegions: []layout.BoundingRegion{{PageNumber: 2}}},
		{RowCount: 1, ColumnCount: 1, BoundingRegions: []layout.BoundingRegion{{PageNumber: 1}}},
	}
	page := layout.Page{Lines: []layout.Line{line("first"), line("second")}}
	img := &raster.Image{PageNumber: 1, Width: 1200, Height: 600, Data: []byte{1}, Format: "png"}

	var counter TableCounter
	blocks := ComposePage(page, 1, tables, NewSpanSet(tables), img, &counter)

	want := []BlockKind{KindHeading, KindImage, KindTable, KindTable, KindParagraph, KindParagraph}
	if got := kinds(blocks); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}

	heading := blocks[0].(*Heading)
	if heading.Text != "Page 1" || heading.Level != PageHeadingLevel {
		t.Errorf("heading = %+v", heading)
	}
	image := blocks[1].(*Image)
	if image.Width != 600 || image.Height != 300 || image.Format != "png" {
		t.Errorf("image = %+v", image)
	}
	if blocks[2].(*Table).Label != "Table 1" || blocks[3].(*Table).Label != "Table 2" {
		t.Errorf("labels = %q, %q", blocks[2].(*Table).Label, blocks[3].(*Table).Label)
	}
	if blocks[4].(*Paragraph).Text != "first" || blocks[5].(*Paragraph).Text != "second" {
		t.Errorf("paragraphs out of order")
	}
	if counter.Count() != 2 {
		t.Errorf("counter = %d, want 2", counter.Count())
	}
}

func TestComposePageImage(t *testing.T) {
	page := layout.Page{}

	tests := []struct {
		name string
		img  *raster.Image
		want []BlockKind
	}{
		{"no image", nil, []BlockKind{KindHeading}},
		{"image without data", &raster.Image{Width: 100, Height: 100}, []BlockKind{KindHeading}},
		{"image", &raster.Image{Width: 100, Height: 100, Data: []byte{0}}, []BlockKind{KindHeading, KindImage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counter TableCounter
			blocks := ComposePage(page, 3, nil, NewSpanSet(nil), tt.img, &counter)
			if got := kinds(blocks); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposePageLineFiltering(t *testing.T) {
	tables := []layout.Table{{
		RowCount:        1,
		ColumnCount:     1,
		Spans:           []layout.Span{{Offset: 10, Length: 10}},
		BoundingRegions: []layout.BoundingRegion{{PageNumber: 5}}, // not this page
	}}
	page := layout.Page{Lines: []layout.Line{
		line("inside table", layout.Span{Offset: 15, Length: 3}),
		line("partial overlap", layout.Span{Offset: 0, Length: 2}, layout.Span{Offset: 19, Length: 5}),
		line("before table", layout.Span{Offset: 0, Length: 10}),
		line("after table", layout.Span{Offset: 20, Length: 4}),
		line("no spans"),
		line("   "),
		line("  spaced   out  "),
	}}

	var counter TableCounter
	blocks := ComposePage(page, 1, tables, NewSpanSet(tables), nil, &counter)

	var got []string
	for _, b := range blocks {
		if p, ok := b.(*Paragraph); ok {
			got = append(got, p.Text)
		}
	}
	want := []string{"before table", "after table", "no spans", "spaced out"}
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
	if counter.Count() != 0 {
		t.Errorf("table placed on another page must not be counted, counter = %d", counter.Count())
	}
}

func TestComposePageKeepsLinesWhenNoTables(t *testing.T) {
	page := layout.Page{Lines: []layout.Line{line("a", layout.Span{Offset: 0, Length: 1})}}
	var counter TableCounter
	blocks := ComposePage(page, 1, nil, NewSpanSet(nil), nil, &counter)
	if got := kinds(blocks); !equalKinds(got, []BlockKind{KindHeading, KindParagraph}) {
		t.Errorf("kinds = %v", got)
	}
}

func TestBlockKindString(t *testing.T) {
	tests := map[BlockKind]string{
		KindHeading:    "Heading",
		KindImage:      "Image",
		KindTable:      "Table",
		KindParagraph:  "Paragraph",
		KindPageBreak:  "PageBreak",
		KindUnknown:    "Unknown",
		BlockKind(100): "Unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("BlockKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
