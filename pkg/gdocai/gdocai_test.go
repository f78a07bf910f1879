package gdocai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gardar/hybridoc/pkg/layout"
)

func anchor(segs ...[2]int64) *documentaipb.Document_Page_Layout {
	ta := &documentaipb.Document_TextAnchor{}
	for _, s := range segs {
		ta.TextSegments = append(ta.TextSegments, &documentaipb.Document_TextAnchor_TextSegment{StartIndex: s[0], EndIndex: s[1]})
	}
	return &documentaipb.Document_Page_Layout{TextAnchor: ta}
}

func cell(start, end int64, rowSpan, colSpan int32) *documentaipb.Document_Page_Table_TableCell {
	return &documentaipb.Document_Page_Table_TableCell{Layout: anchor([2]int64{start, end}), RowSpan: rowSpan, ColSpan: colSpan}
}

func row(cells ...*documentaipb.Document_Page_Table_TableCell) *documentaipb.Document_Page_Table_TableRow {
	return &documentaipb.Document_Page_Table_TableRow{Cells: cells}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLayoutFromProto(t *testing.T) {
	text := "Invoice\nQty Price\n3 9.99\nThanks\n"
	doc := &documentaipb.Document{
		Text: text,
		Pages: []*documentaipb.Document_Page{
			{
				PageNumber: 1,
				Lines: []*documentaipb.Document_Page_Line{
					{Layout: anchor([2]int64{0, 8})},
					{Layout: anchor([2]int64{8, 18})},
					{Layout: anchor([2]int64{18, 25})},
				},
				Tables: []*documentaipb.Document_Page_Table{{
					Layout:     anchor([2]int64{8, 25}),
					HeaderRows: []*documentaipb.Document_Page_Table_TableRow{row(cell(8, 11, 1, 1), cell(12, 17, 1, 1))},
					BodyRows:   []*documentaipb.Document_Page_Table_TableRow{row(cell(18, 19, 1, 1), cell(20, 24, 1, 1))},
				}},
			},
			{
				PageNumber: 2,
				Lines:      []*documentaipb.Document_Page_Line{{Layout: anchor([2]int64{25, 32})}},
			},
		},
	}

	res := LayoutFromProto(doc)

	if len(res.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(res.Pages))
	}
	if got := res.Pages[0].Lines[0]; got.Content != "Invoice\n" || !reflect.DeepEqual(got.Spans, []layout.Span{{Offset: 0, Length: 8}}) {
		t.Errorf("first line = %+v", got)
	}
	if got := res.Pages[1].Lines[0].Content; got != "Thanks\n" {
		t.Errorf("page 2 line = %q", got)
	}

	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	table := res.Tables[0]
	if table.RowCount != 2 || table.ColumnCount != 2 {
		t.Errorf("shape = %dx%d, want 2x2", table.RowCount, table.ColumnCount)
	}
	if !table.OnPage(1) || table.OnPage(2) {
		t.Errorf("bounding regions = %+v", table.BoundingRegions)
	}
	if !reflect.DeepEqual(table.Spans, []layout.Span{{Offset: 8, Length: 17}}) {
		t.Errorf("table spans = %+v", table.Spans)
	}
	wantCells := []layout.Cell{
		{RowIndex: 0, ColumnIndex: 0, Content: "Qty"},
		{RowIndex: 0, ColumnIndex: 1, Content: "Price"},
		{RowIndex: 1, ColumnIndex: 0, Content: "3"},
		{RowIndex: 1, ColumnIndex: 1, Content: "9.99"},
	}
	if !reflect.DeepEqual(table.Cells, wantCells) {
		t.Errorf("cells = %+v", table.Cells)
	}
}

func TestLayoutFromProtoSpannedCells(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "ABCDEFG",
		Pages: []*documentaipb.Document_Page{{
			Tables: []*documentaipb.Document_Page_Table{{
				BodyRows: []*documentaipb.Document_Page_Table_TableRow{
					// A spans two rows, B spans two columns
					row(cell(0, 1, 2, 1), cell(1, 2, 1, 2)),
					row(cell(2, 3, 1, 1), cell(3, 4, 1, 1)),
				},
			}},
		}},
	}

	table := LayoutFromProto(doc).Tables[0]

	want := []layout.Cell{
		{RowIndex: 0, ColumnIndex: 0, Content: "A"},
		{RowIndex: 0, ColumnIndex: 1, Content: "B"},
		{RowIndex: 1, ColumnIndex: 1, Content: "C"},
		{RowIndex: 1, ColumnIndex: 2, Content: "D"},
	}
	if !reflect.DeepEqual(table.Cells, want) {
		t.Errorf("cells = %+v", table.Cells)
	}
	if table.RowCount != 2 || table.ColumnCount != 3 {
		t.Errorf("shape = %dx%d, want 2x3", table.RowCount, table.ColumnCount)
	}
}

func TestLayoutFromProtoNil(t *testing.T) {
	res := LayoutFromProto(nil)
	if res == nil || len(res.Pages) != 0 || len(res.Tables) != 0 {
		t.Errorf("LayoutFromProto(nil) = %+v", res)
	}
}

func TestTextFromLayoutClamps(t *testing.T) {
	runes := []rune("héllo")
	tests := []struct {
		name  string
		seg   [2]int64
		want  string
		spans []layout.Span
	}{
		{"whole", [2]int64{0, 5}, "héllo", []layout.Span{{Offset: 0, Length: 5}}},
		{"past end", [2]int64{3, 99}, "lo", []layout.Span{{Offset: 3, Length: 2}}},
		{"inverted", [2]int64{4, 2}, "", nil},
		{"negative start", [2]int64{-3, 2}, "hé", []layout.Span{{Offset: 0, Length: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := anchor(tt.seg)
			if got := textFromLayout(l, runes); got != tt.want {
				t.Errorf("textFromLayout = %q, want %q", got, tt.want)
			}
			if got := spansFromLayout(l, len(runes)); !reflect.DeepEqual(got, tt.spans) {
				t.Errorf("spansFromLayout = %+v, want %+v", got, tt.spans)
			}
		})
	}
	if textFromLayout(nil, runes) != "" || spansFromLayout(nil, len(runes)) != nil {
		t.Error("nil layout must yield nothing")
	}
}

func TestPageImages(t *testing.T) {
	data := pngBytes(t, 40, 20)
	doc := &documentaipb.Document{Pages: []*documentaipb.Document_Page{
		{Image: &documentaipb.Document_Page_Image{Content: data, MimeType: "image/png", Width: 1200, Height: 1600}},
		{},
		{Image: &documentaipb.Document_Page_Image{Content: data}},
	}}

	images := PageImages(doc)

	if len(images) != 2 {
		t.Fatalf("images = %d, want 2", len(images))
	}
	if img := images[1]; img.Width != 1200 || img.Height != 1600 || img.Format != "png" {
		t.Errorf("page 1 image = %vx%v %s", img.Width, img.Height, img.Format)
	}
	// Missing metadata is read from the payload
	if img := images[3]; img.Width != 40 || img.Height != 20 || img.Format != "png" || img.PageNumber != 3 {
		t.Errorf("page 3 image = %+v", img)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.ProjectID = "p"
	valid.ProcessorID = "abc"
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := valid.processorName(); got != "projects/p/locations/us/processors/abc" {
		t.Errorf("processorName() = %q", got)
	}
	if got := valid.endpoint(); got != "us-documentai.googleapis.com:443" {
		t.Errorf("endpoint() = %q", got)
	}

	for name, cfg := range map[string]*Config{
		"nil":          nil,
		"no project":   {Location: "us", ProcessorID: "abc"},
		"no location":  {ProjectID: "p", ProcessorID: "abc"},
		"no processor": {ProjectID: "p", Location: "us"},
	} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"success", []error{nil}, 1, false},
		{"transient then success", []error{status.Error(codes.Unavailable, "busy"), nil}, 2, false},
		{"wrapped transient", []error{fmt.Errorf("call: %w", status.Error(codes.ResourceExhausted, "quota")), nil}, 2, false},
		{"permanent", []error{status.Error(codes.InvalidArgument, "bad pdf")}, 1, true},
		{"plain error", []error{errors.New("boom")}, 1, true},
		{"attempts exhausted", []error{
			status.Error(codes.DeadlineExceeded, "slow"),
			status.Error(codes.Aborted, "again"),
			status.Error(codes.Unavailable, "still"),
		}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MaxAttempts: 3}
			calls := 0
			err := withRetry(context.Background(), cfg, func() error {
				e := tt.errs[calls]
				calls++
				return e
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(&documentaipb.Document{Text: "hello"})
	if err != nil {
		t.Fatalf("ToJSON(proto) error: %v", err)
	}
	if !strings.Contains(out, `"text"`) || !strings.Contains(out, "hello") {
		t.Errorf("ToJSON(proto) = %s", out)
	}

	out, err = ToJSON(map[string]int{"pages": 2})
	if err != nil {
		t.Fatalf("ToJSON(map) error: %v", err)
	}
	if out != "{\n  \"pages\": 2\n}" {
		t.Errorf("ToJSON(map) = %q", out)
	}
}
