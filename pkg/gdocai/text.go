package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/hybridoc/pkg/layout"
)

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(l *documentaipb.Document_Page_Layout, runes []rune) string {
	if l == nil || l.TextAnchor == nil {
		return ""
	}
	result := strings.Builder{}
	for _, seg := range l.TextAnchor.TextSegments {
		start, end := clampSegment(seg, len(runes))
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// spansFromLayout converts text anchor segments into spans over the document text.
// Segments are clamped to the text; empty ones are dropped.
func spansFromLayout(l *documentaipb.Document_Page_Layout, textLen int) []layout.Span {
	if l == nil || l.TextAnchor == nil {
		return nil
	}
	var spans []layout.Span
	for _, seg := range l.TextAnchor.TextSegments {
		start, end := clampSegment(seg, textLen)
		if end <= start {
			continue
		}
		spans = append(spans, layout.Span{Offset: start, Length: end - start})
	}
	return spans
}

// clampSegment bounds a text segment to [0, textLen] with start <= end
func clampSegment(seg *documentaipb.Document_TextAnchor_TextSegment, textLen int) (int, int) {
	start := int(seg.GetStartIndex())
	end := int(seg.GetEndIndex())
	if start < 0 {
		start = 0
	}
	if end > textLen {
		end = textLen
	}
	if start > end {
		start = end
	}
	return start, end
}
