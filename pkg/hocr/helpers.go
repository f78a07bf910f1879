package hocr

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/hybridoc/pkg/layout"
)

// lineClasses are the hOCR classes treated as a line of text
var lineClasses = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}

// ToLayout converts a parsed hOCR document into the layout model.
// Lines without any text are dropped.
func ToLayout(doc *Document) *layout.Result {
	result := layout.Empty()
	if doc == nil {
		return result
	}
	for _, page := range doc.Pages {
		lines := make([]layout.Line, 0, len(page.Lines))
		for _, line := range page.Lines {
			content := line.Content()
			if strings.TrimSpace(content) == "" {
				continue
			}
			lines = append(lines, layout.Line{Content: content})
		}
		result.Pages = append(result.Pages, layout.Page{Lines: lines})
	}
	return result
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title has no complete bbox property
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	return &BoundingBox{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
}

// hasClass reports whether the class attribute of n contains the given class token
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// lineClass returns the line-level class of n, or "" if n is not a line
func lineClass(n *html.Node) string {
	for _, class := range lineClasses {
		if hasClass(n, class) {
			return class
		}
	}
	return ""
}

// extractTextContent gets all text from a node and its children, whitespace collapsed
func extractTextContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			parts = append(parts, strings.Fields(node.Data)...)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return joinWords(parts)
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
