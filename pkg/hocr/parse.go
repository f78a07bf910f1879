package hocr

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/gardar/hybridoc/pkg/layout"
)

var charsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?([a-z0-9_:.-]+)`)

// Parse converts raw hOCR data into the layout model
func Parse(data []byte) (*layout.Result, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return ToLayout(doc), nil
}

// ParseDocument converts raw hOCR data into a structured Document.
// It fails only when the data contains no 'ocr_page' element.
func ParseDocument(data []byte) (*Document, error) {
	decoded, err := decodeCharset(data)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	result := &Document{Metadata: make(map[string]string)}
	extractDocumentMeta(result, root)

	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			result.Pages = append(result.Pages, processPage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(root)

	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// decodeCharset converts hOCR files declaring a legacy charset to UTF-8.
// Labels resolve the way browsers resolve them, so latin1 reads as
// windows-1252. Unknown or Unicode charsets are passed through unchanged.
func decodeCharset(data []byte) ([]byte, error) {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := charsetPattern.FindSubmatch(head)
	if m == nil {
		return data, nil
	}

	name := strings.ToLower(string(m[1]))
	enc, err := htmlindex.Get(name)
	if err != nil {
		return data, nil
	}
	if canonical, _ := htmlindex.Name(enc); strings.HasPrefix(canonical, "utf-") {
		return data, nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return decoded, nil
}

// extractDocumentMeta extracts document-level metadata from the html and head elements
func extractDocumentMeta(result *Document, root *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				result.Title = extractTextContent(n)
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if strings.HasPrefix(name, "ocr-") && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// processPage extracts page information and its line-level elements
func processPage(n *html.Node) Page {
	page := Page{ID: getAttrVal(n, "id")}

	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		page.BBox = *bbox
	}
	props := ParseTitle(title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(strings.Join(image, " "), `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	var collectLines func(*html.Node)
	collectLines = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if class := lineClass(node); class != "" {
				page.Lines = append(page.Lines, processLine(node, class))
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collectLines(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(c)
	}

	return page
}

// processLine extracts a line and the text of its words
func processLine(n *html.Node, class string) Line {
	line := Line{ID: getAttrVal(n, "id"), Class: class}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		line.BBox = *bbox
	}

	var extractWords func(*html.Node)
	extractWords = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, "ocrx_word") {
			if text := extractTextContent(node); text != "" {
				line.Words = append(line.Words, text)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extractWords(c)
		}
	}
	extractWords(n)

	if len(line.Words) == 0 {
		line.Text = extractTextContent(n)
	}
	return line
}
