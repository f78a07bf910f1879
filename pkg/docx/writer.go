package docx

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	godocxpkg "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"

	"github.com/gardar/hybridoc/pkg/hybrid"
	"github.com/gardar/hybridoc/pkg/raster"
)

//go:embed templates/core.xml.tmpl
var templateFS embed.FS

var coreTemplate = template.Must(template.New("core.xml.tmpl").Funcs(template.FuncMap{
	"xml": escapeXML,
}).ParseFS(templateFS, "templates/core.xml.tmpl"))

// corePart is the package path of the core properties
const corePart = "docProps/core.xml"

// mediaFormats are the image formats stored as-is; others are converted to PNG
var mediaFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// Encode renders the document into an in-memory .docx package
func Encode(doc *hybrid.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the document as a .docx package to w
func Write(w io.Writer, doc *hybrid.Document, opts Options) error {
	rd, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create docx document: %w", err)
	}

	b := &builder{rd: rd}
	defer b.cleanup()

	if doc != nil {
		for _, block := range doc.Blocks {
			if err := b.add(block); err != nil {
				return err
			}
		}
	}

	setPage(rd, opts.Page)
	dedupeDefaults(rd)

	core, err := renderCore(opts)
	if err != nil {
		return err
	}
	rd.FileMap.Store(corePart, core)

	if err := rd.Write(w); err != nil {
		return fmt.Errorf("failed to write docx package: %w", err)
	}
	return nil
}

// builder appends blocks to a godocx document.
// Image payloads are staged in a temporary directory because godocx reads
// pictures from files.
type builder struct {
	rd       *godocxpkg.RootDoc
	mediaDir string
	images   int
}

func (b *builder) add(block hybrid.Block) error {
	switch v := block.(type) {
	case *hybrid.Heading:
		if _, err := b.rd.AddHeading(v.Text, headingLevel(v.Level)); err != nil {
			return fmt.Errorf("failed to add heading: %w", err)
		}

	case *hybrid.Paragraph:
		b.rd.AddParagraph(v.Text)

	case *hybrid.PageBreak:
		b.rd.AddPageBreak()

	case *hybrid.Image:
		if err := b.addImage(v); err != nil {
			return err
		}
		b.rd.AddEmptyParagraph()

	case *hybrid.Table:
		b.rd.AddEmptyParagraph().AddText(v.Label).Bold(true)
		if len(v.Grid) > 0 && len(v.Grid[0]) > 0 {
			tbl := b.rd.AddTable()
			tbl.Style(tableStyle)
			for _, row := range v.Grid {
				r := tbl.AddRow()
				for _, cell := range row {
					r.AddCell().AddParagraph(cell)
				}
			}
		}
		b.rd.AddEmptyParagraph()
	}
	return nil
}

func (b *builder) addImage(img *hybrid.Image) error {
	format, data, err := mediaPayload(img)
	if err != nil {
		return err
	}

	if b.mediaDir == "" {
		dir, err := os.MkdirTemp("", "hybridoc-docx-")
		if err != nil {
			return fmt.Errorf("failed to create media directory: %w", err)
		}
		b.mediaDir = dir
	}
	b.images++
	path := filepath.Join(b.mediaDir, fmt.Sprintf("image%d.%s", b.images, format))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to stage image: %w", err)
	}

	width := units.Inch(float64(img.Width) / pixelsPerInch)
	height := units.Inch(float64(img.Height) / pixelsPerInch)
	if _, err := b.rd.AddPicture(path, width, height); err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return nil
}

func (b *builder) cleanup() {
	if b.mediaDir != "" {
		_ = os.RemoveAll(b.mediaDir)
	}
}

// mediaPayload returns the stored format and bytes of an image block,
// sniffing the payload when the format is unset and converting formats
// Word cannot embed to PNG.
func mediaPayload(img *hybrid.Image) (string, []byte, error) {
	if mediaFormats[img.Format] {
		return img.Format, img.Data, nil
	}
	decoded, err := raster.Decode(0, img.Data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to detect image format: %w", err)
	}
	if mediaFormats[decoded.Format] {
		return decoded.Format, img.Data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s image: %w", decoded.Format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return "", nil, fmt.Errorf("failed to convert image to png: %w", err)
	}
	return "png", buf.Bytes(), nil
}

// headingLevel clamps a heading level to the Heading1-9 styles
func headingLevel(level int) uint {
	switch {
	case level < 1:
		return 1
	case level > 9:
		return 9
	default:
		return uint(level)
	}
}

// setPage sets the section page size and one inch margins
func setPage(rd *godocxpkg.RootDoc, page PageSize) {
	if page.Width <= 0 || page.Height <= 0 {
		page = PageA4
	}
	body := rd.Document.Body
	if body == nil {
		return
	}
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	w, h := uint64(page.Width), uint64(page.Height)
	margin := pageMargin
	body.SectPr.PageSize = &ctypes.PageSize{Width: &w, Height: &h}
	body.SectPr.PageMargin = &ctypes.PageMargin{Top: &margin, Right: &margin, Bottom: &margin, Left: &margin}
}

// dedupeDefaults drops repeated content type defaults, which godocx adds
// once per picture
func dedupeDefaults(rd *godocxpkg.RootDoc) {
	seen := make(map[string]bool)
	defaults := rd.ContentType.Default[:0]
	for _, d := range rd.ContentType.Default {
		if seen[d.Extension] {
			continue
		}
		seen[d.Extension] = true
		defaults = append(defaults, d)
	}
	rd.ContentType.Default = defaults
}

// renderCore renders docProps/core.xml
func renderCore(opts Options) ([]byte, error) {
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	view := struct {
		Title, Creator, Created string
	}{opts.Title, opts.Creator, created.UTC().Format(time.RFC3339)}

	var buf bytes.Buffer
	if err := coreTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render core properties: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeXML escapes text for element content and attribute values.
// Characters not allowed in XML are replaced with U+FFFD.
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
