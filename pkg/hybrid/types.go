package hybrid

// BlockKind identifies the variant of a Block
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindHeading
	KindImage
	KindTable
	KindParagraph
	KindPageBreak
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "Heading"
	case KindImage:
		return "Image"
	case KindTable:
		return "Table"
	case KindParagraph:
		return "Paragraph"
	case KindPageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// Block is one element of the reconstructed document
type Block interface {
	Kind() BlockKind
}

// Document is the reconstructed document handed to a serializer
type Document struct {
	Blocks      []Block      // Ordered content
	Diagnostics []Diagnostic // Non-fatal problems found in the input
}

// Heading is a section heading such as "Page 3"
type Heading struct {
	Text  string
	Level int // 1-6
}

func (*Heading) Kind() BlockKind { return KindHeading }

// Image is a page raster placed at a computed size
type Image struct {
	Data   []byte // Encoded payload, passed through from the rasterizer
	Width  int    // Placed width in output units
	Height int    // Placed height in output units
	Format string // png, jpeg, ...
}

func (*Image) Kind() BlockKind { return KindImage }

// Table is a labeled dense table grid
type Table struct {
	Number int        // Document-wide sequence number, starting at 1
	Label  string     // "Table N"
	Grid   [][]string // RowCount x ColumnCount cell texts
}

func (*Table) Kind() BlockKind { return KindTable }

// Paragraph is one surviving text line
type Paragraph struct {
	Text string
}

func (*Paragraph) Kind() BlockKind { return KindParagraph }

// PageBreak separates two pages
type PageBreak struct{}

func (*PageBreak) Kind() BlockKind { return KindPageBreak }

// Count returns the number of blocks of the given kind
func (d *Document) Count(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

// Tables returns the table blocks in document order
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}
