package gdocai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/hybridoc/pkg/layout"
)

// LayoutFromProto converts a Document AI response into the canonical layout model.
//
// Pages keep the order of the response, so the page number of a page is its
// position. Lines carry their text anchor segments as spans. Tables are read
// row by row, header rows first, and cells spanning several rows or columns
// are placed with an occupancy grid so later cells shift past them.
func LayoutFromProto(doc *documentaipb.Document) *layout.Result {
	result := layout.Empty()
	if doc == nil {
		return result
	}

	runes := []rune(doc.GetText())

	for i, page := range doc.GetPages() {
		pageNum := i + 1

		lines := make([]layout.Line, 0, len(page.GetLines()))
		for _, line := range page.GetLines() {
			lines = append(lines, layout.Line{
				Content: textFromLayout(line.GetLayout(), runes),
				Spans:   spansFromLayout(line.GetLayout(), len(runes)),
			})
		}
		result.Pages = append(result.Pages, layout.Page{Lines: lines})

		for _, table := range page.GetTables() {
			result.Tables = append(result.Tables, tableFromProto(table, pageNum, runes))
		}
	}

	return result
}

// tableFromProto lays out the header and body rows of a table on one page
func tableFromProto(table *documentaipb.Document_Page_Table, pageNum int, runes []rune) layout.Table {
	rows := make([]*documentaipb.Document_Page_Table_TableRow, 0, len(table.GetHeaderRows())+len(table.GetBodyRows()))
	rows = append(rows, table.GetHeaderRows()...)
	rows = append(rows, table.GetBodyRows()...)

	occupied := make(map[[2]int]bool)
	out := layout.Table{
		RowCount:        len(rows),
		Spans:           spansFromLayout(table.GetLayout(), len(runes)),
		BoundingRegions: []layout.BoundingRegion{{PageNumber: pageNum}},
	}

	for r, row := range rows {
		col := 0
		for _, cell := range row.GetCells() {
			for occupied[[2]int{r, col}] {
				col++
			}

			rowSpan := max(int(cell.GetRowSpan()), 1)
			colSpan := max(int(cell.GetColSpan()), 1)
			for dr := 0; dr < rowSpan; dr++ {
				for dc := 0; dc < colSpan; dc++ {
					occupied[[2]int{r + dr, col + dc}] = true
				}
			}

			out.Cells = append(out.Cells, layout.Cell{
				RowIndex:    r,
				ColumnIndex: col,
				Content:     textFromLayout(cell.GetLayout(), runes),
			})

			out.RowCount = max(out.RowCount, r+rowSpan)
			out.ColumnCount = max(out.ColumnCount, col+colSpan)
			col += colSpan
		}
	}

	return out
}
