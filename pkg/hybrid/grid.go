package hybrid

import "github.com/gardar/hybridoc/pkg/layout"

// MaxGridCells bounds the number of cells in one table grid. A table whose
// declared shape exceeds it gets an empty grid.
const MaxGridCells = 1 << 20

// BuildGrid reconstructs the dense RowCount x ColumnCount grid of a table.
// Every position starts as "". Cells inside the declared shape receive their
// normalized text, later cells overwriting earlier ones at the same
// coordinate; cells outside the shape are dropped.
func BuildGrid(t layout.Table) [][]string {
	rows, cols := gridShape(t)

	// One backing array for the whole grid, sliced into rows.
	backing := make([]string, rows*cols)
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = backing[r*cols : (r+1)*cols : (r+1)*cols]
	}

	for _, c := range t.Cells {
		if !inGrid(c, rows, cols) {
			continue
		}
		grid[c.RowIndex][c.ColumnIndex] = NormalizeText(c.Content)
	}
	return grid
}

func gridShape(t layout.Table) (rows, cols int) {
	rows, cols = max(t.RowCount, 0), max(t.ColumnCount, 0)
	if oversized(rows, cols) {
		return 0, 0
	}
	return rows, cols
}

// oversized reports rows*cols > MaxGridCells without computing the product
func oversized(rows, cols int) bool {
	return cols > 0 && rows > MaxGridCells/cols
}

func inGrid(c layout.Cell, rows, cols int) bool {
	return c.RowIndex >= 0 && c.RowIndex < rows && c.ColumnIndex >= 0 && c.ColumnIndex < cols
}

// checkTable reports cells BuildGrid drops and shapes that yield an empty grid
func checkTable(t layout.Table, tableIndex int, diags *diagnostics) {
	if oversized(max(t.RowCount, 0), max(t.ColumnCount, 0)) {
		diags.add(DiagTableTooLarge, 0, tableIndex, "table %d declares a %dx%d shape, more than %d cells",
			tableIndex, t.RowCount, t.ColumnCount, MaxGridCells)
		return
	}
	rows, cols := gridShape(t)
	if rows == 0 || cols == 0 {
		diags.add(DiagTableEmptyShape, 0, tableIndex, "table %d declares a %dx%d shape", tableIndex, t.RowCount, t.ColumnCount)
	}
	for _, c := range t.Cells {
		if !inGrid(c, rows, cols) {
			diags.add(DiagCellOutOfRange, 0, tableIndex,
				"table %d: cell (%d,%d) is outside the %dx%d grid", tableIndex, c.RowIndex, c.ColumnIndex, rows, cols)
		}
	}
}
