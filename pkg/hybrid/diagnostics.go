package hybrid

import "fmt"

// Diagnostic codes
const (
	DiagEnvelope        = "envelope"          // Problem reported while normalizing the analysis result
	DiagCellOutOfRange  = "cell_out_of_range" // Cell coordinates outside the declared table shape
	DiagEmptySpan       = "empty_span"        // Zero-length table span left out of deduplication
	DiagOrphanImage     = "orphan_image"      // Image keyed to a page the layout does not have
	DiagImageNoData     = "image_no_data"     // Image record without a payload
	DiagTableNoPage     = "table_no_page"     // Table whose bounding regions name no existing page
	DiagTableEmptyShape = "table_empty_shape" // Table with zero rows or columns
	DiagTableTooLarge   = "table_too_large"   // Table shape above MaxGridCells, rendered empty
)

// Diagnostic is a non-fatal problem found in the input.
// Page and Table are 0 when not applicable; Table is the 1-based index into the
// layout's table list, not the rendered table number.
type Diagnostic struct {
	Code    string
	Page    int
	Table   int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

type diagnostics []Diagnostic

func (d *diagnostics) add(code string, page, table int, format string, args ...any) {
	if d == nil {
		return
	}
	*d = append(*d, Diagnostic{
		Code:    code,
		Page:    page,
		Table:   table,
		Message: fmt.Sprintf(format, args...),
	})
}
