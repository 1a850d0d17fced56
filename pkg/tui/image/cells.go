// ABOUTME: Maps an image's pixel size onto a terminal cell rectangle
// ABOUTME: Preserves aspect ratio given the width/height ratio of one cell

package image

// DefaultCellAspect is the typical width/height ratio of a terminal cell.
const DefaultCellAspect = 0.5

// FitCells returns the largest cols x rows footprint within maxCols x maxRows
// that keeps the image's aspect ratio. cellAspect is cell width divided by
// cell height; values <= 0 fall back to DefaultCellAspect. Both results are
// at least 1 when the bounds allow it, and 0 when they do not.
func FitCells(dim Dimensions, maxCols, maxRows int, cellAspect float64) (cols, rows int) {
	if maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	if dim.Width <= 0 || dim.Height <= 0 {
		return maxCols, maxRows
	}
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}

	// Image aspect measured in cells: columns per row.
	ratio := float64(dim.Width) / float64(dim.Height) / cellAspect

	cols = maxCols
	rows = int(float64(cols)/ratio + 0.5)
	if rows > maxRows {
		rows = maxRows
		cols = int(float64(rows)*ratio + 0.5)
	}
	return min(max(cols, 1), maxCols), min(max(rows, 1), maxRows)
}
