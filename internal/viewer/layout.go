// ABOUTME: Screen layout for the viewer: image region above the status row
// ABOUTME: Fits an image's aspect ratio into cells and centres it

package viewer

import (
	"github.com/mauromedda/kgpview/pkg/tui/image"
	"github.com/mauromedda/kgpview/pkg/tui/kgp"
	"github.com/mauromedda/kgpview/pkg/tui/writer"
)

// ImageArea is the part of the screen images may use: everything except
// the bottom row, which belongs to the status HUD.
func ImageArea(screen writer.Size) kgp.Rect {
	if screen.Width <= 0 || screen.Height <= 1 {
		return kgp.Rect{}
	}
	return kgp.Rect{Width: screen.Width, Height: screen.Height - 1}
}

// Fit returns the centred placement of an image with pixel size dim inside
// ImageArea. Rows are capped at kgp.MaxRows, the tallest placeholder grid
// the row diacritics can address.
func Fit(screen writer.Size, dim image.Dimensions, cellAspect float64) kgp.Rect {
	region := ImageArea(screen)
	if region.Empty() {
		return kgp.Rect{}
	}
	cols, rows := image.FitCells(dim, region.Width, min(region.Height, kgp.MaxRows), cellAspect)
	if cols == 0 || rows == 0 {
		return kgp.Rect{}
	}
	return kgp.Rect{
		X:      region.X + (region.Width-cols)/2,
		Y:      region.Y + (region.Height-rows)/2,
		Width:  cols,
		Height: rows,
	}
}

// statusRow is the HUD row at the bottom of the screen.
func statusRow(screen writer.Size) kgp.Rect {
	if screen.Width <= 0 || screen.Height <= 0 {
		return kgp.Rect{}
	}
	return kgp.Rect{Y: screen.Height - 1, Width: screen.Width, Height: 1}
}

// union returns the bounding box of a and b. A nil or empty a yields b.
func union(a *kgp.Rect, b kgp.Rect) kgp.Rect {
	if a == nil || a.Empty() {
		return b
	}
	if b.Empty() {
		return *a
	}
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1 := max(a.X+a.Width, b.X+b.Width)
	y1 := max(a.Y+a.Height, b.Y+b.Height)
	return kgp.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
