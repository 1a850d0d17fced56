// ABOUTME: Rect describes a placement rectangle in terminal character cells
// ABOUTME: Coordinates are 0-based; row encoders convert them to 1-based CSI positions

package kgp

import "fmt"

// Rect is a rectangle of terminal cells. X is the column and Y the row of
// the top-left cell, both 0-based.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.Width, r.Height, r.X, r.Y)
}
