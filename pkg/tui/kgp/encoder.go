// ABOUTME: Row encoders for erase, placeholder placement, and delete-all
// ABOUTME: One chunk per row so an interrupted task leaves the screen in a valid state

package kgp

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Encoder produces the byte chunks the terminal writer emits for image
// placement. It is stateless and safe for concurrent use.
type Encoder struct{}

// Erase returns one chunk per row of area. Each chunk moves the cursor to the
// start of the row and blanks Width cells with ECH, which also removes any
// image placeholders in those cells.
func (Encoder) Erase(area Rect) [][]byte {
	if area.Empty() {
		return nil
	}
	rows := make([][]byte, 0, area.Height)
	for r := range area.Height {
		row := make([]byte, 0, 24)
		row = appendCursor(row, area.Y+r, area.X)
		row = append(row, "\x1b["...)
		row = strconv.AppendInt(row, int64(area.Width), 10)
		row = append(row, 'X')
		rows = append(rows, row)
	}
	return rows
}

// Place returns one chunk per row of area that fills the row with Unicode
// placeholders for the image id. The id travels in the 24-bit foreground
// colour, so only the low 24 bits are significant. Rows beyond MaxRows are
// not addressable and are omitted.
func (Encoder) Place(area Rect, id uint32) [][]byte {
	if area.Empty() {
		return nil
	}
	height := min(area.Height, MaxRows)
	fg := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", (id>>16)&0xff, (id>>8)&0xff, id&0xff)

	rows := make([][]byte, 0, height)
	for r := range height {
		row := make([]byte, 0, 32+area.Width*8)
		row = appendCursor(row, area.Y+r, area.X)
		row = append(row, fg...)
		for c := range area.Width {
			row = utf8.AppendRune(row, placeholder)
			row = utf8.AppendRune(row, diacritics[r])
			// Later cells inherit row and column+1 from their left neighbour.
			if c == 0 {
				row = utf8.AppendRune(row, diacritics[0])
			}
		}
		row = append(row, "\x1b[39m"...)
		rows = append(rows, row)
	}
	return rows
}

// DeleteAll returns a single escape that deletes every image and placement
// the terminal holds, freeing their memory.
func (Encoder) DeleteAll(multiplexed bool) []byte {
	seq := []byte("\x1b_Ga=d,d=A,q=2\x1b\\")
	if multiplexed {
		return WrapTmux(seq)
	}
	return seq
}

// appendCursor appends a CUP sequence for the 0-based row and column.
func appendCursor(dst []byte, row, col int) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(row+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col+1), 10)
	return append(dst, 'H')
}
