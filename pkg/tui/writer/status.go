// ABOUTME: Bottom-row status HUD rendering with a coloured indicator glyph
// ABOUTME: Text is clipped on a UTF-8 boundary to the columns left after the glyph

package writer

import (
	"fmt"
	"io"
)

const (
	sgrReset     = "\x1b[0m"
	sgrStatusBar = "\x1b[37;100m" // white on bright black
	sgrGreen     = "\x1b[32m"
	sgrRed       = "\x1b[31m"
	glyph        = "●"
)

// renderStatus draws text on the last row of a terminal of the given size.
func renderStatus(w io.Writer, text string, size Size, ind Indicator) error {
	if size.Width <= 0 || size.Height <= 0 {
		return nil
	}

	row := size.Height
	// Two columns for "● ".
	clipped := clipUTF8(text, max(size.Width-2, 0))

	// Background before ECH so the cleared cells inherit it.
	if _, err := fmt.Fprintf(w, "\x1b[%d;1H%s\x1b[%dX", row, sgrStatusBar, size.Width); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\x1b[%d;1H", row); err != nil {
		return err
	}
	colour := sgrRed
	if ind == Ready {
		colour = sgrGreen
	}
	if _, err := io.WriteString(w, colour+glyph); err != nil {
		return err
	}
	_, err := io.WriteString(w, sgrStatusBar+" "+clipped+sgrReset)
	return err
}

// clipUTF8 returns the longest prefix of s that is at most maxBytes long and
// does not end inside a multi-byte sequence.
func clipUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	end := 0
	for i := range s {
		if i > maxBytes {
			break
		}
		end = i
	}
	return s[:end]
}
