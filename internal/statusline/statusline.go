// ABOUTME: Builds the one-line HUD text shown under the image
// ABOUTME: NFC-normalizes and sanitizes file names, then fits the line to a width and byte budget

package statusline

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/kgpview/pkg/tui/width"
)

// Format selects how much the HUD shows.
type Format string

const (
	FormatFull Format = "full" // counter, name, pixel size, state
	FormatName Format = "name" // name and state only
)

// State is the lifecycle of the image the HUD describes.
type State int

const (
	Loading State = iota
	Shown
	Failed
)

// Info describes the current image.
type Info struct {
	Index  int // 0-based position in the list
	Total  int
	Path   string
	Width  int // pixels; 0 when not yet known
	Height int
	State  State
	Err    string
}

// minName is the fewest columns the file name is squeezed to before the
// whole line is truncated instead.
const minName = 4

// Build renders info as HUD text no wider than maxWidth columns and no
// longer than maxWidth bytes.
func Build(info Info, format Format, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if info.Total == 0 {
		return width.TruncateToWidth("no images", maxWidth)
	}

	var prefix string
	if format != FormatName {
		prefix = fmt.Sprintf("[%d/%d] ", info.Index+1, info.Total)
	}
	suffix := describe(info, format)
	name := DisplayName(info.Path)

	// The writer clips the row at maxWidth bytes, so multi-byte text costs
	// the name more than its columns.
	avail := min(
		maxWidth-width.VisibleWidth(prefix)-width.VisibleWidth(suffix),
		maxWidth-len(prefix)-len(suffix),
	)
	if avail >= min(minName, width.VisibleWidth(name)) {
		for n := avail; n > 0; n-- {
			if text := prefix + width.TruncateLeft(name, n) + suffix; len(text) <= maxWidth {
				return text
			}
		}
		return prefix + suffix
	}
	return clip(prefix+name+suffix, maxWidth)
}

// clip truncates s to at most limit columns and limit bytes.
func clip(s string, limit int) string {
	for n := limit; n > 0; n-- {
		if t := width.TruncateToWidth(s, n); len(t) <= limit {
			return t
		}
	}
	return ""
}

// describe renders everything after the name, including the leading space.
func describe(info Info, format Format) string {
	var b strings.Builder
	if format != FormatName && info.Width > 0 && info.Height > 0 {
		fmt.Fprintf(&b, " %d×%d", info.Width, info.Height)
	}
	switch info.State {
	case Loading:
		b.WriteString(" (encoding…)")
	case Failed:
		msg := width.Sanitize(info.Err)
		if msg == "" {
			msg = "failed"
		}
		fmt.Fprintf(&b, " (error: %s)", msg)
	}
	return b.String()
}

// DisplayName returns the base name of path in NFC form with escape
// sequences and control characters removed. File names come from the
// filesystem and may carry bytes that would corrupt the terminal.
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	return width.Sanitize(norm.NFC.String(filepath.Base(path)))
}
