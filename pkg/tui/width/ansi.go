// ABOUTME: Escape-sequence stripping and control sanitizing for untrusted terminal text
// ABOUTME: Recognizes CSI, nF, and ST-terminated strings (OSC, DCS, APC, PM, SOS)

package width

import "strings"

const (
	esc = 0x1b
	bel = 0x07
	can = 0x18
	sub = 0x1a
)

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	if !containsESC(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == esc {
			i = skipANSISequence(s, i)
			continue
		}
		j := strings.IndexByte(s[i:], esc)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteString(s[i : i+j])
		i += j
	}
	return b.String()
}

func containsESC(s string) bool {
	return strings.IndexByte(s, esc) >= 0
}

// skipANSISequence returns the index just past the sequence starting at s[i].
// Unterminated sequences run to the end of s.
func skipANSISequence(s string, i int) int {
	if i >= len(s) || s[i] != esc {
		return i
	}
	i++
	if i >= len(s) {
		return i
	}
	switch c := s[i]; {
	case c == '[':
		return skipCSI(s, i+1)
	case c == ']':
		return skipString(s, i+1, true)
	case c == 'P', c == '_', c == '^', c == 'X':
		return skipString(s, i+1, false)
	case c >= 0x20 && c <= 0x2f:
		// nF: intermediates, then one final byte (charset designation, DECALN).
		for i < len(s) && s[i] >= 0x20 && s[i] <= 0x2f {
			i++
		}
		return min(i+1, len(s))
	default:
		return i + 1
	}
}

// skipCSI consumes parameter and intermediate bytes up to the final byte.
// CAN and SUB cancel the sequence and are consumed with it; any other byte
// outside the CSI ranges ends it unconsumed.
func skipCSI(s string, i int) int {
	for i < len(s) {
		c := s[i]
		switch {
		case c >= 0x40 && c <= 0x7e, c == can, c == sub:
			return i + 1
		case c >= 0x20 && c <= 0x3f:
			i++
		default:
			return i
		}
	}
	return i
}

// skipString consumes a control string up to ST (ESC \). OSC also accepts BEL.
func skipString(s string, i int, allowBEL bool) int {
	for i < len(s) {
		switch {
		case allowBEL && s[i] == bel:
			return i + 1
		case s[i] == esc && i+1 < len(s) && s[i+1] == '\\':
			return i + 2
		}
		i++
	}
	return i
}

// Sanitize strips escape sequences and replaces remaining C0 and C1 controls
// with spaces so s prints on a single row.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return ' '
		}
		return r
	}, StripANSI(s))
}
