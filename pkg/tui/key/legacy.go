// ABOUTME: Decoding of xterm-style CSI and SS3 navigation keys, modifiers included
// ABOUTME: "ESC [1;5C" (Ctrl+Right) and "ESC [5;3~" decode to their base key

package key

import (
	"strconv"
	"strings"
)

// Final byte of "ESC [ ... X" or "ESC O X" navigation sequences.
var finalKeys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// First parameter of "ESC [ n ~" sequences. Home and End have two encodings
// each depending on the terminal (vt220 vs rxvt).
var tildeKeys = map[int]KeyType{
	1: KeyHome,
	7: KeyHome,
	4: KeyEnd,
	8: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
}

// Bits of an xterm modifier parameter, after subtracting one.
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// parseLegacy decodes a complete CSI or SS3 key sequence.
func parseLegacy(seq string) (Key, bool) {
	switch {
	case len(seq) == 3 && strings.HasPrefix(seq, "\x1bO"):
		t, ok := finalKeys[seq[2]]
		return Key{Type: t}, ok
	case len(seq) >= 3 && strings.HasPrefix(seq, "\x1b["):
		return parseCSI(seq[2 : len(seq)-1], seq[len(seq)-1])
	}
	return Key{}, false
}

func parseCSI(params string, final byte) (Key, bool) {
	fields := strings.Split(params, ";")
	if len(fields) > 2 {
		return Key{}, false
	}
	mod := 0
	if len(fields) == 2 {
		m, err := strconv.Atoi(fields[1])
		if err != nil || m < 1 {
			return Key{}, false
		}
		mod = m - 1
	}

	var (
		t  KeyType
		ok bool
	)
	if final == '~' {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return Key{}, false
		}
		t, ok = tildeKeys[n]
	} else {
		// Only "", or "1" when a modifier follows, may precede a letter final.
		if fields[0] != "" && fields[0] != "1" {
			return Key{}, false
		}
		t, ok = finalKeys[final]
	}
	if !ok {
		return Key{}, false
	}
	return Key{
		Type:  t,
		Shift: mod&modShift != 0,
		Alt:   mod&modAlt != 0,
		Ctrl:  mod&modCtrl != 0,
	}, true
}
