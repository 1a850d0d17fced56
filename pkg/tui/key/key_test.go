// ABOUTME: Table-driven tests for Key parsing covering ASCII, control chars, and escape sequences.
// ABOUTME: Validates ParseKey and Split against runes, Ctrl combos, arrows, and unknown inputs.

package key

import (
	"slices"
	"testing"
)

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Key
	}{
		// Single printable ASCII characters
		{name: "lowercase a", data: "a", want: Key{Type: KeyRune, Rune: 'a'}},
		{name: "uppercase G", data: "G", want: Key{Type: KeyRune, Rune: 'G'}},
		{name: "digit 0", data: "0", want: Key{Type: KeyRune, Rune: '0'}},
		{name: "space", data: " ", want: Key{Type: KeyRune, Rune: ' '}},
		{name: "multibyte rune", data: "é", want: Key{Type: KeyRune, Rune: 'é'}},

		// Control characters
		{name: "ctrl+c", data: "\x03", want: Key{Type: KeyCtrlC, Ctrl: true}},
		{name: "ctrl+d", data: "\x04", want: Key{Type: KeyCtrlD, Ctrl: true}},
		{name: "ctrl+l", data: "\x0c", want: Key{Type: KeyCtrlL, Ctrl: true}},
		{name: "unmapped ctrl", data: "\x01", want: Key{Type: KeyUnknown}},

		{name: "enter", data: "\r", want: Key{Type: KeyEnter}},
		{name: "line feed", data: "\n", want: Key{Type: KeyEnter}},
		{name: "backspace", data: "\x7f", want: Key{Type: KeyBackspace}},
		{name: "escape", data: "\x1b", want: Key{Type: KeyEscape}},

		// CSI arrow keys
		{name: "arrow up", data: "\x1b[A", want: Key{Type: KeyUp}},
		{name: "arrow down", data: "\x1b[B", want: Key{Type: KeyDown}},
		{name: "arrow right", data: "\x1b[C", want: Key{Type: KeyRight}},
		{name: "arrow left", data: "\x1b[D", want: Key{Type: KeyLeft}},

		{name: "home", data: "\x1b[H", want: Key{Type: KeyHome}},
		{name: "end", data: "\x1b[F", want: Key{Type: KeyEnd}},
		{name: "home tilde", data: "\x1b[1~", want: Key{Type: KeyHome}},
		{name: "end tilde", data: "\x1b[4~", want: Key{Type: KeyEnd}},
		{name: "page up", data: "\x1b[5~", want: Key{Type: KeyPageUp}},
		{name: "page down", data: "\x1b[6~", want: Key{Type: KeyPageDown}},

		{name: "rxvt home", data: "\x1b[7~", want: Key{Type: KeyHome}},
		{name: "rxvt end", data: "\x1b[8~", want: Key{Type: KeyEnd}},

		// xterm modifiers: ";2" shift, ";3" alt, ";5" ctrl
		{name: "ctrl right", data: "\x1b[1;5C", want: Key{Type: KeyRight, Ctrl: true}},
		{name: "shift end", data: "\x1b[1;2F", want: Key{Type: KeyEnd, Shift: true}},
		{name: "alt left", data: "\x1b[1;3D", want: Key{Type: KeyLeft, Alt: true}},
		{name: "alt page down", data: "\x1b[6;3~", want: Key{Type: KeyPageDown, Alt: true}},
		{name: "bad modifier", data: "\x1b[1;xC", want: Key{Type: KeyUnknown}},
		{name: "unknown tilde", data: "\x1b[3~", want: Key{Type: KeyUnknown}},

		// SS3 arrow keys
		{name: "SS3 up", data: "\x1bOA", want: Key{Type: KeyUp}},
		{name: "SS3 right", data: "\x1bOC", want: Key{Type: KeyRight}},
		{name: "SS3 home", data: "\x1bOH", want: Key{Type: KeyHome}},
		{name: "SS3 end", data: "\x1bOF", want: Key{Type: KeyEnd}},

		{name: "alt x", data: "\x1bx", want: Key{Type: KeyRune, Rune: 'x', Alt: true}},
		{name: "unknown escape", data: "\x1b[99Z", want: Key{Type: KeyUnknown}},
		{name: "empty", data: "", want: Key{Type: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseKey(tt.data)
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "empty", data: "", want: nil},
		{name: "single rune", data: "l", want: []string{"l"}},
		{name: "runes", data: "jjk", want: []string{"j", "j", "k"}},
		{name: "arrows", data: "\x1b[C\x1b[C", want: []string{"\x1b[C", "\x1b[C"}},
		{name: "mixed", data: "g\x1b[6~q", want: []string{"g", "\x1b[6~", "q"}},
		{name: "modified arrows", data: "\x1b[1;5C\x1b[1;3D", want: []string{"\x1b[1;5C", "\x1b[1;3D"}},
		{name: "ss3", data: "\x1bOH\x1bOF", want: []string{"\x1bOH", "\x1bOF"}},
		{name: "double escape", data: "\x1b\x1b", want: []string{"\x1b", "\x1b"}},
		{name: "alt rune", data: "\x1bxy", want: []string{"\x1bx", "y"}},
		{name: "truncated csi", data: "\x1b[1", want: []string{"\x1b[1"}},
		{name: "utf8", data: "éa", want: []string{"é", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tt.data)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{name: "rune a", key: Key{Type: KeyRune, Rune: 'a'}, want: "a"},
		{name: "enter", key: Key{Type: KeyEnter}, want: "Enter"},
		{name: "ctrl+c", key: Key{Type: KeyCtrlC, Ctrl: true}, want: "Ctrl+C"},
		{name: "arrow up", key: Key{Type: KeyUp}, want: "Up"},
		{name: "unknown", key: Key{Type: KeyUnknown}, want: "Unknown"},
		{name: "alt rune", key: Key{Type: KeyRune, Rune: 'x', Alt: true}, want: "Alt+x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
