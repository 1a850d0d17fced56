// ABOUTME: Tests for the key to navigation action mapping
// ABOUTME: Table-driven over arrows, vi letters, Home/End and quit keys

package viewer

import (
	"testing"

	"github.com/mauromedda/kgpview/pkg/tui/key"
)

func TestActionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  action
	}{
		{"\x1b[C", actNext},
		{"l", actNext},
		{"j", actNext},
		{" ", actNext},
		{"\x1b[6~", actNext},
		{"\x1b[D", actPrev},
		{"h", actPrev},
		{"k", actPrev},
		{"\x1b[H", actFirst},
		{"g", actFirst},
		{"\x1b[F", actLast},
		{"G", actLast},
		{"\x0c", actRedraw},
		{"q", actQuit},
		{"\x1b", actQuit},
		{"\x03", actQuit},
		{"x", actNone},
		{"\x1bl", actNone},
		{"\r", actNone},
	}

	for _, tt := range tests {
		t.Run(key.ParseKey(tt.input).String(), func(t *testing.T) {
			t.Parallel()
			if got := actionFor(key.ParseKey(tt.input)); got != tt.want {
				t.Errorf("actionFor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
