// ABOUTME: Tests for terminal capability detection from environment variables
// ABOUTME: Uses map-backed getenv so cases run in parallel without touching os env

package image

import "testing"

func TestDetectFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
		want Capability
	}{
		{
			name: "kitty window id",
			env:  map[string]string{"KITTY_WINDOW_ID": "1"},
			want: Capability{Terminal: "kitty", Graphics: true, Placeholders: true},
		},
		{
			name: "kitty term over ssh",
			env:  map[string]string{"TERM": "xterm-kitty"},
			want: Capability{Terminal: "kitty", Graphics: true, Placeholders: true},
		},
		{
			name: "ghostty term program mixed case",
			env:  map[string]string{"TERM_PROGRAM": "Ghostty"},
			want: Capability{Terminal: "ghostty", Graphics: true, Placeholders: true},
		},
		{
			name: "wezterm lacks placeholders",
			env:  map[string]string{"WEZTERM_PANE": "0"},
			want: Capability{Terminal: "wezterm", Graphics: true},
		},
		{
			name: "konsole",
			env:  map[string]string{"KONSOLE_VERSION": "230804"},
			want: Capability{Terminal: "konsole", Graphics: true},
		},
		{
			name: "kitty inside tmux",
			env:  map[string]string{"KITTY_WINDOW_ID": "3", "TMUX": "/tmp/tmux-1000/default,1,0", "TERM_PROGRAM": "tmux"},
			want: Capability{Terminal: "kitty", Graphics: true, Placeholders: true, Multiplexed: true},
		},
		{
			name: "plain xterm",
			env:  map[string]string{"TERM": "xterm-256color"},
			want: Capability{},
		},
		{
			name: "unknown inside tmux",
			env:  map[string]string{"TMUX": "/tmp/tmux"},
			want: Capability{Multiplexed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DetectFrom(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("DetectFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetect_Cached(t *testing.T) {
	t.Parallel()

	if a, b := Detect(), Detect(); a != b {
		t.Errorf("Detect() not stable: %+v then %+v", a, b)
	}
}
