// ABOUTME: Environment probe for Kitty graphics support, Unicode placeholders and tmux
// ABOUTME: DetectFrom takes a getenv func; Detect caches the os environment result

package image

import (
	"os"
	"strings"
	"sync"
)

// Capability describes what the hosting terminal can do with KGP images.
type Capability struct {
	// Terminal is the detected emulator name, "" when unknown.
	Terminal string
	// Graphics is set when the terminal speaks the Kitty graphics protocol.
	Graphics bool
	// Placeholders is set when virtual placements rendered through U+10EEEE
	// cells are supported. The viewer needs this to show anything.
	Placeholders bool
	// Multiplexed is set inside tmux, where graphics escapes need
	// passthrough wrapping.
	Multiplexed bool
}

type terminalSig struct {
	name         string
	envVar       string // non-empty env var that identifies the terminal
	termProgram  string // lower-cased TERM_PROGRAM
	term         string // TERM
	placeholders bool
}

// Probed in order; the first match wins.
var knownTerminals = []terminalSig{
	{name: "kitty", envVar: "KITTY_WINDOW_ID", termProgram: "kitty", term: "xterm-kitty", placeholders: true},
	{name: "ghostty", envVar: "GHOSTTY_RESOURCES_DIR", termProgram: "ghostty", term: "xterm-ghostty", placeholders: true},
	{name: "wezterm", envVar: "WEZTERM_PANE", termProgram: "wezterm"},
	{name: "konsole", envVar: "KONSOLE_VERSION"},
}

var (
	detectOnce sync.Once
	cachedCap  Capability
)

// Detect probes the process environment once and caches the result.
func Detect() Capability {
	detectOnce.Do(func() {
		cachedCap = DetectFrom(os.Getenv)
	})
	return cachedCap
}

// DetectFrom probes the environment exposed by getenv.
func DetectFrom(getenv func(string) string) Capability {
	c := Capability{Multiplexed: getenv("TMUX") != ""}
	program := strings.ToLower(getenv("TERM_PROGRAM"))
	term := getenv("TERM")
	for _, sig := range knownTerminals {
		if getenv(sig.envVar) == "" &&
			(sig.termProgram == "" || program != sig.termProgram) &&
			(sig.term == "" || term != sig.term) {
			continue
		}
		c.Terminal = sig.name
		c.Graphics = true
		c.Placeholders = sig.placeholders
		return c
	}
	return c
}
