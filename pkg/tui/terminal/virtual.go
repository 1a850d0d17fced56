// ABOUTME: VirtualTerminal is an in-memory Terminal for tests of the writer and viewer
// ABOUTME: Records output and raw-mode calls, decodes Kitty graphics commands, can fail writes

package terminal

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output and tracks raw-mode transitions.
type VirtualTerminal struct {
	mu          sync.Mutex
	buf         bytes.Buffer
	width       int
	height      int
	rawMode     bool
	interactive bool
	writeErr    error
	writes      int
	resizeFn    func(width, height int)
	enterCount  int
	exitCount   int
}

// NewVirtualTerminal returns an interactive VirtualTerminal with the given
// dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:       width,
		height:      height,
		interactive: true,
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	v.exitCount++
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Write appends data to the internal buffer, or fails with the error set
// by FailWrites.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writes++
	if v.writeErr != nil {
		return 0, v.writeErr
	}
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// OnResize stores the resize callback.
func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resizeFn = fn
}

// IsInteractive reports the value set by SetInteractive (true by default).
func (v *VirtualTerminal) IsInteractive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.interactive
}

// --- Test helpers (not part of Terminal interface) ---

// SetInteractive makes the terminal pose as a pipe (false) or a tty (true).
func (v *VirtualTerminal) SetInteractive(interactive bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.interactive = interactive
}

// FailWrites makes every following Write return err. A nil err restores
// normal behaviour.
func (v *VirtualTerminal) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}

// WriteCount returns how many times Write was called, failed calls included.
func (v *VirtualTerminal) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writes
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode was called.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// SetSize updates the terminal dimensions. Like ProcessTerminal, the resize
// callback only runs when the size actually changes.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	changed := width != v.width || height != v.height
	v.width = width
	v.height = height
	fn := v.resizeFn
	v.mu.Unlock()

	if changed && fn != nil {
		fn(width, height)
	}
}

// GraphicsCommands returns the control data (the keys before ';') of every
// complete Kitty graphics escape written so far, in order. Escapes wrapped
// for tmux passthrough are included.
func (v *VirtualTerminal) GraphicsCommands() []string {
	const (
		apcStart = "\x1b_G"
		st       = "\x1b\\"
	)
	out := v.Output()
	var cmds []string
	for {
		i := strings.Index(out, apcStart)
		if i < 0 {
			return cmds
		}
		out = out[i+len(apcStart):]
		end := strings.Index(out, st)
		if end < 0 {
			return cmds
		}
		body := out[:end]
		// A doubled ESC before ST is tmux escaping, not part of the body.
		body = strings.TrimSuffix(body, "\x1b")
		control, _, _ := strings.Cut(body, ";")
		cmds = append(cmds, control)
		out = out[end+len(st):]
	}
}
