// ABOUTME: ProcessTerminal is the real tty: stdin for keys, stdout for the writer sink
// ABOUTME: Raw mode via x/term; resize callbacks fire only when the cell grid actually changes

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by os.Stdout and x/term.
type ProcessTerminal struct {
	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	resizeOn sync.Once
	// Last size reported to resizeFn.
	lastW, lastH int
}

// NewProcessTerminal returns a ProcessTerminal ready for use.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

// EnterRawMode switches stdin to raw mode, saving the previous state.
// It is a no-op when stdin is not a terminal.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) || t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(os.Stdin.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to os.Stdout.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := os.Stdout.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// Read reads keyboard input from os.Stdin.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

// IsInteractive reports whether os.Stdout is a terminal.
func (t *ProcessTerminal) IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// OnResize registers a callback invoked when the terminal grid changes size.
// The platform listener is started on first registration; the size at that
// moment becomes the baseline, so fn is not called for it.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	w, h, err := t.Size()

	t.mu.Lock()
	t.resizeFn = fn
	if err == nil {
		t.lastW, t.lastH = w, h
	}
	t.mu.Unlock()

	t.resizeOn.Do(t.startResizeListener)
}

// notifyResize queries the size and calls the callback if it differs from the
// last one reported. Query failures are ignored.
func (t *ProcessTerminal) notifyResize() {
	w, h, err := t.Size()
	if err != nil {
		return
	}
	if fn := t.sizeChanged(w, h); fn != nil {
		fn(w, h)
	}
}

// sizeChanged records w x h and returns the callback when it is new.
func (t *ProcessTerminal) sizeChanged(w, h int) func(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resizeFn == nil || (w == t.lastW && h == t.lastH) {
		return nil
	}
	t.lastW, t.lastH = w, h
	return t.resizeFn
}
