// ABOUTME: Interfaces splitting the tty into the writer's output sink and the controller side
// ABOUTME: ProcessTerminal is the real device; VirtualTerminal records bytes for tests

package terminal

import "io"

// Output is everything the writer goroutine needs from its sink.
type Output interface {
	io.Writer
	// IsInteractive reports whether output reaches a real terminal device.
	IsInteractive() bool
}

// Terminal adds mode switching and geometry to Output. Only the main
// goroutine calls these; writes still go exclusively through the writer.
type Terminal interface {
	Output
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	// OnResize replaces the resize callback; it may run on any goroutine.
	OnResize(fn func(width, height int))
}

var (
	_ Terminal = (*ProcessTerminal)(nil)
	_ Terminal = (*VirtualTerminal)(nil)
)
