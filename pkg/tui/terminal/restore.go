// ABOUTME: Panic recovery that leaves the tty usable: images deleted, SGR reset, raw mode off
// ABOUTME: RestoreOnPanic cleans up and exits; RecoverGoroutine hands the panic to the output owner

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// cleanupSeq deletes every image placement, clears the screen the placeholder
// cells were drawn on, resets attributes and shows the cursor. Inside tmux the
// delete is not passed through, but the clear still removes the placeholders.
const cleanupSeq = "\x1b_Ga=d,d=A,q=2\x1b\\" + "\x1b[2J\x1b[H" + "\x1b[0m\x1b[?25h"

// panicOut receives the panic report.
var panicOut io.Writer = os.Stderr

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// RestoreOnPanic is deferred at the top of main. On panic it cleans up the
// terminal, prints the value and stack, and exits with status 1. It writes to
// t directly, so any goroutine that owns t's output must have stopped by then;
// the viewer's deferred shutdown does that while the panic unwinds.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t)
	fmt.Fprintf(panicOut, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine is deferred at the top of helper goroutines while another
// goroutine owns the terminal output. It writes nothing to the terminal: the
// panic goes to fail, and the owner cleans up through its own writer.
func RecoverGoroutine(fail func(error)) {
	if r := recover(); r != nil {
		fail(&PanicError{Value: r, Stack: debug.Stack()})
	}
}

// restore is best-effort; every error is ignored.
func restore(t Terminal) {
	if t.IsInteractive() {
		_, _ = io.WriteString(t, cleanupSeq)
	}
	_ = t.ExitRawMode()
}
