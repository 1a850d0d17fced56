// ABOUTME: SIGWINCH listener for ProcessTerminal on unix platforms
// ABOUTME: A burst of signals during a window drag is coalesced into one size query

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// resizeSettle is how long the listener waits for the signal burst to end.
const resizeSettle = 30 * time.Millisecond

func (t *ProcessTerminal) startResizeListener() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		settle := time.NewTimer(resizeSettle)
		settle.Stop()
		for {
			select {
			case <-sigCh:
				settle.Reset(resizeSettle)
			case <-settle.C:
				t.notifyResize()
			}
		}
	}()
}
