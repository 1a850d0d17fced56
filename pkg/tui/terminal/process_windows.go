// ABOUTME: Resize detection for ProcessTerminal on Windows, which has no SIGWINCH
// ABOUTME: Polls the console size on a ticker; notifyResize filters unchanged sizes

//go:build windows

package terminal

import "time"

const resizePoll = 250 * time.Millisecond

func (t *ProcessTerminal) startResizeListener() {
	go func() {
		ticker := time.NewTicker(resizePoll)
		defer ticker.Stop()
		for range ticker.C {
			t.notifyResize()
		}
	}()
}
