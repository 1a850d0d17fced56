// ABOUTME: Test helpers: a readable fake row encoder and a synchronous loop runner
// ABOUTME: runLoop queues requests up front so scheduling is deterministic

package writer

import (
	"fmt"
	"testing"
	"time"

	"github.com/mauromedda/kgpview/pkg/tui/terminal"
)

// fakeEncoder produces human-readable chunks so emission order is easy to assert.
type fakeEncoder struct{}

func (fakeEncoder) Erase(area Rect) [][]byte {
	rows := make([][]byte, 0, area.Height)
	for r := range area.Height {
		rows = append(rows, []byte(fmt.Sprintf("<erase %d:%d>", area.Y, r)))
	}
	return rows
}

func (fakeEncoder) Place(area Rect, id uint32) [][]byte {
	rows := make([][]byte, 0, area.Height)
	for r := range area.Height {
		rows = append(rows, []byte(fmt.Sprintf("<place %d %d:%d>", id, area.Y, r)))
	}
	return rows
}

func (fakeEncoder) DeleteAll(multiplexed bool) []byte {
	if multiplexed {
		return []byte("<delete-all tmux>")
	}
	return []byte("<delete-all>")
}

var (
	areaA = Rect{X: 0, Y: 1, Width: 10, Height: 2}
	areaB = Rect{X: 0, Y: 5, Width: 10, Height: 2}
)

func ptr[T any](v T) *T { return &v }

// runLoop applies reqs on a fresh loop until the request queue is exhausted,
// then returns what the sink received and every result produced.
func runLoop(t *testing.T, interactive bool, reqs ...Request) (string, []Result) {
	t.Helper()
	return runLoopOn(t, terminal.NewVirtualTerminal(80, 24), interactive, reqs...)
}

// runLoopOn is runLoop with a caller-supplied sink, for tests that inspect
// how the output was written.
func runLoopOn(t *testing.T, vt *terminal.VirtualTerminal, interactive bool, reqs ...Request) (string, []Result) {
	t.Helper()

	requests := newQueue[Request]()
	results := newQueue[Result]()
	for _, r := range reqs {
		requests.push(r)
	}
	requests.close()

	newLoop(vt, interactive, fakeEncoder{}, requests, results).run()

	var got []Result
	for {
		r, ok := results.tryPop()
		if !ok {
			break
		}
		got = append(got, r)
	}
	return vt.Output(), got
}

// waitResult polls w until a result arrives or the timeout expires.
func waitResult(t *testing.T, w *Writer, timeout time.Duration) Result {
	t.Helper()

	deadline := time.After(timeout)
	for {
		if r, ok := w.TryResult(); ok {
			return r
		}
		select {
		case <-w.Results():
		case <-deadline:
			t.Fatalf("no result within %v", timeout)
		}
	}
}
