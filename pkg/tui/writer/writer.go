// ABOUTME: Terminal writer: the only goroutine allowed to write to the terminal
// ABOUTME: Serializes status and image output; newer image epochs preempt older tasks

package writer

import (
	"bufio"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/mauromedda/kgpview/internal/log"
	"github.com/mauromedda/kgpview/pkg/tui/kgp"
	"github.com/mauromedda/kgpview/pkg/tui/terminal"
)

// flushThreshold bounds how many task bytes are buffered before a flush.
const flushThreshold = 64 * 1024

// Writer owns a terminal output stream. Producers hand it requests with Send
// and poll finished image tasks with TryResult; neither call blocks.
//
// Status updates are flushed as soon as they are seen. Image tasks advance
// one chunk per loop iteration so a large upload never holds back the status
// row for longer than one chunk write.
type Writer struct {
	requests  *queue[Request]
	results   *queue[Result]
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Writer.
type Option func(*options)

type options struct {
	encoder     RowEncoder
	interactive *bool
}

// WithEncoder replaces the Kitty placeholder row encoder.
func WithEncoder(enc RowEncoder) Option {
	return func(o *options) { o.encoder = enc }
}

// WithInteractive overrides terminal detection on the output stream.
func WithInteractive(interactive bool) Option {
	return func(o *options) { o.interactive = &interactive }
}

// New starts the writer goroutine on out. Whether out is an interactive
// terminal is decided once here and never re-checked. When it is not, no
// bytes are written at all but image results are still reported.
func New(out io.Writer, opts ...Option) *Writer {
	o := options{encoder: kgp.Encoder{}}
	for _, opt := range opts {
		opt(&o)
	}
	interactive := isInteractive(out)
	if o.interactive != nil {
		interactive = *o.interactive
	}

	w := &Writer{
		requests: newQueue[Request](),
		results:  newQueue[Result](),
		done:     make(chan struct{}),
	}
	l := newLoop(out, interactive, o.encoder, w.requests, w.results)

	go func() {
		defer close(w.done)
		// A dead writer must not keep accepting requests.
		defer w.requests.close()
		defer recoverLoop()
		l.run()
	}()
	return w
}

// Send queues req for the writer. It never blocks and is a no-op once the
// writer has stopped.
func (w *Writer) Send(req Request) {
	w.requests.push(req)
}

// TryResult returns the oldest unread result, if any.
func (w *Writer) TryResult() (Result, bool) {
	return w.results.tryPop()
}

// Results returns a channel that receives a value after new results are
// queued. Signals coalesce, so drain with TryResult after each receive.
func (w *Writer) Results() <-chan struct{} {
	return w.results.ready
}

// Done is closed when the writer goroutine has exited.
func (w *Writer) Done() <-chan struct{} {
	return w.done
}

// Close sends Shutdown and waits for the writer goroutine to exit. Requests
// queued before Close are applied; unfinished image tasks are abandoned.
// Safe to call multiple times.
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		w.requests.push(Shutdown{})
		w.requests.close()
	})
	<-w.done
}

// isInteractive reports whether out is a terminal. Outputs may answer for
// themselves; otherwise anything with a file descriptor is probed.
func isInteractive(out io.Writer) bool {
	switch v := out.(type) {
	case terminal.Output:
		return v.IsInteractive()
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func recoverLoop() {
	if r := recover(); r != nil {
		log.Error("terminal writer stopped: %v", r)
	}
}

// loop is the writer goroutine's state. Nothing here is touched by producers.
type loop struct {
	requests    *queue[Request]
	results     *queue[Result]
	sink        io.Writer
	out         *bufio.Writer
	enc         RowEncoder
	interactive bool

	status      Status
	hasStatus   bool
	statusDirty bool
	task        *task
	epoch       uint64
	quit        bool
	unflushed   int
}

func newLoop(out io.Writer, interactive bool, enc RowEncoder, requests *queue[Request], results *queue[Result]) *loop {
	return &loop{
		requests:    requests,
		results:     results,
		sink:        out,
		out:         bufio.NewWriterSize(out, flushThreshold),
		enc:         enc,
		interactive: interactive,
	}
}

func (l *loop) run() {
	for !l.quit {
		// The only place the writer waits: nothing to draw, nothing to send.
		if l.task == nil && !l.statusDirty {
			req, ok := l.requests.pop()
			if !ok {
				return
			}
			l.apply(req)
		}

		for !l.quit {
			req, ok := l.requests.tryPop()
			if !ok {
				break
			}
			l.apply(req)
		}

		if l.statusDirty {
			l.renderStatus()
		}
		if l.task != nil {
			l.advance()
		}
	}
}

func (l *loop) apply(req Request) {
	switch r := req.(type) {
	case Shutdown:
		l.quit = true

	case Status:
		l.status = r
		l.hasStatus = true
		l.statusDirty = true

	case ClearAll:
		l.dropTask("clear")
		if l.interactive {
			if r.Area != nil {
				for _, row := range l.enc.Erase(*r.Area) {
					l.write(row)
				}
			}
			l.write(l.enc.DeleteAll(r.Multiplexed))
			l.write([]byte(sgrReset))
			l.flush()
		}

	case CancelImage:
		if r.Epoch >= l.epoch {
			l.epoch = r.Epoch
			l.dropTask("cancel")
		}
		// No erase and no id delete here: the upload may already be done,
		// and deleting it would leave a ready image that is never shown.
		if l.interactive {
			l.write([]byte(sgrReset))
			l.flush()
		}

	case ImageTransmit:
		if r.Epoch < l.epoch {
			log.Debug("terminal writer: stale transmit id=%d epoch=%d < %d", r.ImageID, r.Epoch, l.epoch)
			return
		}
		l.epoch = r.Epoch
		l.dropTask("transmit")
		l.task = newTransmitTask(l.enc, r.Chunks, r.Area, r.ImageID, r.OldArea, r.Epoch)

	case ImagePlace:
		if r.Epoch < l.epoch {
			log.Debug("terminal writer: stale place id=%d epoch=%d < %d", r.ImageID, r.Epoch, l.epoch)
			return
		}
		l.epoch = r.Epoch
		l.dropTask("place")
		l.task = newPlaceTask(l.enc, r.Area, r.ImageID, r.OldArea, r.Epoch)

	default:
		log.Warn("terminal writer: unknown request %T", req)
	}
}

func (l *loop) renderStatus() {
	l.statusDirty = false
	if !l.hasStatus {
		return
	}
	if l.interactive {
		if err := renderStatus(l.out, l.status.Text, l.status.Size, l.status.Indicator); err != nil {
			l.discard("status", err)
		}
		l.flush()
	}
	l.unflushed = 0
}

// advance moves the current task forward by at most one chunk.
func (l *loop) advance() {
	t := l.task
	if t.epoch != l.epoch {
		l.dropTask("superseded")
		return
	}

	if !l.interactive {
		l.finish(t)
		return
	}

	if chunk, ok := t.pop(); ok {
		if len(chunk) > 0 {
			l.write(chunk)
		}
		return
	}

	l.flush()
	l.finish(t)
}

func (l *loop) finish(t *task) {
	if t.complete != nil {
		l.results.push(*t.complete)
	}
	l.task = nil
}

func (l *loop) dropTask(reason string) {
	if l.task == nil {
		return
	}
	log.Debug("terminal writer: dropping task epoch=%d (%s), %d chunks unsent", l.task.epoch, reason, l.task.remaining())
	l.task = nil
}

func (l *loop) write(p []byte) {
	if _, err := l.out.Write(p); err != nil {
		l.discard("write", err)
		return
	}
	l.unflushed += len(p)
	if l.unflushed >= flushThreshold {
		l.flush()
	}
}

func (l *loop) flush() {
	if err := l.out.Flush(); err != nil {
		l.discard("flush", err)
	}
	l.unflushed = 0
}

// discard drops buffered output after an I/O error. bufio.Writer keeps the
// first error forever, so it is reset onto the sink to let later output through.
func (l *loop) discard(op string, err error) {
	log.Debug("terminal writer: %s: %v", op, err)
	l.out.Reset(l.sink)
	l.unflushed = 0
}
