// ABOUTME: Viewer loop: navigation, epochs, encoder results and writer completions
// ABOUTME: The only producer of writer requests; shows one image plus the status HUD

package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/kgpview/internal/config"
	"github.com/mauromedda/kgpview/internal/eventbus"
	"github.com/mauromedda/kgpview/internal/log"
	"github.com/mauromedda/kgpview/internal/statusline"
	"github.com/mauromedda/kgpview/pkg/tui/image"
	"github.com/mauromedda/kgpview/pkg/tui/key"
	"github.com/mauromedda/kgpview/pkg/tui/kgp"
	"github.com/mauromedda/kgpview/pkg/tui/terminal"
	"github.com/mauromedda/kgpview/pkg/tui/writer"
)

// fallbackSize is used when the terminal cannot report its size.
var fallbackSize = writer.Size{Width: 80, Height: 24}

// Options configures a Viewer.
type Options struct {
	// Settings supplies limits and formats; nil means defaults.
	Settings *config.Settings
	// Multiplexed wraps graphics escapes for tmux passthrough.
	Multiplexed bool
	// WriterOptions are passed to writer.New.
	WriterOptions []writer.Option
}

// Shown is published once an image is fully on screen.
type Shown struct {
	Index   int
	Path    string
	ImageID uint32
}

// Viewer pages through image files on a terminal.
type Viewer struct {
	term    terminal.Terminal
	paths   []string
	mux     bool
	wopts   []writer.Option
	resized *eventbus.Bus[writer.Size]
	shown   *eventbus.Bus[Shown]
	reloads chan *config.Settings
	failed  chan error // panics recovered off the loop goroutine

	// Loop state below is touched only by the Run goroutine.
	w        *writer.Writer
	enc      *Encoder
	settings config.Settings
	screen   writer.Size
	index    int
	epoch    uint64
	ids      *idCache
	dims     map[int]image.Dimensions
	dirty    *kgp.Rect // cells that may still hold placeholders
	target   kgp.Rect  // area of the current image request
	state    statusline.State
	errMsg   string
}

// New prepares a viewer for paths on term. Nothing is written until Run.
func New(term terminal.Terminal, paths []string, opts Options) *Viewer {
	var s config.Settings
	if opts.Settings != nil {
		s = *opts.Settings
	}
	s.ApplyDefaults()

	return &Viewer{
		term:     term,
		paths:    paths,
		mux:      opts.Multiplexed,
		wopts:    opts.WriterOptions,
		resized:  eventbus.New[writer.Size](),
		shown:    eventbus.New[Shown](),
		reloads:  make(chan *config.Settings, 1),
		failed:   make(chan error, 1),
		settings: s,
		ids:      newIDCache(),
		dims:     make(map[int]image.Dimensions),
	}
}

// OnShown registers fn for shown-image notifications. fn runs on the viewer
// goroutine and must not block. The returned function unsubscribes.
func (v *Viewer) OnShown(fn func(Shown)) func() {
	return v.shown.Subscribe(fn)
}

// Reload hands new settings to a running viewer. Only the status format is
// applied live; layout limits take effect on the next start.
func (v *Viewer) Reload(s *config.Settings) {
	latest(v.reloads, s)
}

// Run shows the first image and handles input until a quit key, the end of
// input, or cancellation of ctx. The screen is cleaned up before it returns.
func (v *Viewer) Run(ctx context.Context, input io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.screen = v.querySize()
	v.w = writer.New(v.term, v.wopts...)
	v.enc = NewEncoder(ctx, v.settings.EncodeWorkers, EncoderConfig{
		MaxDimension: v.settings.MaxDimension,
		MaxBytes:     v.settings.MaxBytes,
		CellAspect:   v.settings.CellAspect,
		Multiplexed:  v.mux,
	})
	defer v.shutdown()

	resizes := make(chan writer.Size, 1)
	unsub := v.resized.Subscribe(func(s writer.Size) { latest(resizes, s) })
	defer unsub()
	v.term.OnResize(func(width, height int) {
		v.resized.Publish(writer.Size{Width: width, Height: height})
	})

	keys := v.readKeys(ctx, input)

	v.show()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case data, ok := <-keys:
			if !ok {
				return v.inputErr()
			}
			for _, seq := range key.Split(data) {
				if v.handle(actionFor(key.ParseKey(seq))) {
					return nil
				}
			}

		case size := <-resizes:
			if size != v.screen {
				log.Debug("viewer: resize %dx%d", size.Width, size.Height)
				v.screen = size
				v.show()
			}

		case p := <-v.enc.Results():
			v.prepared(p)

		case <-v.w.Results():
			v.drainResults()

		case <-v.w.Done():
			return errors.New("terminal writer stopped")

		case s := <-v.reloads:
			v.settings.StatusFormat = s.StatusFormat
			v.pushStatus()
		}
	}
}

func (v *Viewer) querySize() writer.Size {
	w, h, err := v.term.Size()
	if err != nil || w <= 0 || h <= 0 {
		log.Debug("viewer: size unavailable (%v), using %dx%d", err, fallbackSize.Width, fallbackSize.Height)
		return fallbackSize
	}
	return writer.Size{Width: w, Height: h}
}

// readKeys forwards raw reads from r. The channel closes at end of input;
// a nil reader yields a nil channel, so only ctx ends the loop.
func (v *Viewer) readKeys(ctx context.Context, r io.Reader) <-chan string {
	if r == nil {
		return nil
	}
	ch := make(chan string, 16)
	go func() {
		// Recovery runs before the close, so Run sees the panic once the
		// channel ends and cleans up through the writer.
		defer close(ch)
		defer terminal.RecoverGoroutine(func(err error) { latest(v.failed, err) })
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case ch <- string(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Debug("viewer: input: %v", err)
				}
				return
			}
		}
	}()
	return ch
}

// inputErr reports a panic in the key reader, if one ended the input.
func (v *Viewer) inputErr() error {
	select {
	case err := <-v.failed:
		return fmt.Errorf("reading keys: %w", err)
	default:
		return nil
	}
}

// handle applies a navigation action and reports whether to quit.
func (v *Viewer) handle(a action) bool {
	next := v.index
	switch a {
	case actQuit:
		return true
	case actNext:
		next = min(v.index+1, len(v.paths)-1)
	case actPrev:
		next = max(v.index-1, 0)
	case actFirst:
		next = 0
	case actLast:
		next = len(v.paths) - 1
	case actRedraw:
		v.show()
		return false
	default:
		return false
	}
	if next < 0 || next == v.index {
		return false
	}
	log.Debug("viewer: %s -> %d", a, next)
	v.index = next
	v.show()
	return false
}

// show starts a new epoch for the current image. Whatever the writer is
// still doing for older epochs is cancelled first.
func (v *Viewer) show() {
	v.epoch++
	v.w.Send(writer.CancelImage{Multiplexed: v.mux, Area: v.dirty, Epoch: v.epoch})
	v.state = statusline.Loading
	v.errMsg = ""
	v.target = kgp.Rect{}
	defer v.pushStatus()

	if len(v.paths) == 0 {
		v.state = statusline.Shown
		return
	}

	if dim, ok := v.dims[v.index]; ok {
		area := Fit(v.screen, dim, v.settings.CellAspect)
		if area.Empty() {
			v.clearImage()
			v.state = statusline.Shown
			return
		}
		if id, ok := v.ids.lookup(placement{v.index, area.Width, area.Height}); ok {
			v.target = area
			v.sendImage(writer.ImagePlace{Area: area, ImageID: id, OldArea: v.dirty, Epoch: v.epoch})
			return
		}
	}

	v.enc.Submit(Job{
		Index:   v.index,
		Path:    v.paths[v.index],
		ImageID: v.ids.alloc(),
		Epoch:   v.epoch,
		Screen:  v.screen,
	})
}

// prepared turns a finished encode for the current epoch into an upload.
func (v *Viewer) prepared(p Prepared) {
	if p.Epoch != v.epoch {
		log.Debug("viewer: drop encode of %d for epoch %d (now %d)", p.Index, p.Epoch, v.epoch)
		return
	}
	defer v.pushStatus()

	if p.Err != nil {
		log.Warn("viewer: %s: %v", p.Path, p.Err)
		v.clearImage()
		v.state = statusline.Failed
		v.errMsg = p.Err.Error()
		return
	}
	v.dims[p.Index] = p.Dim
	if p.Area.Empty() || len(p.Chunks) == 0 {
		v.clearImage()
		v.state = statusline.Shown
		return
	}

	v.ids.track(p.ImageID, placement{p.Index, p.Area.Width, p.Area.Height})
	v.target = p.Area
	v.sendImage(writer.ImageTransmit{
		Chunks:  p.Chunks,
		Area:    p.Area,
		ImageID: p.ImageID,
		OldArea: v.dirty,
		Epoch:   p.Epoch,
	})
}

// sendImage queues an image request and widens the dirty region to cover
// its area, since a preempted task may leave a partial placement behind.
func (v *Viewer) sendImage(req writer.Request) {
	var area kgp.Rect
	switch r := req.(type) {
	case writer.ImageTransmit:
		area = r.Area
	case writer.ImagePlace:
		area = r.Area
	}
	v.w.Send(req)
	d := union(v.dirty, area)
	v.dirty = &d
}

// clearImage erases whatever image is still on screen when the current one
// will not be placed, since cancelling leaves the old placeholders behind.
// Delete-all also drops every upload, so the id cache starts over.
func (v *Viewer) clearImage() {
	if v.dirty == nil {
		return
	}
	v.w.Send(writer.ClearAll{Area: v.dirty, Multiplexed: v.mux})
	v.dirty = nil
	v.ids.reset()
}

// drainResults consumes writer completions. Uploads are cached whatever
// their epoch; only the current epoch flips the HUD to ready.
func (v *Viewer) drainResults() {
	for {
		r, ok := v.w.TryResult()
		if !ok {
			return
		}
		if r.Kind == writer.TransmitDone {
			v.ids.done(r.ImageID)
		}
		if r.Epoch != v.epoch || v.state != statusline.Loading {
			continue
		}
		area := v.target
		v.dirty = &area
		v.state = statusline.Shown
		v.pushStatus()
		v.shown.Publish(Shown{Index: v.index, Path: v.paths[v.index], ImageID: r.ImageID})
	}
}

func (v *Viewer) pushStatus() {
	info := statusline.Info{
		Index: v.index,
		Total: len(v.paths),
		State: v.state,
		Err:   v.errMsg,
	}
	if len(v.paths) > 0 {
		info.Path = v.paths[v.index]
		if d, ok := v.dims[v.index]; ok {
			info.Width, info.Height = d.Width, d.Height
		}
	}
	// The writer reserves two columns for the indicator glyph.
	text := statusline.Build(info, statusline.Format(v.settings.StatusFormat), v.screen.Width-2)
	ind := writer.Ready
	if v.state == statusline.Loading {
		ind = writer.Busy
	}
	v.w.Send(writer.Status{Text: text, Size: v.screen, Indicator: ind})
}

// shutdown clears images and the HUD, then stops the writer and encoder.
func (v *Viewer) shutdown() {
	area := union(v.dirty, statusRow(v.screen))
	v.w.Send(writer.ClearAll{Area: &area, Multiplexed: v.mux})
	v.w.Close()
	if err := v.enc.Close(); err != nil {
		log.Debug("viewer: encoder: %v", err)
	}
}

// latest replaces any unread value in ch with val.
func latest[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
