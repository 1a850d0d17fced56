// ABOUTME: Background image encoder pool bounded by errgroup.SetLimit
// ABOUTME: Reads, scales and chunks images into Kitty uploads off the UI goroutine

package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/kgpview/internal/log"
	"github.com/mauromedda/kgpview/pkg/tui/image"
	"github.com/mauromedda/kgpview/pkg/tui/kgp"
	"github.com/mauromedda/kgpview/pkg/tui/writer"
)

// errStale marks a job overtaken by a newer epoch before it finished.
var errStale = errors.New("superseded by a newer image")

// Job asks for one image to be prepared for upload under ImageID.
type Job struct {
	Index   int
	Path    string
	ImageID uint32
	Epoch   uint64
	Screen  writer.Size
}

// Prepared is the outcome of a Job. Chunks is nil when Err is set or the
// image does not fit on screen.
type Prepared struct {
	Job
	Dim    image.Dimensions // source pixel size from the file header
	Area   kgp.Rect
	Chunks [][]byte
	Err    error
}

// EncoderConfig holds the knobs that shape an upload.
type EncoderConfig struct {
	MaxDimension int
	MaxBytes     int
	CellAspect   float64
	Multiplexed  bool
}

// Encoder runs Jobs on at most workers goroutines. Submit never blocks the
// caller; jobs older than the newest submitted epoch are skipped.
type Encoder struct {
	cfg     EncoderConfig
	ctx     context.Context
	cancel  context.CancelFunc
	g       *errgroup.Group
	spawned sync.WaitGroup
	latest  atomic.Uint64
	results chan Prepared
	once    sync.Once
}

// NewEncoder starts an encoder pool. Cancelling ctx stops it.
func NewEncoder(ctx context.Context, workers int, cfg EncoderConfig) *Encoder {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	return &Encoder{
		cfg:     cfg,
		ctx:     gctx,
		cancel:  cancel,
		g:       g,
		results: make(chan Prepared, workers),
	}
}

// Results delivers prepared jobs. It is closed by Close.
func (e *Encoder) Results() <-chan Prepared {
	return e.results
}

// Submit queues job. It must not be called after Close.
func (e *Encoder) Submit(job Job) {
	for {
		cur := e.latest.Load()
		if job.Epoch <= cur || e.latest.CompareAndSwap(cur, job.Epoch) {
			break
		}
	}

	// errgroup.Go blocks while the pool is full; park that wait off the
	// caller's goroutine.
	e.spawned.Add(1)
	go func() {
		defer e.spawned.Done()
		e.g.Go(func() error {
			e.run(job)
			return nil
		})
	}()
}

// Close stops the pool, waits for every worker and closes Results.
func (e *Encoder) Close() error {
	var err error
	e.once.Do(func() {
		e.cancel()
		e.spawned.Wait()
		err = e.g.Wait()
		close(e.results)
	})
	return err
}

func (e *Encoder) stale(job Job) bool {
	return e.ctx.Err() != nil || job.Epoch < e.latest.Load()
}

func (e *Encoder) run(job Job) {
	if e.stale(job) {
		log.Debug("encoder: skip %s epoch=%d", filepath.Base(job.Path), job.Epoch)
		return
	}
	p := e.prepare(job)
	if errors.Is(p.Err, errStale) {
		return
	}
	select {
	case e.results <- p:
	case <-e.ctx.Done():
	}
}

// prepare reads and encodes one image. PNG sources are sent as PNG (f=100),
// scaled only when over the configured limits; everything else is decoded
// once and sent as zlib-compressed RGBA (f=32), skipping a PNG encode.
func (e *Encoder) prepare(job Job) (p Prepared) {
	p.Job = job
	defer func() {
		if r := recover(); r != nil {
			log.Error("encoder: panic on %s: %v", job.Path, r)
			p.Chunks = nil
			p.Err = fmt.Errorf("encoding failed: %v", r)
		}
	}()

	data, err := os.ReadFile(job.Path)
	if err != nil {
		p.Err = fmt.Errorf("reading image: %w", err)
		return p
	}
	dim, err := image.GetDimensions(data)
	if err != nil {
		p.Err = fmt.Errorf("reading dimensions: %w", err)
		return p
	}
	if err := dim.Validate(); err != nil {
		p.Err = err
		return p
	}
	p.Dim = dim
	p.Area = Fit(job.Screen, dim, e.cfg.CellAspect)
	if p.Area.Empty() {
		return p
	}
	if e.stale(job) {
		p.Err = errStale
		return p
	}

	if image.Sniff(data) == image.FormatPNG {
		out, _, err := image.Resize(data, e.cfg.MaxDimension, e.cfg.MaxBytes)
		if err != nil {
			p.Err = err
			return p
		}
		p.Chunks = kgp.Transmit(out, job.ImageID, p.Area.Width, p.Area.Height, e.cfg.Multiplexed)
		return p
	}

	rgba, err := image.DecodeRGBA(data, e.cfg.MaxDimension)
	if err != nil {
		p.Err = err
		return p
	}
	b := rgba.Bounds()
	p.Chunks, err = kgp.TransmitRGBA(rgba.Pix, b.Dx(), b.Dy(), job.ImageID, p.Area.Width, p.Area.Height, e.cfg.Multiplexed)
	if err != nil {
		p.Err = err
	}
	return p
}
