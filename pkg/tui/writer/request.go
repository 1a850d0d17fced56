// ABOUTME: Request and Result types exchanged with the terminal writer goroutine
// ABOUTME: Requests form a sealed sum type; results report finished image tasks

package writer

import (
	"fmt"

	"github.com/mauromedda/kgpview/pkg/tui/kgp"
)

// Rect is a placement rectangle in terminal cells.
type Rect = kgp.Rect

// Size is the terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Indicator is the colour of the status glyph.
type Indicator int

const (
	Busy  Indicator = iota // red
	Ready                  // green
)

func (i Indicator) String() string {
	if i == Ready {
		return "ready"
	}
	return "busy"
}

// Request is a unit of work for the writer. Ownership of a request and any
// byte slices it carries passes to the writer on Send.
type Request interface {
	isRequest()
}

// Status replaces the bottom-row HUD. Only the most recent Status is
// guaranteed to be rendered.
type Status struct {
	Text      string
	Size      Size
	Indicator Indicator
}

// ImageTransmit uploads pre-encoded image chunks and places the image in
// Area. OldArea, when set, is erased before anything else is written.
type ImageTransmit struct {
	Chunks  [][]byte
	Area    Rect
	ImageID uint32
	OldArea *Rect
	Epoch   uint64
}

// ImagePlace displays an already uploaded image in Area.
type ImagePlace struct {
	Area    Rect
	ImageID uint32
	OldArea *Rect
	Epoch   uint64
}

// ClearAll abandons image work, erases Area if set and deletes every
// uploaded image.
type ClearAll struct {
	Area        *Rect
	Multiplexed bool
}

// CancelImage stops in-flight image work at or before Epoch. ImageID and Area
// are informational: the writer neither erases nor deletes on cancel, the
// next placement's OldArea erase cleans up instead.
type CancelImage struct {
	ImageID     *uint32
	Multiplexed bool
	Area        *Rect
	Epoch       uint64
}

// Shutdown stops the writer goroutine.
type Shutdown struct{}

func (Status) isRequest()        {}
func (ImageTransmit) isRequest() {}
func (ImagePlace) isRequest()    {}
func (ClearAll) isRequest()      {}
func (CancelImage) isRequest()   {}
func (Shutdown) isRequest()      {}

// ResultKind identifies which image task finished.
type ResultKind int

const (
	TransmitDone ResultKind = iota + 1
	PlaceDone
)

func (k ResultKind) String() string {
	switch k {
	case TransmitDone:
		return "transmit-done"
	case PlaceDone:
		return "place-done"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result reports that every chunk of an image task was written.
type Result struct {
	Kind    ResultKind
	ImageID uint32
	Epoch   uint64
}
