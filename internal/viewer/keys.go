// ABOUTME: Maps parsed keys to viewer navigation actions
// ABOUTME: Arrow keys, vi-style letters, Home/End and the usual quit keys

package viewer

import "github.com/mauromedda/kgpview/pkg/tui/key"

type action int

const (
	actNone action = iota
	actNext
	actPrev
	actFirst
	actLast
	actRedraw
	actQuit
)

func (a action) String() string {
	switch a {
	case actNext:
		return "next"
	case actPrev:
		return "prev"
	case actFirst:
		return "first"
	case actLast:
		return "last"
	case actRedraw:
		return "redraw"
	case actQuit:
		return "quit"
	default:
		return "none"
	}
}

var keyActions = map[key.KeyType]action{
	key.KeyRight:    actNext,
	key.KeyPageDown: actNext,
	key.KeyLeft:     actPrev,
	key.KeyPageUp:   actPrev,
	key.KeyHome:     actFirst,
	key.KeyEnd:      actLast,
	key.KeyCtrlL:    actRedraw,
	key.KeyEscape:   actQuit,
	key.KeyCtrlC:    actQuit,
	key.KeyCtrlD:    actQuit,
}

var runeActions = map[rune]action{
	'l': actNext,
	'j': actNext,
	' ': actNext,
	'h': actPrev,
	'k': actPrev,
	'g': actFirst,
	'G': actLast,
	'q': actQuit,
}

func actionFor(k key.Key) action {
	if k.Type == key.KeyRune {
		if k.Alt {
			return actNone
		}
		return runeActions[k.Rune]
	}
	return keyActions[k.Type]
}
