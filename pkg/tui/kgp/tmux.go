// ABOUTME: tmux DCS passthrough wrapping for graphics escapes
// ABOUTME: Doubles every ESC in the payload and frames it as ESC P tmux; ... ESC \

package kgp

import "bytes"

// WrapTmux wraps seq in a tmux passthrough sequence so the outer terminal
// receives it verbatim. tmux needs "allow-passthrough on" for this to work.
func WrapTmux(seq []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(seq) + len(seq)/8 + 10)
	b.WriteString("\x1bPtmux;")
	for _, c := range seq {
		if c == 0x1b {
			b.WriteByte(0x1b)
		}
		b.WriteByte(c)
	}
	b.WriteString("\x1b\\")
	return b.Bytes()
}
