// ABOUTME: Kitty graphics protocol upload with chunked base64 transmission
// ABOUTME: PNG (f=100) or zlib-compressed RGBA (f=32,o=z); creates a virtual placement (U=1)

package kgp

import (
	"encoding/base64"
	"fmt"

	"github.com/mauromedda/kgpview/pkg/tui/internal/pool"
)

const chunkSize = 4096 // Max base64 chars per escape

// Transmit encodes PNG data as a sequence of upload escapes for image id.
// Each returned chunk is one complete escape, so the writer may stop between
// chunks without leaving a half-written APC on the wire. The first chunk
// carries the full header and creates a virtual placement of cols x rows
// cells; continuations carry only the m= (more) flag and payload.
func Transmit(pngData []byte, id uint32, cols, rows int, multiplexed bool) [][]byte {
	if len(pngData) == 0 {
		return nil
	}
	header := fmt.Sprintf("a=T,U=1,i=%d,f=100,q=2,c=%d,r=%d", id, cols, rows)
	return chunked(header, pngData, multiplexed)
}

// TransmitRGBA is Transmit for raw 8-bit RGBA pixels of width x height. The
// pixels are zlib-compressed, which is usually cheaper to produce than PNG.
func TransmitRGBA(pix []byte, width, height int, id uint32, cols, rows int, multiplexed bool) ([][]byte, error) {
	if len(pix) == 0 {
		return nil, nil
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %dx%dx4", len(pix), width, height)
	}

	buf := pool.GetBytesBuffer()
	defer pool.PutBytesBuffer(buf)
	zw := pool.GetZlibWriter(buf)
	defer pool.PutZlibWriter(zw)
	if _, err := zw.Write(pix); err != nil {
		return nil, fmt.Errorf("compressing pixels: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing pixels: %w", err)
	}

	header := fmt.Sprintf("a=T,U=1,i=%d,f=32,o=z,s=%d,v=%d,q=2,c=%d,r=%d", id, width, height, cols, rows)
	// chunked copies the payload into base64 escapes, so buf can be reused.
	return chunked(header, buf.Bytes(), multiplexed), nil
}

func chunked(header string, payload []byte, multiplexed bool) [][]byte {
	encoded := base64.StdEncoding.EncodeToString(payload)
	chunks := make([][]byte, 0, len(encoded)/chunkSize+1)

	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 1
		if end == len(encoded) {
			more = 0
		}

		var seq string
		if i == 0 {
			seq = fmt.Sprintf("\x1b_G%s,m=%d;%s\x1b\\", header, more, encoded[i:end])
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, encoded[i:end])
		}

		if multiplexed {
			chunks = append(chunks, WrapTmux([]byte(seq)))
		} else {
			chunks = append(chunks, []byte(seq))
		}
	}
	return chunks
}
