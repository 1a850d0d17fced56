// ABOUTME: sync.Pool wrappers for image upload scratch space
// ABOUTME: Reuses bytes.Buffer and zlib writers across compressed uploads

package pool

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// maxPooledBuffer caps the capacity of buffers returned to the pool so one
// huge upload does not pin its memory for the life of the process.
const maxPooledBuffer = 16 << 20

var bytesBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBytesBuffer returns an empty bytes.Buffer from the pool.
func GetBytesBuffer() *bytes.Buffer {
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBytesBuffer returns a bytes.Buffer to the pool. The caller must not
// keep references into its contents.
func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bytesBufferPool.Put(buf)
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(io.Discard)
	},
}

// GetZlibWriter returns a zlib writer from the pool, reset onto w.
func GetZlibWriter(w io.Writer) *zlib.Writer {
	zw := zlibWriterPool.Get().(*zlib.Writer)
	zw.Reset(w)
	return zw
}

// PutZlibWriter returns a closed zlib writer to the pool.
func PutZlibWriter(zw *zlib.Writer) {
	if zw == nil {
		return
	}
	zw.Reset(io.Discard)
	zlibWriterPool.Put(zw)
}
