// ABOUTME: Image tasks: an ordered chunk queue plus the result sent when it drains
// ABOUTME: Builders are pure; old areas are always erased before new work lands

package writer

// RowEncoder turns placement geometry into terminal bytes. Erase and Place
// return one chunk per row so that stopping between chunks is always safe.
type RowEncoder interface {
	Erase(area Rect) [][]byte
	Place(area Rect, id uint32) [][]byte
	DeleteAll(multiplexed bool) []byte
}

// task is the writer's single in-flight image job. It is owned by the writer
// goroutine and never shared.
type task struct {
	chunks   [][]byte
	next     int
	complete *Result
	epoch    uint64
}

// pop returns the next chunk in FIFO order.
func (t *task) pop() ([]byte, bool) {
	if t.next >= len(t.chunks) {
		return nil, false
	}
	c := t.chunks[t.next]
	t.chunks[t.next] = nil
	t.next++
	return c, true
}

func (t *task) remaining() int {
	return len(t.chunks) - t.next
}

// newPlaceTask builds erase(old) + place(area, id).
func newPlaceTask(enc RowEncoder, area Rect, id uint32, old *Rect, epoch uint64) *task {
	var chunks [][]byte
	// Erase even when old == area: a cancelled task may have left partial rows.
	if old != nil {
		chunks = append(chunks, enc.Erase(*old)...)
	}
	chunks = append(chunks, enc.Place(area, id)...)

	return &task{
		chunks:   chunks,
		complete: &Result{Kind: PlaceDone, ImageID: id, Epoch: epoch},
		epoch:    epoch,
	}
}

// newTransmitTask builds erase(old) + payload + place(area, id).
func newTransmitTask(enc RowEncoder, payload [][]byte, area Rect, id uint32, old *Rect, epoch uint64) *task {
	var chunks [][]byte
	if old != nil {
		chunks = append(chunks, enc.Erase(*old)...)
	}
	chunks = append(chunks, payload...)
	chunks = append(chunks, enc.Place(area, id)...)

	return &task{
		chunks:   chunks,
		complete: &Result{Kind: TransmitDone, ImageID: id, Epoch: epoch},
		epoch:    epoch,
	}
}
