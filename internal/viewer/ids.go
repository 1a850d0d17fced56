// ABOUTME: Kitty image id allocation and the cache of completed uploads
// ABOUTME: An image shown again at the same cell size is placed instead of re-sent

package viewer

// maxImageID is the largest id the placeholder encoder can carry in a
// 24-bit foreground colour.
const maxImageID = 1<<24 - 1

// placement identifies one upload: the same file fitted to the same grid.
// The virtual placement created on upload fixes the grid size, so a
// different size needs a fresh upload.
type placement struct {
	index int
	cols  int
	rows  int
}

// idCache is owned by the viewer loop and is not safe for concurrent use.
type idCache struct {
	next        uint32
	inflight    map[uint32]placement
	transmitted map[placement]uint32
}

func newIDCache() *idCache {
	return &idCache{
		inflight:    make(map[uint32]placement),
		transmitted: make(map[placement]uint32),
	}
}

// alloc returns the next id, wrapping within 1..maxImageID. A reused id
// forgets whatever it named before.
func (c *idCache) alloc() uint32 {
	c.next++
	if c.next > maxImageID {
		c.next = 1
	}
	c.forget(c.next)
	return c.next
}

// track records that id is being uploaded for p.
func (c *idCache) track(id uint32, p placement) {
	c.inflight[id] = p
}

// done marks an upload as complete. Unknown ids are ignored.
func (c *idCache) done(id uint32) {
	p, ok := c.inflight[id]
	if !ok {
		return
	}
	delete(c.inflight, id)
	c.transmitted[p] = id
}

func (c *idCache) lookup(p placement) (uint32, bool) {
	id, ok := c.transmitted[p]
	return id, ok
}

func (c *idCache) forget(id uint32) {
	delete(c.inflight, id)
	for p, v := range c.transmitted {
		if v == id {
			delete(c.transmitted, p)
		}
	}
}

// reset forgets every upload. The counter keeps going so results for ids
// issued before the reset cannot match a new upload.
func (c *idCache) reset() {
	clear(c.inflight)
	clear(c.transmitted)
}
