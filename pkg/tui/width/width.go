// ABOUTME: Display width of terminal text measured per grapheme cluster, escapes excluded
// ABOUTME: Non-ASCII results are memoized in a small mutex-guarded LRU

package width

import (
	"container/list"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const cacheSize = 512

// emojiPresentation is VS16; it forces emoji (wide) presentation of the base rune.
const emojiPresentation = "\ufe0f"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// lru is a fixed-capacity least-recently-used map. A get promotes its key,
// so every operation takes the one mutex.
type lru[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]*list.Element
	order *list.List
	limit int
}

func newLRU[K comparable, V any](capacity int) *lru[K, V] {
	return &lru[K, V]{
		items: make(map[K]*list.Element, capacity),
		order: list.New(),
		limit: max(capacity, 1),
	}
}

func (c *lru[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(entry[K, V]).value, true
}

func (c *lru[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		elem.Value = entry[K, V]{key: key, value: value}
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.limit {
		back := c.order.Back()
		c.order.Remove(back)
		delete(c.items, back.Value.(entry[K, V]).key)
	}
	c.items[key] = c.order.PushFront(entry[K, V]{key: key, value: value})
}

func (c *lru[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

var widthCache = newLRU[string, int](cacheSize)

// VisibleWidth returns the number of terminal cells s occupies. Escape
// sequences count as zero; wide graphemes (CJK, emoji) count as two.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := computeWidth(s)
	widthCache.put(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func computeWidth(s string) int {
	rest := StripANSI(s)
	w := 0
	state := -1
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// graphemeWidth sizes a cluster by its first rune, widened to two cells when
// it requests emoji presentation or is a regional-indicator flag pair.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, size := utf8.DecodeRuneInString(cluster)
	w := runewidth.RuneWidth(r)
	if w == 2 || size == len(cluster) {
		return w
	}
	if strings.Contains(cluster[size:], emojiPresentation) || isRegionalIndicator(r) {
		return 2
	}
	return w
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}
