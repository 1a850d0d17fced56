// ABOUTME: Tests for VisibleWidth, the ASCII fast path and the generic LRU
// ABOUTME: Covers escapes, wide runes, emoji presentation selectors and flag pairs

package width

import (
	"strconv"
	"sync"
	"testing"
)

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty string", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "ansi colored", input: "\x1b[31mred\x1b[0m", want: 3},
		{name: "cjk", input: "\u4f60\u597d", want: 4},
		{name: "mixed", input: "hi\x1b[1m!\x1b[0m", want: 3},
		{name: "emoji", input: "\U0001F44B", want: 2},
		{name: "emoji presentation selector", input: "\u2764\ufe0f", want: 2},
		{name: "flag pair", input: "\U0001F1FA\U0001F1F8", want: 2},
		{name: "combining accent", input: "e\u0301", want: 1},
		{name: "only ansi", input: "\x1b[31m\x1b[0m", want: 0},
		{name: "tabs not plain ascii", input: "a\tb", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := VisibleWidth(tt.input); got != tt.want {
				t.Errorf("VisibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
			// Second call is served from the cache and must agree.
			if got := VisibleWidth(tt.input); got != tt.want {
				t.Errorf("cached VisibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPlainASCII(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain ascii", input: "hello world!", want: true},
		{name: "with escape", input: "hello\x1b[31m", want: false},
		{name: "with tab", input: "a\tb", want: false},
		{name: "with newline", input: "a\nb", want: false},
		{name: "with delete", input: "a\x7f", want: false},
		{name: "empty", input: "", want: true},
		{name: "unicode", input: "caf\u00e9", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isPlainASCII(tt.input); got != tt.want {
				t.Errorf("isPlainASCII(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := newLRU[string, int](3)
		c.put("a", 1)
		c.put("b", 2)
		c.put("c", 3)
		if v, ok := c.get("a"); !ok || v != 1 {
			t.Fatalf("get(a) = %d, %v; want 1, true", v, ok)
		}
		c.put("d", 4)
		if _, ok := c.get("b"); ok {
			t.Error("expected b to be evicted")
		}
		for key, want := range map[string]int{"a": 1, "c": 3, "d": 4} {
			if v, ok := c.get(key); !ok || v != want {
				t.Errorf("get(%s) = %d, %v; want %d, true", key, v, ok, want)
			}
		}
	})

	t.Run("put overwrites and promotes", func(t *testing.T) {
		t.Parallel()
		c := newLRU[int, string](2)
		c.put(1, "one")
		c.put(2, "two")
		c.put(1, "uno")
		c.put(3, "three")
		if v, ok := c.get(1); !ok || v != "uno" {
			t.Errorf("get(1) = %q, %v; want uno, true", v, ok)
		}
		if _, ok := c.get(2); ok {
			t.Error("expected 2 to be evicted")
		}
		if c.len() != 2 {
			t.Errorf("len() = %d, want 2", c.len())
		}
	})

	t.Run("zero capacity holds one", func(t *testing.T) {
		t.Parallel()
		c := newLRU[string, int](0)
		c.put("x", 1)
		c.put("y", 2)
		if c.len() != 1 {
			t.Errorf("len() = %d, want 1", c.len())
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := newLRU[string, int](16)
		var wg sync.WaitGroup
		for g := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 200 {
					k := strconv.Itoa((g + i) % 32)
					c.put(k, i)
					c.get(k)
				}
			}()
		}
		wg.Wait()
		if c.len() > 16 {
			t.Errorf("len() = %d, exceeds capacity 16", c.len())
		}
	})
}

func BenchmarkVisibleWidth_ASCII(b *testing.B) {
	s := "This is a plain ASCII string for benchmarking"
	for b.Loop() {
		VisibleWidth(s)
	}
}

func BenchmarkVisibleWidth_Unicode(b *testing.B) {
	s := "\u4f60\u597d\u4e16\u754c Hello \U0001F30D"
	for b.Loop() {
		VisibleWidth(s)
	}
}
