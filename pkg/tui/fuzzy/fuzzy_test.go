// ABOUTME: Tests for the fuzzy matching wrapper
// ABOUTME: Verifies match ranking and path filtering behavior

package fuzzy

import (
	"slices"
	"testing"
)

func TestFind_BasicMatch(t *testing.T) {
	t.Parallel()

	items := []string{"apple", "application", "banana", "apricot"}
	matches := Find("app", items)

	if len(matches) == 0 {
		t.Fatal("expected matches for 'app'")
	}
	for _, m := range matches {
		if m.Str == "banana" {
			t.Errorf("unexpected match %q", m.Str)
		}
	}
}

func TestFind_NoMatch(t *testing.T) {
	t.Parallel()

	items := []string{"cat", "dog", "fish"}
	matches := Find("zzz", items)

	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/photos/cat.png",
		"/photos/dog.jpg",
		"/cats/zebra.png",
		"/photos/catalog.webp",
	}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "empty pattern keeps all", pattern: "", want: paths},
		{name: "matches base name only", pattern: "cat", want: []string{"/photos/cat.png", "/photos/catalog.webp"}},
		{name: "extension", pattern: "jpg", want: []string{"/photos/dog.jpg"}},
		{name: "no match", pattern: "qqq", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Filter(tt.pattern, paths)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}
