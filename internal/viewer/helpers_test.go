// ABOUTME: Shared fixtures for viewer tests: image files on disk and wait helpers
// ABOUTME: Images are encoded with the standard library so tests need no binary fixtures

package viewer

import (
	goimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/kgpview/pkg/tui/terminal"
)

func solid(w, h int) *goimage.RGBA {
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, solid(w, h)); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, solid(w, h), nil); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitShown(t *testing.T, ch <-chan Shown) Shown {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an image to be shown")
		return Shown{}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// uploads counts image transmissions (first chunk of each) written to vt.
func uploads(vt *terminal.VirtualTerminal) int {
	n := 0
	for _, cmd := range vt.GraphicsCommands() {
		if strings.HasPrefix(cmd, "a=T,") {
			n++
		}
	}
	return n
}
