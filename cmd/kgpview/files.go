// ABOUTME: Expands command-line arguments into the list of image files to show
// ABOUTME: Directories contribute their image files in name order; files are kept as given

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func isImageName(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// collectImages resolves args to image paths. A directory is scanned one
// level deep; an explicitly named file is kept whatever its extension.
// Duplicates keep their first position.
func collectImages(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() && isImageName(e.Name()) {
				names = append(names, e.Name())
			}
		}
		slices.Sort(names)
		for _, name := range names {
			add(filepath.Join(arg, name))
		}
	}
	return out, nil
}
