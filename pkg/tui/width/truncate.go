// ABOUTME: Display-width truncation with an ellipsis, from the right or the left
// ABOUTME: Grapheme-aware via uniseg so clusters are never split

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// TruncateToWidth truncates s to at most maxWidth visible columns.
// If truncation occurs, the last visible character is replaced with ellipsis.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1 // Leave room for ellipsis
	i := 0
	for i < len(s) && col < target {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := graphemeWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	// Close any colour the kept prefix opened.
	if containsESC(s) {
		b.WriteString("\x1b[0m")
	}
	b.WriteString(ellipsis)
	return b.String()
}

// TruncateLeft keeps the end of s, dropping leading clusters and prefixing an
// ellipsis so the result fits maxWidth columns. s must not contain escapes.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	var clusters []string
	state := -1
	for rest := s; len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}

	col := 0
	start := len(clusters)
	for start > 0 {
		cw := graphemeWidth(clusters[start-1])
		if col+cw > maxWidth-1 {
			break
		}
		col += cw
		start--
	}
	return ellipsis + strings.Join(clusters[start:], "")
}
