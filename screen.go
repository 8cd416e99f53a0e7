package screencheck

import (
	"strings"

	"github.com/rivo/uniseg"
)

// splitLines splits captured or expected text into lines. Line endings are
// normalized and trailing empty lines are dropped, so "a\nb\n\n" and "a\nb"
// yield the same lines.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// chars splits s into user-perceived characters (grapheme clusters), the unit
// in which line lengths and wildcard positions are counted.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// trimLines trims every line of s, then the block as a whole.
func trimLines(s string) string {
	lines := splitLines(s)
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
