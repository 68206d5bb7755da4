// Package grapheme provides the cluster counting the column math is built
// on. A column is a count of grapheme clusters, not runes, so that
// combining marks and emoji sequences occupy one column each.
package grapheme

import "github.com/rivo/uniseg"

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}
