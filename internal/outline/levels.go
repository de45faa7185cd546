package outline

import (
	"fmt"
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// LevelMap maps a distinct font size to its heading label on one page.
type LevelMap map[float64]string

// BuildLevelMap ranks the distinct sizes among a page's candidates and labels
// the largest levels of them H1, H2, ... in descending order.
func BuildLevelMap(candidates []doctree.TextFragment, levels int) LevelMap {
	seen := make(map[float64]bool, len(candidates))
	var sizes []float64
	for _, c := range candidates {
		if !seen[c.FontSize] {
			seen[c.FontSize] = true
			sizes = append(sizes, c.FontSize)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	if len(sizes) > levels {
		sizes = sizes[:levels]
	}

	m := make(LevelMap, len(sizes))
	for i, s := range sizes {
		m[s] = fmt.Sprintf("H%d", i+1)
	}
	return m
}

// AssignLevels labels the page's candidates, dropping any whose size did not
// make the level map. Candidate order is preserved.
func AssignLevels(candidates []doctree.TextFragment, levels int) []doctree.OutlineEntry {
	lm := BuildLevelMap(candidates, levels)
	var entries []doctree.OutlineEntry
	for _, c := range candidates {
		level, ok := lm[c.FontSize]
		if !ok {
			continue
		}
		entries = append(entries, doctree.OutlineEntry{
			Level: level,
			Text:  c.Text,
			Page:  c.Page + 1,
		})
	}
	return entries
}
