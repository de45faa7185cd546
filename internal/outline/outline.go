// Package outline infers a document title and heading hierarchy from
// positioned, styled text fragments.
package outline

import (
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// PageHeadings runs clustering, candidate selection and level assignment for
// a single page's fragments.
func PageHeadings(page []doctree.TextFragment, cfg Config) []doctree.OutlineEntry {
	cfg = cfg.withDefaults()
	filtered := FilterBodyText(page, cfg.MinFontSize)
	if len(filtered) == 0 {
		return nil
	}
	lines := ClusterLines(filtered, cfg.LineProximity)
	return AssignLevels(SelectCandidates(lines), cfg.HeadingLevels)
}

// Infer builds the outline for one document's fragments. Fragments on pages
// at or beyond cfg.MaxPages are ignored.
func Infer(frags []doctree.TextFragment, cfg Config) doctree.DocumentOutline {
	cfg = cfg.withDefaults()

	bounded := make([]doctree.TextFragment, 0, len(frags))
	for _, f := range frags {
		if f.Page >= 0 && f.Page < cfg.MaxPages {
			bounded = append(bounded, f)
		}
	}

	result := doctree.DocumentOutline{
		Title:   SelectTitle(bounded),
		Outline: []doctree.OutlineEntry{},
	}
	for _, page := range GroupByPage(bounded) {
		result.Outline = append(result.Outline, PageHeadings(page, cfg)...)
	}
	return result
}

// GroupByPage splits fragments by page index, pages ascending, keeping
// extraction order within each page.
func GroupByPage(frags []doctree.TextFragment) [][]doctree.TextFragment {
	byPage := make(map[int][]doctree.TextFragment)
	for _, f := range frags {
		byPage[f.Page] = append(byPage[f.Page], f)
	}
	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	out := make([][]doctree.TextFragment, 0, len(pages))
	for _, p := range pages {
		out = append(out, byPage[p])
	}
	return out
}
