package outline

import (
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// SelectCandidate picks the line's representative: largest font first, bold
// before regular on equal size, then earliest in extraction order.
func SelectCandidate(line VisualLine) (doctree.TextFragment, bool) {
	if len(line.Fragments) == 0 {
		return doctree.TextFragment{}, false
	}
	members := make([]doctree.TextFragment, len(line.Fragments))
	copy(members, line.Fragments)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].FontSize != members[j].FontSize {
			return members[i].FontSize > members[j].FontSize
		}
		return members[i].Bold && !members[j].Bold
	})
	return members[0], true
}

// SelectCandidates returns one candidate per line, preserving line order.
func SelectCandidates(lines []VisualLine) []doctree.TextFragment {
	out := make([]doctree.TextFragment, 0, len(lines))
	for _, l := range lines {
		if c, ok := SelectCandidate(l); ok {
			out = append(out, c)
		}
	}
	return out
}
