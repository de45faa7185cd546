package outline

import (
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// VisualLine is a group of fragments on one page that share a text line.
type VisualLine struct {
	Fragments []doctree.TextFragment // Members in extraction order.
	Top       float64                // Highest baseline among members.
	Order     int                    // Discovery index within the page.
}

// FilterBodyText drops fragments at or below the minimum heading size.
func FilterBodyText(frags []doctree.TextFragment, minSize float64) []doctree.TextFragment {
	out := make([]doctree.TextFragment, 0, len(frags))
	for _, f := range frags {
		if f.FontSize > minSize {
			out = append(out, f)
		}
	}
	return out
}

// ClusterLines partitions one page's fragments into visual lines. Two
// fragments share a line when a chain of vertical gaps no larger than
// proximity connects them. On a single axis that is the same as merging
// neighbours after sorting by Y, which is what this does.
//
// Lines are returned top to bottom; lines with an equal Top keep discovery
// order. Every input fragment appears in exactly one line.
func ClusterLines(frags []doctree.TextFragment, proximity float64) []VisualLine {
	if len(frags) == 0 {
		return nil
	}

	idx := make([]int, len(frags))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return frags[idx[a]].Y < frags[idx[b]].Y
	})

	// label[i] is the line number of frags[i], counted in sweep order.
	label := make([]int, len(frags))
	line := 0
	for k := 1; k < len(idx); k++ {
		if frags[idx[k]].Y-frags[idx[k-1]].Y > proximity {
			line++
		}
		label[idx[k]] = line
	}

	// Number lines by first appearance in extraction order so Order is
	// stable across runs on identical input.
	order := make(map[int]int, line+1)
	var lines []VisualLine
	for i, f := range frags {
		n, ok := order[label[i]]
		if !ok {
			n = len(lines)
			order[label[i]] = n
			lines = append(lines, VisualLine{Top: f.Y, Order: n})
		}
		vl := &lines[n]
		vl.Fragments = append(vl.Fragments, f)
		if f.Y > vl.Top {
			vl.Top = f.Y
		}
	}

	sort.SliceStable(lines, func(a, b int) bool {
		if lines[a].Top != lines[b].Top {
			return lines[a].Top > lines[b].Top
		}
		return lines[a].Order < lines[b].Order
	})
	return lines
}
