package outline

import "github.com/dgallion1/docoutline/internal/doctree"

// SelectTitle returns the text of the largest fragment on the first page.
// It scans raw fragments, not heading candidates, so body-size text can win
// on a page with nothing larger.
func SelectTitle(frags []doctree.TextFragment) string {
	var best *doctree.TextFragment
	for i := range frags {
		f := &frags[i]
		if f.Page != 0 {
			continue
		}
		if best == nil || f.FontSize > best.FontSize {
			best = f
		}
	}
	if best == nil {
		return UntitledDocument
	}
	return best.Text
}
