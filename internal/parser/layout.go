package parser

import "github.com/dgallion1/docoutline/internal/doctree"

// Structured sources (DOCX, Markdown, HTML) carry heading semantics but no
// page geometry. They are laid out on synthetic pages so the same outline
// inference applies to them as to PDFs.
const (
	// BodyFontSize sits at the heading threshold so body text is never a
	// heading candidate.
	BodyFontSize = 8.0
	// TitleFontSize is used for explicit document titles.
	TitleFontSize = 28.0

	layoutTop    = 800.0
	layoutBottom = 40.0
	layoutStep   = 24.0
)

// headingSizes maps heading level 1..6 to a point size.
var headingSizes = [...]float64{24, 20, 16, 14, 12, 11}

// HeadingFontSize returns the synthetic size for a heading level, or
// BodyFontSize for anything outside 1..6.
func HeadingFontSize(level int) float64 {
	if level < 1 || level > len(headingSizes) {
		return BodyFontSize
	}
	return headingSizes[level-1]
}

// layout places blocks top to bottom on synthetic pages.
type layout struct {
	maxPages int
	page     int
	y        float64
	onPage   int
	frags    []doctree.TextFragment
}

func newLayout(maxPages int) *layout {
	return &layout{maxPages: maxPages, y: layoutTop}
}

// add places one block. Blocks are spaced wider than the line clustering
// radius so each becomes its own visual line.
func (l *layout) add(text string, size float64, bold bool) {
	text = cleanText(text)
	if text == "" || l.full() {
		return
	}
	l.frags = append(l.frags, doctree.TextFragment{
		Text:     text,
		FontSize: size,
		Bold:     bold,
		Page:     l.page,
		Y:        l.y,
	})
	l.onPage++
	l.y -= layoutStep
	if l.y < layoutBottom {
		l.pageBreak()
	}
}

// pageBreak starts a new page unless the current one is still empty.
func (l *layout) pageBreak() {
	if l.onPage == 0 {
		return
	}
	l.page++
	l.onPage = 0
	l.y = layoutTop
}

func (l *layout) full() bool {
	return l.page >= l.maxPages
}

func (l *layout) fragments() []doctree.TextFragment {
	return l.frags
}
