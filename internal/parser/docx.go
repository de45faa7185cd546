package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Heading styles set the synthetic size;
// explicit run sizes and bold override it.
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(data []byte, filename string, maxPages int) ([]doctree.TextFragment, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	l := newLayout(maxPages)
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		docxParagraph(l, para)
		if l.full() {
			break
		}
	}
	return l.fragments(), nil
}

// runText accumulates one paragraph's text with a per-rune mean size.
type runText struct {
	text    strings.Builder
	sizeSum float64
	runes   int
	bold    bool
}

func (r *runText) write(s string, size float64, bold bool) {
	n := len([]rune(s))
	if n == 0 {
		return
	}
	r.text.WriteString(s)
	r.sizeSum += size * float64(n)
	r.runes += n
	r.bold = r.bold || bold
}

func (r *runText) flush(l *layout) {
	if r.runes > 0 {
		l.add(r.text.String(), r.sizeSum/float64(r.runes), r.bold)
	}
	*r = runText{}
}

func docxParagraph(l *layout, para *docx.Paragraph) {
	level := docxHeadingLevel(para)
	baseSize := HeadingFontSize(level)
	if level == titleLevel {
		baseSize = TitleFontSize
	}
	heading := level != 0

	var acc runText
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		size, bold := baseSize, heading
		if rp := run.RunProperties; rp != nil {
			if s, ok := halfPoints(rp.Size); ok {
				size = s
			}
			if rp.Bold != nil {
				bold = true
			}
		}
		for _, rc := range run.Children {
			switch v := rc.(type) {
			case *docx.Text:
				acc.write(v.Text, size, bold)
			case *docx.Tab:
				acc.write(" ", size, bold)
			case *docx.BarterRabbet:
				if v.Type == "page" {
					acc.flush(l)
					l.pageBreak()
				}
			}
		}
	}
	acc.flush(l)
}

// titleLevel marks the "Title" paragraph style.
const titleLevel = -1

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return titleLevel
	}
	if rest, ok := strings.CutPrefix(style, "heading"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 6 {
			return n
		}
	}
	return 0
}

// halfPoints converts a w:sz value, given in half-points, to points.
func halfPoints(sz *docx.Size) (float64, bool) {
	if sz == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(sz.Val, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v / 2, true
}
