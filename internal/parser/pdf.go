package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor reads glyphs with their fonts and positions and joins them
// into line-segments.
type PDFExtractor struct{}

func (p *PDFExtractor) Extract(data []byte, filename string, maxPages int) (frags []doctree.TextFragment, err error) {
	// ledongthuc/pdf panics on many malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages > maxPages {
		numPages = maxPages
	}
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		frags = append(frags, lineSegments(page.Content().Text, i-1)...)
	}
	return frags, nil
}

// segment accumulates glyphs that belong to one line-segment.
type segment struct {
	text    strings.Builder
	sizeSum float64
	sized   int
	bold    bool
	y       float64
	lastX   float64
	endX    float64
}

const (
	baselineTolerance = 1.0 // points
	maxGlyphGap       = 2.0 // multiples of the font size
	wordGap           = 0.2 // multiples of the font size
)

func (s *segment) continues(g pdflib.Text) bool {
	if math.Abs(g.Y-s.y) > baselineTolerance {
		return false
	}
	if g.X+baselineTolerance < s.lastX {
		return false
	}
	return g.X-s.endX <= maxGlyphGap*glyphSize(g)
}

func (s *segment) add(g pdflib.Text) {
	if s.text.Len() > 0 && g.X-s.endX > wordGap*glyphSize(g) {
		if !strings.HasSuffix(s.text.String(), " ") && !strings.HasPrefix(g.S, " ") {
			s.text.WriteByte(' ')
		}
	}
	s.text.WriteString(g.S)
	if size := math.Abs(g.FontSize); size > 0 {
		s.sizeSum += size
		s.sized++
	}
	if isBoldFont(g.Font) {
		s.bold = true
	}
	s.lastX = g.X
	if end := g.X + math.Abs(g.W); end > s.endX {
		s.endX = end
	}
}

// fragment returns the reduced segment, or false when it has no text or no
// sized glyphs.
func (s *segment) fragment(page int) (doctree.TextFragment, bool) {
	text := cleanText(s.text.String())
	if text == "" || s.sized == 0 {
		return doctree.TextFragment{}, false
	}
	return doctree.TextFragment{
		Text:     text,
		FontSize: s.sizeSum / float64(s.sized),
		Bold:     s.bold,
		Page:     page,
		Y:        s.y,
	}, true
}

// lineSegments groups glyphs in drawing order. A new segment starts when the
// baseline moves, the pen jumps backwards, or the horizontal gap is wider
// than a couple of characters.
func lineSegments(glyphs []pdflib.Text, page int) []doctree.TextFragment {
	var out []doctree.TextFragment
	var cur *segment

	flush := func() {
		if cur == nil {
			return
		}
		if f, ok := cur.fragment(page); ok {
			out = append(out, f)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if cur != nil && !cur.continues(g) {
			flush()
		}
		if cur == nil {
			cur = &segment{y: g.Y, lastX: g.X, endX: g.X}
		}
		cur.add(g)
	}
	flush()
	return out
}

func glyphSize(g pdflib.Text) float64 {
	if s := math.Abs(g.FontSize); s > 0 {
		return s
	}
	return 10
}

func isBoldFont(name string) bool {
	return strings.Contains(strings.ToLower(name), "bold")
}
