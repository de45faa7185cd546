package parser

import (
	"bytes"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. ATX and setext
// headings become bold heading-size blocks; thematic breaks start a page.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(src []byte, filename string, maxPages int) ([]doctree.TextFragment, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	l := newLayout(maxPages)
	for n := doc.FirstChild(); n != nil && !l.full(); n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			l.add(extractText(node, src), HeadingFontSize(node.Level), true)
		case *ast.ThematicBreak:
			l.pageBreak()
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				l.add(extractText(item, src), BodyFontSize, false)
			}
		default:
			l.add(extractText(n, src), BodyFontSize, false)
		}
	}
	return l.fragments(), nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

// writeText prefers inline children; leaf blocks such as code blocks only
// carry raw lines.
func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			writeText(buf, c, src)
		}
	}
}
