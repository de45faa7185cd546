package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. h1-h6 become heading-size blocks, <hr>
// starts a new page.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(data []byte, filename string, maxPages int) ([]doctree.TextFragment, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	l := newLayout(maxPages)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if l.full() {
			return
		}
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				l.add(textContent(n), HeadingFontSize(level), true)
				return
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "hr":
				l.pageBreak()
				return
			case "p", "li", "td", "th", "blockquote", "pre", "dt", "dd", "figcaption":
				l.add(textContent(n), BodyFontSize, false)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return l.fragments(), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
			return
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
