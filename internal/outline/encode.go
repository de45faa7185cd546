package outline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Encode writes the outline as indented JSON. Non-ASCII text is written as
// UTF-8, and HTML-significant characters are not escaped.
func Encode(w io.Writer, doc doctree.DocumentOutline) error {
	if doc.Outline == nil {
		doc.Outline = []doctree.OutlineEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return nil
}

// Decode reads an outline previously written by Encode.
func Decode(r io.Reader) (doctree.DocumentOutline, error) {
	var doc doctree.DocumentOutline
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return doctree.DocumentOutline{}, fmt.Errorf("decode outline: %w", err)
	}
	if doc.Outline == nil {
		doc.Outline = []doctree.OutlineEntry{}
	}
	return doc, nil
}
