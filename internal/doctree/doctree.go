package doctree

// TextFragment is one positioned, styled line-segment produced by an extractor.
type TextFragment struct {
	Text     string  // Non-empty, normalized text
	FontSize float64 // Mean glyph size in points
	Bold     bool    // True if any glyph run in the segment is bold
	Page     int     // 0-based page index
	Y        float64 // Baseline, increasing bottom to top
}

// OutlineEntry is one labeled heading in an inferred outline.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"` // 1-based
}

// DocumentOutline is the inferred title and heading list for one document.
type DocumentOutline struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}
