package parser

import (
	"errors"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name string
		want Extractor
	}{
		{"report.pdf", &PDFExtractor{}},
		{"REPORT.PDF", &PDFExtractor{}},
		{"memo.docx", &DOCXExtractor{}},
		{"notes.md", &MarkdownExtractor{}},
		{"notes.markdown", &MarkdownExtractor{}},
		{"page.html", &HTMLExtractor{}},
		{"page.htm", &HTMLExtractor{}},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.name)
		if err != nil {
			t.Errorf("ForFile(%q): %v", tt.name, err)
			continue
		}
		if gotType, wantType := typeName(got), typeName(tt.want); gotType != wantType {
			t.Errorf("ForFile(%q) = %s, want %s", tt.name, gotType, wantType)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("data.csv")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestForContent_SniffsHTML(t *testing.T) {
	data := []byte("<!DOCTYPE html><html><body><h1>Hi</h1></body></html>")
	ex, err := ForContent(data, "upload.bin")
	if err != nil {
		t.Fatalf("ForContent: %v", err)
	}
	if _, ok := ex.(*HTMLExtractor); !ok {
		t.Errorf("expected HTMLExtractor, got %s", typeName(ex))
	}
}

func TestForContent_FallsBackToExtension(t *testing.T) {
	ex, err := ForContent([]byte("# Heading\n\nText.\n"), "readme.md")
	if err != nil {
		t.Fatalf("ForContent: %v", err)
	}
	if _, ok := ex.(*MarkdownExtractor); !ok {
		t.Errorf("expected MarkdownExtractor, got %s", typeName(ex))
	}
}

func TestExtract_UnsupportedWrapped(t *testing.T) {
	_, err := Extract([]byte("plain text"), "notes.txt", 50)
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected wrapped ErrUnsupportedFormat, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a/b/c.PDF") {
		t.Error("expected .PDF to be supported")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  spaced\tout \n text ", "spaced out text"},
		{"\ufb01nance", "finance"},
		{"\uff21\uff22\uff23", "ABC"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := cleanText(tt.in); got != tt.want {
			t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLayout_PlacesBlocksTopDown(t *testing.T) {
	l := newLayout(50)
	l.add("one", BodyFontSize, false)
	l.add("  ", BodyFontSize, false)
	l.add("two", BodyFontSize, false)

	frags := l.fragments()
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].Y != layoutTop || frags[1].Y != layoutTop-layoutStep {
		t.Errorf("y positions = %v, %v", frags[0].Y, frags[1].Y)
	}
}

func TestLayout_OverflowStartsPage(t *testing.T) {
	l := newLayout(50)
	perPage := 0
	for y := layoutTop; y >= layoutBottom; y -= layoutStep {
		perPage++
	}
	for i := 0; i < perPage+1; i++ {
		l.add("line", BodyFontSize, false)
	}

	frags := l.fragments()
	last := frags[len(frags)-1]
	if last.Page != 1 || last.Y != layoutTop {
		t.Errorf("overflow fragment = %+v, want top of page 1", last)
	}
	for _, f := range frags[:perPage] {
		if f.Page != 0 {
			t.Errorf("fragment on page %d, want 0", f.Page)
		}
	}
}

func TestLayout_StopsAtMaxPages(t *testing.T) {
	l := newLayout(1)
	l.add("kept", BodyFontSize, false)
	l.pageBreak()
	if !l.full() {
		t.Fatal("expected layout to be full after leaving the only page")
	}
	l.add("dropped", BodyFontSize, false)
	if len(l.fragments()) != 1 {
		t.Errorf("expected 1 fragment, got %d", len(l.fragments()))
	}
}

func TestHeadingFontSize(t *testing.T) {
	for level := 1; level < 6; level++ {
		if HeadingFontSize(level) <= HeadingFontSize(level+1) {
			t.Errorf("level %d size should exceed level %d", level, level+1)
		}
	}
	if HeadingFontSize(6) <= BodyFontSize {
		t.Error("smallest heading must be larger than body text")
	}
	if HeadingFontSize(0) != BodyFontSize || HeadingFontSize(7) != BodyFontSize {
		t.Error("out-of-range levels should map to body size")
	}
}

func typeName(e Extractor) string {
	switch e.(type) {
	case *PDFExtractor:
		return "PDFExtractor"
	case *DOCXExtractor:
		return "DOCXExtractor"
	case *MarkdownExtractor:
		return "MarkdownExtractor"
	case *HTMLExtractor:
		return "HTMLExtractor"
	}
	return "unknown"
}
