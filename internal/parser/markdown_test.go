package parser

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.
`
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		text string
		size float64
		bold bool
	}{
		{"Title", HeadingFontSize(1), true},
		{"Intro text.", BodyFontSize, false},
		{"Section A", HeadingFontSize(2), true},
		{"Section A content.", BodyFontSize, false},
		{"Subsection A1", HeadingFontSize(3), true},
		{"Subsection A1 content.", BodyFontSize, false},
	}
	if len(frags) != len(want) {
		t.Fatalf("expected %d fragments, got %d: %+v", len(want), len(frags), frags)
	}
	for i, w := range want {
		f := frags[i]
		if f.Text != w.text || f.FontSize != w.size || f.Bold != w.bold {
			t.Errorf("fragment %d = %+v, want %+v", i, f, w)
		}
		if f.Page != 0 {
			t.Errorf("fragment %d on page %d, want 0", i, f.Page)
		}
	}
}

func TestMarkdownExtractor_InlineFormatting(t *testing.T) {
	input := "## The `config` and **bold** parts\n"
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	if frags[0].Text != "The config and bold parts" {
		t.Errorf("Text = %q", frags[0].Text)
	}
}

func TestMarkdownExtractor_ParagraphNotDuplicated(t *testing.T) {
	input := "First line\nsecond line.\n"
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	if frags[0].Text != "First line second line." {
		t.Errorf("Text = %q", frags[0].Text)
	}
}

func TestMarkdownExtractor_ListItems(t *testing.T) {
	input := "- alpha\n- beta\n- gamma\n"
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d: %+v", len(frags), frags)
	}
	if frags[1].Text != "beta" {
		t.Errorf("second item = %q", frags[1].Text)
	}
}

func TestMarkdownExtractor_ThematicBreakStartsPage(t *testing.T) {
	input := `# One

---

# Two

---

---

# Three
`
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}
	for i, f := range frags {
		// Consecutive breaks do not leave empty pages.
		if f.Page != i {
			t.Errorf("%q on page %d, want %d", f.Text, f.Page, i)
		}
		if f.Y != frags[0].Y {
			t.Errorf("%q at y=%v, want top of page", f.Text, f.Y)
		}
	}
}

func TestMarkdownExtractor_MaxPages(t *testing.T) {
	input := "# One\n\n---\n\n# Two\n\n---\n\n# Three\n"
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || frags[0].Text != "One" {
		t.Errorf("expected only first page, got %+v", frags)
	}
}

func TestMarkdownExtractor_CodeBlock(t *testing.T) {
	input := "```\nfmt.Println(\"hi\")\n```\n"
	frags, err := (&MarkdownExtractor{}).Extract([]byte(input), "doc.md", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || !strings.Contains(frags[0].Text, "fmt.Println") {
		t.Errorf("code block fragment = %+v", frags)
	}
}
