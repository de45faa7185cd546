package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"
)

// Extractor turns raw document bytes into positioned text fragments.
// Fragments are returned in extraction order and only for page indexes below
// maxPages.
type Extractor interface {
	Extract(data []byte, filename string, maxPages int) ([]doctree.TextFragment, error)
}

// ErrUnsupportedFormat is returned when no extractor handles a document.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError reports a document that could not be read or parsed.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ForContent sniffs the document bytes and falls back to the filename
// extension for formats without a reliable signature, such as Markdown.
func ForContent(data []byte, filename string) (Extractor, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return &PDFExtractor{}, nil
	case mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return &DOCXExtractor{}, nil
	case mt.Is("text/html"):
		return &HTMLExtractor{}, nil
	}
	return ForFile(filename)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extract picks an extractor for the document and runs it. Every failure,
// including an unsupported format, comes back as an *ExtractionError.
func Extract(data []byte, filename string, maxPages int) ([]doctree.TextFragment, error) {
	ex, err := ForContent(data, filename)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Err: err}
	}
	frags, err := ex.Extract(data, filename, maxPages)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Err: err}
	}
	return frags, nil
}

// cleanText folds compatibility characters (ligatures, full-width forms) and
// collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
