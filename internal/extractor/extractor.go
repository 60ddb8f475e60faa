// Package extractor pulls raw text out of document resources. The PDF
// extractor is the primary path; DOCX, HTML and Markdown are accepted for
// guidance documents distributed in those formats. Extraction is
// jurisdiction-independent: dialect-specific cleanup happens later.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Page is the text of one page with its 1-indexed page number.
type Page struct {
	Text   string
	Number int
}

// Document is the raw extraction result: the concatenated text of all
// pages joined by a double-newline separator, plus the ordered page map
// used for page estimation.
type Document struct {
	FullText string
	Pages    []Page
}

// TotalPages returns the number of pages in the source document.
func (d *Document) TotalPages() int {
	return len(d.Pages)
}

// Extractor converts raw document bytes into text plus a page map.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this engine can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// singlePage wraps flattened text from a format without page structure.
func singlePage(text string) *Document {
	text = strings.TrimSpace(text)
	return &Document{
		FullText: text,
		Pages:    []Page{{Text: text, Number: 1}},
	}
}
