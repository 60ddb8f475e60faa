package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor pulls per-page plain text out of a PDF byte stream.
type PDFExtractor struct{}

// Extract reads the whole resource into memory and extracts every page.
// A page whose text extraction fails contributes an empty string but
// keeps its page number, so the page map stays aligned with the source
// document. Only an unreadable resource is an error.
func (p *PDFExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", filename, err)
	}

	numPages := reader.NumPage()
	pages := make([]Page, 0, numPages)
	texts := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
			// Extraction errors degrade to an empty page.
		}
		pages = append(pages, Page{Text: text, Number: i})
		texts = append(texts, text)
	}

	return &Document{
		FullText: strings.Join(texts, "\n\n"),
		Pages:    pages,
	}, nil
}
