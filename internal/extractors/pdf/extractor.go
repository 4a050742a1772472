// Package pdf extracts the machine-readable text layer of PDF reports.
//
// It uses github.com/ledongthuc/pdf, a pure Go reader. No OCR is attempted:
// scanned PDFs without a text layer extract as empty text and are skipped
// by the indexer.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrMalformed indicates the PDF could not be parsed.
var ErrMalformed = errors.New("malformed pdf")

// Extractor reads the text layer of PDF files.
type Extractor struct {
	maxPages int
}

// New creates a PDF extractor. maxPages > 0 ignores pages after the cutoff.
func New(maxPages int) *Extractor {
	if maxPages < 0 {
		maxPages = 0
	}
	return &Extractor{maxPages: maxPages}
}

// MaxPages returns the page cutoff (0 = all pages).
func (e *Extractor) MaxPages() int {
	return e.maxPages
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract returns the text of each page in order, joined by newlines.
func (e *Extractor) Extract(ctx context.Context, _ string, content []byte) (string, error) {
	reader, err := openReader(content)
	if err != nil {
		return "", err
	}

	count := reader.NumPage()
	if e.maxPages > 0 && count > e.maxPages {
		count = e.maxPages
	}

	pages := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(reader, i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// openReader parses the document structure. The parser panics on some
// malformed inputs, so panics are converted to ErrMalformed.
func openReader(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	reader, err = pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return reader, nil
}

func pageText(reader *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
