// Package text extracts plain text and markdown reports.
//
// Bytes are decoded with a prioritised list of encodings: UTF-8 first,
// then Big5 (which also covers CP950), then Latin-1. Latin-1 maps every
// byte, so decoding never fails and no file is rejected for its encoding.
package text

import (
	"bytes"
	"context"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbackEncodings are tried in order when the input is not valid UTF-8.
// A candidate is accepted only if it decodes without replacement characters.
var fallbackEncodings = []encoding.Encoding{
	traditionalchinese.Big5,
}

// Extractor handles plain text and markdown files.
type Extractor struct{}

// New creates a new text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".markdown"}
}

// Extract decodes the file content to a string. Markdown is kept verbatim;
// its syntax characters are dropped by the FTS tokenizer anyway.
func (e *Extractor) Extract(_ context.Context, _ string, content []byte) (string, error) {
	return Decode(content), nil
}

// Decode converts raw bytes to a UTF-8 string using the encoding fallback chain.
func Decode(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content)
	}

	for _, enc := range fallbackEncodings {
		out, err := enc.NewDecoder().Bytes(content)
		if err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
			return string(out)
		}
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		// Unreachable for Latin-1; keep the lossy guarantee regardless.
		return string(bytes.ToValidUTF8(content, nil))
	}
	return string(out)
}
