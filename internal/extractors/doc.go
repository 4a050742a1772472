// Package extractors provides implementations of the Extractor interface
// for the report formats snapfind indexes, plus the Registry that picks
// one by file extension and the whitespace normalisation applied to
// every extracted text before it is stored.
//
//   - text: .txt, .md, .markdown with encoding fallback
//   - pdf: text layer of PDF files (no OCR)
package extractors
