// Package verba extracts plain text and embedded images from Word (.docx)
// packages.
//
// Basic usage:
//
//	text, warnings, err := verba.Open("letter.docx").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", verba.FormatWarnings(warnings))
//	}
//
// Split into page segments:
//
//	pages, _, err := verba.Open("report.docx").Pages()
//
// With options:
//
//	text, _, err := verba.Open("report.docx").
//	    ExcludeHeaders().
//	    ExcludeFooters().
//	    Text()
//
// For direct part access, the lower-level docx package is also available.
package verba

import (
	"io"

	"github.com/tsawler/verba/docx"
)

// Image, Metadata and Comment mirror the docx package types, so most callers
// only import verba.
type (
	Image    = docx.Image
	Metadata = docx.Metadata
	Comment  = docx.Comment
)

// Open opens a .docx file and returns an Extractor for fluent configuration.
// The returned Extractor is closed either explicitly via Close() or
// implicitly by a terminal operation like Text().
//
// Example:
//
//	text, warnings, err := verba.Open("letter.docx").Text()
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		options: defaultOptions(),
	}
}

// OpenReader creates an Extractor over an already-loaded package, such as a
// bytes.Reader of an uploaded file.
//
// Example:
//
//	data, _ := os.ReadFile("letter.docx")
//	text, _, err := verba.OpenReader(bytes.NewReader(data), int64(len(data))).Text()
func OpenReader(ra io.ReaderAt, size int64) *Extractor {
	return &Extractor{
		ra:      ra,
		size:    size,
		options: defaultOptions(),
	}
}

// FromContainer creates an Extractor from an already-open docx.Container.
// This is useful when one open package serves several operations. The caller
// keeps ownership and closes the container.
//
// Example:
//
//	c, err := docx.Open("letter.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer c.Close()
//	text, warnings, err := verba.FromContainer(c).Text()
func FromContainer(c *docx.Container) *Extractor {
	return &Extractor{
		container: c,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	meta := verba.Must(verba.Open("letter.docx").Metadata())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text(), Pages() or another
// warning-carrying terminal and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	text := verba.MustText(verba.Open("letter.docx").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
