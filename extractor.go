package verba

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/verba/docx"
	"github.com/tsawler/verba/format"
)

// Extractor provides a fluent interface for extracting content from .docx
// packages. Configuration methods return a new Extractor, so a configured
// extractor can be stored and further configured without mutating the
// original.
type Extractor struct {
	// Source of the package. Exactly one of path or ra is set unless the
	// extractor wraps a caller-owned container.
	path string
	ra   io.ReaderAt
	size int64

	// Open container and whether this extractor is responsible for closing it.
	container     *docx.Container
	ownsContainer bool

	// Configuration
	options ExtractOptions

	// Error state from configuration (fail-fast pattern)
	err error
}

// =============================================================================
// Internal helpers
// =============================================================================

// clone creates a copy of the Extractor with copied options. The container
// handle and source are shared so a clone of an open extractor keeps working.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:          e.path,
		ra:            e.ra,
		size:          e.size,
		container:     e.container,
		ownsContainer: e.ownsContainer,
		options:       e.options.clone(),
		err:           e.err,
	}
}

// ensureContainer opens the package if it is not open yet.
func (e *Extractor) ensureContainer() error {
	if e.err != nil {
		return e.err
	}
	if e.container != nil {
		return nil
	}
	if e.path == "" && e.ra == nil {
		return errors.New("no input specified")
	}

	var (
		c   *docx.Container
		err error
	)
	if e.ra != nil {
		c, err = docx.OpenReader(e.ra, e.size)
	} else {
		c, err = docx.Open(e.path)
	}
	if err != nil {
		return e.describeError(err)
	}

	e.container = c
	e.ownsContainer = true
	return nil
}

// describeError adds the detected container format to invalid-archive and
// missing-document-part errors, so feeding a legacy .doc or a spreadsheet
// produces a telling message. The underlying error stays in the chain.
func (e *Extractor) describeError(err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, docx.ErrInvalidArchive) && !errors.Is(err, docx.ErrNoDocumentPart) {
		return err
	}

	var detected format.Format
	if e.ra != nil {
		detected, _ = format.DetectFromReader(e.ra, e.size)
	} else if e.path != "" {
		detected, _ = format.DetectFile(e.path)
	}

	switch detected {
	case format.DOC, format.XLSX, format.PPTX, format.ODT:
		return fmt.Errorf("%w; file looks like %s", err, detected)
	}
	return err
}

// =============================================================================
// Configuration methods (each returns a new Extractor)
// =============================================================================

// ExcludeHeaders drops header parts from text extraction.
//
// Example:
//
//	text, _, err := verba.Open("letter.docx").ExcludeHeaders().Text()
func (e *Extractor) ExcludeHeaders() *Extractor {
	newE := e.clone()
	newE.options.excludeHeaders = true
	return newE
}

// ExcludeFooters drops footer parts from text extraction.
//
// Example:
//
//	text, _, err := verba.Open("letter.docx").ExcludeFooters().Text()
func (e *Extractor) ExcludeFooters() *Extractor {
	newE := e.clone()
	newE.options.excludeFooters = true
	return newE
}

// ExcludeHeadersAndFooters drops both header and footer parts, leaving only
// the document body.
//
// Example:
//
//	text, _, err := verba.Open("letter.docx").ExcludeHeadersAndFooters().Text()
func (e *Extractor) ExcludeHeadersAndFooters() *Extractor {
	newE := e.clone()
	newE.options.excludeHeaders = true
	newE.options.excludeFooters = true
	return newE
}

// =============================================================================
// Terminal operations (execute extraction)
// =============================================================================

// Text extracts the document's plain text: header parts first, then the
// body, then footer parts, with surrounding whitespace trimmed. This is a
// terminal operation that closes an extractor-owned container.
//
// Example:
//
//	text, warnings, err := verba.Open("letter.docx").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	if err := e.ensureContainer(); err != nil {
		return "", nil, err
	}
	defer e.Close()

	text, err := e.container.TextWithOptions(e.options.docxOptions())
	if err != nil {
		return "", nil, e.describeError(err)
	}
	return text, nil, nil
}

// Pages extracts text split at explicit page breaks. The body contributes
// one segment per page; each header part contributes its own segment before
// the body's and each footer part one after. This is a terminal operation
// that closes an extractor-owned container.
//
// Example:
//
//	pages, _, err := verba.Open("report.docx").Pages()
//	for i, page := range pages {
//	    fmt.Printf("--- page %d ---\n%s\n", i+1, page)
//	}
func (e *Extractor) Pages() ([]string, []Warning, error) {
	if err := e.ensureContainer(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.container.PagesWithOptions(e.options.docxOptions())
	if err != nil {
		return nil, nil, e.describeError(err)
	}
	return pages, nil, nil
}

// Images lists the package's embedded images with their pixel dimensions.
// Image bytes are returned as stored, without re-encoding. A part whose
// bytes do not decode is still listed, with zero dimensions and a warning.
// This is a terminal operation that closes an extractor-owned container.
//
// Example:
//
//	images, warnings, err := verba.Open("letter.docx").Images()
func (e *Extractor) Images() ([]Image, []Warning, error) {
	if err := e.ensureContainer(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	images, err := e.container.Images()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for _, img := range images {
		if img.Format == "" {
			warnings = append(warnings, Warning{
				Code:    WarnImageUndecodable,
				Message: fmt.Sprintf("%s: image data does not decode", img.Part),
			})
		}
	}
	return images, warnings, nil
}

// ExtractImages writes every embedded image to dir, creating it if needed.
// Files are named by the part's base name; when several parts share a name
// the last one wins and a warning reports the collision. The returned paths
// follow package order and include one entry per part written. This is a
// terminal operation that closes an extractor-owned container.
//
// Example:
//
//	written, warnings, err := verba.Open("letter.docx").ExtractImages("img")
func (e *Extractor) ExtractImages(dir string) ([]string, []Warning, error) {
	if err := e.ensureContainer(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating image directory: %w", err)
	}

	written, err := e.container.ExtractImages(dir)
	if err != nil {
		return nil, nil, err
	}
	return written, overwriteWarnings(written), nil
}

// overwriteWarnings reports each destination path that was written more than
// once, in first-occurrence order.
func overwriteWarnings(written []string) []Warning {
	counts := make(map[string]int, len(written))
	for _, p := range written {
		counts[p]++
	}

	var warnings []Warning
	seen := make(map[string]bool)
	for _, p := range written {
		if counts[p] > 1 && !seen[p] {
			seen[p] = true
			warnings = append(warnings, Warning{
				Code:    WarnImageOverwritten,
				Message: fmt.Sprintf("%s: %d parts share this name; the last one wins", filepath.Base(p), counts[p]),
			})
		}
	}
	return warnings
}

// Metadata reads the package's core and extended document properties.
// Missing property parts leave the corresponding fields zero. This is a
// terminal operation that closes an extractor-owned container.
//
// Example:
//
//	meta, err := verba.Open("letter.docx").Metadata()
//	fmt.Println(meta.Title, meta.Creator)
func (e *Extractor) Metadata() (Metadata, error) {
	if err := e.ensureContainer(); err != nil {
		return Metadata{}, err
	}
	defer e.Close()

	return e.container.Metadata()
}

// Comments reads the document's review comments in part order. It returns
// nil when the package has none. This is a terminal operation that closes
// an extractor-owned container.
//
// Example:
//
//	comments, err := verba.Open("letter.docx").Comments()
//	for _, c := range comments {
//	    fmt.Printf("%s: %s\n", c.Author, c.Text)
//	}
func (e *Extractor) Comments() ([]Comment, error) {
	if err := e.ensureContainer(); err != nil {
		return nil, err
	}
	defer e.Close()

	return e.container.Comments()
}

// PartNames lists the package's entry names in stored order. This is a
// terminal operation that closes an extractor-owned container.
func (e *Extractor) PartNames() ([]string, error) {
	if err := e.ensureContainer(); err != nil {
		return nil, err
	}
	defer e.Close()

	return e.container.Parts(), nil
}

// Close releases an extractor-owned container. It is safe to call multiple
// times. A container supplied via FromContainer stays open for its owner.
func (e *Extractor) Close() error {
	if e.container == nil || !e.ownsContainer {
		return nil
	}
	err := e.container.Close()
	e.container = nil
	return err
}
