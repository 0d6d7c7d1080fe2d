// Package docx reads WordprocessingML (.docx) packages: plain text assembled
// from header, body and footer parts, embedded images, document properties
// and comments.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// Container-related errors.
var (
	ErrInvalidArchive = errors.New("docx: invalid or corrupted archive")
	ErrPartNotFound   = errors.New("docx: part not found")
	ErrNoDocumentPart = errors.New("docx: missing word/document.xml")
	ErrMalformedPart  = errors.New("docx: malformed XML part")
)

// Container provides access to the parts of an open .docx package.
// It holds the archive for the whole extraction and is released with Close.
type Container struct {
	zr *zip.Reader
	rc *zip.ReadCloser
}

// Open opens a .docx package from a path. A file that is not a zip archive
// yields ErrInvalidArchive; file system errors pass through unchanged.
func Open(path string) (*Container, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
		}
		return nil, err
	}
	return &Container{zr: &rc.Reader, rc: rc}, nil
}

// OpenReader opens a .docx package from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	return &Container{zr: zr}, nil
}

// Close releases the underlying file handle. It is safe to call multiple
// times and is a no-op for a Container obtained from OpenReader.
func (c *Container) Close() error {
	if c.rc == nil {
		return nil
	}
	err := c.rc.Close()
	c.rc = nil
	return err
}

// Parts returns the part names in the archive's native enumeration order.
// The order is significant: header and footer assembly and image extraction
// follow it as-is, with no sorting by numeric suffix.
func (c *Container) Parts() []string {
	names := make([]string, 0, len(c.zr.File))
	for _, f := range c.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Has reports whether the archive contains a part with the given name.
func (c *Container) Has(name string) bool {
	return c.part(name) != nil
}

// ReadPart returns the raw bytes of the named part. Reading the same part
// again returns identical bytes. The error wraps ErrPartNotFound when the
// name is absent and ErrInvalidArchive when the entry cannot be decompressed.
func (c *Container) ReadPart(name string) ([]byte, error) {
	f := c.part(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidArchive, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidArchive, name, err)
	}
	return data, nil
}

// part returns the zip entry with the given name, or nil. If the archive
// carries duplicate names the first entry wins.
func (c *Container) part(name string) *zip.File {
	for _, f := range c.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
