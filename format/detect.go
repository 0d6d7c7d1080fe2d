// Package format detects the container format of word-processing files, so
// callers can report precisely why a file is not a .docx package.
package format

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a detected container format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word (.docx) OOXML package.
	DOCX
	// DOC indicates a legacy Word binary (.doc) OLE compound file.
	DOC
	// XLSX indicates an Excel (.xlsx) OOXML package.
	XLSX
	// PPTX indicates a PowerPoint (.pptx) OOXML package.
	PPTX
	// ODT indicates an OpenDocument Text (.odt) package.
	ODT
	// ZIP indicates a zip archive with no recognized document markers.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ODT:
		return "ODT"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	case ODT:
		return ".odt"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension alone.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	case ".odt":
		return ODT
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading magic bytes. A zip signature alone cannot
// distinguish the OOXML and OpenDocument members; use DetectFromReader for
// that. Returns Unknown when the bytes decide nothing.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// OLE compound file (legacy .doc): D0 CF 11 E0
	if data[0] == 0xD0 && data[1] == 0xCF && data[2] == 0x11 && data[3] == 0xE0 {
		return DOC
	}

	// zip local file header: PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return ZIP
	}

	return Unknown
}

// DetectFromReader inspects content to determine the format, distinguishing
// the zip-based document families by their member names.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}

	switch DetectFromMagic(magic[:n]) {
	case DOC:
		return DOC, nil
	case ZIP:
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// DetectFile inspects the named file's content.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// detectZIPFormat classifies a zip archive by its members: the OpenDocument
// mimetype member first, then the OOXML content directories.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return ZIP, nil
	}

	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err != nil {
				continue
			}
			data := make([]byte, 256)
			n, _ := rc.Read(data)
			rc.Close()
			if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.text") {
				return ODT, nil
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}

	return ZIP, nil
}
