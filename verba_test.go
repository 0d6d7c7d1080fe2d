package verba

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/verba/docx"
)

type entry struct {
	name string
	data []byte
}

func buildPackage(t *testing.T, entries []entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", e.name, err)
		}
		w.Write(e.data)
	}
	zw.Close()
	return buf.Bytes()
}

func writeDocx(t *testing.T, entries []entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, buildPackage(t, entries), 0644); err != nil {
		t.Fatalf("failed to write test package: %v", err)
	}
	return path
}

func bodyXML(content string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + content + `</w:body>
</w:document>`)
}

func headerXML(text string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>
</w:hdr>`)
}

func footerXML(text string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>
</w:ftr>`)
}

func paragraph(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func smallPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestOpen_NonExistent(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "nonexistent.docx")).Text()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestText(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/header1.xml", headerXML("Header")},
		{"word/document.xml", bodyXML(paragraph("Body"))},
		{"word/footer1.xml", footerXML("Footer")},
	})

	text, warnings, err := Open(path).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Text() warnings = %v, want none", warnings)
	}

	want := "Header\n\nBody\n\nFooter"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestTextWithExclusions(t *testing.T) {
	newPath := func(t *testing.T) string {
		return writeDocx(t, []entry{
			{"word/header1.xml", headerXML("Header")},
			{"word/document.xml", bodyXML(paragraph("Body"))},
			{"word/footer1.xml", footerXML("Footer")},
		})
	}

	text, _, err := Open(newPath(t)).ExcludeHeaders().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "Body\n\nFooter" {
		t.Errorf("ExcludeHeaders().Text() = %q, want %q", text, "Body\n\nFooter")
	}

	text, _, err = Open(newPath(t)).ExcludeFooters().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "Header\n\nBody" {
		t.Errorf("ExcludeFooters().Text() = %q, want %q", text, "Header\n\nBody")
	}

	text, _, err = Open(newPath(t)).ExcludeHeadersAndFooters().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "Body" {
		t.Errorf("ExcludeHeadersAndFooters().Text() = %q, want %q", text, "Body")
	}
}

func TestPages(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(`<w:p><w:r><w:t>One</w:t><w:br w:type="page"/><w:t>Two</w:t></w:r></w:p>`)},
	})

	pages, warnings, err := Open(path).Pages()
	if err != nil {
		t.Fatalf("Pages() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Pages() warnings = %v, want none", warnings)
	}

	want := []string{"One", "Two"}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("Pages() = %q, want %q", pages, want)
	}
}

func TestOpenReader(t *testing.T) {
	data := buildPackage(t, []entry{
		{"word/document.xml", bodyXML(paragraph("In memory"))},
	})

	text, _, err := OpenReader(bytes.NewReader(data), int64(len(data))).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "In memory" {
		t.Errorf("Text() = %q, want %q", text, "In memory")
	}
}

func TestFromContainer(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Shared"))},
	})

	c, err := docx.Open(path)
	if err != nil {
		t.Fatalf("docx.Open() error = %v", err)
	}
	defer c.Close()

	// Two terminal operations over the same caller-owned container.
	text, _, err := FromContainer(c).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "Shared" {
		t.Errorf("Text() = %q, want %q", text, "Shared")
	}

	names, err := FromContainer(c).PartNames()
	if err != nil {
		t.Fatalf("PartNames() error = %v", err)
	}
	if len(names) != 1 || names[0] != "word/document.xml" {
		t.Errorf("PartNames() = %v, want [word/document.xml]", names)
	}
}

func TestChainImmutability(t *testing.T) {
	base := Open("anything.docx")

	withHeaders := base.ExcludeHeaders()
	withFooters := base.ExcludeFooters()

	if base.options.excludeHeaders || base.options.excludeFooters {
		t.Error("base extractor should have no exclusions set")
	}
	if !withHeaders.options.excludeHeaders || withHeaders.options.excludeFooters {
		t.Error("withHeaders should exclude only headers")
	}
	if withFooters.options.excludeHeaders || !withFooters.options.excludeFooters {
		t.Error("withFooters should exclude only footers")
	}
}

func TestImages(t *testing.T) {
	pngData := smallPNG(t)

	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Body"))},
		{"word/media/image1.png", pngData},
	})

	images, warnings, err := Open(path).Images()
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Images() warnings = %v, want none", warnings)
	}
	if len(images) != 1 {
		t.Fatalf("Images() returned %d entries, want 1", len(images))
	}
	if images[0].Name != "image1.png" || images[0].Format != "png" {
		t.Errorf("images[0] = %+v, want image1.png decoded as png", images[0])
	}
	if !bytes.Equal(images[0].Data, pngData) {
		t.Error("images[0].Data differs from the stored bytes")
	}
}

func TestImages_UndecodableWarning(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML("")},
		{"word/media/broken.png", []byte("junk")},
	})

	images, warnings, err := Open(path).Images()
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("Images() returned %d entries, want 1", len(images))
	}
	if len(warnings) != 1 {
		t.Fatalf("Images() warnings = %v, want one", warnings)
	}
	if warnings[0].Code != WarnImageUndecodable {
		t.Errorf("warnings[0].Code = %q, want %q", warnings[0].Code, WarnImageUndecodable)
	}
	if !strings.Contains(warnings[0].Message, "word/media/broken.png") {
		t.Errorf("warnings[0].Message = %q, want part name in message", warnings[0].Message)
	}
}

func TestExtractImages(t *testing.T) {
	pngData := smallPNG(t)

	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML("")},
		{"word/media/image1.png", pngData},
	})

	// The directory does not exist yet; ExtractImages creates it.
	dir := filepath.Join(t.TempDir(), "out", "img")
	written, warnings, err := Open(path).ExtractImages(dir)
	if err != nil {
		t.Fatalf("ExtractImages() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ExtractImages() warnings = %v, want none", warnings)
	}

	want := []string{filepath.Join(dir, "image1.png")}
	if !reflect.DeepEqual(written, want) {
		t.Fatalf("ExtractImages() = %v, want %v", written, want)
	}

	got, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatalf("reading extracted image: %v", err)
	}
	if !bytes.Equal(got, pngData) {
		t.Error("extracted image differs from the stored bytes")
	}
}

func TestExtractImages_OverwriteWarning(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML("")},
		{"word/media/logo.png", smallPNG(t)},
		{"backup/logo.png", smallPNG(t)},
	})

	dir := t.TempDir()
	written, warnings, err := Open(path).ExtractImages(dir)
	if err != nil {
		t.Fatalf("ExtractImages() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("ExtractImages() = %v, want two writes", written)
	}
	if len(warnings) != 1 {
		t.Fatalf("ExtractImages() warnings = %v, want one", warnings)
	}
	if warnings[0].Code != WarnImageOverwritten {
		t.Errorf("warnings[0].Code = %q, want %q", warnings[0].Code, WarnImageOverwritten)
	}
	if !strings.Contains(warnings[0].Message, "logo.png") {
		t.Errorf("warnings[0].Message = %q, want file name in message", warnings[0].Message)
	}
}

func TestMetadata(t *testing.T) {
	core := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
 xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>My Document</dc:title>
  <dc:creator>Someone</dc:creator>
</cp:coreProperties>`)

	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Body"))},
		{"docProps/core.xml", core},
	})

	meta, err := Open(path).Metadata()
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if meta.Title != "My Document" {
		t.Errorf("Title = %q, want %q", meta.Title, "My Document")
	}
	if meta.Creator != "Someone" {
		t.Errorf("Creator = %q, want %q", meta.Creator, "Someone")
	}
}

func TestComments(t *testing.T) {
	comments := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:comments xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:comment w:id="0" w:author="Reviewer">
    <w:p><w:r><w:t>Check this figure.</w:t></w:r></w:p>
  </w:comment>
</w:comments>`)

	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Body"))},
		{"word/comments.xml", comments},
	})

	got, err := Open(path).Comments()
	if err != nil {
		t.Fatalf("Comments() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Comments() returned %d entries, want 1", len(got))
	}
	if got[0].Author != "Reviewer" || got[0].Text != "Check this figure." {
		t.Errorf("Comments()[0] = %+v", got[0])
	}
}

func TestPartNames(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/header2.xml", headerXML("Second")},
		{"word/document.xml", bodyXML("")},
		{"word/header1.xml", headerXML("First")},
	})

	names, err := Open(path).PartNames()
	if err != nil {
		t.Fatalf("PartNames() error = %v", err)
	}

	want := []string{"word/header2.xml", "word/document.xml", "word/header1.xml"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("PartNames() = %v, want %v", names, want)
	}
}

func TestErrorChain_MissingDocumentPart(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/header1.xml", headerXML("Only a header")},
	})

	_, _, err := Open(path).Text()
	if !errors.Is(err, docx.ErrNoDocumentPart) {
		t.Errorf("Text() error = %v, want docx.ErrNoDocumentPart", err)
	}
}

func TestErrorDescription_Spreadsheet(t *testing.T) {
	// A valid zip that is an XLSX, not a Word package.
	path := writeDocx(t, []entry{
		{"[Content_Types].xml", []byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)},
		{"xl/workbook.xml", []byte(`<workbook/>`)},
	})

	_, _, err := Open(path).Text()
	if !errors.Is(err, docx.ErrNoDocumentPart) {
		t.Fatalf("Text() error = %v, want docx.ErrNoDocumentPart", err)
	}
	if !strings.Contains(err.Error(), "XLSX") {
		t.Errorf("Text() error = %v, want XLSX mentioned", err)
	}
}

func TestErrorDescription_LegacyDoc(t *testing.T) {
	// OLE compound file magic, the signature of a legacy .doc.
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
	path := filepath.Join(t.TempDir(), "legacy.doc")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	_, _, err := Open(path).Text()
	if !errors.Is(err, docx.ErrInvalidArchive) {
		t.Fatalf("Text() error = %v, want docx.ErrInvalidArchive", err)
	}
	if !strings.Contains(err.Error(), "DOC") {
		t.Errorf("Text() error = %v, want DOC mentioned", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Body"))},
	})

	ext := Open(path)
	if err := ext.ensureContainer(); err != nil {
		t.Fatalf("opening: %v", err)
	}

	if err := ext.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
	if err := ext.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

func TestReopenAfterTerminal(t *testing.T) {
	path := writeDocx(t, []entry{
		{"word/document.xml", bodyXML(paragraph("Body"))},
	})

	ext := Open(path)

	first, _, err := ext.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	// The terminal closed the container; a second call reopens from path.
	second, _, err := ext.Text()
	if err != nil {
		t.Fatalf("Text() second call error = %v", err)
	}
	if first != second {
		t.Errorf("Text() differs across calls: %q then %q", first, second)
	}
}

func TestMust(t *testing.T) {
	result := Must("hello", nil)
	if result != "hello" {
		t.Errorf("expected 'hello', got %q", result)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must("", os.ErrNotExist)
}

func TestMustText(t *testing.T) {
	result := MustText("hello", []Warning{{Code: WarnImageUndecodable, Message: "x"}}, nil)
	if result != "hello" {
		t.Errorf("expected 'hello', got %q", result)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustText to panic on error")
		}
	}()
	MustText("", nil, os.ErrNotExist)
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Code: WarnImageOverwritten, Message: "logo.png: 2 parts share this name; the last one wins"},
		{Code: WarnImageUndecodable, Message: "word/media/broken.png: image data does not decode"},
	}
	got := FormatWarnings(warnings)
	want := "[image-overwritten] logo.png: 2 parts share this name; the last one wins\n" +
		"[image-undecodable] word/media/broken.png: image data does not decode"
	if got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}
