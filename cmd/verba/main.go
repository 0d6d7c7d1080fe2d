// Command verba extracts text and embedded images from Word (.docx) files.
//
// Usage:
//
//	verba document.docx                  print the document text
//	verba -p document.docx               split output at page breaks
//	verba -i img document.docx           also extract images into img/
//	verba --metadata document.docx       print document properties
//	verba --comments document.docx       print reviewer comments
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tsawler/verba/docx"
	"github.com/tsawler/verba/format"
	"github.com/tsawler/verba/ocr"
)

var version = "1.0.0"

type CLI struct {
	File string `arg:"" help:"Path to the .docx file." type:"existingfile"`

	Pages     bool   `short:"p" help:"Split output at page breaks, separated by form feed characters."`
	ImageDir  string `short:"i" name:"image-dir" placeholder:"DIR" help:"Extract embedded images into DIR, creating it if needed."`
	NoHeaders bool   `help:"Leave header parts out of the text."`
	NoFooters bool   `help:"Leave footer parts out of the text."`
	Metadata  bool   `help:"Print document properties instead of text."`
	Comments  bool   `help:"Print reviewer comments instead of text."`
	OCR       bool   `name:"ocr" help:"Recognize text in embedded images and print it after the document text (needs an OCR-enabled build)."`
	OCRLang   string `name:"ocr-lang" default:"eng" help:"Language for image text recognition."`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("verba"),
		kong.Description("Extract text and embedded images from Word (.docx) files."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(cli.run())
}

func (c *CLI) run() error {
	if err := c.checkFormat(); err != nil {
		return err
	}

	container, err := docx.Open(c.File)
	if err != nil {
		return err
	}
	defer container.Close()

	switch {
	case c.Metadata:
		return printMetadata(container)
	case c.Comments:
		return printComments(container)
	}

	opts := docx.ExtractOptions{
		ExcludeHeaders: c.NoHeaders,
		ExcludeFooters: c.NoFooters,
	}

	if c.Pages {
		pages, err := container.PagesWithOptions(opts)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(pages, "\f"))
	} else {
		text, err := container.TextWithOptions(opts)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}

	if c.ImageDir != "" {
		if err := os.MkdirAll(c.ImageDir, 0o755); err != nil {
			return fmt.Errorf("creating image directory: %w", err)
		}
		if _, err := container.ExtractImages(c.ImageDir); err != nil {
			return err
		}
	}

	if c.OCR {
		return c.recognizeImages(container)
	}
	return nil
}

// checkFormat rejects files that are recognizably another Office format
// before the zip layer produces a less helpful error.
func (c *CLI) checkFormat() error {
	detected, err := format.DetectFile(c.File)
	if err != nil {
		return nil
	}
	switch detected {
	case format.DOCX, format.ZIP, format.Unknown:
		return nil
	}
	return fmt.Errorf("%s is a %s file, not a Word document", c.File, detected)
}

func printMetadata(container *docx.Container) error {
	meta, err := container.Metadata()
	if err != nil {
		return err
	}

	fields := []struct {
		label string
		value string
	}{
		{"Title", meta.Title},
		{"Subject", meta.Subject},
		{"Creator", meta.Creator},
		{"Keywords", meta.Keywords},
		{"Description", meta.Description},
		{"Last modified by", meta.LastModifiedBy},
		{"Revision", meta.Revision},
		{"Created", meta.Created},
		{"Modified", meta.Modified},
		{"Application", meta.Application},
		{"App version", meta.AppVersion},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Printf("%s: %s\n", f.label, f.value)
		}
	}

	counts := []struct {
		label string
		value int
	}{
		{"Pages", meta.Pages},
		{"Words", meta.Words},
		{"Characters", meta.Characters},
		{"Paragraphs", meta.Paragraphs},
	}
	for _, f := range counts {
		if f.value != 0 {
			fmt.Printf("%s: %d\n", f.label, f.value)
		}
	}
	return nil
}

func printComments(container *docx.Container) error {
	comments, err := container.Comments()
	if err != nil {
		return err
	}

	for _, cm := range comments {
		author := cm.Author
		if author == "" {
			author = "unknown"
		}
		if cm.Date != "" {
			fmt.Printf("%s (%s):\n%s\n\n", author, cm.Date, cm.Text)
		} else {
			fmt.Printf("%s:\n%s\n\n", author, cm.Text)
		}
	}
	return nil
}

// recognizeImages runs OCR over every embedded image and prints whatever
// text it finds, labelled by part name.
func (c *CLI) recognizeImages(container *docx.Container) error {
	images, err := container.Images()
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}

	client, err := ocr.New()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.SetLanguage(c.OCRLang); err != nil {
		return err
	}

	for _, img := range images {
		text, err := client.RecognizeImage(img.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "verba: ocr: %s: %v\n", img.Part, err)
			continue
		}
		if text == "" {
			continue
		}
		fmt.Printf("\n[image %s]\n%s\n", img.Part, text)
	}
	return nil
}
