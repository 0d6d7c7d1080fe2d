package docx

import (
	"fmt"
	"strconv"
	"strings"
)

// Document property parts. Both are optional.
const (
	corePart = "docProps/core.xml"
	appPart  = "docProps/app.xml"
)

// Metadata holds document properties from docProps/core.xml and
// docProps/app.xml. Fields are zero when the part or the property is absent.
// Created and Modified keep the W3CDTF strings the package stores.
type Metadata struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Revision       string
	Created        string
	Modified       string

	Application string
	AppVersion  string
	Pages       int
	Words       int
	Characters  int
	Paragraphs  int
}

// Metadata reads the document properties. Absent parts contribute zero
// values without error; a malformed present part fails.
func (c *Container) Metadata() (Metadata, error) {
	var meta Metadata

	if c.Has(corePart) {
		data, err := c.ReadPart(corePart)
		if err != nil {
			return Metadata{}, err
		}
		root, err := parsePart(data)
		if err != nil {
			return Metadata{}, fmt.Errorf("part %s: %w", corePart, err)
		}
		for _, el := range root.ChildElements() {
			switch el.Tag {
			case "title":
				meta.Title = el.Text()
			case "subject":
				meta.Subject = el.Text()
			case "creator":
				meta.Creator = el.Text()
			case "keywords":
				meta.Keywords = el.Text()
			case "description":
				meta.Description = el.Text()
			case "lastModifiedBy":
				meta.LastModifiedBy = el.Text()
			case "revision":
				meta.Revision = el.Text()
			case "created":
				meta.Created = el.Text()
			case "modified":
				meta.Modified = el.Text()
			}
		}
	}

	if c.Has(appPart) {
		data, err := c.ReadPart(appPart)
		if err != nil {
			return Metadata{}, err
		}
		root, err := parsePart(data)
		if err != nil {
			return Metadata{}, fmt.Errorf("part %s: %w", appPart, err)
		}
		for _, el := range root.ChildElements() {
			switch el.Tag {
			case "Application":
				meta.Application = el.Text()
			case "AppVersion":
				meta.AppVersion = el.Text()
			case "Pages":
				meta.Pages = atoiLenient(el.Text())
			case "Words":
				meta.Words = atoiLenient(el.Text())
			case "Characters":
				meta.Characters = atoiLenient(el.Text())
			case "Paragraphs":
				meta.Paragraphs = atoiLenient(el.Text())
			}
		}
	}

	return meta, nil
}

// atoiLenient parses a decimal count, zero on anything else.
func atoiLenient(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
