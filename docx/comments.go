package docx

import (
	"fmt"
	"strings"
)

// commentsPart holds reviewer comments. Optional.
const commentsPart = "word/comments.xml"

// Comment is one reviewer comment. Date keeps the W3CDTF string the package
// stores.
type Comment struct {
	ID       string
	Author   string
	Initials string
	Date     string
	Text     string
}

// Comments returns the document's comments in document order, or nil when
// the package carries none. Comment bodies run through the same paragraph,
// tab and break rules as the main text, then get trimmed. Comments never
// appear in Text or Pages output.
func (c *Container) Comments() ([]Comment, error) {
	if !c.Has(commentsPart) {
		return nil, nil
	}
	data, err := c.ReadPart(commentsPart)
	if err != nil {
		return nil, err
	}
	root, err := parsePart(data)
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", commentsPart, err)
	}

	var comments []Comment
	for _, el := range root.ChildElements() {
		if el.Tag != "comment" || el.NamespaceURI() != NamespaceWML {
			continue
		}
		comments = append(comments, Comment{
			ID:       wmlAttr(el, "id"),
			Author:   wmlAttr(el, "author"),
			Initials: wmlAttr(el, "initials"),
			Date:     wmlAttr(el, "date"),
			Text:     strings.TrimSpace(elementText(el)),
		})
	}
	return comments, nil
}
