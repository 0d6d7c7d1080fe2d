package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// NamespaceWML is the WordprocessingML main namespace. Only elements in this
// namespace contribute text; everything else is traversed for its
// descendants.
const NamespaceWML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// partText converts one XML part into its accumulated text.
func partText(data []byte) (string, error) {
	segs, err := transformPart(data, false)
	if err != nil {
		return "", err
	}
	return segs[0], nil
}

// partPages converts one XML part into page segments: the text before each
// page break, in order, plus the possibly empty remainder as the last
// element. A part with no page breaks yields exactly one segment.
func partPages(data []byte) ([]string, error) {
	return transformPart(data, true)
}

func transformPart(data []byte, split bool) ([]string, error) {
	root, err := parsePart(data)
	if err != nil {
		return nil, err
	}
	w := &wmlWalker{split: split}
	w.walk(root)
	return append(w.segments, w.text.String()), nil
}

// parsePart parses one XML part and returns its root element.
func parsePart(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPart, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedPart)
	}
	return root, nil
}

// wmlWalker accumulates text over a pre-order, document-order walk of a
// WordprocessingML tree. In split mode a page-type break closes the current
// segment; every other break is a newline.
type wmlWalker struct {
	split    bool
	segments []string
	text     strings.Builder
}

func (w *wmlWalker) walk(el *etree.Element) {
	if el.NamespaceURI() == NamespaceWML {
		switch el.Tag {
		case "t":
			w.text.WriteString(el.Text())
		case "tab":
			w.text.WriteByte('\t')
		case "br":
			if w.split && wmlAttr(el, "type") == "page" {
				w.segments = append(w.segments, w.text.String())
				w.text.Reset()
			} else {
				w.text.WriteByte('\n')
			}
		case "cr":
			w.text.WriteByte('\n')
		case "p":
			// Paragraph markers land before the paragraph's own runs.
			w.text.WriteString("\n\n")
		}
	}
	for _, child := range el.ChildElements() {
		w.walk(child)
	}
}

// elementText flattens one element subtree with the same run, tab, break and
// paragraph rules used for whole parts.
func elementText(el *etree.Element) string {
	w := &wmlWalker{}
	w.walk(el)
	return w.text.String()
}

// wmlAttr returns the named attribute's value, tolerating both the
// unprefixed form and the element's own namespace prefix. An absent
// attribute is the empty string; the value is never read by position.
func wmlAttr(el *etree.Element, key string) string {
	if a := el.SelectAttr(key); a != nil {
		return a.Value
	}
	if el.Space != "" {
		if a := el.SelectAttr(el.Space + ":" + key); a != nil {
			return a.Value
		}
	}
	return ""
}
