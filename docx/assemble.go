package docx

import (
	"fmt"
	"regexp"
	"strings"
)

// documentPart is the mandatory main body part.
const documentPart = "word/document.xml"

// Header and footer parts carry an optional numeric suffix. Multiple
// matches are assembled in archive enumeration order, not sorted by suffix.
var (
	headerPattern = regexp.MustCompile(`^word/header[0-9]*\.xml$`)
	footerPattern = regexp.MustCompile(`^word/footer[0-9]*\.xml$`)
)

// ExtractOptions controls text assembly. The zero value includes everything.
type ExtractOptions struct {
	ExcludeHeaders bool
	ExcludeFooters bool
}

// Text returns the document's plain text: header parts, then the body, then
// footer parts, trimmed of surrounding whitespace once at the end.
func (c *Container) Text() (string, error) {
	return c.TextWithOptions(ExtractOptions{})
}

// TextWithOptions is Text with header/footer filtering.
func (c *Container) TextWithOptions(opts ExtractOptions) (string, error) {
	parts, err := c.assemble(false, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

// Pages returns the document's text segmented on page breaks. Each
// contributing part extends the sequence with its own segments; leading and
// trailing empty segments are dropped, then every remaining segment is
// trimmed in place. Internal empty segments are preserved.
func (c *Container) Pages() ([]string, error) {
	return c.PagesWithOptions(ExtractOptions{})
}

// PagesWithOptions is Pages with header/footer filtering.
func (c *Container) PagesWithOptions(opts ExtractOptions) ([]string, error) {
	segs, err := c.assemble(true, opts)
	if err != nil {
		return nil, err
	}
	// Empty ends are dropped before the per-segment trim, so a
	// whitespace-only edge segment survives as an empty string.
	segs = stripEmptyEnds(segs)
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}
	return segs, nil
}

// assemble walks the contributing parts in document order: headers in
// archive enumeration order, the mandatory body, then footers. Non-split
// mode yields one accumulated string per part; split mode yields each
// part's page segments.
func (c *Container) assemble(split bool, opts ExtractOptions) ([]string, error) {
	var out []string
	fold := func(name string) error {
		data, err := c.ReadPart(name)
		if err != nil {
			return err
		}
		if split {
			segs, err := partPages(data)
			if err != nil {
				return fmt.Errorf("part %s: %w", name, err)
			}
			out = append(out, segs...)
			return nil
		}
		text, err := partText(data)
		if err != nil {
			return fmt.Errorf("part %s: %w", name, err)
		}
		out = append(out, text)
		return nil
	}

	if !opts.ExcludeHeaders {
		for _, name := range c.Parts() {
			if headerPattern.MatchString(name) {
				if err := fold(name); err != nil {
					return nil, err
				}
			}
		}
	}

	if !c.Has(documentPart) {
		return nil, ErrNoDocumentPart
	}
	if err := fold(documentPart); err != nil {
		return nil, err
	}

	if !opts.ExcludeFooters {
		for _, name := range c.Parts() {
			if footerPattern.MatchString(name) {
				if err := fold(name); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

// stripEmptyEnds drops leading and trailing segments that are exactly the
// empty string. Internal empty segments stay.
func stripEmptyEnds(segs []string) []string {
	start := 0
	for start < len(segs) && segs[start] == "" {
		start++
	}
	end := len(segs)
	for end > start && segs[end-1] == "" {
		end--
	}
	return segs[start:end]
}
