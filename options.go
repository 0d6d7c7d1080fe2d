package verba

import "github.com/tsawler/verba/docx"

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// Layout filtering
	excludeHeaders bool
	excludeFooters bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		excludeHeaders: false,
		excludeFooters: false,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		excludeHeaders: o.excludeHeaders,
		excludeFooters: o.excludeFooters,
	}
}

// docxOptions converts the configuration to the form the docx package takes.
func (o ExtractOptions) docxOptions() docx.ExtractOptions {
	return docx.ExtractOptions{
		ExcludeHeaders: o.excludeHeaders,
		ExcludeFooters: o.excludeFooters,
	}
}
