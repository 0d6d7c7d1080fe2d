package verba

import "strings"

// WarningCode identifies the kind of a non-fatal extraction warning.
type WarningCode string

const (
	// WarnImageOverwritten is reported when several package entries share a
	// base name, so earlier files written to the output directory were
	// overwritten by later ones.
	WarnImageOverwritten WarningCode = "image-overwritten"

	// WarnImageUndecodable is reported when an image part's bytes do not
	// decode in the format its extension announces. The part is still
	// listed and extracted verbatim.
	WarnImageUndecodable WarningCode = "image-undecodable"
)

// Warning describes a non-fatal condition encountered during extraction.
// Warnings never stop an operation; they accompany its result.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return "[" + string(w.Code) + "] " + w.Message
}

// FormatWarnings renders warnings as a newline-separated block suitable for
// logging. It returns the empty string when there are none.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
