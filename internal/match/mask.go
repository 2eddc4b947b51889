package match

import "strings"

// maskPlaceholder is what empty or whitespace-only text masks to, and the
// marker appended after the kept tokens.
const maskPlaceholder = "***"

// Mask redacts free text to a safe preview: the first keep
// whitespace-delimited tokens followed by the redaction marker. It is a
// pure function used to keep a counterpart's full title, description and
// location private until a claim establishes trust.
func Mask(text string, keep int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return maskPlaceholder
	}
	if keep < 1 {
		keep = 1
	}
	if keep > len(words) {
		keep = len(words)
	}
	return strings.Join(words[:keep], " ") + " " + maskPlaceholder
}
