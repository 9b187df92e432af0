package reader

import (
	"regexp"
	"strings"
)

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	pageMarker       = regexp.MustCompile(`(?m)^\s*-+\s*page\s+\d+\s*-*\s*$`)
)

// NormalizeText cleans engine output before parsing: carriage returns
// and page-number markers go away, trailing line whitespace is dropped,
// and blank-line runs collapse to a single blank line. Whitespace
// inside a line is left alone — the item parser treats double spaces
// and tabs as name/description separators.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageMarker.ReplaceAllString(strings.ToValidUTF8(text, ""), "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
