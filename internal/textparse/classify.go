package textparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sectionKeywords is the fixed vocabulary of section-title words. A
// line containing any of these (case-insensitive) is a header
// candidate.
var sectionKeywords = []string{
	"appetizers", "starters", "salads", "soups", "mains", "entrees", "entrées",
	"desserts", "beverages", "drinks", "wine", "beer", "cocktails", "sides",
	"breakfast", "lunch", "dinner", "brunch", "specials", "pasta", "pizza",
	"seafood", "meat", "vegetarian", "vegan",
}

const (
	maxHeaderLength   = 50
	minItemLength     = 10
	longItemThreshold = 20
)

// IsSectionHeader reports whether a trimmed, non-empty line looks like
// a section title: short, price-free, and either matching a known
// section keyword, written in ALL CAPS, or title-cased.
func IsSectionHeader(line string) bool {
	if utf8.RuneCountInString(line) >= maxHeaderLength {
		return false
	}
	if ContainsPrice(line) {
		return false
	}

	lower := strings.ToLower(line)
	hasKeyword := false
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}

	isAllCaps := line == strings.ToUpper(line) && utf8.RuneCountInString(line) > 2

	return hasKeyword || isAllCaps || isTitleCase(line)
}

// isTitleCase reports whether every whitespace-delimited word starts
// with a non-lowercase rune. Digits and punctuation count as
// non-lowercase, so "SOUPS 2" and "Wood-Fired Pizza" both qualify.
func isTitleCase(line string) bool {
	for _, word := range strings.Fields(line) {
		r, _ := utf8.DecodeRuneInString(word)
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// IsMenuItem reports whether a trimmed line looks like a dish entry:
// long enough to carry a name, and either priced, descriptive
// (comma/"with"/"served"), or simply long.
func IsMenuItem(line string) bool {
	if utf8.RuneCountInString(line) < minItemLength {
		return false
	}
	if ContainsPrice(line) {
		return true
	}
	if strings.Contains(line, ",") || strings.Contains(line, "with") || strings.Contains(line, "served") {
		return true
	}
	return utf8.RuneCountInString(line) > longItemThreshold
}
