// Package textparse is the menu-text structuring engine. It turns raw
// line-oriented text (OCR output or PDF text extraction) into ordered
// sections of menu items with prices, ingredients and allergen
// warnings, plus confidence scores for the extraction.
//
// The parsing is deliberately a rule-based heuristic pipeline: given
// the same input text it produces the same output. It does not attempt
// language understanding.
package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/menulens/menulens/internal/menu"
)

// pricePatterns is the fixed, ordered set of monetary surface forms.
// The first pattern with a structural match wins for a given fragment,
// so e.g. "$12.99" is claimed by the leading-dollar form before the
// trailing-dollar form can see the digits.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),        // $12.99, $12
	regexp.MustCompile(`(\d+(?:\.\d{2})?)\s*\$`),     // 12.99$, 12$
	regexp.MustCompile(`£(\d+(?:\.\d{2})?)`),         // £12.99
	regexp.MustCompile(`€(\d+(?:\.\d{2})?)`),         // €12.99
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*USD`), // 12.99 USD
}

// ExtractPrice finds the first monetary amount in a text fragment. The
// returned ok is false when no pattern matches; absence of a price is a
// normal outcome, not an error.
func ExtractPrice(text string) (menu.Price, bool) {
	for _, pattern := range pricePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}

		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}

		return menu.Price{
			Value:    value,
			Currency: inferCurrency(m[0]),
			RawText:  m[0],
		}, true
	}
	return menu.Price{}, false
}

// ContainsPrice reports whether any price pattern matches the line.
func ContainsPrice(line string) bool {
	for _, pattern := range pricePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// inferCurrency maps the matched substring to a currency code. USD is
// the default for dollar signs and bare "USD" suffixes.
func inferCurrency(rawText string) string {
	switch {
	case strings.Contains(rawText, "£"):
		return "GBP"
	case strings.Contains(rawText, "€"):
		return "EUR"
	default:
		return "USD"
	}
}
