package allergen

import (
	"strings"
	"unicode/utf8"

	"github.com/menulens/menulens/internal/menu"
)

// DefaultAlertConfidence is the fixed confidence assigned to keyword
// matches. The matcher is a substring scan, not a calibrated model.
const DefaultAlertConfidence = 0.8

// contextRadius is how many characters of surrounding text are captured
// on each side of a document-wide allergen mention.
const contextRadius = 30

// vocabulary is the fixed set of allergen terms the matcher recognizes.
// Scan results preserve this order.
var vocabulary = []string{
	"peanuts", "tree nuts", "nuts", "dairy", "milk", "cheese", "butter", "cream",
	"eggs", "soy", "wheat", "gluten", "fish", "shellfish", "crustaceans",
	"sesame", "mustard", "celery", "lupin", "mollusks", "sulfites",
}

// highSeverity and mediumSeverity partition the vocabulary into risk
// tiers; everything else is low.
var (
	highSeverity   = map[string]bool{"peanuts": true, "tree nuts": true, "nuts": true, "shellfish": true}
	mediumSeverity = map[string]bool{"gluten": true, "dairy": true, "eggs": true}
)

// Scan returns the deduplicated allergen terms found in text as
// case-insensitive substrings, in vocabulary order.
func Scan(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// SeverityFor returns the risk tier for an allergen term.
func SeverityFor(term string) menu.Severity {
	term = strings.ToLower(term)
	switch {
	case highSeverity[term]:
		return menu.SeverityHigh
	case mediumSeverity[term]:
		return menu.SeverityMedium
	default:
		return menu.SeverityLow
	}
}

// ScanDocument scans the full document text and produces one alert per
// vocabulary term found anywhere in it. Each alert carries a context
// window around the first occurrence and, when possible, a reference to
// the first menu item whose own warnings include the term.
//
// The window is cut from the lowered text the match was found in;
// lowercasing can change byte lengths, so indexes into it must never
// touch the original string.
func ScanDocument(text string, sections []menu.Section) []menu.AllergenAlert {
	lower := strings.ToLower(text)
	var alerts []menu.AllergenAlert

	for _, term := range vocabulary {
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}

		alert := menu.AllergenAlert{
			Allergen:   term,
			Confidence: DefaultAlertConfidence,
			Context:    contextWindow(lower, idx, len(term)),
			Severity:   SeverityFor(term),
			MenuItemID: firstItemWithWarning(sections, term),
		}
		alerts = append(alerts, alert)
	}

	return alerts
}

// contextWindow cuts the surrounding text of a match, clamped to the
// string and snapped to rune boundaries so the window is valid UTF-8.
func contextWindow(text string, idx, matchLen int) string {
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + contextRadius
	if end > len(text) {
		end = len(text)
	}

	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	return strings.TrimSpace(text[start:end])
}

// firstItemWithWarning finds the first item, in detection order, whose
// warning list contains the term. Returns "" when none matches.
func firstItemWithWarning(sections []menu.Section, term string) string {
	for _, s := range sections {
		for _, item := range s.Items {
			for _, w := range item.AllergenWarnings {
				if w == term {
					return item.ID
				}
			}
		}
	}
	return ""
}
