package textparse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/menu"
)

// DefaultItemConfidence is the heuristic placeholder confidence for a
// parsed item. It is not a calibrated estimate.
const DefaultItemConfidence = 0.8

// maxIngredients caps the ingredient list to guard against pathological
// descriptions.
const maxIngredients = 10

// approxLineHeight approximates a text line's height for the position
// rectangle when no real layout geometry exists.
const (
	approxLineHeight = 20
	approxLineWidth  = 400
)

// separators are tried in order when splitting name from description.
var separators = []string{" - ", " – ", " — ", "  ", "\t"}

// ingredientStoplist filters tokens that describe preparation rather
// than ingredients.
var ingredientStoplist = []string{"served", "with", "and", "or", "choice", "side", "includes"}

var commaSplitPattern = regexp.MustCompile(`^([^,]+),(.+)$`)

// ParseItem parses a raw item line at the given 0-based position index
// into a menu item. Returns ok=false for lines that yield no usable
// name; malformed input never produces an error.
func ParseItem(line string, index int) (menu.Item, bool) {
	price, hasPrice := ExtractPrice(line)

	remainder := line
	if hasPrice {
		// Strip only the first occurrence; duplicated digits
		// elsewhere in the line stay put.
		remainder = strings.TrimSpace(strings.Replace(line, price.RawText, "", 1))
	}

	name, description := splitNameDescription(remainder)
	name = strings.TrimSpace(name)
	if name == "" {
		return menu.Item{}, false
	}

	item := menu.Item{
		ID:               uuid.New().String(),
		Name:             name,
		Description:      strings.TrimSpace(description),
		Ingredients:      extractIngredients(description),
		AllergenWarnings: allergen.Scan(line),
		Confidence:       DefaultItemConfidence,
		Position: menu.Position{
			Y:      float64(index * approxLineHeight),
			Width:  approxLineWidth,
			Height: approxLineHeight,
		},
	}
	if hasPrice {
		p := price
		item.Price = &p
	}
	return item, true
}

// splitNameDescription splits a price-free line into name and
// description. Separator candidates are tried in order; a candidate
// that would yield an empty name is skipped. When no separator splits
// the line, the first comma does; failing that, the whole line is the
// name.
func splitNameDescription(line string) (string, string) {
	for _, sep := range separators {
		if !strings.Contains(line, sep) {
			continue
		}
		parts := strings.Split(line, sep)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		return name, strings.TrimSpace(strings.Join(parts[1:], sep))
	}

	if m := commaSplitPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	return line, ""
}

// extractIngredients derives an ingredient list from a description:
// lowercase, split on comma/ampersand/plus, trim, drop short tokens and
// preparation words, cap the result.
func extractIngredients(description string) []string {
	if description == "" {
		return nil
	}

	parts := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return r == ',' || r == '&' || r == '+'
	})

	var ingredients []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= 2 {
			continue
		}
		if containsStopword(part) {
			continue
		}
		ingredients = append(ingredients, part)
		if len(ingredients) == maxIngredients {
			break
		}
	}
	return ingredients
}

func containsStopword(token string) bool {
	for _, stop := range ingredientStoplist {
		if strings.Contains(token, stop) {
			return true
		}
	}
	return false
}
