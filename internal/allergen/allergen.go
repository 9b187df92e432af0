// Package allergen holds the fixed allergen reference data and the
// keyword matcher that scans menu text for allergen mentions.
package allergen

import (
	"encoding/json"
	"strings"
)

// Allergen identifies one of the Big-9 allergens. The set is fixed
// reference data; instances are never created at runtime.
type Allergen struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BigNine is the set of nine major food allergens subject to FDA
// disclosure rules.
var BigNine = []Allergen{
	{ID: "milk", Name: "Milk"},
	{ID: "eggs", Name: "Eggs"},
	{ID: "fish", Name: "Fish"},
	{ID: "shellfish", Name: "Shellfish"},
	{ID: "tree_nuts", Name: "Tree Nuts"},
	{ID: "peanuts", Name: "Peanuts"},
	{ID: "wheat", Name: "Wheat"},
	{ID: "soybeans", Name: "Soybeans"},
	{ID: "sesame", Name: "Sesame"},
}

// ByID returns the Big-9 allergen with the given id.
func ByID(id string) (Allergen, bool) {
	for _, a := range BigNine {
		if a.ID == id {
			return a, true
		}
	}
	return Allergen{}, false
}

// ParseSelection resolves a diner's allergen selection into Allergen
// values. The raw input may arrive in several shapes:
//
//  1. a JSON array string: `["milk","peanuts"]`
//  2. a comma-separated string: "milk,peanuts"
//
// Identifiers that do not resolve against the Big-9 list are ignored,
// so the result never contains gaps.
func ParseSelection(raw string) []Allergen {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var ids []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil
		}
	} else {
		ids = strings.Split(raw, ",")
	}
	return FromIDs(ids)
}

// FromIDs resolves identifiers against the Big-9 list, dropping any
// that are unknown.
func FromIDs(ids []string) []Allergen {
	var out []Allergen
	for _, id := range ids {
		if a, ok := ByID(strings.TrimSpace(id)); ok {
			out = append(out, a)
		}
	}
	return out
}

// IDs returns the ids of the given allergens in order.
func IDs(allergens []Allergen) []string {
	ids := make([]string, len(allergens))
	for i, a := range allergens {
		ids[i] = a.ID
	}
	return ids
}
