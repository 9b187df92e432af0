package textparse

import (
	"strings"
	"testing"

	"github.com/menulens/menulens/internal/allergen"
)

func TestAssembleSections(t *testing.T) {
	lines := []string{
		"APPETIZERS",
		"Chicken Wings - served with celery sticks $12.99",
		"",
		"MAINS",
		"Grilled Salmon - lemon butter, asparagus $24.00",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}

	if sections[0].Title != "APPETIZERS" {
		t.Errorf("sections[0].Title = %q, want APPETIZERS", sections[0].Title)
	}
	if sections[1].Title != "MAINS" {
		t.Errorf("sections[1].Title = %q, want MAINS", sections[1].Title)
	}
	for i, s := range sections {
		if len(s.Items) != 1 {
			t.Fatalf("sections[%d] has %d items, want 1", i, len(s.Items))
		}
		if s.Confidence != DefaultSectionConfidence {
			t.Errorf("sections[%d].Confidence = %v, want %v", i, s.Confidence, DefaultSectionConfidence)
		}
	}

	wings := sections[0].Items[0]
	if wings.Name != "Chicken Wings" {
		t.Errorf("item name = %q, want Chicken Wings", wings.Name)
	}
	if wings.Price == nil || wings.Price.Value != 12.99 || wings.Price.Currency != "USD" {
		t.Errorf("item price = %+v, want 12.99 USD", wings.Price)
	}
	if len(wings.AllergenWarnings) == 0 || wings.AllergenWarnings[0] != "celery" {
		t.Errorf("item warnings = %v, want [celery]", wings.AllergenWarnings)
	}
}

func TestAssembleSections_ConsecutiveHeaders(t *testing.T) {
	lines := []string{
		"APPETIZERS",
		"DESSERTS",
		"Chocolate Lava Cake - warm, with vanilla ice cream $9.00",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1 (empty draft must be dropped)", len(sections))
	}
	if sections[0].Title != "DESSERTS" {
		t.Errorf("Title = %q, want DESSERTS", sections[0].Title)
	}
}

func TestAssembleSections_TrailingEmptyHeader(t *testing.T) {
	lines := []string{
		"MAINS",
		"Grilled Salmon - lemon butter $24.00",
		"BEVERAGES",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(sections))
	}
	if sections[0].Title != "MAINS" {
		t.Errorf("Title = %q, want MAINS", sections[0].Title)
	}
}

func TestAssembleSections_Fallback(t *testing.T) {
	lines := []string{
		"grilled chicken sandwich with fries $11.99",
		"spaghetti carbonara, pancetta and egg $14.50",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(sections))
	}
	if sections[0].Title != "Menu Items" {
		t.Errorf("Title = %q, want Menu Items", sections[0].Title)
	}
	if sections[0].Confidence != FallbackSectionConfidence {
		t.Errorf("Confidence = %v, want %v", sections[0].Confidence, FallbackSectionConfidence)
	}
	if len(sections[0].Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(sections[0].Items))
	}
}

func TestAssembleSections_Empty(t *testing.T) {
	if got := AssembleSections(nil, nil); got != nil {
		t.Errorf("AssembleSections(nil) = %v, want nil", got)
	}
	if got := AssembleSections([]string{"", "  ", "\t"}, nil); got != nil {
		t.Errorf("AssembleSections(blank lines) = %v, want nil", got)
	}
}

func TestAssembleSections_ItemsBeforeHeaderGoToFallbackOnly(t *testing.T) {
	// An item line before any header is not attached to a later
	// section.
	lines := []string{
		"grilled chicken sandwich with fries $11.99",
		"DESSERTS",
		"Chocolate Lava Cake - warm, with vanilla ice cream $9.00",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(sections))
	}
	if sections[0].Title != "DESSERTS" {
		t.Errorf("Title = %q, want DESSERTS", sections[0].Title)
	}
	if len(sections[0].Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(sections[0].Items))
	}
}

func TestAssembleSections_DescriptionWarningsSubset(t *testing.T) {
	// An item's warnings come from scanning its whole line, so
	// re-scanning just the description can never surface a term the
	// item does not already carry.
	lines := []string{
		"APPETIZERS",
		"Pad Thai - rice noodles with peanuts $13.50",
		"Caesar Salad - romaine, parmesan cheese & eggs $10.00",
		"MAINS",
		"Grilled Salmon - lemon butter, asparagus $24.00",
		"Seafood Platter - shrimp, mussels and crab legs $32.00",
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}

	for _, section := range sections {
		for _, item := range section.Items {
			attached := map[string]bool{}
			for _, w := range item.AllergenWarnings {
				attached[w] = true
			}
			for _, term := range allergen.Scan(item.Description) {
				if !attached[term] {
					t.Errorf("item %q: description term %q missing from warnings %v",
						item.Name, term, item.AllergenWarnings)
				}
			}
		}
	}
}

func TestCleanSectionTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*** DESSERTS ***", "DESSERTS"},
		{"~ Mains ~", "Mains"},
		{"Soups   &   Salads", "Soups Salads"},
		{"APPETIZERS", "APPETIZERS"},
	}
	for _, tt := range tests {
		if got := CleanSectionTitle(tt.in); got != tt.want {
			t.Errorf("CleanSectionTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssembleSections_OrderPreserved(t *testing.T) {
	var lines []string
	titles := []string{"BREAKFAST", "LUNCH", "DINNER"}
	for _, title := range titles {
		lines = append(lines, title, strings.ToLower(title)+" special plate with sides $10.00")
	}

	sections := AssembleSections(lines, nil)
	if len(sections) != len(titles) {
		t.Fatalf("len(sections) = %d, want %d", len(sections), len(titles))
	}
	for i, title := range titles {
		if sections[i].Title != title {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, title)
		}
	}
}
