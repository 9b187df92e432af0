package allergen

import (
	"reflect"
	"testing"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["milk","peanuts"]`, want: []string{"milk", "peanuts"}},
		{name: "comma separated", raw: "milk,peanuts", want: []string{"milk", "peanuts"}},
		{name: "comma separated with spaces", raw: " milk , peanuts ", want: []string{"milk", "peanuts"}},
		{name: "unknown ids dropped", raw: "milk,kryptonite,peanuts", want: []string{"milk", "peanuts"}},
		{name: "empty", raw: "", want: nil},
		{name: "blank", raw: "   ", want: nil},
		{name: "invalid json", raw: `["milk"`, want: nil},
		{name: "all unknown", raw: "foo,bar", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.raw)
			if !reflect.DeepEqual(IDs(got), tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("ParseSelection(%q) = %v, want ids %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestByID(t *testing.T) {
	a, ok := ByID("tree_nuts")
	if !ok {
		t.Fatal("ByID(\"tree_nuts\") ok = false, want true")
	}
	if a.Name != "Tree Nuts" {
		t.Errorf("Name = %q, want Tree Nuts", a.Name)
	}

	if _, ok := ByID("gluten"); ok {
		t.Error("ByID(\"gluten\") ok = true, want false (not a Big-9 id)")
	}
}

func TestBigNine_Size(t *testing.T) {
	if len(BigNine) != 9 {
		t.Errorf("len(BigNine) = %d, want 9", len(BigNine))
	}
}
