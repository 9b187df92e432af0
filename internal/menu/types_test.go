package menu

import "testing"

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProcessedDataItems(t *testing.T) {
	data := ProcessedData{Sections: []Section{
		{Title: "A", Items: []Item{{Name: "one"}, {Name: "two"}}},
		{Title: "B", Items: []Item{{Name: "three"}}},
	}}

	items := data.Items()
	if len(items) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(items))
	}
	for i, want := range []string{"one", "two", "three"} {
		if items[i].Name != want {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, want)
		}
	}
}
