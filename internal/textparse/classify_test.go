package textparse

import "testing"

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "all caps keyword", line: "DESSERTS", want: true},
		{name: "lowercase keyword", line: "our desserts", want: true},
		{name: "all caps non keyword", line: "FROM THE GRILL", want: true},
		{name: "title case", line: "Wood-Fired Favorites", want: true},
		{name: "title case with digit word", line: "Combos 4 You", want: true},
		{name: "priced line", line: "Grilled Salmon with lemon butter $24.00", want: false},
		{name: "long descriptive line", line: "all of our dishes are prepared fresh daily using locally sourced ingredients", want: false},
		{name: "lowercase sentence", line: "ask your server about allergies", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSectionHeader(tt.line); got != tt.want {
				t.Errorf("IsSectionHeader(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsMenuItem(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "priced", line: "Chicken Wings $12.99", want: true},
		{name: "comma descriptive", line: "house salad, croutons", want: true},
		{name: "with descriptive", line: "served with fries", want: true},
		{name: "long line no signals", line: "slow roasted pork shoulder and polenta", want: true},
		{name: "too short", line: "Fries $4", want: false},
		{name: "short no signals", line: "Daily Bread", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMenuItem(tt.line); got != tt.want {
				t.Errorf("IsMenuItem(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
