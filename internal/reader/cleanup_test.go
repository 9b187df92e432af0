package reader

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "carriage returns",
			in:   "line one\r\nline two\rline three",
			want: "line one\nline two\nline three",
		},
		{
			name: "trailing whitespace stripped",
			in:   "Wings $8.99   \nFries $4.50\t",
			want: "Wings $8.99\nFries $4.50",
		},
		{
			name: "intra-line separators preserved",
			in:   "Chicken Wings  served with celery $12.99",
			want: "Chicken Wings  served with celery $12.99",
		},
		{
			name: "tab separator preserved",
			in:   "Pad Thai\trice noodles $13.50",
			want: "Pad Thai\trice noodles $13.50",
		},
		{
			name: "blank line runs collapsed",
			in:   "APPETIZERS\n\n\n\nWings $8.99",
			want: "APPETIZERS\n\nWings $8.99",
		},
		{
			name: "page markers removed",
			in:   "APPETIZERS\n--- page 2 ---\nWings $8.99",
			want: "APPETIZERS\n\nWings $8.99",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "\n\n  \nAPPETIZERS\n",
			want: "APPETIZERS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
