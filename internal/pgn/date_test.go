package pgn

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Unknown"},
		{"??", "Unknown"},
		{"????.??.??", "Unknown"},
		{"2023.04.12", "2023.04.12"},
		{"2023.??.??", "2023.01.01"},
		{"2023.4.2", "2023.04.02"},
		{"2023.13.40", "2023.01.01"},
		// Out-of-range years pass through untouched.
		{"1776.01.01", "1776.01.01"},
		{"2050.01.01", "2050.01.01"},
		// Not a three-part date; left as-is.
		{"sometime in spring", "sometime in spring"},
		{"2023-04-12", "2023-04-12"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
