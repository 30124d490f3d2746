package handler

import "testing"

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		raw      string
		fallback int
		expected int
	}{
		{raw: "", fallback: 10, expected: 10},
		{raw: "3", fallback: 1, expected: 3},
		{raw: " 7 ", fallback: 1, expected: 7},
		{raw: "12abc", fallback: 1, expected: 12},
		{raw: "-4", fallback: 1, expected: -4},
		{raw: "+5", fallback: 1, expected: 5},
		{raw: "abc", fallback: 1, expected: 1},
		{raw: "-", fallback: 9, expected: 9},
		{raw: "2.9", fallback: 1, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parseLeadingInt(tt.raw, tt.fallback); got != tt.expected {
				t.Fatalf("parseLeadingInt(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}
