package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 50, 50},
		{"42", 0, 42},
		{"0", 9, 0},
		{"-3", 9, -3},
		{"abc", 5, 5},
		{"4.2", 7, 7},
		{" 1", 7, 7}, // Atoi rejects whitespace
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
