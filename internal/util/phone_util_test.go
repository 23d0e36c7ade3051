package util

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "+998901234567", "+998901234567", true},
		{"no plus", "998901234567", "+998901234567", true},
		{"spaces", "+998 90 123 45 67", "+998901234567", true},
		{"dashes", "+998-90-123-45-67", "+998901234567", true},
		{"parens", "+998 (90) 123-45-67", "+998901234567", true},
		{"surrounding whitespace", "  +998901234567  ", "+998901234567", true},
		{"too short", "+99890123456", "", false},
		{"too long", "+9989012345678", "", false},
		{"foreign code", "+79001234567", "", false},
		{"letters", "+99890abc4567", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizePhone(tc.input)
			if ok != tc.ok {
				t.Fatalf("NormalizePhone(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
