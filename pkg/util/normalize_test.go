package util

import "testing"

func TestNormalizeCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"BIHAR", "Bihar"},
		{"bihar", "Bihar"},
		{"Bihar", "Bihar"},
		{"UTTAR PRADESH", "Uttar Pradesh"},
		{"andaman and nicobar islands", "Andaman And Nicobar Islands"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeCase(c.in); got != c.want {
			t.Errorf("NormalizeCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeCaseIdempotent(t *testing.T) {
	inputs := []string{"WEST BENGAL", "tamil nadu", "Delhi", "dadra and nagar haveli"}
	for _, in := range inputs {
		once := NormalizeCase(in)
		if twice := NormalizeCase(once); twice != once {
			t.Errorf("NormalizeCase not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
