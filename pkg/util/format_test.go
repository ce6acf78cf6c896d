package util

import "testing"

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth("2024-01"); got != "January 2024" {
		t.Errorf("FormatMonth(2024-01) = %q", got)
	}
	if got := FormatMonth("2024-09"); got != "September 2024" {
		t.Errorf("FormatMonth(2024-09) = %q", got)
	}
	if got := FormatMonth("garbage"); got != "garbage" {
		t.Errorf("FormatMonth(garbage) = %q, want input back", got)
	}
}

func TestFormatMonthShort(t *testing.T) {
	if got := FormatMonthShort("2024-12"); got != "Dec" {
		t.Errorf("FormatMonthShort(2024-12) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{45210, "45.2K"},
		{1500000, "1.5M"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
