package money

import "testing"

func ptr(v float64) *float64 { return &v }

func TestSavings(t *testing.T) {
	cases := []struct {
		q    *float64
		alt  float64
		want string
	}{
		{ptr(20), 15, "5.00"},
		{ptr(18.99), 16.99, "2.00"},
		{ptr(0.3), 0.1, "0.20"},
		{ptr(10), 12.5, "-2.50"},
	}
	for _, c := range cases {
		got := Savings(c.q, c.alt)
		if got == nil || *got != c.want {
			t.Fatalf("Savings(%v,%v) = %v, want %s", *c.q, c.alt, got, c.want)
		}
	}
	if Savings(nil, 1) != nil {
		t.Fatalf("nil query price must give nil savings")
	}
}

func TestRoundAndParse(t *testing.T) {
	if Round2(16.985) != 16.99 {
		t.Fatalf("Round2 = %v", Round2(16.985))
	}
	v, err := Parse("24.50")
	if err != nil || v != 24.5 {
		t.Fatalf("Parse = %v, %v", v, err)
	}
	if _, err := Parse("n/a"); err == nil {
		t.Fatalf("expected parse error")
	}
}
