package util

import "testing"

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		12.5:   "+12.50%",
		0:      "0.00%",
		-25:    "-25.00%",
		16.666: "+16.67%",
	}
	for in, want := range cases {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v)=%q want %q", in, got, want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-12345:   "-12,345",
		1234.5:   "1,234.5",
		100000.0: "100,000",
	}
	for in, want := range cases {
		if got := FormatQuantity(in); got != want {
			t.Errorf("FormatQuantity(%v)=%q want %q", in, got, want)
		}
	}
}
