package coordinate

import "testing"

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		text string
		want Point
	}{
		{"0000N 00000E", Point{0, 0}},
		{"5131N 00006W", Point{51 + 31.0/60.0, -(0 + 6.0/60.0)}},
		{"2230S 04312E", Point{-(22 + 30.0/60.0), 43 + 12.0/60.0}},
		{"9000N 18000E", Point{90, 180}},
		{"9000S 18000W", Point{-90, -180}},
		{"5131n 00006w", Point{51 + 31.0/60.0, -(0 + 6.0/60.0)}},
		{"  5131N   00006W  ", Point{51 + 31.0/60.0, -(0 + 6.0/60.0)}},
	}

	for _, c := range cases {
		got, ok := Parse(c.text)
		if !ok {
			t.Errorf("Parse(%q) failed, want ok", c.text)
			continue
		}
		if !floatClose(got.Lat, c.want.Lat) || !floatClose(got.Lon, c.want.Lon) {
			t.Errorf("Parse(%q) = %+v, want %+v", c.text, got, c.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"5131N",
		"5131N 00006W extra",
		"9999N 99999E",
		"513 1N 00006W",
		"5161N 00006W",
		"5131X 00006W",
		"5131N 00006X",
		"513AN 00006W",
		"5131N 0000AW",
		"91 00N 00006W",
		"9100N 00006W",
		"0000N 18100E",
	}

	for _, text := range invalid {
		if _, ok := Parse(text); ok {
			t.Errorf("Parse(%q) succeeded, want failure", text)
		}
	}
}

func TestParse_BoundaryZero(t *testing.T) {
	got, ok := Parse("0000N 00000E")
	if !ok || got != (Point{0, 0}) {
		t.Fatalf("Parse(%q) = %+v, %v, want (0,0), true", "0000N 00000E", got, ok)
	}
}

func floatClose(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
