package calendarsync

import "testing"

func TestParseImportTitle(t *testing.T) {
	cases := []struct {
		title     string
		wantName  string
		wantPrice float64
		wantOK    bool
	}{
		{"TL Haircut 25", "Haircut", 25, true},
		{"tl Beard Trim 15.50", "Beard Trim", 15.50, true},
		{"TL  Fade  40", "Fade", 40, true},
		{"TL Buzz Cut 0.99", "Buzz Cut", 0.99, true},
		{"Lunch with Sam", "", 0, false},
		{"TL 25", "", 0, false},
		{"TL Fade 19.999", "", 0, false},
		{"TL Fade twenty", "", 0, false},
		{"TLFade 25", "", 0, false},
		{"Trimlyt: Haircut", "", 0, false},
		{"", "", 0, false},
	}
	for _, tc := range cases {
		name, price, ok := ParseImportTitle(tc.title)
		if ok != tc.wantOK || name != tc.wantName || price != tc.wantPrice {
			t.Errorf("ParseImportTitle(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tc.title, name, price, ok, tc.wantName, tc.wantPrice, tc.wantOK)
		}
	}
}
