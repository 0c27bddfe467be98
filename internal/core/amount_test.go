package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLenientAmount(t *testing.T) {
	cases := []struct {
		in    string
		set   bool
		value string
		valid bool
	}{
		{"", false, "0", true},
		{"   ", false, "0", true},
		{"100", true, "100", true},
		{" 12.50 ", true, "12.5", true},
		{"0", true, "0", true},
		{"-3", true, "-3", false},
		{"12abc", true, "12", false},
		{"abc", true, "0", false},
	}
	for _, tc := range cases {
		a := LenientAmount(tc.in)
		if a.IsSet() != tc.set {
			t.Fatalf("%q: set=%v want %v", tc.in, a.IsSet(), tc.set)
		}
		if !a.Value().Equal(decimal.RequireFromString(tc.value)) {
			t.Fatalf("%q: value=%s want %s", tc.in, a.Value(), tc.value)
		}
		if (a.Validate() == nil) != tc.valid {
			t.Fatalf("%q: validate=%v want valid=%v", tc.in, a.Validate(), tc.valid)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if a, err := ParseAmount("99.99"); err != nil || a.String() != "99.99" {
		t.Fatalf("unexpected %v %v", a, err)
	}
	if a, err := ParseAmount(""); err != nil || a.IsSet() {
		t.Fatalf("blank should be absent: %v %v", a, err)
	}
	if _, err := ParseAmount("1,5"); err == nil {
		t.Fatalf("expected error for comma separated value")
	}
}

func TestAmountJSON(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{`null`, `null`},
		{`""`, `null`},
		{`"50"`, `"50"`},
		{`50.25`, `"50.25"`},
		{`"n/a"`, `"n/a"`},
	}
	for _, tc := range cases {
		var a Amount
		if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		out, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if string(out) != tc.out {
			t.Fatalf("%s: got %s want %s", tc.in, out, tc.out)
		}
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"110", "₹110.00"},
		{"70.5", "₹70.50"},
		{"1234.567", "₹1,234.57"},
		{"0", "₹0.00"},
	}
	for _, tc := range cases {
		if got := FormatINR(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("FormatINR(%s) = %q want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatFixed(decimal.RequireFromString("60")); got != "60.00" {
		t.Fatalf("FormatFixed = %q", got)
	}
}
