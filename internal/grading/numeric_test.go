package grading

import (
	"fmt"
	"math"
	"testing"
)

func TestExtractNumberAndUnit(t *testing.T) {
	tests := []struct {
		in    string
		value string
		unit  string
	}{
		{"5m", "5", "m"},
		{"5 m", "5", "m"},
		{"5 meter", "5", "m"},
		{"5 METERS", "5", "m"},
		{"2,5 m", "2,5", "m"},
		{"3.5kg", "3.5", "kg"},
		{"2 kilogram", "2", "kg"},
		{"1,5 liter", "1,5", "l"},
		{"2 timmar", "2", "h"},
		{"2h", "2", "h"},
		{"100", "100", ""},
		{"100 kr", "100 kr", ""}, // currency is not a unit
		{"hello", "hello", ""},
	}
	for _, tc := range tests {
		value, unit := extractNumberAndUnit(tc.in)
		if value != tc.value || unit != tc.unit {
			t.Errorf("extractNumberAndUnit(%q) = (%q, %q), want (%q, %q)",
				tc.in, value, unit, tc.value, tc.unit)
		}
	}
}

func TestExtractCurrency(t *testing.T) {
	tests := []struct {
		in       string
		value    string
		currency string
	}{
		{"100kr", "100", "kr"},
		{"100 kr", "100", "kr"},
		{"kr100", "100", "kr"},
		{"kr 100", "100", "kr"},
		{"5 kronor", "5", "kr"},
		{"SEK 50", "50", "kr"},
		{"1 000 kr", "1 000", "kr"},
		{"3,50 kr", "3,50", "kr"},
		{"100", "100", ""},
		{"5 m", "5 m", ""}, // unit is not a currency
	}
	for _, tc := range tests {
		value, currency := extractCurrency(tc.in)
		if value != tc.value || currency != tc.currency {
			t.Errorf("extractCurrency(%q) = (%q, %q), want (%q, %q)",
				tc.in, value, currency, tc.value, tc.currency)
		}
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1/2", 0.5, true},
		{" 1 / 2 ", 0.5, true},
		{"1/3", 1.0 / 3.0, true},
		{"-3/4", -0.75, true},
		{"10/5", 2, true},
		{"1/0", 0, false},
		{"5", 0, false}, // bare integer is not a fraction
		{"a/b", 0, false},
		{"1.5/2", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseFraction(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseFraction(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseFraction_Quotients(t *testing.T) {
	for a := int64(-6); a <= 6; a++ {
		for b := int64(1); b <= 9; b++ {
			in := fmt.Sprintf("%d/%d", a, b)
			got, ok := parseFraction(in)
			if !ok {
				t.Fatalf("parseFraction(%q) not ok", in)
			}
			if want := float64(a) / float64(b); got != want {
				t.Errorf("parseFraction(%q) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestCleanThousandSeparators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 000", "1000"},
		{"1 000 000", "1000000"},
		{"3,50", "3.50"},   // two-digit trailing group: decimal
		{"3,500", "3500"},  // three-digit trailing group: thousands
		{"2,5", "2.5"},
		{"1,234,567", "1234567"},
		{"1,234.5", "1234.5"},
		{"1 000,50", "1000.50"},
		{"-2,5", "-2.5"},
		{"42", "42"},
		{"3.14", "3.14"},
	}
	for _, tc := range tests {
		got := cleanThousandSeparators(tc.in)
		if got != tc.want {
			t.Errorf("cleanThousandSeparators(%q) = %q, want %q", tc.in, got, tc.want)
		}
		// idempotence: cleaning canonical output changes nothing
		if again := cleanThousandSeparators(got); again != got {
			t.Errorf("cleanThousandSeparators not idempotent for %q: %q -> %q", tc.in, got, again)
		}
	}
}

func TestParseToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"  42  ", 42, true},
		{"007", 7, true},
		{"5.0", 5, true},
		{"-5", -5, true},
		{"-3.5", -3.5, true},
		{"2,5", 2.5, true},
		{"1 000", 1000, true},
		{"35%", 35, true},  // percent is formatting, not a transform
		{"35 %", 35, true},
		{"1/2", 0.5, true},
		{"1/0", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"%", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseToNumber(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseToNumber(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNumbersEqual(t *testing.T) {
	tests := []struct {
		correct   float64
		submitted float64
		want      bool
	}{
		// whole reference: exact only
		{228, 228, true},
		{228, 228.57, false},
		{5, 5, true},
		{5, 5.0001, false},
		{5, -5, false},
		{0.3, 0.1 + 0.2, true}, // representation noise
		// fractional reference: nearest whole numbers and one-decimal roundings
		{228.57, 228, true},
		{228.57, 229, true},
		{228.57, 228.6, true},
		{228.57, 230, false},
		{5.7, 6, true},
		{5.7, 5, true},
		{6.5, 5, false},
		{6.5, 7, true},
		{1.0 / 3.0, 0.3333, true},
		{2.5, -2.5, false},
		{0.5, -0.5, false},
	}
	for _, tc := range tests {
		if got := numbersEqual(tc.correct, tc.submitted); got != tc.want {
			t.Errorf("numbersEqual(%v, %v) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
		}
	}
}

func TestNumbersEqual_WindowIsBounded(t *testing.T) {
	// no submission further than one whole unit from a fractional reference
	// is ever accepted
	correct := 228.57
	for _, x := range []float64{226, 227, 230, 231, 226.5, 229.9, 500} {
		if math.Abs(x-correct) > 1 && numbersEqual(correct, x) {
			t.Errorf("numbersEqual(%v, %v) accepted outside the window", correct, x)
		}
	}
}

func TestValidateNumberAnswer(t *testing.T) {
	tests := []struct {
		correct   string
		submitted string
		want      bool
	}{
		{"1 000 kr", "1000", true},
		{"1000", "1 000 kr", true},
		{"35%", "35", true},
		{"1/2", "50%", false},
		{"228", "228.57", false},
		{"228.57", "228", true},
		{"228.57", "228.6", true},
		{"228.57", "230", false},
		{"5m", "5", true},
		{"5 meter", "5 m", true},
		{"2,5 m", "2.5", true},
		{"2,5 m", "2,5", true},
		{"100kr", "100", true},
		{"kr 100", "100 kr", true},
		{"1/2", "0.5", true},
		{"1/2", "2/4", true},
		{"1/3", "0.3333", true},
		{"-5", "-5", true},
		{"-5", "5", false},
		{"", "5", false},
		{"5", "", false},
		{"   ", "5", false},
		{"abc", "abc", false},
		{"5", "1/0", false},
	}
	for _, tc := range tests {
		if got := ValidateNumberAnswer(tc.correct, tc.submitted); got != tc.want {
			t.Errorf("ValidateNumberAnswer(%q, %q) = %v, want %v",
				tc.correct, tc.submitted, got, tc.want)
		}
	}
}

func TestValidateNumberAnswer_Coordinates(t *testing.T) {
	tests := []struct {
		correct   string
		submitted string
		want      bool
	}{
		{"(5,6)", "5,6", true},
		{"(5,6)", "(5,6)", true},
		{"5,6", "(5, 6)", true},
		{"( 5 , 6 )", "5,6", true},
		{"(5,6)", "5.6", false},
		{"(5,6)", "(6,5)", false},
		{"(-5,6)", "-5,6", true},
	}
	for _, tc := range tests {
		if got := ValidateNumberAnswer(tc.correct, tc.submitted); got != tc.want {
			t.Errorf("ValidateNumberAnswer(%q, %q) = %v, want %v",
				tc.correct, tc.submitted, got, tc.want)
		}
	}
}

func TestValidateNumberAnswer_Reflexive(t *testing.T) {
	for _, s := range []string{"0", "42", "-7", "3.5", "2,5", "1/2", "35%", "1 000 kr", "5 m"} {
		if !ValidateNumberAnswer(s, s) {
			t.Errorf("ValidateNumberAnswer(%q, %q) = false, want true", s, s)
		}
	}
}
