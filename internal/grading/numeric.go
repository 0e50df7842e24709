package grading

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Free-text numeric answers arrive the way Swedish schoolchildren type them:
// "2,5 m", "1 000 kr", "1/2", "35%". ValidateNumberAnswer decides whether such
// a string is numerically equivalent to the stored correct answer. Units,
// currencies and percent signs are formatting only; they are stripped, never
// compared.

// Unit spellings map to one canonical short code per family so "5m", "5 meter"
// and "5 METERS" all strip to the same thing.
var unitAliases = map[string]string{
	"m": "m", "meter": "m", "meters": "m",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"l": "l", "liter": "l", "liters": "l",
	"h": "h", "timmar": "h", "timme": "h",
}

var currencyAliases = map[string]string{
	"kr": "kr", "kronor": "kr", "sek": "kr",
}

var (
	trailingWordRe   = regexp.MustCompile(`^(.*?)[ \t]*([A-Za-zåäöÅÄÖ]+)$`)
	leadingWordRe    = regexp.MustCompile(`^([A-Za-zåäöÅÄÖ]+)[ \t]*(.*)$`)
	fractionRe       = regexp.MustCompile(`^\s*(-?\d+)\s*/\s*(-?\d+)\s*$`)
	spaceGroupRe     = regexp.MustCompile(`(\d) (\d{3})`)
	decimalCommaRe   = regexp.MustCompile(`^(-?\d+),(\d{1,2})$`)
	coordinatePairRe = regexp.MustCompile(`^\(?\s*-?\d+\s*,\s*-?\d+\s*\)?$`)
)

// extractNumberAndUnit splits a trailing unit token off the numeric portion.
// The value keeps whatever decimal separator it had; only the unit is removed.
func extractNumberAndUnit(s string) (value, unit string) {
	s = strings.TrimSpace(s)
	if m := trailingWordRe.FindStringSubmatch(s); m != nil {
		if canon, ok := unitAliases[strings.ToLower(m[2])]; ok {
			return strings.TrimSpace(m[1]), canon
		}
	}
	return s, ""
}

// extractCurrency strips a currency marker in either position: "100kr",
// "100 kr", "kr100", "kr 100". All recognized spellings canonicalize to "kr".
func extractCurrency(s string) (value, currency string) {
	s = strings.TrimSpace(s)
	if m := trailingWordRe.FindStringSubmatch(s); m != nil {
		if canon, ok := currencyAliases[strings.ToLower(m[2])]; ok {
			return strings.TrimSpace(m[1]), canon
		}
	}
	if m := leadingWordRe.FindStringSubmatch(s); m != nil {
		if canon, ok := currencyAliases[strings.ToLower(m[1])]; ok {
			return strings.TrimSpace(m[2]), canon
		}
	}
	return s, ""
}

// parseFraction evaluates "<int>/<int>" with tolerated whitespace. A bare
// integer is not a fraction; callers handle that shape themselves.
func parseFraction(s string) (float64, bool) {
	m := fractionRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// cleanThousandSeparators rewrites Swedish (space-grouped) and English
// (comma-grouped) numbers into canonical dot-decimal form.
//
// The ambiguous case is a single trailing comma group: "3,50" is a decimal
// (two digits) while "3,500" is three thousand five hundred (three digits).
// A space before three digits is always a thousands group and is deleted.
// The function is idempotent.
func cleanThousandSeparators(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
	for spaceGroupRe.MatchString(s) {
		s = spaceGroupRe.ReplaceAllString(s, "$1$2")
	}
	switch {
	case strings.Contains(s, "."):
		// dot decimal already present, any comma is a thousands group
		s = strings.ReplaceAll(s, ",", "")
	case decimalCommaRe.MatchString(s):
		s = decimalCommaRe.ReplaceAllString(s, "$1.$2")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

// parseToNumber interprets a formatting-stripped answer string as a number.
// A trailing percent sign is presentation only: "35%" parses to 35, not 0.35.
func parseToNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}
	f, err := strconv.ParseFloat(cleanThousandSeparators(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

const (
	// floatNoise absorbs representation error only (0.1+0.2 vs 0.3).
	floatNoise = 1e-9
	// decimalSlack accepts a one-decimal rounding of the exact value,
	// e.g. 228.6 for 228.57 or a truncated 0.3333 for 1/3.
	decimalSlack = 0.05
)

// numbersEqual is the tolerant comparator. The policy branches on the
// reference value, not the submission: an integer correct answer must be
// matched exactly, while a decimal correct answer additionally accepts the
// nearest whole numbers and one-decimal roundings. The window never stretches
// past one whole unit.
func numbersEqual(correct, submitted float64) bool {
	if math.Abs(submitted-correct) <= floatNoise {
		return true
	}
	if isWhole(correct) {
		return false
	}
	if isWhole(submitted) && math.Abs(submitted-correct) < 1 {
		return true
	}
	return math.Abs(submitted-correct) <= decimalSlack
}

func isWhole(f float64) bool {
	return math.Abs(f-math.Round(f)) <= floatNoise
}

// ValidateNumberAnswer reports whether submitted is numerically equivalent to
// correct. Malformed input on either side degrades to false; this function
// never panics, so a garbage answer can never take down a request.
func ValidateNumberAnswer(correct, submitted string) bool {
	correct = strings.TrimSpace(correct)
	submitted = strings.TrimSpace(submitted)
	if correct == "" || submitted == "" {
		return false
	}

	// Legacy coordinate pairs like "(5,6)" predate decimal-comma handling
	// and must be matched as text before the comma is taken for a decimal
	// mark.
	if coordinatePairRe.MatchString(correct) {
		return stripCoordinate(correct) == stripCoordinate(submitted)
	}

	cn, ok := parseToNumber(stripMarkers(correct))
	if !ok {
		return false
	}
	sn, ok := parseToNumber(stripMarkers(submitted))
	if !ok {
		return false
	}
	return numbersEqual(cn, sn)
}

// stripMarkers removes a unit and then a currency token. The two sides of a
// comparison need not carry the same marker, or any marker at all.
func stripMarkers(s string) string {
	v, _ := extractNumberAndUnit(s)
	v, _ = extractCurrency(v)
	return v
}

var coordinateCleaner = strings.NewReplacer("(", "", ")", "", " ", "")

func stripCoordinate(s string) string {
	return coordinateCleaner.Replace(s)
}
