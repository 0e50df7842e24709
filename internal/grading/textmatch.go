package grading

import (
	"strings"
	"unicode"
)

// foldText lowercases, drops punctuation and collapses runs of whitespace so
// "Stockholm!" and " stockholm " compare equal.
func foldText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPunct(r):
			// dropped
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// editDistance is plain Levenshtein over runes, single-row rolling buffer.
func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			sub := diag
			if ar[i-1] != br[j-1] {
				sub++
			}
			diag = row[j]
			if ins := row[j] + 1; ins < sub {
				sub = ins
			}
			if del := row[j-1] + 1; del < sub {
				sub = del
			}
			row[j] = sub
		}
	}
	return row[len(br)]
}
