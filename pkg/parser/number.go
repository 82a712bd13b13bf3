package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeAmount converts a free-form numeric string with mixed '.'/','
// grouping and decimal separators into a float64. The steps run in a fixed
// order:
//
//  1. drop '.' grouping marks (3-digit lookahead)
//  2. drop ',' grouping marks (same rule)
//  3. rewrite a trailing decimal comma (",5" or ",56") as a '.'
//
// A separator followed by exactly three digits is always read as a grouping
// mark, so "1,234" becomes 1234 even in locales where it means 1.234. That
// loss is the accepted cost of the heuristic; do not "fix" it by guessing.
func NormalizeAmount(raw string) (float64, error) {
	s := stripWhitespace(raw)
	s = stripGroupingMarks(s, '.')
	s = stripGroupingMarks(s, ',')
	s = decimalizeTrailingComma(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	return v, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// stripGroupingMarks removes every mark that is followed by exactly three
// digits and then a non-digit or the end of the string.
func stripGroupingMarks(s string, mark byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == mark && isGroupingRun(s, i+1) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isGroupingRun reports whether s[from:] starts with exactly three digits
// followed by a non-digit or the end of the string.
func isGroupingRun(s string, from int) bool {
	if from+3 > len(s) {
		return false
	}
	for i := from; i < from+3; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return from+3 == len(s) || !isDigit(s[from+3])
}

// decimalizeTrailingComma rewrites a ",d" or ",dd" suffix as a decimal
// point. Commas elsewhere are left alone and will fail the final parse.
func decimalizeTrailingComma(s string) string {
	idx := strings.LastIndexByte(s, ',')
	if idx == -1 {
		return s
	}
	frac := s[idx+1:]
	if len(frac) < 1 || len(frac) > 2 {
		return s
	}
	for i := 0; i < len(frac); i++ {
		if !isDigit(frac[i]) {
			return s
		}
	}
	return s[:idx] + "." + frac
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
