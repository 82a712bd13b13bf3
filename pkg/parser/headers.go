package parser

import "strings"

// Canonical field names used by the header map.
const (
	FieldDate        = "date"
	FieldSalesperson = "salesperson"
	FieldAmount      = "amount"
)

// headerSynonyms maps known header tokens (lower-case, trimmed) to canonical
// field names. Tokens outside the table pass through unchanged and simply
// never match a canonical field.
var headerSynonyms = map[string]string{
	"date":        FieldDate,
	"fecha":       FieldDate,
	"salesperson": FieldSalesperson,
	"comercial":   FieldSalesperson,
	"vendedor":    FieldSalesperson,
	"amount":      FieldAmount,
	"importe":     FieldAmount,
	"monto":       FieldAmount,
	"total":       FieldAmount,
}

// ResolveHeader maps a raw header token to its canonical field name.
func ResolveHeader(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if canonical, ok := headerSynonyms[t]; ok {
		return canonical
	}
	return t
}

// HeaderMap gives the column index of each canonical field within a row.
type HeaderMap map[string]int

// defaultHeaderMap is assumed when the first line is not a header row.
var defaultHeaderMap = HeaderMap{
	FieldDate:        0,
	FieldSalesperson: 1,
	FieldAmount:      2,
}

// headerMapFrom builds a HeaderMap from a tokenized first line. ok is true
// only when all three canonical fields were found; duplicate tokens keep
// their first position.
func headerMapFrom(fields []string) (HeaderMap, bool) {
	hm := make(HeaderMap, len(fields))
	for i, f := range fields {
		name := ResolveHeader(f)
		if _, seen := hm[name]; !seen {
			hm[name] = i
		}
	}
	_, hasDate := hm[FieldDate]
	_, hasSalesperson := hm[FieldSalesperson]
	_, hasAmount := hm[FieldAmount]
	return hm, hasDate && hasSalesperson && hasAmount
}

// field extracts the named column from a row. A row too short to contain the
// column yields ok == false, not an error.
func (hm HeaderMap) field(fields []string, name string) (string, bool) {
	idx, ok := hm[name]
	if !ok || idx >= len(fields) {
		return "", false
	}
	return strings.TrimSpace(fields[idx]), true
}
