package parser

import "strings"

// SplitLine splits one line of text into trimmed fields. The delimiter is
// chosen per line, not per document: semicolon when the line contains a ';'
// and no ',', comma otherwise. Documents mixing delimiter styles across
// lines therefore still parse.
//
// Quoting is not supported; a delimiter inside a quoted field splits the
// field anyway.
func SplitLine(line string) []string {
	delim := ","
	if strings.Contains(line, ";") && !strings.Contains(line, ",") {
		delim = ";"
	}
	fields := strings.Split(line, delim)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
