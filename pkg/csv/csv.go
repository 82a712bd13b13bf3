package csv

import (
	"bytes"
	"strconv"
)

// Record is the minimal surface the canonical exporter needs.
type Record interface {
	Date() string
	Salesperson() string
	Amount() float64
}

type FilterFunc[T Record] func(T) bool

// Create renders records as canonical CSV: a fixed "date,salesperson,amount"
// header and comma-joined rows in that order, whatever the delimiter or
// header style of the original input. Amounts use the shortest decimal form
// that parses back to the same value, so exporting and re-importing
// canonical data reproduces the same records.
func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	buf.WriteString("date,salesperson,amount\n")
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		buf.WriteString(r.Date())
		buf.WriteByte(',')
		buf.WriteString(r.Salesperson())
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatFloat(r.Amount(), 'f', -1, 64))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
