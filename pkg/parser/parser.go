// Package parser turns free-form, locale-ambiguous sales documents into
// normalized sale records. Input may be delimited text (comma or semicolon,
// detected per line), a legacy .xls workbook or an .xlsx spreadsheet; every
// path runs the same header resolution, row validation and numeric
// normalization.
package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/salesbook-io/salesbook/pkg/models"
)

// FileType identifies how a document's bytes should be read.
type FileType string

const (
	SalesXLS  FileType = "sales_xls"
	SalesXLSX FileType = "sales_xlsx"
	SalesText FileType = "sales_text"
)

// datePattern accepts any YYYY-MM-DD shaped substring. Calendar validity is
// deliberately not checked; "2024-13-40" passes.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// ProcessBytes parses a raw document, choosing the reader by file extension:
// .xls and .xlsx go through the workbook readers, everything else is treated
// as delimited text.
func (p *Parser) ProcessBytes(data []byte, filename string) ([]*models.SaleRecord, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case SalesXLS:
		return p.parseXLS(data)
	case SalesXLSX:
		return p.parseXLSX(data)
	default:
		return p.Parse(string(data)), nil
	}
}

func detectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return SalesXLS
	case ".xlsx":
		return SalesXLSX
	default:
		return SalesText
	}
}

// Parse reads a whole text document and returns the valid sale records in
// original line order. Malformed rows are skipped silently; the document as
// a whole never fails and an empty result is a valid outcome.
func (p *Parser) Parse(raw string) []*models.SaleRecord {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line) // also drops the \r of CRLF endings
		if line == "" {
			continue
		}
		rows = append(rows, SplitLine(line))
	}
	return p.build(rows)
}

// build runs header detection and row validation over pre-split rows. The
// same path serves text, xls and xlsx input.
//
// If every canonical field resolves from the first row it is a header and
// data starts at row two. Otherwise the fixed positional layout
// date,salesperson,amount applies and the first row is itself data.
func (p *Parser) build(rows [][]string) []*models.SaleRecord {
	if len(rows) == 0 {
		return nil
	}

	headers, ok := headerMapFrom(rows[0])
	start := 0
	if ok {
		start = 1
	} else {
		headers = defaultHeaderMap
	}

	records := make([]*models.SaleRecord, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		rec, ok := p.buildRecord(headers, rows[i])
		if !ok {
			p.logger.Debug("skipping malformed row", "row", i, "fields", len(rows[i]))
			continue
		}
		records = append(records, rec)
	}
	return records
}

// buildRecord validates one row and constructs a record from it. Any defect
// rejects the row: absent or shapeless date, empty salesperson, amount the
// normalizer cannot read.
func (p *Parser) buildRecord(headers HeaderMap, fields []string) (*models.SaleRecord, bool) {
	date, ok := headers.field(fields, FieldDate)
	if !ok || date == "" || !datePattern.MatchString(date) {
		return nil, false
	}

	salesperson, ok := headers.field(fields, FieldSalesperson)
	if !ok || salesperson == "" {
		return nil, false
	}

	rawAmount, ok := headers.field(fields, FieldAmount)
	if !ok {
		return nil, false
	}
	amount, err := NormalizeAmount(rawAmount)
	if err != nil {
		return nil, false
	}

	return models.NewSaleRecord(date, salesperson, amount), true
}
