package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/salesbook-io/salesbook/pkg/models"
)

// parseXLSX reads the first sheet of an .xlsx workbook and feeds its rows
// through the shared pipeline.
func (p *Parser) parseXLSX(data []byte) ([]*models.SaleRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening xlsx workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	return p.build(dropEmptyRows(rows)), nil
}
