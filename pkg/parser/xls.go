package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/salesbook-io/salesbook/pkg/models"
)

const maxSheetRows = 10000

// parseXLS reads a legacy Excel workbook and feeds its rows through the same
// header/validation pipeline as text input. Cells arrive pre-split, so the
// delimiter heuristic does not apply here.
func (p *Parser) parseXLS(data []byte) ([]*models.SaleRecord, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error opening xls workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxSheetRows)
	return p.build(dropEmptyRows(rows)), nil
}

// dropEmptyRows removes rows without a single non-blank cell, the sheet
// analogue of the blank-line filtering in Parse.
func dropEmptyRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}
