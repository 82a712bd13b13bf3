package main

import (
	"strings"

	"github.com/salesbook-io/salesbook/pkg/csv"
	"github.com/salesbook-io/salesbook/pkg/models"
)

type filters struct {
	startDate   string
	endDate     string
	minAmount   float64
	maxAmount   float64
	salesperson string
}

// toFilterFunc turns the flag values into a record predicate. Dates are
// opaque YYYY-MM-DD strings, so plain string comparison gives chronological
// order.
func (f *filters) toFilterFunc() csv.FilterFunc[*models.SaleRecord] {
	return func(r *models.SaleRecord) bool {
		if f.startDate != "" && r.Date() < f.startDate {
			return false
		}
		if f.endDate != "" && r.Date() > f.endDate {
			return false
		}
		if f.minAmount != 0 && r.Amount() < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && r.Amount() > f.maxAmount {
			return false
		}
		if f.salesperson != "" && !strings.Contains(strings.ToLower(r.Salesperson()), strings.ToLower(f.salesperson)) {
			return false
		}
		return true
	}
}

func (f *filters) apply(records []*models.SaleRecord) []*models.SaleRecord {
	keep := f.toFilterFunc()
	kept := make([]*models.SaleRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}
