package models

// SaleRecord is a single sales transaction taken from an input document.
// The date is kept exactly as it appeared in the source (trimmed), validated
// by shape only. Records are immutable once built; construction happens in
// pkg/parser.
type SaleRecord struct {
	date        string
	salesperson string
	amount      float64
}

// NewSaleRecord builds a record from already-validated fields.
func NewSaleRecord(date, salesperson string, amount float64) *SaleRecord {
	return &SaleRecord{
		date:        date,
		salesperson: salesperson,
		amount:      amount,
	}
}

func (r *SaleRecord) Date() string {
	return r.date
}

func (r *SaleRecord) Salesperson() string {
	return r.salesperson
}

func (r *SaleRecord) Amount() float64 {
	return r.amount
}
