// Package entity defines the domain models for the dataset feature.
package entity

import "time"

// CSV header names consumed from the upstream dataset. "Nuetral" is spelled
// the way existing producers write it and must not be corrected here.
const (
	ColumnDate       = "Date"
	ColumnNegative   = "Negative"
	ColumnNeutral    = "Nuetral"
	ColumnPositive   = "Positive"
	ColumnStockPrice = "Stock Price"
)

// RequiredColumns lists the header names a dataset must carry.
var RequiredColumns = []string{ColumnDate, ColumnNegative, ColumnNeutral, ColumnPositive, ColumnStockPrice}

// Row is one daily observation of sentiment scores and closing price.
type Row struct {
	Date       time.Time // calendar date at UTC midnight
	Negative   float64   // negative sentiment score
	Neutral    float64   // neutral sentiment score
	Positive   float64   // positive sentiment score
	StockPrice float64   // stock price for the day
}

// Table is an ordered sequence of rows. Once returned by the loader it is
// sorted by Date and must be treated as read-only.
type Table []Row

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// Dates returns the Date column.
func (t Table) Dates() []time.Time {
	out := make([]time.Time, len(t))
	for i, r := range t {
		out[i] = r.Date
	}
	return out
}

// Negatives returns the Negative column.
func (t Table) Negatives() []float64 { return t.column(func(r Row) float64 { return r.Negative }) }

// Neutrals returns the Nuetral column.
func (t Table) Neutrals() []float64 { return t.column(func(r Row) float64 { return r.Neutral }) }

// Positives returns the Positive column.
func (t Table) Positives() []float64 { return t.column(func(r Row) float64 { return r.Positive }) }

// StockPrices returns the Stock Price column.
func (t Table) StockPrices() []float64 { return t.column(func(r Row) float64 { return r.StockPrice }) }

func (t Table) column(get func(Row) float64) []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = get(r)
	}
	return out
}
