// Package report derives what a window shows: the records inside it and
// their aggregate. Everything here is a pure function of its inputs.
package report

import (
	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// shareScale is the number of decimal places kept on a share fraction.
const shareScale = 6

// Share is one record's slice of the proportional breakdown.
type Share struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Color    core.ColorToken `json:"color"`
	Amount   decimal.Decimal `json:"amount"`
	Fraction decimal.Decimal `json:"fraction"`
}

// Aggregate is the reduction of a filtered subset.
type Aggregate struct {
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
	Shares []Share         `json:"shares"`
}

// Filter keeps the records dated inside w, both ends inclusive, in input
// order. The result is never nil.
func Filter(records []core.Transaction, w core.Window) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize totals a subset and splits it into shares.
//
// Shares follow the subset order. A zero total yields no shares at all rather
// than a breakdown of zero-sized slices.
func Summarize(subset []core.Transaction) Aggregate {
	total := decimal.Zero
	for _, r := range subset {
		total = total.Add(r.Amount)
	}

	agg := Aggregate{Total: total, Count: len(subset), Shares: []Share{}}
	if total.IsZero() {
		return agg
	}

	agg.Shares = make([]Share, 0, len(subset))
	for _, r := range subset {
		agg.Shares = append(agg.Shares, Share{
			ID:       r.ID,
			Name:     r.Name,
			Color:    r.Color,
			Amount:   r.Amount,
			Fraction: r.Amount.DivRound(total, shareScale),
		})
	}
	return agg
}

// HasData reports whether there is anything to chart.
func (a Aggregate) HasData() bool {
	return len(a.Shares) > 0
}

// Net is income minus expense for the same window.
func Net(income, expense Aggregate) decimal.Decimal {
	return income.Total.Sub(expense.Total)
}
