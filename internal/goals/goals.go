// Package goals estimates how long a savings goal takes to reach.
package goals

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// Calculator holds the inputs of a savings forecast.
type Calculator struct {
	Target              decimal.Decimal `json:"target"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	CurrentSavings      decimal.Decimal `json:"current_savings"`
}

// Forecast is one duration estimate.
type Forecast struct {
	Months    decimal.Decimal `json:"months"`
	Reachable bool            `json:"reachable"`
}

// Scenario compares the current forecast with a what-if variant.
type Scenario struct {
	Current Forecast        `json:"current"`
	New     Forecast        `json:"new"`
	Impact  decimal.Decimal `json:"impact_months"`
	Message string          `json:"message"`
}

// maxETAMonths bounds ETA; forecasts further out than this have no date.
const maxETAMonths = 1200

// ETA estimates the date the goal is met, counting a month as 30 days. There
// is none for unreachable goals or ones more than maxETAMonths away.
func (f Forecast) ETA(today core.Date) (core.Date, bool) {
	if !f.Reachable || f.Months.GreaterThan(decimal.NewFromInt(maxETAMonths)) {
		return core.Date{}, false
	}
	days := f.Months.Mul(decimal.NewFromInt(30)).IntPart()
	return today.AddDays(int(days)), true
}

// Validate rejects negative targets. Savings and contributions may be
// negative after a what-if adjustment.
func (c Calculator) Validate() error {
	if c.Target.IsNegative() {
		return &core.ValidationError{Field: "target", Value: c.Target.String(), Err: core.ErrNegativeAmount}
	}
	return nil
}

// Duration returns the months until the target is met, rounded to one
// decimal place. 60000 at 3000 a month is 20. A goal already covered by
// savings takes 0 months; a non-positive contribution never gets there.
func (c Calculator) Duration() Forecast {
	remaining := c.Target.Sub(c.CurrentSavings)
	if !remaining.IsPositive() {
		return Forecast{Months: decimal.Zero, Reachable: true}
	}
	if !c.MonthlyContribution.IsPositive() {
		return Forecast{Months: decimal.Zero, Reachable: false}
	}
	return Forecast{
		Months:    remaining.DivRound(c.MonthlyContribution, 8).Round(1),
		Reachable: true,
	}
}

// WhatIf spends purchaseCost out of savings and changes the monthly
// contribution by contributionChange, then compares the two forecasts.
// A positive impact means the goal is delayed.
func (c Calculator) WhatIf(purchaseCost, contributionChange decimal.Decimal) Scenario {
	current := c.Duration()
	modified := Calculator{
		Target:              c.Target,
		MonthlyContribution: c.MonthlyContribution.Add(contributionChange),
		CurrentSavings:      c.CurrentSavings.Sub(purchaseCost),
	}
	next := modified.Duration()

	s := Scenario{Current: current, New: next, Impact: decimal.Zero}
	switch {
	case current.Reachable && !next.Reachable:
		s.Message = "The goal becomes unreachable"
	case !current.Reachable && next.Reachable:
		s.Message = fmt.Sprintf("The goal becomes reachable in %s months", next.Months)
	case !current.Reachable:
		s.Message = "The goal stays unreachable"
	default:
		s.Impact = next.Months.Sub(current.Months).Round(1)
		if s.Impact.IsPositive() {
			s.Message = fmt.Sprintf("The goal is delayed by %s months", s.Impact.Abs())
		} else {
			s.Message = fmt.Sprintf("The goal is reached %s months earlier", s.Impact.Abs())
		}
	}
	return s
}

// AverageMonthlyNet estimates a monthly contribution from history: income
// minus expense per calendar month, over records dated in the monthsBack*31
// days before today, averaged across the months that have any record.
// Empty history and negative averages both yield zero.
func AverageMonthlyNet(income, expense []core.Transaction, today core.Date, monthsBack int) decimal.Decimal {
	if monthsBack <= 0 {
		return decimal.Zero
	}
	since := today.AddDays(-monthsBack * 31)
	byMonth := map[string]decimal.Decimal{}

	add := func(records []core.Transaction, sign int64) {
		for _, r := range records {
			if r.Date.Before(since) || r.Date.After(today) {
				continue
			}
			key := r.Date.Format("2006-01")
			byMonth[key] = byMonth[key].Add(r.Amount.Mul(decimal.NewFromInt(sign)))
		}
	}
	add(income, 1)
	add(expense, -1)

	if len(byMonth) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, net := range byMonth {
		sum = sum.Add(net)
	}
	avg := sum.DivRound(decimal.NewFromInt(int64(len(byMonth))), 2)
	if avg.IsNegative() {
		return decimal.Zero
	}
	return avg
}
