package goals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finboard/internal/core"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDuration(t *testing.T) {
	tests := []struct {
		name      string
		calc      Calculator
		months    string
		reachable bool
	}{
		{"reference example", Calculator{Target: dec("60000"), MonthlyContribution: dec("3000")}, "20", true},
		{"rounded to one decimal", Calculator{Target: dec("10000"), MonthlyContribution: dec("3000")}, "3.3", true},
		{"savings count", Calculator{Target: dec("60000"), MonthlyContribution: dec("3000"), CurrentSavings: dec("30000")}, "10", true},
		{"already covered", Calculator{Target: dec("1000"), MonthlyContribution: dec("0"), CurrentSavings: dec("1000")}, "0", true},
		{"no contribution", Calculator{Target: dec("1000"), MonthlyContribution: dec("0")}, "0", false},
		{"negative contribution", Calculator{Target: dec("1000"), MonthlyContribution: dec("-10")}, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.calc.Duration()
			assert.Equal(t, tt.reachable, got.Reachable)
			assert.True(t, got.Months.Equal(dec(tt.months)), "months = %s, want %s", got.Months, tt.months)
		})
	}
}

func TestWhatIf(t *testing.T) {
	calc := Calculator{Target: dec("60000"), MonthlyContribution: dec("3000")}

	delayed := calc.WhatIf(dec("6000"), decimal.Zero)
	assert.True(t, delayed.Current.Months.Equal(dec("20")))
	assert.True(t, delayed.New.Months.Equal(dec("22")))
	assert.True(t, delayed.Impact.Equal(dec("2")))
	assert.Equal(t, "The goal is delayed by 2 months", delayed.Message)

	faster := calc.WhatIf(decimal.Zero, dec("1000"))
	assert.True(t, faster.New.Months.Equal(dec("15")))
	assert.True(t, faster.Impact.Equal(dec("-5")))
	assert.Equal(t, "The goal is reached 5 months earlier", faster.Message)

	stuck := calc.WhatIf(decimal.Zero, dec("-3000"))
	assert.False(t, stuck.New.Reachable)
	assert.True(t, stuck.Impact.IsZero())
	assert.Equal(t, "The goal becomes unreachable", stuck.Message)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Calculator{Target: dec("1")}.Validate())
	assert.ErrorIs(t, Calculator{Target: dec("-1")}.Validate(), core.ErrNegativeAmount)
}

func rec(date, amount string) core.Transaction {
	return core.Transaction{Date: core.MustParseDate(date), Amount: dec(amount)}
}

func TestAverageMonthlyNet(t *testing.T) {
	today := core.MustParseDate("2026-03-15")
	income := []core.Transaction{
		rec("2026-01-01", "50000"),
		rec("2026-02-01", "50000"),
		rec("2025-06-01", "99999"), // too old
	}
	expense := []core.Transaction{
		rec("2026-01-10", "20000"),
		rec("2026-02-10", "40000"),
		rec("2026-03-20", "99999"), // after today
	}

	// January nets 30000, February 10000.
	got := AverageMonthlyNet(income, expense, today, 3)
	assert.True(t, got.Equal(dec("20000")), "got %s", got)
}

func TestAverageMonthlyNetClampsToZero(t *testing.T) {
	today := core.MustParseDate("2026-03-15")
	assert.True(t, AverageMonthlyNet(nil, nil, today, 3).IsZero())
	assert.True(t, AverageMonthlyNet(nil, []core.Transaction{rec("2026-03-01", "10")}, today, 3).IsZero())
	assert.True(t, AverageMonthlyNet([]core.Transaction{rec("2026-03-01", "10")}, nil, today, 0).IsZero())
}

func TestForecastETA(t *testing.T) {
	today := core.MustParseDate("2026-02-15")

	eta, ok := Forecast{Months: dec("1.5"), Reachable: true}.ETA(today)
	assert.True(t, ok)
	assert.Equal(t, "2026-04-01", eta.String())

	_, ok = Forecast{Reachable: false}.ETA(today)
	assert.False(t, ok)
}

func TestForecastETABeyondHorizon(t *testing.T) {
	today := core.MustParseDate("2026-02-15")

	far := Calculator{Target: dec("1000000000000000000000"), MonthlyContribution: dec("0.01")}.Duration()
	assert.True(t, far.Reachable)
	_, ok := far.ETA(today)
	assert.False(t, ok)

	eta, ok := Forecast{Months: dec("1200"), Reachable: true}.ETA(today)
	assert.True(t, ok)
	assert.True(t, eta.After(today))
}
