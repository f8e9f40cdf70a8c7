package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Expense Category = "expense"
	Income  Category = "income"
)

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

const (
	// StatusPending marks a record added locally but not yet confirmed by the
	// persistence collaborator.
	StatusPending Status = "pending"
	StatusApplied Status = "applied"
)

type (
	// Category names one of the two ledgers. It is not stored on a record.
	Category string

	Granularity string

	Direction string

	Status string

	// ColorToken identifies an entry in the color palette.
	ColorToken string

	Transaction struct {
		ID     string          `json:"id"`
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
		Color  ColorToken      `json:"color"`
		Date   Date            `json:"date"`
		Status Status          `json:"status"`
	}

	// Window is an inclusive range of calendar days.
	Window struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
)

// Categories lists both ledgers in display order.
func Categories() []Category {
	return []Category{Expense, Income}
}

// ParseCategory accepts "expense", "expenses" and "income" in any case.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return Expense, nil
	case "income":
		return Income, nil
	}
	return "", &ValidationError{Field: "category", Value: s, Err: ErrInvalidCategory}
}

func (c Category) Validate() error {
	switch c {
	case Expense, Income:
		return nil
	}
	return &ValidationError{Field: "category", Value: string(c), Err: ErrInvalidCategory}
}

// Granularities lists the reporting resolutions from finest to coarsest.
func Granularities() []Granularity {
	return []Granularity{Day, Week, Month, Year}
}

func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if err := g.Validate(); err != nil {
		return "", &ValidationError{Field: "granularity", Value: s, Err: ErrInvalidGranularity}
	}
	return g, nil
}

func (g Granularity) Validate() error {
	switch g {
	case Day, Week, Month, Year:
		return nil
	}
	return &ValidationError{Field: "granularity", Value: string(g), Err: ErrInvalidGranularity}
}

// ParseDirection accepts forward/backward as well as next/prev.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "next":
		return Forward, nil
	case "backward", "prev", "previous":
		return Backward, nil
	}
	return "", &ValidationError{Field: "direction", Value: s, Err: ErrInvalidDirection}
}

// Sign is +1 for Forward and -1 otherwise.
func (d Direction) Sign() int {
	if d == Forward {
		return 1
	}
	return -1
}

// Validate checks the fields a caller supplies when creating a transaction.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if t.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Value: t.Amount.String(), Err: ErrNegativeAmount}
	}
	return t.Date.Validate()
}

// Contains reports whether d falls inside the window, both ends inclusive.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start.Time).Hours()/24) + 1
}
