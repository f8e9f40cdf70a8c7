package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"expense":  Expense,
		"Expenses": Expense,
		" income ": Income,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCategory("savings")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.ErrorIs(t, Category("savings").Validate(), ErrInvalidCategory)
}

func TestParseGranularity(t *testing.T) {
	for _, g := range Granularities() {
		got, err := ParseGranularity(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}
	got, err := ParseGranularity("WEEK")
	require.NoError(t, err)
	assert.Equal(t, Week, got)

	_, err = ParseGranularity("quarter")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"forward":  Forward,
		"next":     Forward,
		"backward": Backward,
		"prev":     Backward,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, Forward.Sign())
	assert.Equal(t, -1, Backward.Sign())

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Name: "Food", Amount: decimal.NewFromInt(8200), Date: NewDate(2026, 2, 9)}
	require.NoError(t, good.Validate())

	zero := good
	zero.Amount = decimal.Zero
	assert.NoError(t, zero.Validate(), "zero amounts are legal")

	tests := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"empty name", func(tx *Transaction) { tx.Name = "" }, ErrEmptyName},
		{"blank name", func(tx *Transaction) { tx.Name = "   " }, ErrEmptyName},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-5) }, ErrNegativeAmount},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := good
			tt.mut(&tx)
			err := tx.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w := Window{Start: NewDate(2026, 2, 1), End: NewDate(2026, 2, 28)}

	assert.True(t, w.Contains(NewDate(2026, 2, 1)))
	assert.True(t, w.Contains(NewDate(2026, 2, 28)))
	assert.True(t, w.Contains(NewDate(2026, 2, 15)))
	assert.False(t, w.Contains(NewDate(2026, 1, 31)))
	assert.False(t, w.Contains(NewDate(2026, 3, 1)))
	assert.Equal(t, 28, w.Days())
}

func TestIsValidationThroughWrapping(t *testing.T) {
	err := fmt.Errorf("add: %w", &ValidationError{Field: "name", Err: ErrEmptyName})
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.Equal(t, "add: invalid name: empty name", err.Error())
}
