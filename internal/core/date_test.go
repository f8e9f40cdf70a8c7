package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "plain", input: "2026-02-09", want: NewDate(2026, 2, 9)},
		{name: "surrounding spaces", input: " 2026-02-09 ", want: NewDate(2026, 2, 9)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, 2, 29)},
		{name: "not a leap year", input: "2026-02-29", wantErr: true},
		{name: "day out of range", input: "2026-04-31", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong layout", input: "09/02/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDateOfDropsTimeAndZone(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)
	late := time.Date(2026, 2, 9, 23, 30, 0, 0, kyiv)

	d := DateOf(late)
	assert.Equal(t, "2026-02-09", d.String())
	assert.Equal(t, time.UTC, d.Location())
	assert.Zero(t, d.Hour())
}

func TestAddMonthsClampsDay(t *testing.T) {
	tests := []struct {
		from   Date
		months int
		want   Date
	}{
		{NewDate(2026, 1, 31), 1, NewDate(2026, 2, 28)},
		{NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{NewDate(2026, 3, 31), -1, NewDate(2026, 2, 28)},
		{NewDate(2026, 12, 15), 1, NewDate(2027, 1, 15)},
		{NewDate(2026, 1, 15), -1, NewDate(2025, 12, 15)},
		{NewDate(2026, 5, 31), 1, NewDate(2026, 6, 30)},
		{NewDate(2026, 8, 31), 14, NewDate(2027, 10, 31)},
	}

	for _, tt := range tests {
		got := tt.from.AddMonths(tt.months)
		assert.Equal(t, tt.want.String(), got.String(), "%s %+d months", tt.from, tt.months)
	}
}

func TestAddYearsFromLeapDay(t *testing.T) {
	assert.Equal(t, "2025-02-28", NewDate(2024, 2, 29).AddYears(1).String())
	assert.Equal(t, "2028-02-29", NewDate(2024, 2, 29).AddYears(4).String())
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	assert.Equal(t, "2026-03-01", NewDate(2026, 2, 28).AddDays(1).String())
	assert.Equal(t, "2025-12-31", NewDate(2026, 1, 1).AddDays(-1).String())
	assert.Equal(t, "2026-01-04", NewDate(2025, 12, 28).AddDays(7).String())
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2026, 1))
	assert.Equal(t, 28, DaysIn(2026, 2))
	assert.Equal(t, 29, DaysIn(2024, 2))
	assert.Equal(t, 30, DaysIn(2026, 4))
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{D: NewDate(2026, 2, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2026-02-05"}`, string(b))

	var out struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2026-02-10"}`), &out))
	assert.Equal(t, "2026-02-10", out.D.String())

	err = json.Unmarshal([]byte(`{"d":"2026-13-01"}`), &out)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateValidate(t *testing.T) {
	assert.NoError(t, NewDate(2026, 1, 1).Validate())
	assert.ErrorIs(t, Date{}.Validate(), ErrInvalidDate)
}
