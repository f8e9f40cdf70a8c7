package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/goals"
	"finboard/internal/tracker"
)

const defaultHistoryMonths = 3

type forecastRequest struct {
	Target              flexString `json:"target"`
	MonthlyContribution flexString `json:"monthly_contribution"`
	CurrentSavings      flexString `json:"current_savings"`
	PurchaseCost        flexString `json:"purchase_cost"`
	ContributionChange  flexString `json:"contribution_change"`
}

type forecastResponse struct {
	Calculator         goals.Calculator `json:"calculator"`
	ContributionSource string           `json:"contribution_source"`
	Forecast           goals.Forecast   `json:"forecast"`
	ETA                *core.Date       `json:"eta,omitempty"`
	Scenario           *goals.Scenario  `json:"scenario,omitempty"`
}

type averageNetResponse struct {
	Months  int             `json:"months"`
	Average decimal.Decimal `json:"average"`
}

// signedAmount parses a what-if delta, which may be negative.
func signedAmount(field string, v flexString) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(v))
	if err != nil {
		return decimal.Zero, &core.ValidationError{Field: field, Value: string(v), Err: core.ErrInvalidAmount}
	}
	return d, nil
}

func optionalAmount(field string, v flexString) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := core.ParseAmount(string(v))
	if err != nil {
		if ve, ok := err.(*core.ValidationError); ok {
			ve.Field = field
		}
		return decimal.Zero, err
	}
	return d, nil
}

// handleForecast estimates the months to a savings target. Without an
// explicit monthly contribution the average net of the last three months is
// used.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	target, err := core.ParseAmount(string(req.Target))
	if err != nil {
		if ve, ok := err.(*core.ValidationError); ok {
			ve.Field = "target"
		}
		writeFailure(w, r, err)
		return
	}
	savings, err := optionalAmount("current_savings", req.CurrentSavings)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	purchase, err := optionalAmount("purchase_cost", req.PurchaseCost)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	change, err := signedAmount("contribution_change", req.ContributionChange)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	today := core.Today(s.clock)
	resp := forecastResponse{ContributionSource: "request"}
	calc := goals.Calculator{Target: target, CurrentSavings: savings}

	if req.MonthlyContribution != "" {
		if calc.MonthlyContribution, err = signedAmount("monthly_contribution", req.MonthlyContribution); err != nil {
			writeFailure(w, r, err)
			return
		}
	} else {
		resp.ContributionSource = "history"
		err = s.owner.Do(r.Context(), func(sess *tracker.Session) error {
			calc.MonthlyContribution = goals.AverageMonthlyNet(
				sess.Transactions(core.Income), sess.Transactions(core.Expense), today, defaultHistoryMonths)
			return nil
		})
		if err != nil {
			writeFailure(w, r, err)
			return
		}
	}
	if err := calc.Validate(); err != nil {
		writeFailure(w, r, err)
		return
	}

	resp.Calculator = calc
	resp.Forecast = calc.Duration()
	if eta, ok := resp.Forecast.ETA(today); ok {
		resp.ETA = &eta
	}
	if !purchase.IsZero() || !change.IsZero() {
		scenario := calc.WhatIf(purchase, change)
		resp.Scenario = &scenario
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAverageNet(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", defaultHistoryMonths, 1, 120)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	today := core.Today(s.clock)

	var avg decimal.Decimal
	err = s.owner.Do(r.Context(), func(sess *tracker.Session) error {
		avg = goals.AverageMonthlyNet(sess.Transactions(core.Income), sess.Transactions(core.Expense), today, months)
		return nil
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, averageNetResponse{Months: months, Average: avg})
}
