package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/report"
	"finboard/internal/tracker"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type addRequest struct {
	Name   string     `json:"name"`
	Amount flexString `json:"amount"`
	Date   string     `json:"date"`
}

type addResponse struct {
	Transaction core.Transaction `json:"transaction"`
	View        tracker.View     `json:"view"`
}

type removeResponse struct {
	Removed bool         `json:"removed"`
	View    tracker.View `json:"view"`
}

type listResponse struct {
	Category     core.Category      `json:"category"`
	Transactions []core.Transaction `json:"transactions"`
	Total        int                `json:"total"`
	Offset       int                `json:"offset"`
	Limit        int                `json:"limit"`
}

type balanceResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// viewAfter runs fn on the owner and returns the resulting view.
func (s *Server) viewAfter(r *http.Request, fn func(*tracker.Session) error) (tracker.View, error) {
	var view tracker.View
	err := s.owner.Do(r.Context(), func(sess *tracker.Session) error {
		if fn != nil {
			if err := fn(sess); err != nil {
				return err
			}
		}
		view = sess.View()
		return nil
	})
	return view, err
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.viewAfter(r, nil)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleListTransactions pages through a full ledger, newest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize, 1, maxPageSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var resp listResponse
	err = s.owner.Do(r.Context(), func(sess *tracker.Session) error {
		category := sess.Category()
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			c, err := core.ParseCategory(raw)
			if err != nil {
				return err
			}
			category = c
		}
		all := sess.Transactions(category)
		resp = listResponse{Category: category, Total: len(all), Offset: offset, Limit: limit}
		resp.Transactions = page(all, offset, limit)
		return nil
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// page returns records in reverse insertion order, sliced to [offset, offset+limit).
func page(records []core.Transaction, offset, limit int) []core.Transaction {
	out := []core.Transaction{}
	for i := len(records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var tx core.Transaction
	view, err := s.viewAfter(r, func(sess *tracker.Session) error {
		var err error
		tx, err = sess.AddForm(r.Context(), req.Name, string(req.Amount), req.Date)
		return err
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addResponse{Transaction: tx, View: view})
}

func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removed bool
	view, err := s.viewAfter(r, func(sess *tracker.Session) error {
		var err error
		removed, err = sess.Remove(r.Context(), id)
		return err
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Removed: removed, View: view})
}

type valueRequest struct {
	Value string `json:"value"`
}

// handleSetter decodes {"value": ...} and applies set to the session.
func (s *Server) handleSetter(set func(*tracker.Session, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req valueRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		view, err := s.viewAfter(r, func(sess *tracker.Session) error {
			return set(sess, req.Value)
		})
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	s.handleSetter(func(sess *tracker.Session, v string) error {
		c, err := core.ParseCategory(v)
		if err != nil {
			return err
		}
		return sess.SetCategory(c)
	})(w, r)
}

func (s *Server) handleSetGranularity(w http.ResponseWriter, r *http.Request) {
	s.handleSetter(func(sess *tracker.Session, v string) error {
		g, err := core.ParseGranularity(v)
		if err != nil {
			return err
		}
		return sess.SetGranularity(g)
	})(w, r)
}

func (s *Server) handleSetDate(w http.ResponseWriter, r *http.Request) {
	s.handleSetter(func(sess *tracker.Session, v string) error {
		d, err := core.ParseDate(v)
		if err != nil {
			return err
		}
		return sess.SetReferenceDate(d)
	})(w, r)
}

type stepRequest struct {
	Direction string `json:"direction"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.viewAfter(r, func(sess *tracker.Session) error {
		dir, err := core.ParseDirection(req.Direction)
		if err != nil {
			return err
		}
		return sess.Step(dir)
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.viewAfter(r, func(sess *tracker.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleBalance totals both ledgers over their whole history.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	var resp balanceResponse
	err := s.owner.Do(r.Context(), func(sess *tracker.Session) error {
		income := report.Summarize(sess.Transactions(core.Income))
		expense := report.Summarize(sess.Transactions(core.Expense))
		resp = balanceResponse{
			Income:  income.Total,
			Expense: expense.Total,
			Net:     report.Net(income, expense),
			Count:   income.Count + expense.Count,
		}
		return nil
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
