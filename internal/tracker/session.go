// Package tracker is the transaction-tracking view state: the two ledgers,
// the period cursor and the active category, owned by one Session.
//
// Every read goes through View, which filters and aggregates from scratch.
// Nothing derived is kept between calls, so replacing the ledgers with a
// fresh snapshot (Refresh) can never leave stale totals behind.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finboard/internal/core"
	"finboard/internal/ledger"
	"finboard/internal/log"
	"finboard/internal/palette"
	"finboard/internal/period"
	"finboard/internal/ports"
	"finboard/internal/report"
)

// ErrPersist wraps persister failures. The mutation that triggered it has
// already been rolled back when it is returned.
var ErrPersist = errors.New("persistence failed")

// View is everything a presentation layer needs to draw the tracker.
type View struct {
	Category      core.Category      `json:"category"`
	Granularity   core.Granularity   `json:"granularity"`
	ReferenceDate core.Date          `json:"reference_date"`
	Window        core.Window        `json:"window"`
	Label         string             `json:"label"`
	Transactions  []core.Transaction `json:"transactions"`
	Summary       report.Aggregate   `json:"summary"`
	HasData       bool               `json:"has_data"`
}

type Session struct {
	store     *ledger.Store
	cursor    *period.Cursor
	category  core.Category
	persister ports.Persister
	clock     func() time.Time
	logger    *log.Logger

	weekStart time.Weekday
	colors    palette.Allocator
	idGen     func() string
}

type Option func(*Session)

// WithPersister makes every add and remove two-phase: the change is applied
// tentatively, confirmed by p, and rolled back if p fails.
func WithPersister(p ports.Persister) Option {
	return func(s *Session) { s.persister = p }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

func WithWeekStart(day time.Weekday) Option {
	return func(s *Session) { s.weekStart = day }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithAllocator(a palette.Allocator) Option {
	return func(s *Session) { s.colors = a }
}

// WithIDGenerator is mostly for tests that want predictable ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.idGen = gen }
}

// New creates a session on the expense ledger at month granularity, anchored
// on today's date.
func New(opts ...Option) *Session {
	s := &Session{
		category:  core.Expense,
		clock:     time.Now,
		weekStart: period.DefaultWeekStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.WithComponent(log.ComponentTracker)

	var storeOpts []ledger.Option
	if s.idGen != nil {
		storeOpts = append(storeOpts, ledger.WithIDGenerator(s.idGen))
	}
	s.store = ledger.New(s.colors, storeOpts...)
	s.cursor = period.NewCursor(s.today(), period.WithWeekStart(s.weekStart))
	return s
}

func (s *Session) today() core.Date {
	return core.Today(s.clock)
}

func (s *Session) Category() core.Category { return s.category }

func (s *Session) Cursor() *period.Cursor { return s.cursor }

// Transactions returns a copy of a full, unfiltered ledger.
func (s *Session) Transactions(category core.Category) []core.Transaction {
	return s.store.List(category)
}

// View recomputes the window, the filtered records and the aggregate.
func (s *Session) View() View {
	w := s.cursor.Window()
	subset := report.Filter(s.store.List(s.category), w)
	summary := report.Summarize(subset)
	return View{
		Category:      s.category,
		Granularity:   s.cursor.Granularity(),
		ReferenceDate: s.cursor.ReferenceDate(),
		Window:        w,
		Label:         period.Label(s.cursor.Granularity(), w),
		Transactions:  subset,
		Summary:       summary,
		HasData:       summary.HasData(),
	}
}

// Add records a transaction in the active category.
func (s *Session) Add(ctx context.Context, name string, amount decimal.Decimal, date core.Date) (core.Transaction, error) {
	category := s.category
	if s.persister == nil {
		tx, err := s.store.Add(category, name, amount, date)
		if err != nil {
			return core.Transaction{}, err
		}
		s.logAdd(ctx, category, tx)
		return tx, nil
	}

	tx, err := s.store.AddPending(category, name, amount, date)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.persister.Save(ctx, category, tx); err != nil {
		s.store.Remove(category, tx.ID)
		s.logger.WarnContext(ctx, "Add rolled back",
			log.NewFields().
				WithOperation(log.OpAdd).
				WithTransaction(string(category), tx.ID, tx.Name, tx.Amount).
				WithError(err).
				ToSlice()...)
		return core.Transaction{}, fmt.Errorf("%w: save %s: %w", ErrPersist, tx.ID, err)
	}
	s.store.MarkApplied(category, tx.ID)
	tx.Status = core.StatusApplied
	s.logAdd(ctx, category, tx)
	return tx, nil
}

// AddForm is Add for raw form input. An empty date means today.
func (s *Session) AddForm(ctx context.Context, name, amount, date string) (core.Transaction, error) {
	if strings.TrimSpace(name) == "" {
		return core.Transaction{}, &core.ValidationError{Field: "name", Err: core.ErrEmptyName}
	}
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}
	day := s.today()
	if strings.TrimSpace(date) != "" {
		if day, err = core.ParseDate(date); err != nil {
			return core.Transaction{}, err
		}
	}
	return s.Add(ctx, name, amt, day)
}

func (s *Session) logAdd(ctx context.Context, category core.Category, tx core.Transaction) {
	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().
			WithOperation(log.OpAdd).
			WithTransaction(string(category), tx.ID, tx.Name, tx.Amount).
			ToSlice()...)
}

// Remove deletes a transaction from the active category. It reports whether
// the id was present; an unknown id is not an error and never reaches the
// persister.
func (s *Session) Remove(ctx context.Context, id string) (bool, error) {
	category := s.category
	index := s.store.Index(category, id)
	if index < 0 {
		return false, nil
	}
	removed, _ := s.store.Remove(category, id)

	if s.persister != nil {
		if err := s.persister.Delete(ctx, category, id); err != nil {
			s.store.Restore(category, removed, index)
			s.logger.WarnContext(ctx, "Remove rolled back",
				log.FieldOperation, log.OpRemove,
				log.FieldCategory, category,
				log.FieldTransactionID, id,
				log.FieldError, err)
			return false, fmt.Errorf("%w: delete %s: %w", ErrPersist, id, err)
		}
	}
	s.logger.InfoContext(ctx, "Transaction removed",
		log.FieldOperation, log.OpRemove,
		log.FieldCategory, category,
		log.FieldTransactionID, id)
	return true, nil
}

// SetCategory switches the active ledger. The cursor is untouched.
func (s *Session) SetCategory(c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.category = c
	return nil
}

func (s *Session) SetGranularity(g core.Granularity) error {
	return s.cursor.SetGranularity(g)
}

func (s *Session) SetReferenceDate(d core.Date) error {
	return s.cursor.SetReferenceDate(d)
}

func (s *Session) Step(dir core.Direction) error {
	if err := s.cursor.Step(dir); err != nil {
		return err
	}
	s.logger.Debug("Cursor moved",
		log.FieldOperation, log.OpNavigate,
		log.FieldGranularity, s.cursor.Granularity(),
		log.FieldDate, s.cursor.ReferenceDate().String())
	return nil
}

// Reset restores view-entry defaults: expense ledger, month granularity,
// today. The ledgers are kept.
func (s *Session) Reset() {
	s.category = core.Expense
	s.cursor.Reset(s.today())
}

// Refresh loads both ledgers from loader concurrently and installs them
// together. On any error the current ledgers stay as they are.
func (s *Session) Refresh(ctx context.Context, loader ports.Loader) error {
	categories := core.Categories()
	results := make([][]core.Transaction, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		g.Go(func() error {
			records, err := loader.Load(gctx, category)
			if err != nil {
				return fmt.Errorf("load %s: %w", category, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Refresh failed", log.FieldOperation, log.OpRefresh, log.FieldError, err)
		return err
	}

	snapshot := make(map[core.Category][]core.Transaction, len(categories))
	for i, category := range categories {
		snapshot[category] = results[i]
	}
	if err := s.store.ReplaceAll(snapshot); err != nil {
		return fmt.Errorf("install snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "Ledgers refreshed",
		log.FieldOperation, log.OpRefresh,
		"expense_count", len(results[0]),
		"income_count", len(results[1]))
	return nil
}
