// Package ledger holds the in-memory expense and income ledgers.
//
// A Store is single-owner state: it does no locking of its own. Callers that
// share one across goroutines must serialize access (see tracker.Owner).
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/palette"
)

// ErrDuplicateID is returned when two records in one ledger share an id.
var ErrDuplicateID = errors.New("duplicate transaction id")

// Store keeps two independent ordered collections of transactions.
type Store struct {
	books  map[core.Category][]core.Transaction
	colors palette.Allocator
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// New creates an empty store. A nil allocator falls back to a random pick
// over the default palette.
func New(colors palette.Allocator, opts ...Option) *Store {
	if colors == nil {
		colors = palette.NewRandom(palette.Default, nil)
	}
	s := &Store{
		books:  make(map[core.Category][]core.Transaction, 2),
		colors: colors,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates the input, allocates an id and a color, and appends a new
// applied record to the category's ledger.
func (s *Store) Add(category core.Category, name string, amount decimal.Decimal, date core.Date) (core.Transaction, error) {
	return s.add(category, name, amount, date, core.StatusApplied)
}

// AddPending is Add for a record that still awaits confirmation from the
// persistence collaborator.
func (s *Store) AddPending(category core.Category, name string, amount decimal.Decimal, date core.Date) (core.Transaction, error) {
	return s.add(category, name, amount, date, core.StatusPending)
}

func (s *Store) add(category core.Category, name string, amount decimal.Decimal, date core.Date, status core.Status) (core.Transaction, error) {
	if err := category.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		Name:   strings.TrimSpace(name),
		Amount: amount,
		Date:   core.DateOf(date.Time),
		Status: status,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx.ID = s.newID()
	if _, _, ok := s.find(category, tx.ID); ok {
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
	}
	tx.Color = s.colors.Assign(category)

	s.books[category] = append(s.books[category], tx)
	return tx, nil
}

// Remove deletes the record with the given id and returns it. An unknown id
// is not an error: Remove reports false and leaves the ledger as it was.
func (s *Store) Remove(category core.Category, id string) (core.Transaction, bool) {
	tx, i, ok := s.find(category, id)
	if !ok {
		return core.Transaction{}, false
	}
	book := s.books[category]
	s.books[category] = append(book[:i:i], book[i+1:]...)
	return tx, true
}

// Restore puts a previously removed record back at index, or at the end if
// index is out of range. It is the rollback half of Remove.
func (s *Store) Restore(category core.Category, tx core.Transaction, index int) {
	book := s.books[category]
	if index < 0 || index > len(book) {
		index = len(book)
	}
	out := make([]core.Transaction, 0, len(book)+1)
	out = append(out, book[:index]...)
	out = append(out, tx)
	out = append(out, book[index:]...)
	s.books[category] = out
}

// MarkApplied flips a pending record to applied.
func (s *Store) MarkApplied(category core.Category, id string) bool {
	_, i, ok := s.find(category, id)
	if !ok {
		return false
	}
	s.books[category][i].Status = core.StatusApplied
	return true
}

// List returns a copy of the category's ledger in insertion order.
func (s *Store) List(category core.Category) []core.Transaction {
	book := s.books[category]
	out := make([]core.Transaction, len(book))
	copy(out, book)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(category core.Category, id string) (core.Transaction, bool) {
	tx, _, ok := s.find(category, id)
	return tx, ok
}

// Index returns the position of id in the category's ledger, or -1.
func (s *Store) Index(category core.Category, id string) int {
	_, i, ok := s.find(category, id)
	if !ok {
		return -1
	}
	return i
}

// Len returns the number of records in the category's ledger.
func (s *Store) Len(category core.Category) int {
	return len(s.books[category])
}

// Replace installs a fresh snapshot for a category, typically one loaded from
// the persistence collaborator. Dates are normalized to calendar days.
func (s *Store) Replace(category core.Category, records []core.Transaction) error {
	return s.ReplaceAll(map[core.Category][]core.Transaction{category: records})
}

// ReplaceAll installs snapshots for several categories at once. Every snapshot
// is checked before any is installed, so a bad one leaves the store unchanged.
func (s *Store) ReplaceAll(snapshot map[core.Category][]core.Transaction) error {
	books := make(map[core.Category][]core.Transaction, len(snapshot))
	for category, records := range snapshot {
		if err := category.Validate(); err != nil {
			return err
		}
		book, err := normalize(records)
		if err != nil {
			return fmt.Errorf("%s: %w", category, err)
		}
		books[category] = book
	}
	for category, book := range books {
		s.books[category] = book
	}
	return nil
}

func normalize(records []core.Transaction) ([]core.Transaction, error) {
	seen := make(map[string]struct{}, len(records))
	out := make([]core.Transaction, len(records))
	for i, tx := range records {
		if _, dup := seen[tx.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
		}
		seen[tx.ID] = struct{}{}
		tx.Date = core.DateOf(tx.Date.Time)
		if tx.Status == "" {
			tx.Status = core.StatusApplied
		}
		out[i] = tx
	}
	return out, nil
}

func (s *Store) find(category core.Category, id string) (core.Transaction, int, bool) {
	for i, tx := range s.books[category] {
		if tx.ID == id {
			return tx, i, true
		}
	}
	return core.Transaction{}, -1, false
}
