package memory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"finboard/internal/core"
)

// Store keeps both ledgers in process memory.
type Store struct {
	mu    sync.Mutex
	books map[core.Category][]core.Transaction
}

// seedRecord is one entry of a seed file. Amounts and dates are read as
// strings so that "12,50" and quoted numbers both work.
type seedRecord struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Amount string `yaml:"amount"`
	Color  string `yaml:"color"`
	Date   string `yaml:"date"`
}

type seedFile struct {
	Expense []seedRecord `yaml:"expense"`
	Income  []seedRecord `yaml:"income"`
}

func New() *Store {
	return &Store{books: make(map[core.Category][]core.Transaction, 2)}
}

// NewFromFile seeds a store from a YAML file. A missing file yields an empty
// store.
func NewFromFile(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	if err := s.LoadSeed(data); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return s, nil
}

// LoadSeed replaces the store contents with a YAML document.
func (s *Store) LoadSeed(data []byte) error {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	expense, err := convert(seed.Expense)
	if err != nil {
		return fmt.Errorf("expense: %w", err)
	}
	income, err := convert(seed.Income)
	if err != nil {
		return fmt.Errorf("income: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[core.Expense] = expense
	s.books[core.Income] = income
	return nil
}

func convert(in []seedRecord) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(in))
	seen := map[string]struct{}{}
	for i, r := range in {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("record %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, r.ID)
		}
		seen[r.ID] = struct{}{}

		amount, err := core.ParseAmount(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		date, err := core.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		tx := core.Transaction{
			ID:     r.ID,
			Name:   strings.TrimSpace(r.Name),
			Amount: amount,
			Color:  core.ColorToken(r.Color),
			Date:   date,
			Status: core.StatusApplied,
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// Load returns a copy of the category's records.
func (s *Store) Load(_ context.Context, category core.Category) ([]core.Transaction, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.books[category]...), nil
}

// Save appends the record, or overwrites the stored one with the same id.
func (s *Store) Save(_ context.Context, category core.Category, tx core.Transaction) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	tx.Status = core.StatusApplied

	s.mu.Lock()
	defer s.mu.Unlock()
	book := s.books[category]
	for i := range book {
		if book[i].ID == tx.ID {
			book[i] = tx
			return nil
		}
	}
	s.books[category] = append(book, tx)
	return nil
}

// Delete removes the record if present.
func (s *Store) Delete(_ context.Context, category core.Category, id string) error {
	if err := category.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	book := s.books[category]
	for i := range book {
		if book[i].ID == id {
			s.books[category] = append(book[:i:i], book[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close is a no-op; it lets Store stand in wherever a closable backend is
// expected.
func (s *Store) Close() error { return nil }
