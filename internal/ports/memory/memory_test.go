package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"finboard/internal/core"
	"finboard/internal/ports"
)

var _ ports.Store = (*Store)(nil)

const seedYAML = `
expense:
  - id: e1
    name: Rent
    amount: "16283"
    color: "#c084fc"
    date: 2026-02-05
  - id: e2
    name: Taxi
    amount: "82,50"
    color: "#fde047"
    date: "2026-02-09"
income:
  - id: i1
    name: Salary
    amount: "50000"
    color: "#86efac"
    date: 2026-02-01
`

func TestNewFromFileMissingIsEmpty(t *testing.T) {
	s, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}
	got, err := s.Load(context.Background(), core.Expense)
	if err != nil || len(got) != 0 {
		t.Fatalf("unexpected load: %v %v", got, err)
	}
}

func TestNewFromFileSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}

	expense, _ := s.Load(context.Background(), core.Expense)
	if len(expense) != 2 || expense[0].ID != "e1" || expense[1].ID != "e2" {
		t.Fatalf("unexpected expense ledger: %+v", expense)
	}
	if expense[1].Amount.String() != "82.5" {
		t.Errorf("amount = %s, want 82.5", expense[1].Amount)
	}
	if expense[0].Date.String() != "2026-02-05" {
		t.Errorf("date = %s", expense[0].Date)
	}

	income, _ := s.Load(context.Background(), core.Income)
	if len(income) != 1 || income[0].Name != "Salary" {
		t.Fatalf("unexpected income ledger: %+v", income)
	}
}

func TestLoadSeedRejectsBadRecords(t *testing.T) {
	bad := []string{
		"expense:\n  - id: a\n    name: x\n    amount: \"-1\"\n    date: 2026-01-01\n",
		"expense:\n  - id: a\n    name: x\n    amount: \"1\"\n    date: 2026-02-30\n",
		"expense:\n  - name: x\n    amount: \"1\"\n    date: 2026-01-01\n",
		"expense:\n  - id: a\n    name: x\n    amount: \"1\"\n    date: 2026-01-01\n  - id: a\n    name: y\n    amount: \"1\"\n    date: 2026-01-01\n",
		"expense: [",
	}
	for _, doc := range bad {
		if err := New().LoadSeed([]byte(doc)); err == nil {
			t.Errorf("LoadSeed(%q) expected error", doc)
		}
	}
}

func TestSaveDeleteLoad(t *testing.T) {
	ctx := context.Background()
	s := New()
	tx := core.Transaction{
		ID:     "x",
		Name:   "Coffee",
		Amount: core.MustParseAmount("3"),
		Date:   core.MustParseDate("2026-02-09"),
		Status: core.StatusPending,
	}
	if err := s.Save(ctx, core.Expense, tx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _ := s.Load(ctx, core.Expense)
	if len(got) != 1 || got[0].Status != core.StatusApplied {
		t.Fatalf("unexpected load after save: %+v", got)
	}

	// Load hands out copies.
	got[0].Name = "changed"
	again, _ := s.Load(ctx, core.Expense)
	if again[0].Name != "Coffee" {
		t.Errorf("store mutated through Load result")
	}

	if err := s.Delete(ctx, core.Expense, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
	if err := s.Delete(ctx, core.Expense, "x"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	got, _ = s.Load(ctx, core.Expense)
	if len(got) != 0 {
		t.Errorf("expected empty ledger, got %+v", got)
	}
}

func TestInvalidCategory(t *testing.T) {
	s := New()
	if _, err := s.Load(context.Background(), "savings"); !core.IsValidation(err) {
		t.Errorf("Load() error = %v", err)
	}
}
