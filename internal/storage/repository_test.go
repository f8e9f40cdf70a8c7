package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/ports"
)

var _ ports.Store = (*SQLiteRepository)(nil)

func newRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "finboard.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func record(id, name, amount, date string) core.Transaction {
	return core.Transaction{
		ID:     id,
		Name:   name,
		Amount: decimal.RequireFromString(amount),
		Color:  "#86efac",
		Date:   core.MustParseDate(date),
		Status: core.StatusPending,
	}
}

func TestSaveAndLoadPreserveOrder(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Save(ctx, core.Expense, record("b", "Taxi", "8200", "2026-02-09")))
	require.NoError(t, repo.Save(ctx, core.Expense, record("a", "Rent", "16283.50", "2026-02-05")))
	require.NoError(t, repo.Save(ctx, core.Income, record("c", "Salary", "50000", "2026-02-01")))

	got, err := repo.Load(ctx, core.Expense)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("16283.5")))
	assert.Equal(t, "2026-02-05", got[1].Date.String())
	assert.Equal(t, core.ColorToken("#86efac"), got[1].Color)
	assert.Equal(t, core.StatusApplied, got[1].Status)

	n, err := repo.Count(ctx, core.Income)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoadEmptyIsNotNil(t *testing.T) {
	repo, _ := newRepo(t)
	got, err := repo.Load(context.Background(), core.Income)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveUpsertsByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Save(ctx, core.Expense, record("a", "Rent", "100", "2026-02-05")))
	require.NoError(t, repo.Save(ctx, core.Expense, record("a", "Rent", "200", "2026-02-05")))

	got, err := repo.Load(ctx, core.Expense)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(200)))
}

func TestSaveRejectsInvalid(t *testing.T) {
	repo, _ := newRepo(t)
	err := repo.Save(context.Background(), core.Expense, record("a", " ", "1", "2026-01-01"))
	assert.ErrorIs(t, err, core.ErrEmptyName)
	err = repo.Save(context.Background(), "savings", record("a", "x", "1", "2026-01-01"))
	assert.ErrorIs(t, err, core.ErrInvalidCategory)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.NoError(t, repo.Save(ctx, core.Expense, record("a", "Rent", "100", "2026-02-05")))

	assert.NoError(t, repo.Delete(ctx, core.Expense, "missing"))
	assert.NoError(t, repo.Delete(ctx, core.Income, "a"), "wrong category is a no-op")

	n, _ := repo.Count(ctx, core.Expense)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, core.Expense, "a"))
	n, _ = repo.Count(ctx, core.Expense)
	assert.Equal(t, 0, n)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	_, path := newRepo(t)

	require.NoError(t, RunMigrations(path))
	version, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}
