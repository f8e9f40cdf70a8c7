// Package storage persists both ledgers in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements ports.Store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save inserts the record or overwrites the one with the same id.
func (r *SQLiteRepository) Save(ctx context.Context, category core.Category, tx core.Transaction) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, category, name, amount, color, entry_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category   = excluded.category,
			name       = excluded.name,
			amount     = excluded.amount,
			color      = excluded.color,
			entry_date = excluded.entry_date`,
		tx.ID, string(category), tx.Name, tx.Amount.String(), string(tx.Color), tx.Date.String())
	if err != nil {
		return fmt.Errorf("save transaction %s: %w", tx.ID, err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"category", category,
		"id", tx.ID,
		"amount", tx.Amount.String(),
		"date", tx.Date.String())
	return nil
}

// Delete removes the record. A missing id is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, category core.Category, id string) error {
	if err := category.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE category = ? AND id = ?`, string(category), id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		slog.DebugContext(ctx, "Delete of unknown transaction ignored", "category", category, "id", id)
	}
	return nil
}

// Load returns a category's records in insertion order.
func (r *SQLiteRepository) Load(ctx context.Context, category core.Category) ([]core.Transaction, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount, color, entry_date
		FROM transactions
		WHERE category = ?
		ORDER BY seq`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query %s transactions: %w", category, err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			tx               core.Transaction
			amount, color, d string
		)
		if err := rows.Scan(&tx.ID, &tx.Name, &amount, &color, &d); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s: bad amount %q: %w", tx.ID, amount, err)
		}
		if tx.Date, err = core.ParseDate(d); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		tx.Color = core.ColorToken(color)
		tx.Status = core.StatusApplied
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records of a category.
func (r *SQLiteRepository) Count(ctx context.Context, category core.Category) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category = ?`, string(category)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s transactions: %w", category, err)
	}
	return n, nil
}
