// Package ports declares the outbound collaborators of the tracker.
package ports

import (
	"context"

	"finboard/internal/core"
)

// Ports for outbound adapters.
type (
	// Loader supplies the ledger contents of one category.
	Loader interface {
		Load(ctx context.Context, category core.Category) ([]core.Transaction, error)
	}

	// Persister durably records ledger mutations. Deleting an id that is not
	// stored is not an error.
	Persister interface {
		Save(ctx context.Context, category core.Category, tx core.Transaction) error
		Delete(ctx context.Context, category core.Category, id string) error
	}

	Store interface {
		Loader
		Persister
	}
)
