// Package services wires the persistence collaborator: a repository for
// durable storage plus an optional event feed.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/ports"
)

// Repository is a ports.Store that holds resources.
type Repository interface {
	ports.Store
	Close() error
}

// EventPublisher announces confirmed mutations.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
	Close() error
}

// TransactionService writes to the repository first and then publishes a
// change event. A failed publish is logged and never fails the mutation, since
// the record is already durable.
type TransactionService struct {
	repo      Repository
	publisher EventPublisher
}

// NewTransactionService accepts a nil publisher when no feed is configured.
func NewTransactionService(repo Repository, publisher EventPublisher) *TransactionService {
	return &TransactionService{repo: repo, publisher: publisher}
}

func (s *TransactionService) Load(ctx context.Context, category core.Category) ([]core.Transaction, error) {
	return s.repo.Load(ctx, category)
}

func (s *TransactionService) Save(ctx context.Context, category core.Category, tx core.Transaction) error {
	if err := s.repo.Save(ctx, category, tx); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	s.publish(ctx, amqp.NewCreatedEvent(category, tx))
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, category core.Category, id string) error {
	if err := s.repo.Delete(ctx, category, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, amqp.NewDeletedEvent(category, id))
	return nil
}

func (s *TransactionService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"id", event.ID,
			"error", err)
	}
}

// Close closes both the repository and the publisher.
func (s *TransactionService) Close() error {
	var errs []error
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("repository: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	return errors.Join(errs...)
}
