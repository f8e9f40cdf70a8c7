package commands

import (
	"context"
	"fmt"

	"finboard/internal/backend"
	"finboard/internal/core"
	"finboard/internal/palette"
	"finboard/internal/period"
	"finboard/internal/tracker"
)

// openSession connects the configured backend and returns a session loaded
// from it. Adds and removes on the session are written through.
func openSession(ctx context.Context, opts *options) (*tracker.Session, func() error, error) {
	weekStart, err := period.ParseWeekday(opts.weekStart)
	if err != nil {
		return nil, nil, err
	}
	colors, err := palette.New(opts.colorPolicy, palette.Default)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(opts.logger).CreateBackend(ctx, backend.Config{
		Type:         backend.BackendType(opts.backend),
		SQLiteDBPath: opts.dbPath,
		SeedFile:     opts.seedFile,
		AMQPURL:      opts.amqpURL,
		AMQPExchange: opts.amqpExchange,
		AMQPQueue:    opts.amqpQueue,
	})
	if err != nil {
		return nil, nil, err
	}

	session := tracker.New(
		tracker.WithPersister(result.Store),
		tracker.WithClock(opts.clock),
		tracker.WithWeekStart(weekStart),
		tracker.WithAllocator(colors),
		tracker.WithLogger(opts.logger),
	)
	if err := session.Refresh(ctx, result.Store); err != nil {
		_ = result.Close()
		return nil, nil, fmt.Errorf("load ledgers: %w", err)
	}
	return session, result.Close, nil
}

// requirePersistent rejects edits that the memory backend would drop when
// the process exits.
func requirePersistent(opts *options, command string) error {
	if backend.BackendType(opts.backend) == backend.MemoryBackend {
		return fmt.Errorf("%s needs a persistent backend: the memory backend discards changes on exit, use --backend %s",
			command, backend.SQLiteBackend)
	}
	return nil
}

// selectCategory parses a --category value and makes it active.
func selectCategory(s *tracker.Session, raw string) error {
	c, err := core.ParseCategory(raw)
	if err != nil {
		return err
	}
	return s.SetCategory(c)
}
