package tracker

import (
	"context"
	"errors"
)

// ErrOwnerStopped is returned by Do once Run has exited.
var ErrOwnerStopped = errors.New("session owner stopped")

type request struct {
	fn   func(*Session) error
	done chan error
}

// Owner serializes all access to a Session through one goroutine. Run it
// once; everything else talks to the session with Do.
type Owner struct {
	session  *Session
	requests chan request
	stopped  chan struct{}
}

func NewOwner(s *Session) *Owner {
	return &Owner{
		session:  s,
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
}

// Run applies submitted closures one at a time until ctx is done.
func (o *Owner) Run(ctx context.Context) error {
	defer close(o.stopped)
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-o.requests:
			req.done <- req.fn(o.session)
		}
	}
}

// Do runs fn on the owner goroutine and returns its error. ctx only bounds
// the wait for the owner to pick the request up; fn receives no ctx of its
// own and should use the caller's. fn must not call Do itself.
func (o *Owner) Do(ctx context.Context, fn func(*Session) error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case o.requests <- req:
	case <-o.stopped:
		return ErrOwnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted, fn runs to completion and its writes must be visible
	// to the caller, so the reply is awaited even if ctx ends meanwhile.
	return <-req.done
}
