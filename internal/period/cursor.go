// Package period tracks the active reporting window.
//
// A Cursor pairs a granularity with a reference date. The pair always maps to
// exactly one inclusive window that contains the reference date; navigation
// moves the reference date by one unit of the granularity.
package period

import (
	"fmt"
	"strings"
	"time"

	"finboard/internal/core"
)

// DefaultWeekStart is the first day of a week window.
const DefaultWeekStart = time.Sunday

// Cursor is single-owner state; it does no locking.
type Cursor struct {
	granularity core.Granularity
	ref         core.Date
	weekStart   time.Weekday
}

type Option func(*Cursor)

// WithWeekStart changes the weekday week windows begin on. Values outside
// Sunday..Saturday wrap around the week.
func WithWeekStart(day time.Weekday) Option {
	return func(c *Cursor) {
		c.weekStart = time.Weekday(mod7(int(day)))
	}
}

// NewCursor starts at month granularity anchored on today.
func NewCursor(today core.Date, opts ...Option) *Cursor {
	c := &Cursor{
		granularity: core.Month,
		ref:         today,
		weekStart:   DefaultWeekStart,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cursor) Granularity() core.Granularity { return c.granularity }

func (c *Cursor) ReferenceDate() core.Date { return c.ref }

func (c *Cursor) WeekStart() time.Weekday { return c.weekStart }

// Window returns the current inclusive window.
func (c *Cursor) Window() core.Window {
	w, err := WindowFor(c.granularity, c.ref, c.weekStart)
	if err != nil {
		// granularity is validated on every write
		panic(err)
	}
	return w
}

// Label returns the English label of the current window.
func (c *Cursor) Label() string {
	return Label(c.granularity, c.Window())
}

// SetGranularity switches resolution without touching the reference date.
func (c *Cursor) SetGranularity(g core.Granularity) error {
	if err := g.Validate(); err != nil {
		return err
	}
	c.granularity = g
	return nil
}

// SetReferenceDate jumps to an arbitrary date.
func (c *Cursor) SetReferenceDate(d core.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.ref = core.DateOf(d.Time)
	return nil
}

// Step moves the reference date by one unit of the current granularity.
// Month and year steps clamp the day, so Jan 31 forward then backward lands
// on Jan 28 (or 29), not Jan 31.
func (c *Cursor) Step(dir core.Direction) error {
	switch dir {
	case core.Forward, core.Backward:
	default:
		return &core.ValidationError{Field: "direction", Value: string(dir), Err: core.ErrInvalidDirection}
	}
	s, err := StrategyFor(c.granularity)
	if err != nil {
		return err
	}
	c.ref = s.Step(c.ref, dir.Sign())
	return nil
}

// Reset restores view-entry defaults.
func (c *Cursor) Reset(today core.Date) {
	c.granularity = core.Month
	c.ref = today
}

// ParseWeekday reads a weekday name such as "sunday" or "Mon".
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultWeekStart, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return DefaultWeekStart, fmt.Errorf("unknown weekday %q", s)
}
