package period

import (
	"fmt"
	"time"

	"finboard/internal/core"
)

// Strategy encapsulates the calendar rules of one granularity.
type Strategy interface {
	// Window returns the inclusive range that contains ref.
	Window(ref core.Date, weekStart time.Weekday) core.Window
	// Step moves ref by sign units of the granularity.
	Step(ref core.Date, sign int) core.Date
	// Label renders a window in English.
	Label(w core.Window) string
}

type dayStrategy struct{}

func (dayStrategy) Window(ref core.Date, _ time.Weekday) core.Window {
	return core.Window{Start: ref, End: ref}
}

func (dayStrategy) Step(ref core.Date, sign int) core.Date {
	return ref.AddDays(sign)
}

func (dayStrategy) Label(w core.Window) string {
	return w.Start.Format("January 2, 2006")
}

type weekStrategy struct{}

// Window starts at the most recent weekStart on or before ref.
func (weekStrategy) Window(ref core.Date, weekStart time.Weekday) core.Window {
	back := mod7(int(ref.Weekday()) - int(weekStart))
	start := ref.AddDays(-back)
	return core.Window{Start: start, End: start.AddDays(6)}
}

func (weekStrategy) Step(ref core.Date, sign int) core.Date {
	return ref.AddDays(7 * sign)
}

func (weekStrategy) Label(w core.Window) string {
	if w.Start.Year() != w.End.Year() {
		return w.Start.Format("Jan 2, 2006") + " - " + w.End.Format("Jan 2, 2006")
	}
	return w.Start.Format("Jan 2") + " - " + w.End.Format("Jan 2, 2006")
}

type monthStrategy struct{}

func (monthStrategy) Window(ref core.Date, _ time.Weekday) core.Window {
	return core.Window{
		Start: core.NewDate(ref.Year(), ref.Month(), 1),
		End:   core.NewDate(ref.Year(), ref.Month(), core.DaysIn(ref.Year(), ref.Month())),
	}
}

func (monthStrategy) Step(ref core.Date, sign int) core.Date {
	return ref.AddMonths(sign)
}

func (monthStrategy) Label(w core.Window) string {
	return w.Start.Format("January 2006")
}

type yearStrategy struct{}

func (yearStrategy) Window(ref core.Date, _ time.Weekday) core.Window {
	return core.Window{
		Start: core.NewDate(ref.Year(), 1, 1),
		End:   core.NewDate(ref.Year(), 12, 31),
	}
}

func (yearStrategy) Step(ref core.Date, sign int) core.Date {
	return ref.AddYears(sign)
}

func (yearStrategy) Label(w core.Window) string {
	return w.Start.Format("2006")
}

// strategies maps each granularity to its calendar rules.
var strategies = map[core.Granularity]Strategy{
	core.Day:   dayStrategy{},
	core.Week:  weekStrategy{},
	core.Month: monthStrategy{},
	core.Year:  yearStrategy{},
}

// StrategyFor returns the rules for a granularity.
func StrategyFor(g core.Granularity) (Strategy, error) {
	s, ok := strategies[g]
	if !ok {
		return nil, fmt.Errorf("unknown granularity: %s", g)
	}
	return s, nil
}

// WindowFor is the pure mapping from (granularity, reference date) to a window.
func WindowFor(g core.Granularity, ref core.Date, weekStart time.Weekday) (core.Window, error) {
	s, err := StrategyFor(g)
	if err != nil {
		return core.Window{}, err
	}
	return s.Window(ref, weekStart), nil
}

// Label formats a window for display.
func Label(g core.Granularity, w core.Window) string {
	s, err := StrategyFor(g)
	if err != nil {
		return w.Start.String() + " - " + w.End.String()
	}
	return s.Label(w)
}

// mod7 is x modulo 7 in 0..6 for any sign of x.
func mod7(x int) int {
	return (x%7 + 7) % 7
}
