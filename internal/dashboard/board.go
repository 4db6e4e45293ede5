// Package dashboard holds the state behind the prayer-times view: the
// selected city, the day's timings, and the countdown derived from them.
package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

// Board is the view state. It is not safe for concurrent use; the owner
// serializes calls (the TUI does so through its update loop).
type Board struct {
	selected city.City
	// shown is the city whose timings are (or were last) displayed.
	shown   city.City
	timings prayer.Timings
	hijri   string
	gen     uint64
	err     error
}

// New returns a Board with no data for the initial city.
func New(initial city.City) *Board {
	return &Board{selected: initial}
}

// Request describes one fetch issued for a city selection.
type Request struct {
	Gen  uint64
	ID   string
	City city.City
	Date time.Time
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Timings prayer.Timings
	Hijri   string
	Err     error
}

// Select switches to c, clearing any timings immediately, and returns the
// request that should be fetched. Results of earlier requests are ignored
// from now on.
func (b *Board) Select(c city.City, today time.Time) Request {
	b.selected = c
	b.timings = prayer.Timings{}
	b.hijri = ""
	b.err = nil
	b.gen++
	return Request{Gen: b.gen, ID: uuid.NewString(), City: c, Date: today}
}

// Refresh re-requests the current city, e.g. after the day rolls over.
func (b *Board) Refresh(today time.Time) Request {
	return b.Select(b.selected, today)
}

// Apply installs a fetch result. It reports false and changes nothing when
// the result belongs to a superseded request. A failed result leaves the
// timings empty and records the error.
func (b *Board) Apply(r Result) bool {
	if r.Gen != b.gen {
		return false
	}
	if r.Err != nil {
		b.timings = prayer.Timings{}
		b.err = r.Err
		return true
	}
	b.timings = r.Timings
	b.hijri = r.Hijri
	b.shown = r.City
	b.err = nil
	return true
}

// DismissError clears the recorded fetch error.
func (b *Board) DismissError() { b.err = nil }

// Err returns the last fetch error, if any.
func (b *Board) Err() error { return b.err }

// Selected returns the currently selected city.
func (b *Board) Selected() city.City { return b.selected }

// Shown returns the city whose label should be displayed and whether any
// data is present for it.
func (b *Board) Shown() (city.City, bool) { return b.shown, b.HasData() }

// Timings returns the loaded timings; the zero value means no data.
func (b *Board) Timings() prayer.Timings { return b.timings }

// Hijri returns the Hijri date reported with the timings.
func (b *Board) Hijri() string { return b.hijri }

// HasData reports whether a complete set of timings is loaded.
func (b *Board) HasData() bool { return !b.timings.IsZero() }

// Generation returns the id of the latest request.
func (b *Board) Generation() uint64 { return b.gen }

// Countdown is the derived display state at one instant.
type Countdown struct {
	HasData bool
	Next    prayer.Next
	Hours   int
	Minutes int
	Seconds int
}

// Snapshot derives the countdown at now from the loaded timings. It does not
// modify the board. With no data it returns the zero Countdown.
func (b *Board) Snapshot(now time.Time) Countdown {
	return Compute(b.timings, now)
}

// Compute derives the countdown for timings at now.
func Compute(t prayer.Timings, now time.Time) Countdown {
	if t.IsZero() {
		return Countdown{}
	}
	next, ok := prayer.ResolveNext(t, now)
	if !ok {
		return Countdown{}
	}
	h, m := next.Remaining(now)
	return Countdown{
		HasData: true,
		Next:    next,
		Hours:   h,
		Minutes: m,
		Seconds: prayer.SecondsLeft(now),
	}
}
