// Package schedule drives the periodic refreshes of the dashboard: the
// one-second countdown tick and the minute, hour and date cycles.
//
// Every loop is a self-adjusting one-shot timer. After each run the next
// delay is recomputed from the clock so the loop stays aligned to wall-clock
// boundaries instead of accumulating drift, and a slow run delays the next
// one rather than overlapping it.
package schedule

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DelayFunc returns how long to wait, measured from now, before the next run.
type DelayFunc func(now time.Time) time.Duration

// Scheduler owns a set of named loops. Each name has at most one active timer.
type Scheduler struct {
	clock clockwork.Clock

	mu      sync.Mutex
	loops   map[string]*loop
	stopped bool
}

type loop struct {
	timer clockwork.Timer
	delay DelayFunc
	fn    func(time.Time)
}

// New returns a Scheduler reading time from clock. A nil clock means the
// real clock.
func New(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clock, loops: make(map[string]*loop)}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// Loop runs fn after delay(now) and again after every freshly computed delay
// until the loop is cancelled. Registering a name that is already running
// replaces the previous loop. Loop is a no-op after Stop.
func (s *Scheduler) Loop(name string, delay DelayFunc, fn func(time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if old, ok := s.loops[name]; ok {
		old.timer.Stop()
	}
	l := &loop{delay: delay, fn: fn}
	s.loops[name] = l
	s.arm(name, l)
}

// Running reports whether the named loop is scheduled.
func (s *Scheduler) Running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loops[name]
	return ok
}

// Cancel stops the named loop. A run already in progress completes but
// does not reschedule.
func (s *Scheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.loops[name]; ok {
		l.timer.Stop()
		delete(s.loops, name)
	}
}

// Stop cancels every loop. The scheduler cannot be reused.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, l := range s.loops {
		l.timer.Stop()
		delete(s.loops, name)
	}
	s.stopped = true
}

// arm schedules the next firing of l. s.mu must be held.
func (s *Scheduler) arm(name string, l *loop) {
	d := l.delay(s.clock.Now())
	if d <= 0 {
		d = time.Millisecond
	}
	l.timer = s.clock.AfterFunc(d, func() { s.fire(name, l) })
}

// fire runs one iteration of l and then arms the next, so a loop never runs
// concurrently with itself. The delay is measured from after fn returns.
func (s *Scheduler) fire(name string, l *loop) {
	if !s.current(name, l) {
		return
	}

	l.fn(s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.loops[name] != l {
		// Cancelled or replaced while fn ran.
		return
	}
	s.arm(name, l)
}

// current reports whether l is still the active loop for name.
func (s *Scheduler) current(name string, l *loop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && s.loops[name] == l
}
