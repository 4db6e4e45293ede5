package schedule

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStartCountdown_TicksEverySecond(t *testing.T) {
	fc := clockwork.NewFakeClockAt(start.Add(250 * time.Millisecond))
	s := New(fc)
	defer s.Stop()

	ticks := make(chan time.Time, 10)
	StartCountdown(s, func(now time.Time) { ticks <- now })

	waitTimers(t, fc, 1)
	fc.Advance(750 * time.Millisecond)
	if got := recv(t, ticks); !got.Equal(start.Add(time.Second)) {
		t.Errorf("first tick at %v", got)
	}

	waitTimers(t, fc, 1)
	fc.Advance(time.Second)
	if got := recv(t, ticks); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("second tick at %v", got)
	}
}

func TestStartCountdown_RestartIsSingleTimer(t *testing.T) {
	fc := clockwork.NewFakeClockAt(start)
	s := New(fc)
	defer s.Stop()

	ticks := make(chan time.Time, 10)
	StartCountdown(s, func(now time.Time) { ticks <- now })
	StartCountdown(s, func(now time.Time) { ticks <- now })

	waitTimers(t, fc, 1)
	fc.Advance(time.Second)
	recv(t, ticks)
	expectNone(t, ticks)
}

func TestStopCountdown(t *testing.T) {
	fc := clockwork.NewFakeClockAt(start)
	s := New(fc)
	defer s.Stop()

	ticks := make(chan time.Time, 10)
	StartCountdown(s, func(now time.Time) { ticks <- now })
	waitTimers(t, fc, 1)

	StopCountdown(s)
	fc.Advance(3 * time.Second)
	expectNone(t, ticks)
	if s.Running(CountdownLoop) {
		t.Error("countdown still registered")
	}
}

func TestStartClock_Boundaries(t *testing.T) {
	// 23:59:30: minute, hour and day all roll over in 30 seconds.
	fc := clockwork.NewFakeClockAt(start)
	s := New(fc)
	defer s.Stop()

	minutes := make(chan time.Time, 10)
	hours := make(chan time.Time, 10)
	dates := make(chan time.Time, 10)
	StartClock(s,
		func(now time.Time) { minutes <- now },
		func(now time.Time) { hours <- now },
		func(now time.Time) { dates <- now },
	)

	waitTimers(t, fc, 3)
	fc.Advance(30 * time.Second)
	midnight := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	for name, ch := range map[string]chan time.Time{"minute": minutes, "hour": hours, "date": dates} {
		if got := recv(t, ch); !got.Equal(midnight) {
			t.Errorf("%s cycle fired at %v, want %v", name, got, midnight)
		}
	}

	// One more minute: only the minute cycle fires.
	waitTimers(t, fc, 3)
	fc.Advance(time.Minute)
	if got := recv(t, minutes); !got.Equal(midnight.Add(time.Minute)) {
		t.Errorf("minute cycle fired at %v", got)
	}
	expectNone(t, hours)
	expectNone(t, dates)
}

func TestStartClock_NilCallbacks(t *testing.T) {
	fc := clockwork.NewFakeClockAt(start)
	s := New(fc)
	defer s.Stop()

	dates := make(chan time.Time, 1)
	StartClock(s, nil, nil, func(now time.Time) { dates <- now })

	if s.Running(MinuteLoop) || s.Running(HourLoop) {
		t.Error("nil callbacks should not start loops")
	}
	waitTimers(t, fc, 1)
	fc.Advance(30 * time.Second)
	recv(t, dates)
}
