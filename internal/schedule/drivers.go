package schedule

import (
	"time"

	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

// Loop names used by the dashboard drivers.
const (
	CountdownLoop = "countdown"
	MinuteLoop    = "clock.minute"
	HourLoop      = "clock.hour"
	DateLoop      = "clock.date"
)

// StartCountdown ticks once per second, aligned to second boundaries.
// Restarting replaces the running countdown, so at most one is active.
func StartCountdown(s *Scheduler, tick func(now time.Time)) {
	s.Loop(CountdownLoop, prayer.UntilNextSecond, tick)
}

// StopCountdown cancels the countdown tick.
func StopCountdown(s *Scheduler) {
	s.Cancel(CountdownLoop)
}

// StartClock starts the three wall-clock cycles. Each fires at the next
// minute, hour or day boundary respectively. Nil callbacks are skipped.
func StartClock(s *Scheduler, onMinute, onHour, onDate func(now time.Time)) {
	if onMinute != nil {
		s.Loop(MinuteLoop, prayer.UntilNextMinute, onMinute)
	}
	if onHour != nil {
		s.Loop(HourLoop, prayer.UntilNextHour, onHour)
	}
	if onDate != nil {
		s.Loop(DateLoop, prayer.UntilNextDay, onDate)
	}
}
