package prayer

import "time"

// StartOfDay returns midnight at the start of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextMidnight returns midnight at the start of the day after t.
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// UntilNextSecond returns the delay until the next whole second.
func UntilNextSecond(t time.Time) time.Duration {
	return time.Second - time.Duration(t.Nanosecond())
}

// UntilNextMinute returns the delay until the next minute boundary.
func UntilNextMinute(t time.Time) time.Duration {
	next := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()).Add(time.Minute)
	return next.Sub(t)
}

// UntilNextHour returns the delay until the next hour boundary.
func UntilNextHour(t time.Time) time.Duration {
	next := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
	return next.Sub(t)
}

// UntilNextDay returns the delay until the next calendar day starts.
func UntilNextDay(t time.Time) time.Duration {
	return NextMidnight(t).Sub(t)
}

// SecondsLeftInMinute returns whole seconds until the minute rolls over (1..60).
func SecondsLeftInMinute(t time.Time) int {
	return 60 - t.Second()
}

// MinutesLeftInHour returns whole minutes until the hour rolls over (1..60).
func MinutesLeftInHour(t time.Time) int {
	return 60 - t.Minute()
}

// HoursLeftInDay returns whole hours until the day rolls over (1..24).
func HoursLeftInDay(t time.Time) int {
	return 24 - t.Hour()
}
