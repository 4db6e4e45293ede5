package prayer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat-clock/internal/api"
)

// NumPrayers is the number of daily prayers tracked.
const NumPrayers = 5

// Order lists the five daily prayers in chronological order.
var Order = [NumPrayers]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// Timings holds one day's prayer times as raw "HH:MM" strings, indexed like Order.
// The zero value means no data has been loaded.
type Timings [NumPrayers]string

// IsZero reports whether no timings are present.
func (t Timings) IsZero() bool {
	return t == Timings{}
}

// FromAPI converts API timings into Timings. All five prayers must parse;
// otherwise the zero Timings and an error are returned.
func FromAPI(raw api.Timings) (Timings, error) {
	maghrib := raw.Maghrib
	if strings.TrimSpace(maghrib) == "" {
		maghrib = raw.Sunset
	}
	values := [NumPrayers]string{raw.Fajr, raw.Dhuhr, raw.Asr, maghrib, raw.Isha}

	var t Timings
	for i, v := range values {
		c, err := ParseClock(v)
		if err != nil {
			return Timings{}, fmt.Errorf("failed to parse time for %s (%q): %w", Order[i], v, err)
		}
		t[i] = c.String()
	}
	return t, nil
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the clock placed on day's calendar date in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// clockPattern matches "HH:MM" with an optional timezone suffix like " (AST)"
// or " (+03)", which the API sometimes appends.
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s+\([^()]*\))?$`)

// ParseClock parses a time string like "15:02" or "15:02 (AST)". Anything
// else, including signs or trailing text, is rejected.
func ParseClock(raw string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Clock{}, fmt.Errorf("invalid time format: %q", raw)
	}

	hour, _ := strconv.Atoi(m[1])
	if hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", raw)
	}
	min, _ := strconv.Atoi(m[2])
	if min > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", raw)
	}

	return Clock{Hour: hour, Minute: min}, nil
}

// Next is the resolved upcoming prayer.
type Next struct {
	Index int
	Name  string
	At    Clock
	// Tomorrow is set when every prayer today has passed and the target
	// wrapped around to the first prayer of the next day.
	Tomorrow bool
}

// ResolveNext scans timings in order and returns the first prayer whose time
// of day is strictly after now (minute precision). When all have passed it
// wraps to the first valid entry, flagged as tomorrow's. Malformed entries are
// skipped; with no valid entries it returns false.
func ResolveNext(t Timings, now time.Time) (Next, bool) {
	first := -1
	var firstClock Clock

	for i, raw := range t {
		c, err := ParseClock(raw)
		if err != nil {
			continue
		}
		if first < 0 {
			first, firstClock = i, c
		}
		if c.Hour > now.Hour() || (c.Hour == now.Hour() && c.Minute > now.Minute()) {
			return Next{Index: i, Name: Order[i], At: c}, true
		}
	}

	if first < 0 {
		return Next{}, false
	}
	return Next{Index: first, Name: Order[first], At: firstClock, Tomorrow: true}, true
}

// Remaining returns whole hours and minutes from now until target. A target
// hour earlier than now's hour is taken as tomorrow's. Never negative.
func Remaining(target Clock, now time.Time) (hours, minutes int) {
	return split(until(target, now, target.Hour < now.Hour()))
}

// Remaining returns whole hours and minutes until this prayer, honouring the
// wrap to tomorrow.
func (n Next) Remaining(now time.Time) (hours, minutes int) {
	return split(n.Until(now))
}

// Until returns the duration from now until this prayer. Never negative.
func (n Next) Until(now time.Time) time.Duration {
	return until(n.At, now, n.Tomorrow || n.At.Hour < now.Hour())
}

// SecondsLeft is the seconds component of the countdown at now.
func SecondsLeft(now time.Time) int {
	return 59 - now.Second()
}

func until(target Clock, now time.Time, tomorrow bool) time.Duration {
	day := now
	if tomorrow {
		day = now.AddDate(0, 0, 1)
	}
	d := target.On(day).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func split(d time.Duration) (hours, minutes int) {
	if d <= 0 {
		return 0, 0
	}
	return int(d / time.Hour), int((d % time.Hour) / time.Minute)
}
