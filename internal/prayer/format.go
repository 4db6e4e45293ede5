package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatCountdown          = "countdown"
	FormatFull               = "full"
)

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Full prayer name, e.g. "Asr"
	ShortName string // Abbreviated name, e.g. "A"
	Time      string // Formatted prayer time, e.g. "15:02" or "3:02 PM"
	Remaining string // Time remaining, e.g. "2h 15m"
	Hours     int    // Whole hours remaining
	Minutes   int    // Remaining minutes after hours
	Seconds   int    // Seconds left in the current minute
}

// FormatOutput formats the next prayer according to the chosen format mode.
// timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes, .Seconds
func FormatOutput(n Next, now time.Time, mode string, timeFormat string) string {
	h, m := n.Remaining(now)
	remaining := FormatRemaining(n.Until(now))
	timeStr := n.At.On(now).Format(timeFormat)
	short := ShortNames[n.Name]

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      n.Name,
			ShortName: short,
			Time:      timeStr,
			Remaining: remaining,
			Hours:     h,
			Minutes:   m,
			Seconds:   SecondsLeft(now),
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", n.Name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatCountdown:
		return fmt.Sprintf("%s %s", n.Name, FormatClockCountdown(h, m, SecondsLeft(now)))
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", n.Name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", n.Name, timeStr)
	}
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	h, m := split(d)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClockCountdown renders a countdown as "HH : MM : SS".
func FormatClockCountdown(hours, minutes, seconds int) string {
	return fmt.Sprintf("%02d : %02d : %02d", hours, minutes, seconds)
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
