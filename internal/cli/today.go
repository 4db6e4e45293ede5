package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/dashboard"
	"github.com/smokyabdulrahman/salat-clock/internal/display"
	"github.com/smokyabdulrahman/salat-clock/internal/locale"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's prayer times",
		Long:  "Print the five prayer times for today with the next prayer highlighted.\nUse --json for machine-readable output.",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
}

// day is one fetched day of timings resolved against a point in time.
type day struct {
	City    city.City
	Now     time.Time
	Timings prayer.Timings
	Hijri   string
	Next    prayer.Next
}

// fetchDay fetches today's timings for the session's city and resolves the
// next prayer at now.
func fetchDay(ctx context.Context, s *session, now time.Time) (*day, error) {
	req := dashboard.New(s.city).Select(s.city, prayer.StartOfDay(now))
	res := dashboard.Fetch(ctx, s.client, req, s.loc == locale.Arabic, s.log)
	if res.Err != nil {
		return nil, res.Err
	}

	next, ok := prayer.ResolveNext(res.Timings, now)
	if !ok {
		return nil, fmt.Errorf("could not determine next prayer")
	}
	return &day{
		City:    s.city,
		Now:     now,
		Timings: res.Timings,
		Hijri:   res.Hijri,
		Next:    next,
	}, nil
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, diagnostics(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := fetchDay(cmd.Context(), s, wallClock.Now())
	if err != nil {
		return err
	}

	if FlagJSON {
		return printTodayJSON(cmd.OutOrStdout(), d, s.layout)
	}
	printTodayRich(cmd.OutOrStdout(), d, s.loc, s.layout)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, d *day, loc *locale.Locale, layout string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(loc.Title))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Cyan(d.City.Label(loc.Code)))
	fmt.Fprintf(w, "  %s\n", loc.LongDate(d.Now))
	if d.Hijri != "" {
		fmt.Fprintf(w, "  %s\n", display.Gray(loc.Digits(d.Hijri)))
	}
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{loc.PrayerCol, loc.TimeCol, ""})
	for i, name := range prayer.Order {
		row := []string{loc.PrayerName(name), loc.Digits(formatClock(d.Timings[i], d.Now, layout)), ""}
		if i == d.Next.Index {
			row[2] = display.Accent(fmt.Sprintf(loc.NextIn, prayer.FormatRemaining(d.Next.Until(d.Now))))
		}
		tbl.AddRow(row)
	}
	tbl.SetHighlightRow(d.Next.Index)
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

// formatClock renders a stored HH:MM value in layout.
func formatClock(raw string, day time.Time, layout string) string {
	c, err := prayer.ParseClock(raw)
	if err != nil {
		return raw
	}
	return c.On(day).Format(layout)
}

// todayJSON is the JSON output structure for the today command.
type todayJSON struct {
	City    string            `json:"city"`
	Country string            `json:"country"`
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri,omitempty"`
	Timings map[string]string `json:"timings"`
	Next    todayJSONNext     `json:"next"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Tomorrow  bool   `json:"tomorrow,omitempty"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, d *day, layout string) error {
	timings := make(map[string]string, prayer.NumPrayers)
	for i, name := range prayer.Order {
		timings[strings.ToLower(name)] = formatClock(d.Timings[i], d.Now, layout)
	}

	out := todayJSON{
		City:    d.City.Name,
		Country: d.City.Country,
		Date:    d.Now.Format("2006-01-02"),
		Hijri:   d.Hijri,
		Timings: timings,
		Next: todayJSONNext{
			Prayer:    strings.ToLower(d.Next.Name),
			Time:      d.Next.At.On(d.Now).Format(layout),
			Remaining: prayer.FormatRemaining(d.Next.Until(d.Now)),
			Tomorrow:  d.Next.Tomorrow,
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
