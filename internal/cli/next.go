package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

var flagFormat string

const formatHelp = "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, " +
	"short-name-and-time, short-name-and-remaining, countdown, full, or a custom Go template"

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Print one line describing the next prayer, suitable for status bars.\n\n" +
			"Custom templates may use .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes and .Seconds.",
		Args: cobra.NoArgs,
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, formatHelp)

	return cmd
}

// nextJSON is the JSON output structure for the next command.
type nextJSON struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
	Tomorrow  bool   `json:"tomorrow,omitempty"`
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, diagnostics(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	now := wallClock.Now()
	d, err := fetchDay(cmd.Context(), s, now)
	if err != nil {
		return err
	}

	if FlagJSON {
		h, m := d.Next.Remaining(now)
		data, err := json.Marshal(nextJSON{
			Prayer:    strings.ToLower(d.Next.Name),
			Time:      d.Next.At.On(now).Format(s.layout),
			Remaining: prayer.FormatRemaining(d.Next.Until(now)),
			Hours:     h,
			Minutes:   m,
			Seconds:   prayer.SecondsLeft(now),
			Tomorrow:  d.Next.Tomorrow,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(d.Next, now, flagFormat, s.layout))
	return nil
}
