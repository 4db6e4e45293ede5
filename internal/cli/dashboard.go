package cli

import (
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/tui"
)

// runDashboard opens the interactive dashboard. It owns the terminal, so logs
// only go to a log file.
func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	s.log.Info().Str("city", s.city.Name).Str("locale", s.loc.Code).Msg("starting dashboard")

	return tui.Run(cmd.Context(), tui.Options{
		Fetcher:    s.client,
		City:       s.city,
		Locale:     s.loc,
		TimeFormat: s.layout,
		Clock:      wallClock,
		Logger:     s.log,
	})
}
