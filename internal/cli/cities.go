package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/display"
	"github.com/smokyabdulrahman/salat-clock/internal/locale"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the supported cities",
		Args:  cobra.NoArgs,
		RunE:  runCities,
	}
}

type cityJSON struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Label   string `json:"label"`
	Default bool   `json:"default,omitempty"`
}

func runCities(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	loc := resolveLocale(cfg.Locale, lookupEnv)
	w := cmd.OutOrStdout()

	if FlagJSON {
		out := make([]cityJSON, 0, len(city.All()))
		for _, c := range city.All() {
			out = append(out, cityJSON{
				Name:    c.Name,
				Country: c.Country,
				Label:   c.Label(loc.Code),
				Default: c.Name == city.Default().Name,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	printCities(w, loc)
	return nil
}

// printCities renders the city table with the default city highlighted.
func printCities(w io.Writer, loc *locale.Locale) {
	tbl := display.NewTable([]string{"#", "City", "Country", labelHeader(loc)})
	for i, c := range city.All() {
		tbl.AddRow([]string{fmt.Sprint(i + 1), c.Name, display.Dim(c.Country), c.Label(loc.Code)})
		if c.Name == city.Default().Name {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

func labelHeader(loc *locale.Locale) string {
	if loc.Code == "en" {
		return "Label"
	}
	return "Label (" + loc.Code + ")"
}
