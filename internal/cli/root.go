package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salat-clock/internal/api"
	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/config"
	"github.com/smokyabdulrahman/salat-clock/internal/locale"
	"github.com/smokyabdulrahman/salat-clock/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagLocale     string
	FlagTimeFormat string
	FlagBaseURL    string
	FlagLogLevel   string
	FlagLogFile    string
	FlagJSON       bool
)

// loadedConfig holds the config file merged with environment overrides,
// loaded during PersistentPreRunE.
var loadedConfig *config.Config

// Time and environment sources for every command. Tests replace them.
var (
	wallClock clockwork.Clock = clockwork.NewRealClock()
	lookupEnv                 = os.LookupEnv
)

// NewRootCmd creates the root command for the salat-clock CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "salat-clock",
		Short: "Prayer times dashboard for Makkah, Madina and Algiers",
		Long: "A terminal dashboard showing today's five prayer times, a live clock and a\n" +
			"countdown to the next prayer, powered by the Al Adhan API.\n\n" +
			"Run without a subcommand to open the interactive dashboard.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ApplyEnv(lookupEnv); err != nil {
				return err
			}
			loadedConfig = cfg
			return nil
		},
		RunE:          runDashboard,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", fmt.Sprintf("City to show (%s); default %s", strings.Join(city.Names(), ", "), city.Default().Name))
	pf.StringVar(&FlagLocale, "locale", "", "Display language: en or ar (default from $LANG)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagBaseURL, "base-url", "", "Al Adhan API base URL (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&FlagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salat-clock %s\n", version)
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = []struct {
	flag, key string
	value     *string
}{
	{"locale", "locale", &FlagLocale},
	{"time-format", "time_format", &FlagTimeFormat},
	{"base-url", "base_url", &FlagBaseURL},
	{"log-level", "log_level", &FlagLogLevel},
	{"log-file", "log_file", &FlagLogFile},
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()
	for _, f := range flagKeys {
		if !flagWasSet(flags, root, f.flag) {
			continue
		}
		if err := cfg.Set(f.key, *f.value); err != nil {
			return config.Config{}, fmt.Errorf("--%s: %w", f.flag, err)
		}
	}

	return cfg.Merge(config.Defaults()), nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// session bundles everything a command needs after flag and config merging.
type session struct {
	cfg    config.Config
	city   city.City
	loc    *locale.Locale
	layout string // Go time layout for prayer times
	client *api.Client
	log    zerolog.Logger
	closer io.Closer
}

func (s *session) Close() error { return s.closer.Close() }

// newSession resolves flags and config. Logs go to the configured log file;
// otherwise to logFallback, or nowhere when logFallback is nil.
func newSession(cmd *cobra.Command, logFallback io.Writer) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	c := city.Default()
	if FlagCity != "" {
		if c, err = city.Lookup(FlagCity); err != nil {
			return nil, err
		}
	}

	if logFallback == nil {
		logFallback = io.Discard
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		city:   c,
		loc:    resolveLocale(cfg.Locale, lookupEnv),
		layout: timeLayout(cfg.TimeFormat),
		client: api.NewClient(cfg.BaseURL, cfg.TimeoutOrDefault(0)),
		log:    logger.With().Str("cmd", cmd.Name()).Logger(),
		closer: closer,
	}, nil
}

// diagnostics returns where one-shot commands send logs when no log file is
// configured: stderr once a level was asked for, nowhere otherwise.
func diagnostics(cmd *cobra.Command) io.Writer {
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "log-level") ||
		(loadedConfig != nil && loadedConfig.LogLevel != "") {
		return zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	}
	return nil
}

// resolveLocale picks the configured locale, or the environment's language.
func resolveLocale(code string, lookup func(string) (string, bool)) *locale.Locale {
	if code != "" {
		return locale.Match(code)
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v, ok := lookup(env); ok && v != "" {
			return locale.Match(v)
		}
	}
	return locale.English
}

// timeLayout converts a "12h"/"24h" setting into a Go time layout.
func timeLayout(format string) string {
	if format == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
