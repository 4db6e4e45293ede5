package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

var (
	flagWatchFormat   string
	flagWatchInterval time.Duration
	flagWatchCount    int
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the next prayer repeatedly",
		Long: "Print the next-prayer line on a fixed interval until interrupted.\n" +
			"Timings are fetched once and refetched when the day changes.",
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&flagWatchFormat, "format", prayer.FormatNameAndRemaining, formatHelp)
	cmd.Flags().DurationVar(&flagWatchInterval, "interval", 30*time.Second, "Time between lines")
	cmd.Flags().IntVar(&flagWatchCount, "count", 0, "Stop after this many lines (0 = until interrupted)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagWatchInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", flagWatchInterval)
	}

	s, err := newSession(cmd, diagnostics(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	w := &watcher{
		fetch: func(ctx context.Context, now time.Time) (prayer.Timings, error) {
			d, err := fetchDay(ctx, s, now)
			if err != nil {
				return prayer.Timings{}, err
			}
			return d.Timings, nil
		},
		out:    cmd.OutOrStdout(),
		format: flagWatchFormat,
		layout: s.layout,
		log:    s.log,
	}
	return w.run(cmd.Context(), wallClock, flagWatchInterval, flagWatchCount)
}

// watcher prints the next-prayer line, keeping one day of timings.
type watcher struct {
	fetch  func(ctx context.Context, now time.Time) (prayer.Timings, error)
	out    io.Writer
	format string
	layout string
	log    zerolog.Logger

	mu      sync.Mutex
	day     time.Time
	timings prayer.Timings
}

// tick prints one line for now, fetching first when the day changed.
// Fetch failures print a placeholder so a status bar keeps updating.
func (w *watcher) tick(ctx context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	today := prayer.StartOfDay(now)
	if w.timings.IsZero() || !today.Equal(w.day) {
		t, err := w.fetch(ctx, now)
		if err != nil {
			w.log.Error().Err(err).Msg("watch fetch failed")
			fmt.Fprintln(w.out, "--:--")
			return
		}
		w.day, w.timings = today, t
	}

	next, ok := prayer.ResolveNext(w.timings, now)
	if !ok {
		fmt.Fprintln(w.out, "--:--")
		return
	}
	fmt.Fprintln(w.out, prayer.FormatOutput(next, now, w.format, w.layout))
}

// run prints a line immediately and then every interval until ctx is done or
// count lines were printed.
func (w *watcher) run(ctx context.Context, clock clockwork.Clock, interval time.Duration, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(gocronLogger{w.log}),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	var printed int
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if count > 0 && printed >= count {
				return
			}
			w.tick(ctx, clock.Now())
			printed++
			if count > 0 && printed >= count {
				cancel()
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to schedule watch job: %w", err)
	}

	s.Start()
	<-ctx.Done()
	return s.Shutdown()
}

// gocronLogger routes scheduler logs through zerolog.
type gocronLogger struct{ log zerolog.Logger }

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug().Fields(args).Msg(msg) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info().Fields(args).Msg(msg) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn().Fields(args).Msg(msg) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error().Fields(args).Msg(msg) }
