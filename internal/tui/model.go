// Package tui implements the interactive prayer-times dashboard.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/dashboard"
	"github.com/smokyabdulrahman/salat-clock/internal/locale"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
	"github.com/smokyabdulrahman/salat-clock/internal/schedule"
)

// Options configures the dashboard.
type Options struct {
	Fetcher    dashboard.Fetcher
	City       city.City
	Locale     *locale.Locale
	TimeFormat string          // Go layout for prayer times, e.g. "15:04"
	Clock      clockwork.Clock // nil means the real clock
	Logger     zerolog.Logger
}

type (
	fetchResultMsg struct{ res dashboard.Result }
	tickMsg        struct{ now time.Time }
	minuteMsg      struct{ now time.Time }
	hourMsg        struct{ now time.Time }
	dateMsg        struct{ now time.Time }
)

// Model is the bubbletea model for the dashboard. Timer callbacks never touch
// it directly: they post messages on events, which the program feeds back
// into Update.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	fetcher    dashboard.Fetcher
	board      *dashboard.Board
	pending    dashboard.Request
	loc        *locale.Locale
	timeFormat string
	log        zerolog.Logger

	sched    *schedule.Scheduler
	events   chan tea.Msg
	done     chan struct{}
	stopOnce *sync.Once

	today     time.Time
	date      string
	hour      int
	minute    int
	countdown dashboard.Countdown

	spinner spinner.Model
	keys    keyMap
	help    help.Model
	width   int
	height  int
}

// New builds the dashboard model and issues the initial request for
// opts.City. Nothing runs until Init.
func New(ctx context.Context, opts Options) Model {
	if opts.Locale == nil {
		opts.Locale = locale.English
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04"
	}
	if opts.City.Name == "" {
		opts.City = city.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	sched := schedule.New(opts.Clock)
	now := sched.Now()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = captionStyle

	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		fetcher:    opts.Fetcher,
		board:      dashboard.New(opts.City),
		loc:        opts.Locale,
		timeFormat: opts.TimeFormat,
		log:        opts.Logger,
		sched:      sched,
		events:     make(chan tea.Msg, 16),
		done:       make(chan struct{}),
		stopOnce:   &sync.Once{},
		today:      prayer.StartOfDay(now),
		date:       opts.Locale.LongDate(now),
		hour:       now.Hour(),
		minute:     now.Minute(),
		spinner:    sp,
		keys:       defaultKeys(),
		help:       help.New(),
	}
	m.pending = m.board.Select(opts.City, m.today)
	return m
}

// Init starts the clock cycles, the spinner and the initial fetch.
func (m Model) Init() tea.Cmd {
	schedule.StartClock(m.sched,
		func(now time.Time) { m.post(minuteMsg{now}) },
		func(now time.Time) { m.post(hourMsg{now}) },
		func(now time.Time) { m.post(dateMsg{now}) },
	)
	return tea.Batch(m.spinner.Tick, m.fetch(m.pending), m.waitForEvent())
}

// Close stops every timer and cancels in-flight fetches. It is safe to call
// more than once.
func (m Model) Close() {
	m.stopOnce.Do(func() {
		m.sched.Stop()
		m.cancel()
		close(m.done)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		m.applyResult(msg.res)
		return m, nil

	case tickMsg:
		if m.board.HasData() {
			m.countdown = m.board.Snapshot(msg.now)
		} else {
			m.countdown = dashboard.Countdown{}
		}
		return m, m.waitForEvent()

	case minuteMsg:
		m.minute = msg.now.Minute()
		return m, m.waitForEvent()

	case hourMsg:
		m.hour = msg.now.Hour()
		return m, m.waitForEvent()

	case dateMsg:
		m.date = m.loc.LongDate(msg.now)
		m.today = prayer.StartOfDay(msg.now)
		m.log.Info().Str("date", m.today.Format("2006-01-02")).Msg("day changed, refreshing prayer times")
		cmd := m.request(m.board.Refresh(m.today))
		return m, tea.Batch(cmd, m.waitForEvent())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	// The alert is modal: nothing else reacts until it is dismissed.
	if m.board.Err() != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.board.DismissError()
		}
		return m, nil
	}

	cities := city.All()
	cur := city.Index(m.board.Selected().Name)
	switch {
	case key.Matches(msg, m.keys.Prev):
		return m, m.selectCity(cities[(cur+len(cities)-1)%len(cities)])
	case key.Matches(msg, m.keys.Next):
		return m, m.selectCity(cities[(cur+1)%len(cities)])
	case key.Matches(msg, m.keys.Pick) && len(msg.Runes) == 1:
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(cities) {
			return m, m.selectCity(cities[i])
		}
	}
	return m, nil
}

// selectCity switches the board to c. Picking the current city is a no-op.
func (m *Model) selectCity(c city.City) tea.Cmd {
	if c.Name == m.board.Selected().Name {
		return nil
	}
	return m.request(m.board.Select(c, m.today))
}

// request stops the countdown, since the board has just been cleared, and
// returns the fetch for req.
func (m *Model) request(req dashboard.Request) tea.Cmd {
	schedule.StopCountdown(m.sched)
	m.countdown = dashboard.Countdown{}
	m.pending = req
	return m.fetch(req)
}

func (m *Model) applyResult(res dashboard.Result) {
	if !m.board.Apply(res) {
		m.log.Debug().Str("request_id", res.ID).Uint64("gen", res.Gen).Msg("dropping stale result")
		return
	}
	if res.Err != nil {
		schedule.StopCountdown(m.sched)
		m.countdown = dashboard.Countdown{}
		return
	}
	m.countdown = m.board.Snapshot(m.sched.Now())
	schedule.StartCountdown(m.sched, func(now time.Time) { m.post(tickMsg{now}) })
}

func (m Model) fetch(req dashboard.Request) tea.Cmd {
	ctx, fetcher, log := m.ctx, m.fetcher, m.log
	arabic := m.loc == locale.Arabic
	return func() tea.Msg {
		return fetchResultMsg{dashboard.Fetch(ctx, fetcher, req, arabic, log)}
	}
}

// post hands a timer event to the program, giving up once the model is closed.
func (m Model) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.done:
	}
}

func (m Model) waitForEvent() tea.Cmd {
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}
