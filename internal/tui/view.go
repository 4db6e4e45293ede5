package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

func (m Model) View() string {
	if err := m.board.Err(); err != nil {
		return m.alertView(err)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.headerView(),
		"",
		m.cardsView(),
		"",
		m.selectorView(),
		"",
		m.help.View(m.keys),
	)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return body
}

func (m Model) headerView() string {
	clock := fmt.Sprintf("%02d:%02d", m.hour, m.minute)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		dateStyle.Render(m.date),
		"   ",
		clockStyle.Render(m.loc.Digits(clock)),
	)

	label := m.spinner.View() + " " + captionStyle.Render(m.loc.Loading)
	if shown, ok := m.board.Shown(); ok {
		label = cityStyle.Render(shown.Label(m.loc.Code))
	}

	caption := captionStyle.Render(m.loc.NoData)
	if m.countdown.HasData {
		caption = captionStyle.Render(m.loc.RemainingLabel(m.countdown.Next.Name))
	}
	countdown := prayer.FormatClockCountdown(m.countdown.Hours, m.countdown.Minutes, m.countdown.Seconds)
	if !m.countdown.HasData {
		countdown = prayer.FormatClockCountdown(0, 0, 0)
	}

	lines := []string{
		titleStyle.Render(m.loc.Title),
		top,
		label,
	}
	if h := m.board.Hijri(); h != "" {
		lines = append(lines, hijriStyle.Render(m.loc.Digits(h)))
	}
	lines = append(lines, caption, countdownStyle.Render(m.loc.Digits(countdown)))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) cardsView() string {
	timings := m.board.Timings()
	cards := make([]string, 0, prayer.NumPrayers)
	for i, name := range prayer.Order {
		value := m.spinner.View()
		if !timings.IsZero() {
			value = m.formatTime(timings[i])
		}
		style := cardStyle
		if m.countdown.HasData && m.countdown.Next.Index == i {
			style = nextCardStyle
		}
		cards = append(cards, style.Render(
			cardNameStyle.Render(m.loc.PrayerName(name))+"\n"+cardTimeStyle.Render(value),
		))
	}
	if m.loc.RTL {
		reverse(cards)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) formatTime(raw string) string {
	c, err := prayer.ParseClock(raw)
	if err != nil {
		return raw
	}
	return m.loc.Digits(c.On(m.today).Format(m.timeFormat))
}

func (m Model) selectorView() string {
	selected := m.board.Selected().Name
	tabs := make([]string, 0, 3)
	for i, c := range city.All() {
		name := fmt.Sprintf("[%d] %s", i+1, c.Label(m.loc.Code))
		if c.Name == selected {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	if m.loc.RTL {
		reverse(tabs)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) alertView(err error) string {
	box := alertStyle.Render(strings.Join([]string{
		alertTitleStyle.Render(m.loc.AlertTitle),
		"",
		err.Error(),
		"",
		alertFooterStyle.Render(m.loc.AlertFooter),
	}, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
