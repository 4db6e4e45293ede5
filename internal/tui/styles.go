package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hijriStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	cityStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	captionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(14).
			Align(lipgloss.Center).
			Padding(0, 1)

	nextCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("82")).
			Bold(true)

	cardNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	cardTimeStyle = lipgloss.NewStyle().Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3).
			Align(lipgloss.Center)

	alertTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	alertFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
