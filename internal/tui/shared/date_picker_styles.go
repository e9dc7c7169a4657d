package shared

import (
	"ambient/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	datePickerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(theme.Accent).
				Padding(1, 2).
				Width(50)

	datePickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.Warning).
				Align(lipgloss.Center)

	datePickerMonthStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.Accent).
				Align(lipgloss.Center)

	datePickerDayHeaderStyle = lipgloss.NewStyle().
					Foreground(theme.TextMuted).
					Bold(true)

	datePickerDayStyle = lipgloss.NewStyle().
				Foreground(theme.Text)

	datePickerTodayStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true)

	datePickerCursorStyle = lipgloss.NewStyle().
				Background(theme.Warning).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	datePickerExamplesStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted).
				Italic(true)

	datePickerErrorStyle = lipgloss.NewStyle().Foreground(theme.Danger)

	datePickerHelpStyle = theme.ModalHelp
)
