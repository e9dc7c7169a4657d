package shared

import (
	"fmt"
	"strings"
	"time"

	"ambient/internal/notes/data"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type datePickerMode int

const (
	calendarMode datePickerMode = iota
	textInputMode
)

type datePickerState int

const (
	pickerOpen datePickerState = iota
	pickerPicked
	pickerCancelled
)

// DatePickerModel is a month calendar with a free-text fallback.
// The parent forwards keys and checks Picked or Cancelled afterwards.
type DatePickerModel struct {
	mode       datePickerMode
	state      datePickerState
	picked     time.Time
	cursorDate time.Time
	viewMonth  time.Time
	today      time.Time
	textInput  textinput.Model
	inputErr   string
	width      int
	height     int
	title      string
}

// NewDatePickerModel opens the calendar on start, or on today if start is zero.
func NewDatePickerModel(start time.Time, title string) DatePickerModel {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	cursorDate := today
	if !start.IsZero() {
		cursorDate = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	}

	ti := textinput.New()
	ti.Placeholder = "2026-03-15, +5, tomorrow"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30
	ti.SetValue(data.FormatDate(cursorDate))

	return DatePickerModel{
		mode:       calendarMode,
		cursorDate: cursorDate,
		viewMonth:  firstOfMonth(cursorDate),
		today:      today,
		textInput:  ti,
		title:      title,
	}
}

func (m DatePickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m DatePickerModel) Update(msg tea.KeyMsg) (DatePickerModel, tea.Cmd) {
	if m.mode == textInputMode {
		return m.updateTextInput(msg)
	}
	return m.updateCalendar(msg)
}

func (m DatePickerModel) updateCalendar(msg tea.KeyMsg) (DatePickerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = pickerCancelled
	case "enter":
		m.picked = m.cursorDate
		m.state = pickerPicked
	case "i":
		m.mode = textInputMode
		m.textInput.SetValue(data.FormatDate(m.cursorDate))
		m.textInput.CursorEnd()
		return m, textinput.Blink
	case "t":
		m.cursorDate = m.today
		m.viewMonth = firstOfMonth(m.today)
	case "h", "left":
		m.moveCursor(0, -1)
	case "l", "right":
		m.moveCursor(0, 1)
	case "k", "up":
		m.moveCursor(0, -7)
	case "j", "down":
		m.moveCursor(0, 7)
	case "-", "H":
		m.moveCursor(-1, 0)
	case "+", "=", "L":
		m.moveCursor(1, 0)
	}
	return m, nil
}

func (m DatePickerModel) updateTextInput(msg tea.KeyMsg) (DatePickerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = calendarMode
		m.inputErr = ""
		return m, nil
	case "enter":
		parsed, err := data.ParseDateInput(m.textInput.Value(), m.today)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.cursorDate = parsed
		m.picked = parsed
		m.state = pickerPicked
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.inputErr = ""
	return m, cmd
}

// moveCursor shifts by months and days, keeping the view on the cursor's month.
func (m *DatePickerModel) moveCursor(months, days int) {
	if months != 0 {
		// clamp so Jan 31 + 1 month lands on the last day of February
		target := firstOfMonth(m.cursorDate).AddDate(0, months, 0)
		day := m.cursorDate.Day()
		if last := target.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		m.cursorDate = time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.Local)
	}
	m.cursorDate = m.cursorDate.AddDate(0, 0, days)
	m.viewMonth = firstOfMonth(m.cursorDate)
}

// Picked returns the chosen date once the user confirmed one.
func (m DatePickerModel) Picked() (time.Time, bool) {
	return m.picked, m.state == pickerPicked
}

func (m DatePickerModel) Cancelled() bool {
	return m.state == pickerCancelled
}

func (m DatePickerModel) Cursor() time.Time {
	return m.cursorDate
}

func (m DatePickerModel) View() string {
	if m.mode == textInputMode {
		return m.viewTextInput()
	}
	return m.viewCalendar()
}

func (m DatePickerModel) viewCalendar() string {
	var s strings.Builder

	s.WriteString(datePickerTitleStyle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(datePickerMonthStyle.Render(m.viewMonth.Format("January 2006")))
	s.WriteString("\n\n")

	for _, day := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		s.WriteString(datePickerDayHeaderStyle.Render(day))
		s.WriteString(" ")
	}
	s.WriteString("\n")

	daysInMonth := m.viewMonth.AddDate(0, 1, -1).Day()
	currentDay := 1 - int(m.viewMonth.Weekday())

	for week := 0; week < 6 && currentDay <= daysInMonth; week++ {
		for weekday := 0; weekday < 7; weekday++ {
			if currentDay < 1 || currentDay > daysInMonth {
				s.WriteString("  ")
			} else {
				date := time.Date(m.viewMonth.Year(), m.viewMonth.Month(), currentDay, 0, 0, 0, 0, time.Local)
				dayStr := fmt.Sprintf("%2d", currentDay)

				switch {
				case sameDay(date, m.cursorDate):
					s.WriteString(datePickerCursorStyle.Render(dayStr))
				case sameDay(date, m.today):
					s.WriteString(datePickerTodayStyle.Render(dayStr))
				default:
					s.WriteString(datePickerDayStyle.Render(dayStr))
				}
			}
			s.WriteString(" ")
			currentDay++
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(datePickerHelpStyle.Render("hjkl/arrows: move • t: today • +/-: month • i: type • enter: pick • esc: cancel"))

	box := datePickerBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m DatePickerModel) viewTextInput() string {
	var s strings.Builder

	s.WriteString(datePickerTitleStyle.Render(m.title + " (Text Input)"))
	s.WriteString("\n\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n")
	if m.inputErr != "" {
		s.WriteString(datePickerErrorStyle.Render(m.inputErr))
	}
	s.WriteString("\n\n")
	s.WriteString(datePickerHelpStyle.Render("enter: pick • esc: back to calendar"))
	s.WriteString("\n\n")
	s.WriteString(datePickerExamplesStyle.Render("Examples: 2026-03-15, 03-15, +5, -2, tomorrow, today"))

	box := datePickerBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *DatePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
