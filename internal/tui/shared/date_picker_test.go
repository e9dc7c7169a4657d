package shared

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DatePickerModel, keys ...string) DatePickerModel {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
}

func TestDatePicker_MoveAndPick(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 5), "Date")

	m = press(m, "l", "l", "j", "enter")

	got, ok := m.Picked()
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 14), got)
}

func TestDatePicker_MonthStepClampsDay(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 31), "Date")

	m = press(m, "L")
	assert.Equal(t, date(2024, 2, 29), m.Cursor())

	m = press(m, "H", "H")
	assert.Equal(t, date(2023, 12, 29), m.Cursor())
}

func TestDatePicker_CrossingMonthMovesView(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 1), "Date")

	m = press(m, "h")
	assert.Equal(t, date(2023, 12, 31), m.Cursor())
	assert.Equal(t, date(2023, 12, 1), m.viewMonth)
}

func TestDatePicker_EscCancels(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 5), "Date")

	m = press(m, "esc")

	assert.True(t, m.Cancelled())
	_, ok := m.Picked()
	assert.False(t, ok)
}

func TestDatePicker_TextInput(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 5), "Date")
	m = press(m, "i")
	for range "2024-01-05" {
		m = press(m, "backspace")
	}

	m = press(m, "2024-06-30", "enter")

	got, ok := m.Picked()
	require.True(t, ok)
	assert.Equal(t, date(2024, 6, 30), got)
}

func TestDatePicker_TextInputInvalidStaysOpen(t *testing.T) {
	m := NewDatePickerModel(date(2024, 1, 5), "Date")
	m = press(m, "i", "x", "enter")

	_, ok := m.Picked()
	assert.False(t, ok)
	assert.NotEmpty(t, m.inputErr)

	// esc goes back to the calendar instead of closing
	m = press(m, "esc")
	assert.False(t, m.Cancelled())
	assert.Equal(t, calendarMode, m.mode)
}

func TestDatePicker_ZeroStartOpensToday(t *testing.T) {
	m := NewDatePickerModel(time.Time{}, "Date")
	now := time.Now()
	assert.Equal(t, date(now.Year(), now.Month(), now.Day()), m.Cursor())
}
