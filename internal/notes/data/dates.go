package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxRelativeDays bounds +N/-N so the offset cannot overflow time arithmetic.
const maxRelativeDays = 10000 * 366

// ParseDateInput accepts what a person types for a date:
// 2024-03-15, 03-15 (current year), today, tomorrow, yesterday, +5, -2.
func ParseDateInput(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "":
		return time.Time{}, fmt.Errorf("date is required")
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(input, "+") || strings.HasPrefix(input, "-") {
		rest := input[1:]
		if rest == "" || rest[0] == '+' || rest[0] == '-' {
			return time.Time{}, fmt.Errorf("invalid relative date %q", input)
		}
		days, err := strconv.Atoi(rest)
		if err != nil || days > maxRelativeDays {
			return time.Time{}, fmt.Errorf("invalid relative date %q", input)
		}
		if input[0] == '-' {
			days = -days
		}
		return checkYear(today.AddDate(0, 0, days), input)
	}

	if parsed, err := time.ParseInLocation(DateLayout, input, now.Location()); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse("01-02", input); err == nil {
		d := time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
		if d.Month() != parsed.Month() {
			return time.Time{}, fmt.Errorf("invalid date %q", input)
		}
		return d, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q, use yyyy-MM-dd", input)
}

// InDateRange reports whether t has a four digit year, the only years DateLayout
// can round trip.
func InDateRange(t time.Time) bool {
	return t.Year() >= 1 && t.Year() <= 9999
}

func checkYear(t time.Time, input string) (time.Time, error) {
	if !InDateRange(t) {
		return time.Time{}, fmt.Errorf("date %q is outside years 0001-9999", input)
	}
	return t, nil
}
