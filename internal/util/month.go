package util

import (
	"fmt"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
)

const monthKeyLayout = "2006-01"

// MonthKey returns the "YYYY-MM" key of the month containing t
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month (UTC)
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil || len(key) != len(monthKeyLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidMonthKey, key)
	}
	return t, nil
}

// MonthStart returns the first day of the month. Keys are assumed valid.
func MonthStart(key string) time.Time {
	t, _ := ParseMonthKey(key)
	return t
}

// MonthEnd returns the last day of the month at midnight
func MonthEnd(key string) time.Time {
	return MonthStart(key).AddDate(0, 1, -1)
}

// AddMonths shifts a month key by n months (n may be negative)
func AddMonths(key string, n int) string {
	return MonthKey(MonthStart(key).AddDate(0, n, 0))
}

// MonthRange returns every month key from "from" to "to" inclusive.
// It is empty when from postdates to or either key is malformed.
func MonthRange(from, to string) []string {
	start, err := ParseMonthKey(from)
	if err != nil {
		return []string{}
	}
	end, err := ParseMonthKey(to)
	if err != nil {
		return []string{}
	}

	months := []string{}
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		months = append(months, MonthKey(cur))
	}
	return months
}

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns how many months "to" lies after "from" (negative when before)
func MonthsBetween(from, to string) int {
	a, b := MonthStart(from), MonthStart(to)
	return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
}
