package utils

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday, 6=Saturday). Repeated days are kept once.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, part := range splitList(s) {
		wd, ok := weekdayNames[strings.ToLower(part)]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = time.Weekday(num)
		}
		if !slices.Contains(weekdays, wd) {
			weekdays = append(weekdays, wd)
		}
	}
	return weekdays, nil
}

// ParseMonthDays parses a comma-separated list of days of the month (1-31).
// Repeated days are kept once.
func ParseMonthDays(s string) ([]int, error) {
	var days []int
	for _, part := range splitList(s) {
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 31 {
			return nil, fmt.Errorf("invalid day of month: %s", part)
		}
		if !slices.Contains(days, num) {
			days = append(days, num)
		}
	}
	return days, nil
}

// ParseDates parses a comma-separated list of YYYY-MM-DD dates, dropping
// repeats.
func ParseDates(s string) ([]Date, error) {
	var dates []Date
	for _, part := range splitList(s) {
		d, err := ParseDate(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(dates, d) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// ResolveDate parses a date argument relative to today. It accepts
// "today", "yesterday" and YYYY-MM-DD.
func ResolveDate(s string, today Date) (Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	default:
		return ParseDate(strings.TrimSpace(s))
	}
}
