package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var clockLayouts = []string{ClockLayout, "15:04:05", "3:04 PM", "03:04 PM", "3:04PM"}

// NormalizeDate strips any time component from an ISO date or date-time string.
// It returns false when s does not start with a valid YYYY-MM-DD date.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		sep := s[len(DateLayout)]
		if sep != 'T' && sep != ' ' {
			return "", false
		}
		s = s[:len(DateLayout)]
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

// ParseDate returns midnight of the calendar date in s, interpreted in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	normalized, ok := NormalizeDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return time.ParseInLocation(DateLayout, normalized, loc)
}

// ParseClock accepts both 24-hour ("14:00") and 12-hour ("2:00 PM") wall-clock strings
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, parseErr := time.Parse(layout, s); parseErr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid time %q, use HH:mm", s)
}

// SlotValue renders an hour as the 24-hour slot value, e.g. "09:00"
func SlotValue(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SlotLabel renders an hour as the 12-hour slot label, e.g. "9:00 AM"
func SlotLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
