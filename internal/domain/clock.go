package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clock12Pattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(am|pm)`)

// FormatClock renders minutes since midnight as a 12-hour clock like "9:30 AM".
// Values past midnight wrap, so 1440 renders as "12:00 AM".
func FormatClock(minutes int) string {
	hours := (minutes / 60) % 24
	mins := minutes % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}

// ParseClock extracts a 12-hour clock time ("h:mm AM/PM") from s and returns
// minutes since midnight. ok is false when s contains no such time.
func ParseClock(s string) (minutes int, ok bool) {
	m := clock12Pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	pm := strings.EqualFold(m[3], "pm")
	if pm && hour != 12 {
		hour += 12
	}
	if !pm && hour == 12 {
		hour = 0
	}
	return hour*60 + mins, true
}

// ParseTimeOfDay accepts either a 24-hour "HH:MM" or a 12-hour "h:mm AM" time.
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if m, ok := ParseClock(s); ok {
		if m < 0 || m >= MinutesPerDay {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		return m, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
