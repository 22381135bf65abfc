package itinerary

import "github.com/alexanderramin/tratlus/internal/domain"

const (
	// ReflowStepMin is the assumed length of every generated activity when
	// re-flowing a day after a reorder.
	ReflowStepMin = 90
	// LatestAppendMin caps the time given to an activity moved past the end.
	LatestAppendMin = 22 * 60

	defaultActivityMin = 8 * 60
	anytimeSortMin     = 12 * 60
	lastMinuteOfDay    = domain.MinutesPerDay - 1
)

// ActivityMinutes parses an activity's clock time. Times without an
// "h:mm AM/PM" component count as 8:00 AM.
func ActivityMinutes(time string) int {
	if m, ok := domain.ParseClock(time); ok {
		return m
	}
	return defaultActivityMin
}

// FormatActivityTime renders minutes as an activity time, clamped to the day.
func FormatActivityTime(minutes int) string {
	return domain.FormatClock(max(0, min(minutes, lastMinuteOfDay)))
}

// sortMinutes orders activities by time. "Anytime" and similar free-form
// times sort as noon.
func sortMinutes(time string) int {
	if m, ok := domain.ParseClock(time); ok {
		return m
	}
	return anytimeSortMin
}
