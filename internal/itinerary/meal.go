package itinerary

import (
	"regexp"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// mealWords are tried in order; only the first keyword found is replaced.
// A title that starts with a meal word is covered by the word boundary.
var mealWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbreakfast\b`),
	regexp.MustCompile(`(?i)\blunch\b`),
	regexp.MustCompile(`(?i)\bdinner\b`),
	regexp.MustCompile(`(?i)\bbrunch\b`),
}

// MealFor names the meal served at the given minute of the day. ok is false
// outside the breakfast, lunch, and dinner windows.
func MealFor(minutes int) (meal string, ok bool) {
	hour := minutes / 60
	switch {
	case hour >= 6 && hour < 11:
		return "Breakfast", true
	case hour >= 11 && hour < 15:
		return "Lunch", true
	case hour >= 17 && hour < 22:
		return "Dinner", true
	default:
		return "", false
	}
}

// Retime sets the activity's time. Food activities landing in a meal window
// also get their meal word rewritten, so "Breakfast at Café" moved to 1 PM
// becomes "Lunch at Café".
func Retime(a domain.Activity, newTime string) domain.Activity {
	a.Time = newTime
	if a.Type != domain.ActivityFood {
		return a
	}
	m, ok := domain.ParseClock(newTime)
	if !ok {
		return a
	}
	meal, ok := MealFor(m)
	if !ok {
		return a
	}
	a.Title = retitle(a.Title, meal)
	return a
}

func retitle(title, meal string) string {
	for _, re := range mealWords {
		if re.MatchString(title) {
			return re.ReplaceAllLiteralString(title, meal)
		}
	}
	return title
}
