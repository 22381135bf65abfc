// Package export renders saved itineraries for sharing: a PDF document and
// links that open mail, calendar and map applications.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
)

const footer = "Generated by Tratlus"

// escape percent-encodes s the way browsers encode a URI component, with
// spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Summary is the plain-text rendering used for email bodies.
func Summary(it *domain.TravelItinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Check out my travel itinerary for %s!\n\n", it.Destination)
	fmt.Fprintf(&b, "Dates: %s - %s\n", it.TripDates.StartDate, it.TripDates.EndDate)
	fmt.Fprintf(&b, "Total Estimated Cost: %s\n\n", money(it.TotalEstimatedCost))

	days := make([]string, 0, len(it.Days))
	for _, day := range it.Days {
		lines := []string{fmt.Sprintf("Day %d (%s):", day.DayNumber, day.Date)}
		for _, a := range day.Activities {
			lines = append(lines, fmt.Sprintf("  - %s: %s at %s", a.Time, a.Title, a.Location))
		}
		days = append(days, strings.Join(lines, "\n"))
	}
	b.WriteString(strings.Join(days, "\n\n"))
	b.WriteString("\n\n" + footer)
	return b.String()
}

// MailtoURL opens a new message with the itinerary summary and no recipient.
func MailtoURL(it *domain.TravelItinerary) string {
	subject := fmt.Sprintf("My %s Itinerary", it.Destination)
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(Summary(it))
}

// CalendarURL builds a Google Calendar event template spanning the trip.
func CalendarURL(it *domain.TravelItinerary) string {
	return calendarURL(it, true)
}

func calendarURL(it *domain.TravelItinerary, withDetails bool) string {
	start := strings.ReplaceAll(it.TripDates.StartDate, "-", "")
	end := strings.ReplaceAll(it.TripDates.EndDate, "-", "")

	var details string
	if withDetails {
		var b strings.Builder
		fmt.Fprintf(&b, "Travel itinerary for %s\n\n", it.Destination)
		fmt.Fprintf(&b, "Total Estimated Cost: %s\n\n", money(it.TotalEstimatedCost))
		days := make([]string, 0, len(it.Days))
		for _, day := range it.Days {
			lines := []string{fmt.Sprintf("Day %d:", day.DayNumber)}
			for _, a := range day.Activities {
				lines = append(lines, fmt.Sprintf("%s: %s", a.Time, a.Title))
			}
			days = append(days, strings.Join(lines, "\n"))
		}
		b.WriteString(strings.Join(days, "\n\n"))
		details = b.String()
	} else {
		details = "Travel itinerary for " + it.Destination
	}

	return "https://calendar.google.com/calendar/render?action=TEMPLATE" +
		"&text=" + escape("Trip to "+it.Destination) +
		"&dates=" + start + "/" + end +
		"&details=" + escape(details) +
		"&location=" + escape(it.Destination)
}

// DirectionsURL returns a Google Maps route through the day's activities in
// order. Transport-between entries are skipped. ok is false when the day has
// no stop to route through.
func DirectionsURL(it *domain.TravelItinerary, dayIndex int) (link string, ok bool) {
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return "", false
	}
	var stops []string
	for _, a := range it.Days[dayIndex].Activities {
		if a.Type == domain.ActivityTransportBetween {
			continue
		}
		stops = append(stops, escape(a.Location+", "+it.Destination))
	}
	if len(stops) == 0 {
		return "", false
	}
	return "https://www.google.com/maps/dir/" + strings.Join(stops, "/"), true
}

// SearchURL looks the destination up on Google Maps.
func SearchURL(destination string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + escape(destination)
}

// FileName derives the PDF file name from the destination.
func FileName(it *domain.TravelItinerary) string {
	var b strings.Builder
	for _, r := range it.Destination {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + "_Itinerary.pdf"
}

// money renders a cost without trailing zero cents.
func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}
