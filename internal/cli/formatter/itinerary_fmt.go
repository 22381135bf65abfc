package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/domain"
)

const descriptionWidth = 72

// FormatItinerary renders a saved itinerary day by day. Day and activity
// numbers are 1-based to match the itinerary subcommands.
func FormatItinerary(s *domain.SavedItinerary) string {
	it := s.Itinerary
	var b strings.Builder

	b.WriteString(StyleBold.Render(TripRange(it.TripDates.StartDate, it.TripDates.EndDate)))
	b.WriteString("  " + TruncID(s.ID) + "\n")

	for di, day := range it.Days {
		b.WriteString("\n" + Header(dayHeading(di, day)) + "\n")
		if len(day.Activities) == 0 {
			b.WriteString(Dim("  Nothing planned.") + "\n")
			continue
		}
		for ai, a := range day.Activities {
			b.WriteString(activityLine(ai+1, a) + "\n")
			if a.Location != "" {
				b.WriteString("      " + Dim("@ "+a.Location) + "\n")
			}
			if a.Description != "" {
				b.WriteString("      " + Dim(Truncate(a.Description, descriptionWidth)) + "\n")
			}
		}
	}

	b.WriteString("\n" + StyleHeader.Render("Total estimated cost: ") + Bold(Money(it.TotalEstimatedCost)) + "\n")
	if len(s.Nearby) > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d nearby places cached; see: tratlus itinerary nearby %s", len(s.Nearby), shortID(s.ID))) + "\n")
	}
	return RenderBox(it.Destination, b.String())
}

func dayHeading(index int, day domain.ItineraryDay) string {
	n := day.DayNumber
	if n == 0 {
		n = index + 1
	}
	heading := "Day " + strconv.Itoa(n)
	if t, err := time.Parse(time.DateOnly, day.Date); err == nil {
		heading += " · " + t.Format("Mon Jan 2")
	} else if day.Date != "" {
		heading += " · " + day.Date
	}
	return heading
}

func activityLine(n int, a domain.Activity) string {
	return fmt.Sprintf("  %s  %-8s  %s %s  %s",
		Dim(fmt.Sprintf("%2d", n)),
		a.Time,
		Bold(a.Title),
		ActivityTypeBadge(a.Type),
		StyleGreen.Render(Money(a.EstimatedCost)),
	)
}

// FormatItineraryList renders saved itineraries newest first.
func FormatItineraryList(list []*domain.SavedItinerary, now time.Time) string {
	if len(list) == 0 {
		return Dim("No saved itineraries. Create one with: tratlus plan")
	}
	cols := []Column{
		{Title: "ID"},
		{Title: "DESTINATION"},
		{Title: "DATES"},
		{Title: "DAYS", AlignRight: true},
		{Title: "ACTIVITIES", AlignRight: true},
		{Title: "TOTAL", AlignRight: true},
		{Title: "CREATED"},
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		it := s.Itinerary
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(it.Destination),
			TripRange(it.TripDates.StartDate, it.TripDates.EndDate),
			strconv.Itoa(len(it.Days)),
			strconv.Itoa(it.ActivityCount()),
			StyleGreen.Render(Money(it.TotalEstimatedCost)),
			Dim(RelativeDateFrom(s.CreatedAt, now)),
		})
	}
	return RenderColumns(cols, rows)
}

// FormatNearby lists the cached nearby places of an itinerary, numbered for
// itinerary add-nearby.
func FormatNearby(s *domain.SavedItinerary) string {
	if len(s.Nearby) == 0 {
		return Dim("No nearby places found for " + s.Itinerary.Destination + ".")
	}
	var b strings.Builder
	for i, a := range s.Nearby {
		b.WriteString(fmt.Sprintf("%s  %s %s  %s\n",
			Dim(fmt.Sprintf("%2d", i+1)),
			Bold(a.Title),
			ActivityTypeBadge(a.Type),
			StyleGreen.Render(Money(a.EstimatedCost)),
		))
		if a.Location != "" {
			b.WriteString("    " + Dim("@ "+a.Location) + "\n")
		}
		if a.Description != "" {
			b.WriteString("    " + Dim(Truncate(a.Description, descriptionWidth)) + "\n")
		}
	}
	return RenderBox("Nearby "+s.Itinerary.Destination, b.String())
}

// FormatActivityDetail renders every field of one activity.
func FormatActivityDetail(a domain.Activity) string {
	var b strings.Builder
	b.WriteString(Bold(a.Title) + " " + ActivityTypeBadge(a.Type) + "\n")
	field := func(label, value string) {
		if value != "" {
			b.WriteString(StyleHeader.Render(label+": ") + value + "\n")
		}
	}
	field("Time", a.Time)
	field("Location", a.Location)
	field("Cost", Money(a.EstimatedCost))
	if a.Rating > 0 {
		field("Rating", fmt.Sprintf("%.1f/5", a.Rating))
	}
	field("Website", a.WebsiteURL)
	if len(a.MenuHighlights) > 0 {
		field("Menu", strings.Join(a.MenuHighlights, ", "))
	}
	if a.Description != "" {
		b.WriteString("\n" + a.Description + "\n")
	}
	if a.DetailedInfo != "" {
		b.WriteString("\n" + Dim(a.DetailedInfo) + "\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
