package domain

import "time"

// TripDates is the inclusive date range of an itinerary, as ISO date strings.
type TripDates struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Activity is one entry in a generated itinerary day.
type Activity struct {
	Time           string       `json:"time"`
	Title          string       `json:"title"`
	Location       string       `json:"location"`
	Description    string       `json:"description"`
	EstimatedCost  float64      `json:"estimatedCost"`
	Type           ActivityType `json:"type,omitempty"`
	DetailedInfo   string       `json:"detailedInfo,omitempty"`
	WebsiteURL     string       `json:"websiteUrl,omitempty"`
	Rating         float64      `json:"rating,omitempty"`
	MenuHighlights []string     `json:"menuHighlights,omitempty"`
}

// ItineraryDay holds the ordered activities of one trip day.
type ItineraryDay struct {
	DayNumber  int        `json:"dayNumber"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

// TravelItinerary is the structured plan returned by the generation service.
type TravelItinerary struct {
	Destination        string         `json:"destination"`
	TripDates          TripDates      `json:"tripDates"`
	Days               []ItineraryDay `json:"days"`
	TotalEstimatedCost float64        `json:"totalEstimatedCost"`
}

// SumCosts returns the literal sum of every activity's estimated cost.
func (it *TravelItinerary) SumCosts() float64 {
	var total float64
	for _, day := range it.Days {
		for _, act := range day.Activities {
			total += act.EstimatedCost
		}
	}
	return total
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (it *TravelItinerary) Clone() *TravelItinerary {
	out := *it
	out.Days = make([]ItineraryDay, len(it.Days))
	for i, day := range it.Days {
		out.Days[i] = day
		out.Days[i].Activities = make([]Activity, len(day.Activities))
		for j, act := range day.Activities {
			out.Days[i].Activities[j] = act
			if act.MenuHighlights != nil {
				out.Days[i].Activities[j].MenuHighlights = append([]string(nil), act.MenuHighlights...)
			}
		}
	}
	return &out
}

// ActivityCount returns the number of activities across all days.
func (it *TravelItinerary) ActivityCount() int {
	n := 0
	for _, day := range it.Days {
		n += len(day.Activities)
	}
	return n
}

// SavedItinerary is an itinerary together with its storage metadata.
type SavedItinerary struct {
	ID        string
	ProfileID string
	Itinerary TravelItinerary
	Nearby    []Activity
	CreatedAt time.Time
	UpdatedAt time.Time
}
