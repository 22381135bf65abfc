package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/llm"
)

// wireItinerary mirrors the model's JSON with pointer fields so missing
// required keys can be told apart from zero values. The trailing fields accept
// a bare activity object or a flat activities list.
type wireItinerary struct {
	Destination        *string         `json:"destination"`
	TripDates          *wireTripDates  `json:"tripDates"`
	Days               []wireDay       `json:"days"`
	TotalEstimatedCost *float64        `json:"totalEstimatedCost"`
	Activities         *[]wireActivity `json:"activities"`

	wireActivity
}

type wireTripDates struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type wireDay struct {
	DayNumber  *int            `json:"dayNumber"`
	Date       string          `json:"date"`
	Activities *[]wireActivity `json:"activities"`
}

// wireActivity tolerates null in every optional slot.
type wireActivity struct {
	Time           string              `json:"time"`
	Title          string              `json:"title"`
	Location       string              `json:"location"`
	Description    string              `json:"description"`
	EstimatedCost  *float64            `json:"estimatedCost"`
	Type           domain.ActivityType `json:"type"`
	DetailedInfo   *string             `json:"detailedInfo"`
	WebsiteURL     *string             `json:"websiteUrl"`
	Rating         *float64            `json:"rating"`
	MenuHighlights []string            `json:"menuHighlights"`
}

func (w wireActivity) activity() domain.Activity {
	a := domain.Activity{
		Time:           strings.TrimSpace(w.Time),
		Title:          strings.TrimSpace(w.Title),
		Location:       strings.TrimSpace(w.Location),
		Description:    w.Description,
		EstimatedCost:  domain.Deref(w.EstimatedCost, 0),
		Type:           normalizeType(w.Type),
		DetailedInfo:   domain.Deref(w.DetailedInfo, ""),
		WebsiteURL:     domain.Deref(w.WebsiteURL, ""),
		Rating:         domain.Deref(w.Rating, 0),
		MenuHighlights: w.MenuHighlights,
	}
	if a.WebsiteURL == "null" {
		a.WebsiteURL = ""
	}
	return a
}

func (w wireActivity) complete() bool {
	return w.Title != "" && w.Location != ""
}

func normalizeType(t domain.ActivityType) domain.ActivityType {
	t = domain.ActivityType(strings.ToLower(strings.TrimSpace(string(t))))
	if domain.ValidActivityTypes[t] {
		return t
	}
	return domain.ActivityGeneric
}

var errNoActivity = errors.New("no activity in response")

// validateItinerary enforces the required itinerary fields.
func validateItinerary(w wireItinerary) error {
	if w.Destination == nil || strings.TrimSpace(*w.Destination) == "" {
		return errors.New("missing or invalid destination")
	}
	if w.TripDates == nil || w.TripDates.StartDate == "" || w.TripDates.EndDate == "" {
		return errors.New("missing or invalid trip dates")
	}
	if len(w.Days) == 0 {
		return errors.New("missing or invalid days array")
	}
	for i, d := range w.Days {
		if d.DayNumber == nil || d.Date == "" || d.Activities == nil {
			return fmt.Errorf("day %d missing required fields", i+1)
		}
	}
	if w.TotalEstimatedCost == nil {
		return errors.New("missing or invalid total estimated cost")
	}
	return nil
}

// ParseItinerary decodes and validates a full itinerary response.
func ParseItinerary(raw string) (*domain.TravelItinerary, error) {
	w, err := llm.ExtractJSON(raw, validateItinerary)
	if err != nil {
		return nil, err
	}

	it := &domain.TravelItinerary{
		Destination:        strings.TrimSpace(*w.Destination),
		TripDates:          domain.TripDates{StartDate: w.TripDates.StartDate, EndDate: w.TripDates.EndDate},
		Days:               make([]domain.ItineraryDay, len(w.Days)),
		TotalEstimatedCost: *w.TotalEstimatedCost,
	}
	for i, d := range w.Days {
		acts := make([]domain.Activity, 0, len(*d.Activities))
		for _, a := range *d.Activities {
			acts = append(acts, a.activity())
		}
		it.Days[i] = domain.ItineraryDay{DayNumber: *d.DayNumber, Date: d.Date, Activities: acts}
	}
	return it, nil
}

// ParseActivity decodes a single-activity response. Both an itinerary-wrapped
// answer (first activity of the first day) and a bare activity object with a
// title and location are accepted. The time may be blank; callers pin the
// activity to its slot.
func ParseActivity(raw string) (domain.Activity, error) {
	w, err := llm.ExtractJSON[wireItinerary](raw, nil)
	if err != nil {
		return domain.Activity{}, err
	}
	if len(w.Days) > 0 && w.Days[0].Activities != nil && len(*w.Days[0].Activities) > 0 {
		if first := (*w.Days[0].Activities)[0]; first.Title != "" {
			return first.activity(), nil
		}
	}
	if w.wireActivity.complete() {
		return w.wireActivity.activity(), nil
	}
	return domain.Activity{}, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, errNoActivity)
}

// ParseNearby decodes a nearby-places response. The places are read from the
// first day, falling back to a top-level activities list. An empty result is
// not an error.
func ParseNearby(raw string) ([]domain.Activity, error) {
	w, err := llm.ExtractJSON[wireItinerary](raw, nil)
	if err != nil {
		return nil, err
	}

	var src []wireActivity
	switch {
	case len(w.Days) > 0 && w.Days[0].Activities != nil:
		src = *w.Days[0].Activities
	case w.Activities != nil:
		src = *w.Activities
	}

	out := make([]domain.Activity, 0, len(src))
	for _, a := range src {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		out = append(out, a.activity())
	}
	return out, nil
}
