package planner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// Answer choices offered by the trip questionnaire.
var (
	DietaryOptions       = []string{"Vegetarian", "Vegan", "Gluten-Free", "Halal", "Kosher", "None"}
	CuisineOptions       = []string{"Italian", "Chinese", "Japanese", "Mexican", "Indian", "Thai", "French", "Mediterranean", "American", "Korean", "Vietnamese", "Greek", "African"}
	MealBudgets          = []string{"$", "$$", "$$$", "$$$$"}
	TransportMethods     = []string{"Uber/Lyft", "Transit", "Rental", "Flight", "Bike", "Walk", "Limousine"}
	AccommodationOptions = []string{"Hotel", "Resort", "Airbnb", "Hostel", "Boutique", "Villa"}
	AmenityOptions       = []string{"Pool", "Gym", "WiFi", "Kitchen", "Parking", "AC"}
)

const (
	MinPricePerNight  = 50
	MaxPricePerNight  = 500
	PricePerNightStep = 25
)

// Questionnaire collects and checks the trip answers that accompany swipe
// scores.
type Questionnaire struct {
	Trip domain.TripPreferences
}

// NewQuestionnaire starts a questionnaire prefilled with defaults for a trip
// beginning on today's date.
func NewQuestionnaire(now time.Time) *Questionnaire {
	return &Questionnaire{Trip: domain.DefaultTripPreferences(now)}
}

// Normalize trims free text, drops the "None" dietary choice when something
// more specific was picked, and orders the star range.
func (q *Questionnaire) Normalize() {
	t := &q.Trip
	t.DepartureLocation = strings.TrimSpace(t.DepartureLocation)
	t.Destination = strings.TrimSpace(t.Destination)
	t.FoodAllergies = strings.TrimSpace(t.FoodAllergies)
	if t.SurpriseMe {
		t.Destination = ""
	}
	if len(t.DietaryNeeds) > 1 {
		t.DietaryNeeds = slices.DeleteFunc(t.DietaryNeeds, func(s string) bool { return s == "None" })
	}
	if len(t.DietaryNeeds) == 1 && t.DietaryNeeds[0] == "None" {
		t.DietaryNeeds = nil
	}
	if t.StarRatingMin > t.StarRatingMax {
		t.StarRatingMin, t.StarRatingMax = t.StarRatingMax, t.StarRatingMin
	}
}

// Validate reports every answer that is out of range.
func (q *Questionnaire) Validate() error {
	t := q.Trip
	var errs []error

	start, startErr := time.Parse(time.DateOnly, t.StartDate)
	end, endErr := time.Parse(time.DateOnly, t.EndDate)
	switch {
	case startErr != nil:
		errs = append(errs, fmt.Errorf("start date %q: expected YYYY-MM-DD", t.StartDate))
	case endErr != nil:
		errs = append(errs, fmt.Errorf("end date %q: expected YYYY-MM-DD", t.EndDate))
	case end.Before(start):
		errs = append(errs, fmt.Errorf("end date %s is before start date %s", t.EndDate, t.StartDate))
	}

	if t.Travelers < 1 {
		errs = append(errs, fmt.Errorf("travelers must be at least 1, got %d", t.Travelers))
	}
	if t.TotalBudget != nil && *t.TotalBudget <= 0 {
		errs = append(errs, errors.New("total budget must be positive"))
	}
	switch t.TransportPriority {
	case domain.PrioritySpeed, domain.PriorityCost, domain.PriorityComfort:
	default:
		errs = append(errs, fmt.Errorf("transport priority %q: want speed, cost or comfort", t.TransportPriority))
	}
	if !slices.Contains(MealBudgets, t.MealBudget) {
		errs = append(errs, fmt.Errorf("meal budget %q: want one of %s", t.MealBudget, strings.Join(MealBudgets, " ")))
	}
	if t.FoodAdventurousness < 1 || t.FoodAdventurousness > 10 {
		errs = append(errs, fmt.Errorf("food adventurousness must be 1-10, got %d", t.FoodAdventurousness))
	}
	if t.StarRatingMin < 1 || t.StarRatingMax > 5 || t.StarRatingMin > t.StarRatingMax {
		errs = append(errs, fmt.Errorf("star rating range %d-%d outside 1-5", t.StarRatingMin, t.StarRatingMax))
	}
	if t.PricePerNight < MinPricePerNight || t.PricePerNight > MaxPricePerNight {
		errs = append(errs, fmt.Errorf("price per night must be %d-%d, got %d", MinPricePerNight, MaxPricePerNight, t.PricePerNight))
	}
	for _, field := range []struct{ name, value string }{{"wake-up time", t.WakeUpTime}, {"sleep time", t.SleepTime}} {
		if field.value == "" {
			continue
		}
		if _, err := domain.ParseTimeOfDay(field.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field.name, err))
		}
	}
	return errors.Join(errs...)
}

// Days returns the number of trip days, inclusive of both ends. It returns 0
// when the dates do not parse.
func (q *Questionnaire) Days() int {
	start, err := time.Parse(time.DateOnly, q.Trip.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(time.DateOnly, q.Trip.EndDate)
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
