package domain

import "time"

// TripPreferences holds the questionnaire answers that accompany swipe scores.
type TripPreferences struct {
	DepartureLocation   string            `json:"departureLocation"`
	Destination         string            `json:"destination"`
	SurpriseMe          bool              `json:"surpriseMe"`
	StartDate           string            `json:"startDate"`
	EndDate             string            `json:"endDate"`
	Travelers           int               `json:"travelers"`
	TotalBudget         *float64          `json:"totalBudget,omitempty"`
	TransportPriority   TransportPriority `json:"transportPriority"`
	TransportMethods    []string          `json:"transportMethods,omitempty"`
	DietaryNeeds        []string          `json:"dietaryNeeds,omitempty"`
	FoodAllergies       string            `json:"foodAllergies,omitempty"`
	MealBudget          string            `json:"mealBudget"`
	FoodAdventurousness int               `json:"foodAdventurousness"`
	FavoriteCuisines    []string          `json:"favoriteCuisines,omitempty"`
	AccommodationTypes  []string          `json:"accommodationTypes,omitempty"`
	Amenities           []string          `json:"amenities,omitempty"`
	StarRatingMin       int               `json:"starRatingMin"`
	StarRatingMax       int               `json:"starRatingMax"`
	PricePerNight       int               `json:"pricePerNight"`
	WakeUpTime          string            `json:"wakeUpTime"`
	SleepTime           string            `json:"sleepTime"`
}

// DefaultTripPreferences returns the questionnaire defaults. Dates default to a
// week starting today.
func DefaultTripPreferences(now time.Time) TripPreferences {
	return TripPreferences{
		StartDate:           now.Format(time.DateOnly),
		EndDate:             now.AddDate(0, 0, 6).Format(time.DateOnly),
		Travelers:           2,
		TransportPriority:   PriorityCost,
		MealBudget:          "$$",
		FoodAdventurousness: 5,
		StarRatingMin:       3,
		StarRatingMax:       5,
		PricePerNight:       150,
		WakeUpTime:          "08:00",
		SleepTime:           "22:00",
	}
}

// PreferenceProfile is the persisted outcome of a swipe session.
type PreferenceProfile struct {
	ID        string
	Scores    map[string]int
	Progress  map[CardCategory]int
	SwipedIDs []string
	Trip      *TripPreferences
	CreatedAt time.Time
	UpdatedAt time.Time
}
