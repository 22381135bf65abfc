package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// Block options
type BlockOption func(*domain.ActivityBlock)

func WithTitle(title string) BlockOption {
	return func(b *domain.ActivityBlock) {
		b.Title = title
	}
}

func WithLocation(loc string) BlockOption {
	return func(b *domain.ActivityBlock) {
		b.Location = loc
	}
}

func WithNotes(notes string) BlockOption {
	return func(b *domain.ActivityBlock) {
		b.Notes = notes
	}
}

// NewTestBlock builds a block at startMin using the category's default title
// and duration.
func NewTestBlock(category domain.Category, startMin int, opts ...BlockOption) domain.ActivityBlock {
	b := domain.NewBlock(category, startMin, category.Spec().DefaultDuration)
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// NewTestDay returns a small non-overlapping day: breakfast, a museum and dinner.
func NewTestDay() []domain.ActivityBlock {
	return []domain.ActivityBlock{
		NewTestBlock(domain.CategoryFood, 8*60, WithTitle("Breakfast")),
		NewTestBlock(domain.CategoryAttraction, 10*60, WithTitle("Museum"), WithLocation("Old Town")),
		NewTestBlock(domain.CategoryFood, 19*60, WithTitle("Dinner")),
	}
}

// NewTestItinerary returns a two-day itinerary in Lisbon.
func NewTestItinerary() domain.TravelItinerary {
	it := domain.TravelItinerary{
		Destination: "Lisbon, Portugal",
		TripDates:   domain.TripDates{StartDate: "2026-05-01", EndDate: "2026-05-02"},
		Days: []domain.ItineraryDay{
			{
				DayNumber: 1,
				Date:      "2026-05-01",
				Activities: []domain.Activity{
					{Time: "8:00 AM", Title: "Breakfast at Manteigaria", Location: "Chiado", EstimatedCost: 8, Type: domain.ActivityFood},
					{Time: "10:00 AM", Title: "Belém Tower", Location: "Belém", EstimatedCost: 10, Type: domain.ActivityAttraction},
					{Time: "1:00 PM", Title: "Lunch at Time Out Market", Location: "Cais do Sodré", EstimatedCost: 20, Type: domain.ActivityFood},
				},
			},
			{
				DayNumber: 2,
				Date:      "2026-05-02",
				Activities: []domain.Activity{
					{Time: "9:00 AM", Title: "Tram 28", Location: "Martim Moniz", EstimatedCost: 3, Type: domain.ActivityTransportation},
					{Time: "11:00 AM", Title: "São Jorge Castle", Location: "Alfama", EstimatedCost: 15, Type: domain.ActivityAttraction},
				},
			},
		},
	}
	it.TotalEstimatedCost = it.SumCosts()
	return it
}

// NewTestSavedItinerary wraps NewTestItinerary with a fresh ID and timestamps.
func NewTestSavedItinerary(profileID string) *domain.SavedItinerary {
	now := time.Now().UTC()
	return &domain.SavedItinerary{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Itinerary: NewTestItinerary(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestProfile returns a profile that liked beaches and street food.
func NewTestProfile() *domain.PreferenceProfile {
	now := time.Now().UTC()
	trip := domain.DefaultTripPreferences(now)
	trip.Destination = "Lisbon"
	return &domain.PreferenceProfile{
		ID:        uuid.New().String(),
		Scores:    map[string]int{"beach": 2, "street food": 1, "nightlife": -1},
		Progress:  map[domain.CardCategory]int{domain.CardLocations: 3},
		SwipedIDs: []string{"loc-1", "loc-2", "loc-3"},
		Trip:      &trip,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
