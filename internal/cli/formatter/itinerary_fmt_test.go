package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/testutil"
)

func TestFormatItinerary(t *testing.T) {
	saved := testutil.NewTestSavedItinerary("")
	out := stripANSI(FormatItinerary(saved))

	assert.Contains(t, out, "LISBON, PORTUGAL")
	assert.Contains(t, out, "May 1 – May 2, 2026")
	assert.Contains(t, out, saved.ID[:8])
	assert.Contains(t, out, "DAY 1 · FRI MAY 1")
	assert.Contains(t, out, "DAY 2 · SAT MAY 2")
	assert.Contains(t, out, "Belém Tower [attraction]  $10")
	assert.Contains(t, out, "@ Alfama")
	assert.Contains(t, out, "Total estimated cost: $56")
	assert.NotContains(t, out, "nearby places cached")
	assert.Less(t, strings.Index(out, "Tram 28"), strings.Index(out, "São Jorge Castle"))
}

func TestFormatItinerary_MentionsNearbyCache(t *testing.T) {
	saved := testutil.NewTestSavedItinerary("")
	saved.Nearby = []domain.Activity{{Title: "Miradouro", Type: domain.ActivityAttraction}}
	out := stripANSI(FormatItinerary(saved))
	assert.Contains(t, out, "1 nearby places cached")
	assert.Contains(t, out, "tratlus itinerary nearby "+saved.ID[:8])
}

func TestFormatItinerary_EmptyDay(t *testing.T) {
	saved := testutil.NewTestSavedItinerary("")
	saved.Itinerary.Days[1].Activities = nil
	assert.Contains(t, stripANSI(FormatItinerary(saved)), "Nothing planned.")
}

func TestFormatItineraryList(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	saved := testutil.NewTestSavedItinerary("")
	saved.CreatedAt = now.Add(-48 * time.Hour)

	out := stripANSI(FormatItineraryList([]*domain.SavedItinerary{saved}, now))
	assert.Contains(t, out, "DESTINATION")
	assert.Contains(t, out, "Lisbon, Portugal")
	assert.Contains(t, out, "$56")
	assert.Contains(t, out, "2d ago")

	assert.Contains(t, FormatItineraryList(nil, now), "tratlus plan")
}

func TestFormatNearby(t *testing.T) {
	saved := testutil.NewTestSavedItinerary("")
	assert.Contains(t, stripANSI(FormatNearby(saved)), "No nearby places found for Lisbon, Portugal.")

	saved.Nearby = []domain.Activity{
		{Title: "Pastéis de Belém", Location: "Belém", Type: domain.ActivityFood, EstimatedCost: 4},
		{Title: "LX Factory", Type: domain.ActivityGeneric},
	}
	out := stripANSI(FormatNearby(saved))
	assert.Contains(t, out, " 1  Pastéis de Belém [food]  $4")
	assert.Contains(t, out, " 2  LX Factory [activity]  Free")
}

func TestFormatActivityDetail(t *testing.T) {
	out := stripANSI(FormatActivityDetail(domain.Activity{
		Time:           "7:30 PM",
		Title:          "Cervejaria Ramiro",
		Type:           domain.ActivityFood,
		EstimatedCost:  45.5,
		Rating:         4.6,
		MenuHighlights: []string{"Garlic prawns", "Steak sandwich"},
		WebsiteURL:     "https://example.com/ramiro",
	}))
	assert.Contains(t, out, "Cervejaria Ramiro [food]")
	assert.Contains(t, out, "Cost: $45.50")
	assert.Contains(t, out, "Rating: 4.6/5")
	assert.Contains(t, out, "Menu: Garlic prawns, Steak sandwich")
	assert.NotContains(t, out, "Location:")
}
