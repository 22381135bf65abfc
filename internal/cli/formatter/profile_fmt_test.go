package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/swipe"
	"github.com/alexanderramin/tratlus/internal/testutil"
)

func TestFormatSwipeProgress_MarksCurrent(t *testing.T) {
	out := stripANSI(FormatSwipeProgress(SwipeProgress{
		Counts:   map[domain.CardCategory]int{domain.CardLocations: 5, domain.CardFood: 2},
		Required: 5,
		Current:  domain.CardFood,
	}))
	assert.Contains(t, out, "Locations  [██████████] 5/5 ✔")
	assert.Contains(t, out, "▸ Food")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "Stay")
	assert.Contains(t, out, "Transport")
}

func TestFormatTagScores(t *testing.T) {
	out := stripANSI(FormatTagScores(swipe.ScoreMap{"beach": 2, "street food": 1, "nightlife": -1}))
	assert.Contains(t, out, "Likes: beach +2, street food +1")
	assert.Contains(t, out, "Dislikes: nightlife -1")

	assert.Contains(t, FormatTagScores(swipe.ScoreMap{}), "No preferences recorded yet.")
}

func TestFormatProfile(t *testing.T) {
	p := testutil.NewTestProfile()
	out := stripANSI(FormatProfile(p, swipe.RequiredSwipes))

	assert.Contains(t, out, "PREFERENCES")
	assert.Contains(t, out, p.ID[:8])
	assert.Contains(t, out, "3/5")
	assert.Contains(t, out, "Destination  Lisbon")
	assert.Contains(t, out, "Travelers    2")
	assert.Contains(t, out, "3-5 stars, up to $150/night")
}

func TestFormatTrip_SurpriseMe(t *testing.T) {
	trip := domain.DefaultTripPreferences(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	trip.SurpriseMe = true
	budget := 2500.0
	trip.TotalBudget = &budget
	trip.TransportMethods = []string{"Transit", "Walk"}

	out := stripANSI(FormatTrip(trip))
	assert.Contains(t, out, "Surprise me")
	assert.Contains(t, out, "Oct 14 – Oct 20, 2026")
	assert.Contains(t, out, "Budget       $2500")
	assert.Contains(t, out, "cost (Transit, Walk)")
	assert.NotContains(t, out, "Allergies")
}

func TestFormatProfileList(t *testing.T) {
	now := time.Now().UTC()
	p := testutil.NewTestProfile()
	out := stripANSI(FormatProfileList([]*domain.PreferenceProfile{p}, now))
	assert.Contains(t, out, "TOP LIKES")
	assert.Contains(t, out, "beach, street food")
	assert.Contains(t, out, "Lisbon")
	assert.Contains(t, out, "Today")

	assert.Contains(t, FormatProfileList(nil, now), "tratlus swipe")
}

func TestFormatCard(t *testing.T) {
	out := stripANSI(FormatCard(domain.TravelCard{
		ID:          "loc-1",
		Category:    domain.CardAccommodations,
		Title:       "Treehouse Lodge",
		Description: "Sleep among the branches.",
		Tags:        []string{"nature", "unique stays"},
	}))
	assert.Contains(t, out, "Stay")
	assert.Contains(t, out, "Treehouse Lodge")
	assert.Contains(t, out, "#nature #unique stays")
}
