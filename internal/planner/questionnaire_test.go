package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionnaire_Defaults(t *testing.T) {
	q := NewQuestionnaire(time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-10-14", q.Trip.StartDate)
	assert.Equal(t, "2026-10-20", q.Trip.EndDate)
	assert.Equal(t, 7, q.Days())
	assert.Equal(t, 2, q.Trip.Travelers)
	assert.Equal(t, "$$", q.Trip.MealBudget)
	assert.Equal(t, 150, q.Trip.PricePerNight)
	require.NoError(t, q.Validate())
}

func TestQuestionnaire_Normalize(t *testing.T) {
	q := NewQuestionnaire(time.Now())
	q.Trip.Destination = "  Kyoto "
	q.Trip.SurpriseMe = true
	q.Trip.DietaryNeeds = []string{"None", "Vegan"}
	q.Trip.StarRatingMin, q.Trip.StarRatingMax = 5, 2

	q.Normalize()

	assert.Equal(t, "", q.Trip.Destination)
	assert.Equal(t, []string{"Vegan"}, q.Trip.DietaryNeeds)
	assert.Equal(t, 2, q.Trip.StarRatingMin)
	assert.Equal(t, 5, q.Trip.StarRatingMax)

	q.Trip.DietaryNeeds = []string{"None"}
	q.Normalize()
	assert.Nil(t, q.Trip.DietaryNeeds)
}

func TestQuestionnaire_ValidateReportsEveryProblem(t *testing.T) {
	q := NewQuestionnaire(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	q.Trip.EndDate = "2026-10-01"
	q.Trip.Travelers = 0
	q.Trip.MealBudget = "cheap"
	q.Trip.FoodAdventurousness = 11
	q.Trip.PricePerNight = 20
	q.Trip.WakeUpTime = "25:00"

	err := q.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "before start date")
	assert.Contains(t, msg, "travelers")
	assert.Contains(t, msg, "meal budget")
	assert.Contains(t, msg, "adventurousness")
	assert.Contains(t, msg, "price per night")
	assert.Contains(t, msg, "wake-up time")
	assert.Equal(t, 0, q.Days())
}

func TestQuestionnaire_ValidateBadDate(t *testing.T) {
	q := NewQuestionnaire(time.Now())
	q.Trip.StartDate = "next friday"
	assert.ErrorContains(t, q.Validate(), "expected YYYY-MM-DD")
}
