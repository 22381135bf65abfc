package itinerary

import (
	"testing"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMealFor(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
		ok      bool
	}{
		{5*60 + 59, "", false},
		{6 * 60, "Breakfast", true},
		{10*60 + 59, "Breakfast", true},
		{11 * 60, "Lunch", true},
		{14*60 + 30, "Lunch", true},
		{15 * 60, "", false},
		{17 * 60, "Dinner", true},
		{21*60 + 59, "Dinner", true},
		{22 * 60, "", false},
	}
	for _, tt := range tests {
		got, ok := MealFor(tt.minutes)
		assert.Equal(t, tt.ok, ok, "MealFor(%d)", tt.minutes)
		assert.Equal(t, tt.want, got, "MealFor(%d)", tt.minutes)
	}
}

func TestRetime(t *testing.T) {
	food := domain.Activity{Time: "8:00 AM", Title: "Breakfast at Café, best breakfast in town", Type: domain.ActivityFood}

	got := Retime(food, "1:00 PM")
	assert.Equal(t, "1:00 PM", got.Time)
	assert.Equal(t, "Lunch at Café, best Lunch in town", got.Title)

	got = Retime(food, "4:00 PM")
	assert.Equal(t, food.Title, got.Title, "no meal window")

	plain := domain.Activity{Time: "8:00 AM", Title: "Dinner Cruise", Type: domain.ActivityAttraction}
	assert.Equal(t, "Dinner Cruise", Retime(plain, "8:00 AM").Title, "only food is renamed")

	noMeal := domain.Activity{Time: "8:00 AM", Title: "Ramen Yokocho", Type: domain.ActivityFood}
	assert.Equal(t, "Ramen Yokocho", Retime(noMeal, "7:00 PM").Title)

	firstKeywordWins := domain.Activity{Title: "Brunch or lunch", Type: domain.ActivityFood}
	assert.Equal(t, "Brunch or Dinner", Retime(firstKeywordWins, "7:00 PM").Title)
}

func TestActivityClock(t *testing.T) {
	assert.Equal(t, 8*60, ActivityMinutes("Anytime"))
	assert.Equal(t, 13*60+15, ActivityMinutes("1:15 pm"))
	assert.Equal(t, "11:59 PM", FormatActivityTime(30*60))
	assert.Equal(t, "12:00 AM", FormatActivityTime(-5))
}
