package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/llm"
)

const validItineraryJSON = `{
  "destination": "Lisbon, Portugal",
  "tripDates": {"startDate": "2026-05-01", "endDate": "2026-05-02"},
  "days": [
    {"dayNumber": 1, "date": "2026-05-01", "activities": [
      {"time": "9:00 AM", "title": "Breakfast at Heim", "location": "Santos", "description": "Brunch spot", "estimatedCost": 18, "type": "food", "websiteUrl": null, "rating": 4.6, "menuHighlights": ["Pancakes", "Shakshuka", "Acai bowl"]},
      {"time": "10:15 AM", "title": "Walk to Castle", "location": "Alfama", "description": "15 minute walk", "estimatedCost": 0, "type": "transport-between"},
      {"time": "10:30 AM", "title": "São Jorge Castle", "location": "Alfama", "description": "Moorish castle", "estimatedCost": 15, "type": "attraction", "menuHighlights": null}
    ]},
    {"dayNumber": 2, "date": "2026-05-02", "activities": []}
  ],
  "totalEstimatedCost": 33
}`

func TestParseItinerary_Valid(t *testing.T) {
	it, err := ParseItinerary("```json\n" + validItineraryJSON + "\n```")
	require.NoError(t, err)

	assert.Equal(t, "Lisbon, Portugal", it.Destination)
	assert.Equal(t, "2026-05-01", it.TripDates.StartDate)
	require.Len(t, it.Days, 2)
	require.Len(t, it.Days[0].Activities, 3)
	assert.Empty(t, it.Days[1].Activities)

	first := it.Days[0].Activities[0]
	assert.Equal(t, domain.ActivityFood, first.Type)
	assert.Equal(t, "", first.WebsiteURL)
	assert.Equal(t, 4.6, first.Rating)
	assert.Equal(t, []string{"Pancakes", "Shakshuka", "Acai bowl"}, first.MenuHighlights)
	assert.Equal(t, domain.ActivityTransportBetween, it.Days[0].Activities[1].Type)
	assert.Equal(t, 33.0, it.TotalEstimatedCost)
}

func TestParseItinerary_MissingFields(t *testing.T) {
	cases := map[string]string{
		"destination": `{"tripDates":{"startDate":"a","endDate":"b"},"days":[{"dayNumber":1,"date":"a","activities":[]}],"totalEstimatedCost":0}`,
		"trip dates":  `{"destination":"X","tripDates":{"startDate":"a"},"days":[{"dayNumber":1,"date":"a","activities":[]}],"totalEstimatedCost":0}`,
		"days":        `{"destination":"X","tripDates":{"startDate":"a","endDate":"b"},"days":[],"totalEstimatedCost":0}`,
		"day number":  `{"destination":"X","tripDates":{"startDate":"a","endDate":"b"},"days":[{"date":"a","activities":[]}],"totalEstimatedCost":0}`,
		"activities":  `{"destination":"X","tripDates":{"startDate":"a","endDate":"b"},"days":[{"dayNumber":1,"date":"a"}],"totalEstimatedCost":0}`,
		"total":       `{"destination":"X","tripDates":{"startDate":"a","endDate":"b"},"days":[{"dayNumber":1,"date":"a","activities":[]}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseItinerary(raw)
			assert.ErrorIs(t, err, llm.ErrInvalidOutput)
		})
	}
}

func TestParseItinerary_NotJSON(t *testing.T) {
	_, err := ParseItinerary("Sorry, I can't plan that trip.")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseItinerary_UnknownTypeBecomesActivity(t *testing.T) {
	raw := `{"destination":"X","tripDates":{"startDate":"a","endDate":"b"},"days":[{"dayNumber":1,"date":"a","activities":[{"time":"9:00 AM","title":"Spa","type":"Wellness"}]}],"totalEstimatedCost":0}`
	it, err := ParseItinerary(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityGeneric, it.Days[0].Activities[0].Type)
}

func TestParseActivity_Wrapped(t *testing.T) {
	raw := `{"destination":"Lisbon","tripDates":{"startDate":"2026-05-01","endDate":"2026-05-01"},"days":[{"dayNumber":1,"date":"2026-05-01","activities":[{"time":"12:30 PM","title":"Cervejaria Ramiro","location":"Intendente","estimatedCost":40,"type":"food"}]}],"totalEstimatedCost":40}`
	a, err := ParseActivity(raw)
	require.NoError(t, err)
	assert.Equal(t, "Cervejaria Ramiro", a.Title)
	assert.Equal(t, 40.0, a.EstimatedCost)
}

func TestParseActivity_Bare(t *testing.T) {
	raw := "Here you go:\n" + `{"time":"7:00 PM","title":"Fado at Clube","location":"Alfama","description":"Live fado","estimatedCost":35,"type":"activity","websiteUrl":"null"}`
	a, err := ParseActivity(raw)
	require.NoError(t, err)
	assert.Equal(t, "Fado at Clube", a.Title)
	assert.Equal(t, "7:00 PM", a.Time)
	assert.Equal(t, "", a.WebsiteURL)
}

func TestParseActivity_NoActivity(t *testing.T) {
	_, err := ParseActivity(`{"destination":"Lisbon","days":[{"dayNumber":1,"activities":[]}]}`)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)

	_, err = ParseActivity(`{"time":"2:00 PM","title":"Missing place"}`)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestParseActivity_BareWithoutTime(t *testing.T) {
	a, err := ParseActivity(`{"time":"","title":"Tarts","location":"Belém","estimatedCost":6,"type":"food"}`)
	require.NoError(t, err)
	assert.Equal(t, "Tarts", a.Title)
	assert.Empty(t, a.Time)
}

func TestParseNearby_FromFirstDay(t *testing.T) {
	raw := `{"destination":"Lisbon","days":[{"dayNumber":1,"date":"2024-01-01","activities":[
		{"time":"Anytime","title":"Pastéis de Belém","type":"food","rating":4.7},
		{"time":"Anytime","title":"","type":"food"},
		{"time":"Anytime","title":"MAAT","type":"attraction"}
	]}],"totalEstimatedCost":0}`
	places, err := ParseNearby(raw)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Pastéis de Belém", places[0].Title)
	assert.Equal(t, "MAAT", places[1].Title)
}

func TestParseNearby_TopLevelActivities(t *testing.T) {
	places, err := ParseNearby(`{"activities":[{"time":"Anytime","title":"LX Factory","type":"activity"}]}`)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "LX Factory", places[0].Title)
}

func TestParseNearby_EmptyIsNotAnError(t *testing.T) {
	places, err := ParseNearby(`{"destination":"Lisbon"}`)
	require.NoError(t, err)
	assert.Empty(t, places)
}
