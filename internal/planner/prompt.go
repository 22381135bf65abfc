package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/swipe"
)

const (
	likedTagLimit    = 10
	dislikedTagLimit = 5
	nearbyCount      = 15
)

const itinerarySystemPrompt = `You are a travel itinerary expert. Generate a detailed, personalized travel itinerary based on the user's preferences and requirements.

CRITICAL: You MUST respond with ONLY valid JSON, no markdown, no code blocks, no additional text.

Return your response in this EXACT JSON structure:
{
  "destination": "City/Country Name",
  "tripDates": {"startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD"},
  "days": [
    {
      "dayNumber": 1,
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "time": "HH:MM AM/PM",
          "title": "Activity Name",
          "location": "Specific Location",
          "description": "Brief description of the activity (1-2 sentences)",
          "estimatedCost": 0,
          "type": "food|attraction|transportation|accommodation|activity|transport-between",
          "detailedInfo": "Cuisine and ambiance for restaurants, notable collections for museums, key facts for historical sites, amenities for hotels",
          "websiteUrl": "https://example.com (official website if known, or null)",
          "rating": 4.5,
          "menuHighlights": ["Dish 1", "Dish 2"]
        }
      ]
    }
  ],
  "totalEstimatedCost": 0
}

Activity type guidelines:
- "food": restaurants, cafes, bars, food tours
- "attraction": museums, monuments, viewpoints, parks
- "transportation": flights, trains, buses, transfers, car rentals
- "accommodation": hotels, check-in/check-out activities
- "activity": tours, experiences, classes, entertainment

BUDGET GUIDELINES FOR TRANSPORTATION:
- Unless explicitly requested, ALWAYS choose economy class flights.
- Quote a round-trip price ONCE on the OUTBOUND flight. The return flight has estimatedCost 0 and notes "(Return - included in round-trip)" in its description.
- Use realistic round-trip economy prices for the route distance. Never quote a long-haul international round trip under $600.
- Never select business or first class unless the traveler prioritizes comfort or asks for luxury.
- When the traveler prioritizes "cost", choose budget airlines while keeping realistic minimum prices.

For "food" activities, ALWAYS include menuHighlights with 3-5 signature dishes. For other types set menuHighlights to null or an empty array.

INTER-ACTIVITY TRANSPORTATION:
Between EVERY pair of main activities include a "transport-between" activity for walking, taxi, bus, metro or train. These blocks are simple:
- "type": "transport-between"
- "title": a brief title like "Taxi to Dinner" or "Metro to Eiffel Tower"
- "description": ONLY the estimated travel time, e.g. "Approx. 25 minute ride"
- "estimatedCost": the fare
Example: {"time": "10:45 AM", "title": "Walk to Museum", "location": "Via Main Street", "description": "10 minute walk", "estimatedCost": 0, "type": "transport-between"}
Use "transportation" only for major travel events like the flight to the destination.

Include 4-6 MAIN activities per day, PLUS transport-between blocks connecting them. Estimate costs in USD. Consider dietary restrictions, budget constraints, accommodation preferences and user interests.`

// Preferences is everything a prompt may draw on: swipe scores plus the trip
// questionnaire.
type Preferences struct {
	Scores swipe.ScoreMap
	Trip   domain.TripPreferences
}

// likedTags lists the strongest likes as bare tag names.
func (p Preferences) likedTags() string {
	liked := p.Scores.TopLiked(likedTagLimit)
	tags := make([]string, len(liked))
	for i, ts := range liked {
		tags[i] = ts.Tag
	}
	return strings.Join(tags, ", ")
}

// SystemPrompt returns the instructions that accompany every generation
// request.
func SystemPrompt() string {
	return itinerarySystemPrompt
}

// ItineraryPrompt builds the user prompt for a full itinerary.
func ItineraryPrompt(p Preferences) string {
	trip := p.Trip
	origin := orDefault(trip.DepartureLocation, "origin")

	var b strings.Builder
	b.WriteString("Create a personalized travel itinerary with the following preferences:\n\n")
	fmt.Fprintf(&b, "DEPARTURE LOCATION: %s\n", orDefault(trip.DepartureLocation, "Not specified"))
	fmt.Fprintf(&b, "DESTINATION: %s\n", destinationLine(trip))
	fmt.Fprintf(&b, "DATES: %s to %s\n", trip.StartDate, trip.EndDate)
	fmt.Fprintf(&b, "TRAVELERS: %d\n", trip.Travelers)
	if trip.TotalBudget != nil {
		fmt.Fprintf(&b, "TOTAL BUDGET: $%s\n", money(*trip.TotalBudget))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TRANSPORTATION PRIORITY: %s (%s)\n", trip.TransportPriority, priorityHint(trip.TransportPriority))
	if len(trip.TransportMethods) > 0 {
		fmt.Fprintf(&b, "PREFERRED TRANSPORT: %s\n", strings.Join(trip.TransportMethods, ", "))
	}
	if trip.TotalBudget != nil {
		fmt.Fprintf(&b, "STRICT BUDGET CONSTRAINT: Total trip budget is $%s. You MUST stay within this budget. Prioritize budget-friendly options for flights, accommodation, and activities.\n", money(*trip.TotalBudget))
	} else {
		b.WriteString("DEFAULT BUDGET GUIDANCE: Assume a moderate budget. For flights, prefer economy class and standard airlines. Avoid luxury/first class unless explicitly requested.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TRAVEL PREFERENCES (liked tags with scores):\n%s\n\n",
		orDefault(swipe.JoinTagScores(p.Scores.TopLiked(likedTagLimit)), "No specific preferences"))
	fmt.Fprintf(&b, "AVOID (disliked tags):\n%s\n\n",
		orDefault(swipe.JoinTagScores(p.Scores.TopDisliked(dislikedTagLimit)), "No specific dislikes"))

	fmt.Fprintf(&b, "DIETARY NEEDS: %s\n", joinOr(trip.DietaryNeeds, "None specified"))
	fmt.Fprintf(&b, "FOOD ALLERGIES: %s\n", orDefault(trip.FoodAllergies, "None"))
	fmt.Fprintf(&b, "MEAL BUDGET: %s\n", trip.MealBudget)
	fmt.Fprintf(&b, "FOOD ADVENTUROUSNESS: %d/10\n", trip.FoodAdventurousness)
	if len(trip.FavoriteCuisines) > 0 {
		fmt.Fprintf(&b, "FAVORITE CUISINES: %s\n", strings.Join(trip.FavoriteCuisines, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "ACCOMMODATION PREFERENCES: %s\n", joinOr(trip.AccommodationTypes, "Any"))
	fmt.Fprintf(&b, "STAR RATING: %d to %d stars\n", trip.StarRatingMin, trip.StarRatingMax)
	fmt.Fprintf(&b, "MUST-HAVE AMENITIES: %s\n", joinOr(trip.Amenities, "None specific"))
	fmt.Fprintf(&b, "PRICE PER NIGHT: Up to $%d\n", trip.PricePerNight)
	if trip.WakeUpTime != "" && trip.SleepTime != "" {
		fmt.Fprintf(&b, "DAILY SCHEDULE: wake up around %s, wind down by %s\n", trip.WakeUpTime, trip.SleepTime)
	}
	b.WriteString("\n")

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "1. Include transportation FROM the departure location TO the destination at the start of the itinerary (Day 1 should begin with travel from %s to the destination).\n", origin)
	fmt.Fprintf(&b, "2. Include return transportation from the destination back to %s at the end of the itinerary.\n", origin)
	fmt.Fprintf(&b, "3. The method of transportation should consider the distance (flights for long distances, trains/buses/cars for shorter trips), the traveler's transportation priority (%s), and their preferences.\n", trip.TransportPriority)
	fmt.Fprintf(&b, "4. AVOID any foods containing these allergens: %s.\n\n", orDefault(trip.FoodAllergies, "none specified"))
	b.WriteString("Please create a detailed day-by-day itinerary that aligns with these preferences.")
	return b.String()
}

// ReplacementPrompt asks for a different activity of the same type in the
// same time slot as it.Days[dayIndex].Activities[activityIndex]. The caller
// must have bounds-checked the indices.
func ReplacementPrompt(it *domain.TravelItinerary, dayIndex, activityIndex int, p Preferences) string {
	day := it.Days[dayIndex]
	current := day.Activities[activityIndex]
	actType := current.Type
	if actType == "" {
		actType = domain.ActivityGeneric
	}
	noun := "Activity"
	if actType == domain.ActivityFood {
		noun = "Restaurant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a SINGLE replacement %s for %s.\n\n", actType, it.Destination)
	b.WriteString("CRITICAL: Respond with ONLY valid JSON. No markdown, no code blocks, no explanatory text.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Current activity to replace: %q at %s\n", current.Title, current.Location)
	fmt.Fprintf(&b, "- Time slot: %s\n", current.Time)
	fmt.Fprintf(&b, "- Type: %s\n", actType)
	fmt.Fprintf(&b, "- User preferences: %s\n", orDefault(p.likedTags(), "general sightseeing"))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", joinOr(p.Trip.DietaryNeeds, "None"))
	fmt.Fprintf(&b, "- Food allergies: %s\n\n", orDefault(p.Trip.FoodAllergies, "None"))
	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "1. Generate a COMPLETELY DIFFERENT %s than %q.\n", actType, current.Title)
	fmt.Fprintf(&b, "2. Provide a REALISTIC estimatedCost for this new activity. Do NOT copy the old price. Use actual prices for %s.\n\n", it.Destination)
	b.WriteString("Your response must be EXACTLY this structure:\n")
	fmt.Fprintf(&b, `{
  "destination": %q,
  "tripDates": {"startDate": %q, "endDate": %q},
  "days": [{
    "dayNumber": 1,
    "date": %q,
    "activities": [{
      "time": %q,
      "title": "New Different %s Name",
      "location": "Specific Address in %s",
      "description": "Brief description of this place",
      "estimatedCost": <REALISTIC_COST_FOR_THIS_ACTIVITY>,
      "type": %q,
      "rating": 4.5,
      "detailedInfo": "Detailed information about this place",
      "websiteUrl": "https://example.com",
      "menuHighlights": %s
    }]
  }],
  "totalEstimatedCost": <SAME_AS_ESTIMATED_COST>
}`, it.Destination, day.Date, day.Date, day.Date, current.Time, noun, it.Destination, string(actType), menuPlaceholder(actType))
	return b.String()
}

// AddActivityPrompt asks for one new activity of actType at the given time on
// it.Days[dayIndex]. The caller must have bounds-checked dayIndex.
func AddActivityPrompt(it *domain.TravelItinerary, dayIndex int, actType domain.ActivityType, startMin int, p Preferences) string {
	day := it.Days[dayIndex]
	slot := domain.FormatClock(startMin)

	var b strings.Builder
	b.WriteString("Generate a SINGLE new activity for an itinerary.\n\n")
	b.WriteString("CONTEXT:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", it.Destination)
	fmt.Fprintf(&b, "- Day: %s (Day %d)\n", day.Date, day.DayNumber)
	fmt.Fprintf(&b, "- Time slot: %s\n", slot)
	fmt.Fprintf(&b, "- Activity type requested: %s\n", actType)
	fmt.Fprintf(&b, "- User preferences: %s\n", orDefault(p.likedTags(), "general sightseeing"))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", joinOr(p.Trip.DietaryNeeds, "None"))
	fmt.Fprintf(&b, "- Food allergies: %s\n\n", orDefault(p.Trip.FoodAllergies, "None"))
	fmt.Fprintf(&b, "Generate a suitable %s activity for this time slot.\n\n", actType)
	b.WriteString("Return ONLY a single JSON object (no array, no wrapper):\n")
	fmt.Fprintf(&b, `{
  "time": %q,
  "title": "Activity Name",
  "location": "Specific Location",
  "description": "Brief description",
  "estimatedCost": 0,
  "type": %q,
  "detailedInfo": "Detailed information about this place",
  "websiteUrl": "https://example.com or null",
  "rating": 4.5,
  "menuHighlights": %s
}`, slot, string(actType), menuPlaceholder(actType))
	return b.String()
}

// NearbyPrompt asks a local-guide persona for places worth visiting around
// destination, split evenly between food, attractions, and activities.
func NearbyPrompt(destination string, p Preferences) string {
	per := nearbyCount / 3

	var b strings.Builder
	fmt.Fprintf(&b, "You are a local travel guide for %s. Generate exactly %d popular nearby activities and attractions that tourists should visit, keeping in mind the user's preferences.\n\n", destination, nearbyCount)
	b.WriteString("User Preferences:\n")
	fmt.Fprintf(&b, "- Interests: %s\n", orDefault(p.likedTags(), "general"))
	fmt.Fprintf(&b, "- Dietary Needs: %s\n", joinOr(p.Trip.DietaryNeeds, "none"))
	fmt.Fprintf(&b, "- Food Allergies: %s\n", orDefault(p.Trip.FoodAllergies, "none"))
	fmt.Fprintf(&b, "- Meal Budget: %s\n", p.Trip.MealBudget)
	fmt.Fprintf(&b, "- Adventurousness: %d/10\n\n", p.Trip.FoodAdventurousness)
	b.WriteString("CRITICAL: Respond with ONLY a valid JSON object. No markdown, no code blocks, no explanatory text.\n\n")
	b.WriteString("Your response must be EXACTLY this structure:\n")
	fmt.Fprintf(&b, `{
  "destination": %q,
  "tripDates": {"startDate": "2024-01-01", "endDate": "2024-01-02"},
  "days": [{
    "dayNumber": 1,
    "date": "2024-01-01",
    "activities": [
      {"time": "Anytime", "title": "Restaurant Name", "location": "123 Street Name", "description": "Famous local restaurant", "estimatedCost": 30, "type": "food", "rating": 4.5, "detailedInfo": "Great for local cuisine"},
      {"time": "Anytime", "title": "Museum Name", "location": "456 Avenue", "description": "Historic museum", "estimatedCost": 15, "type": "attraction", "rating": 4.7, "detailedInfo": "Must-see exhibits"},
      {"time": "Anytime", "title": "Park Name", "location": "Central Area", "description": "Beautiful park", "estimatedCost": 0, "type": "activity", "rating": 4.3, "detailedInfo": "Great for walks"}
    ]
  }],
  "totalEstimatedCost": 0
}`, destination)
	fmt.Fprintf(&b, "\n\nGenerate %d REAL places in %s based on the user's preferences:\n", nearbyCount, destination)
	fmt.Fprintf(&b, "- %d restaurants/cafes (type: \"food\")\n", per)
	fmt.Fprintf(&b, "- %d attractions/museums (type: \"attraction\")\n", per)
	fmt.Fprintf(&b, "- %d activities/parks (type: \"activity\")\n\n", per)
	b.WriteString("Include realistic ratings (3.5-5.0), real addresses, and accurate costs in USD.")
	return b.String()
}

func destinationLine(trip domain.TripPreferences) string {
	switch {
	case trip.SurpriseMe:
		return "Surprise me with a destination that matches my preferences"
	case trip.Destination != "":
		return trip.Destination
	default:
		return "Suggest a destination based on preferences"
	}
}

func priorityHint(p domain.TransportPriority) string {
	switch p {
	case domain.PrioritySpeed:
		return "prefer fastest routes"
	case domain.PriorityCost:
		return "ALWAYS prefer cheapest/most budget-friendly options - select economy class flights, budget airlines, and the most affordable transportation"
	default:
		return "prefer most comfortable travel"
	}
}

func menuPlaceholder(t domain.ActivityType) string {
	if t == domain.ActivityFood {
		return `["Signature Dish 1", "Local Specialty", "Chef Recommendation"]`
	}
	return "null"
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func orDefault(s, fallback string) string {
	return domain.Coalesce(strings.TrimSpace(s), fallback)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
