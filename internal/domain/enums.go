package domain

// Category identifies the kind of block placed on a day timeline.
type Category string

const (
	CategoryAttraction    Category = "attraction"
	CategoryFood          Category = "food"
	CategoryAccommodation Category = "accommodation"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
)

// CardCategory groups travel cards in the swipe deck.
type CardCategory string

const (
	CardLocations      CardCategory = "Locations"
	CardActivities     CardCategory = "Activities"
	CardVibes          CardCategory = "Vibes"
	CardFood           CardCategory = "Food"
	CardAccommodations CardCategory = "Accommodations"
	CardTransportation CardCategory = "Transportation"
)

// CardCategories is the fixed order in which the swipe flow visits categories.
var CardCategories = []CardCategory{
	CardLocations,
	CardActivities,
	CardVibes,
	CardFood,
	CardAccommodations,
	CardTransportation,
}

// DisplayName returns the short label shown for a card category.
func (c CardCategory) DisplayName() string {
	switch c {
	case CardAccommodations:
		return "Stay"
	case CardTransportation:
		return "Transport"
	default:
		return string(c)
	}
}

// ActivityType classifies an activity inside a generated itinerary.
type ActivityType string

const (
	ActivityFood             ActivityType = "food"
	ActivityAttraction       ActivityType = "attraction"
	ActivityTransportation   ActivityType = "transportation"
	ActivityAccommodation    ActivityType = "accommodation"
	ActivityGeneric          ActivityType = "activity"
	ActivityTransportBetween ActivityType = "transport-between"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[ActivityType]bool{
	ActivityFood:             true,
	ActivityAttraction:       true,
	ActivityTransportation:   true,
	ActivityAccommodation:    true,
	ActivityGeneric:          true,
	ActivityTransportBetween: true,
}

// TransportPriority expresses what the traveler optimizes for when moving around.
type TransportPriority string

const (
	PrioritySpeed   TransportPriority = "speed"
	PriorityCost    TransportPriority = "cost"
	PriorityComfort TransportPriority = "comfort"
)
