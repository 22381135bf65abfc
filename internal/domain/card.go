package domain

// TravelCard is an immutable entry in the swipe deck.
type TravelCard struct {
	ID          string       `json:"id"`
	Category    CardCategory `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Tags        []string     `json:"tags"`
}
