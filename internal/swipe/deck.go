// Package swipe implements the card-swiping preference flow: the embedded
// travel card deck, the per-category swipe session, and the tag score map
// that feeds itinerary prompts.
package swipe

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/domain"
)

//go:embed cards.json
var cardsJSON []byte

// Deck is the read-only card collection grouped by category.
type Deck struct {
	byCategory map[domain.CardCategory][]domain.TravelCard
	size       int
}

// LoadDeck parses the embedded reference deck.
func LoadDeck() (*Deck, error) {
	var cards []domain.TravelCard
	if err := json.Unmarshal(cardsJSON, &cards); err != nil {
		return nil, fmt.Errorf("parsing embedded cards: %w", err)
	}
	return NewDeck(cards)
}

// NewDeck groups cards by category, preserving input order within each.
func NewDeck(cards []domain.TravelCard) (*Deck, error) {
	known := make(map[domain.CardCategory]bool, len(domain.CardCategories))
	for _, c := range domain.CardCategories {
		known[c] = true
	}

	d := &Deck{byCategory: make(map[domain.CardCategory][]domain.TravelCard)}
	seen := make(map[string]bool, len(cards))
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q: missing id", card.Title)
		}
		if seen[card.ID] {
			return nil, fmt.Errorf("card %s: duplicate id", card.ID)
		}
		if !known[card.Category] {
			return nil, fmt.Errorf("card %s: unknown category %q", card.ID, card.Category)
		}
		seen[card.ID] = true
		d.byCategory[card.Category] = append(d.byCategory[card.Category], card)
		d.size++
	}
	return d, nil
}

// Cards returns the cards of one category.
func (d *Deck) Cards(category domain.CardCategory) []domain.TravelCard {
	return append([]domain.TravelCard(nil), d.byCategory[category]...)
}

// Len returns the total number of cards.
func (d *Deck) Len() int { return d.size }
