package domain

import (
	"errors"
	"fmt"
)

const (
	// MinutesPerDay is the length of a timeline day.
	MinutesPerDay = 1440
	// SlotMinutes is the grid granularity for block starts and durations.
	SlotMinutes = 30
)

// ActivityBlock is one scheduled item on a day's timeline.
type ActivityBlock struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	StartMin    int      `json:"startTime"`
	DurationMin int      `json:"duration"`
	Notes       string   `json:"notes,omitempty"`
}

// NewBlock builds a block from the category defaults at the given placement.
func NewBlock(category Category, startMin, durationMin int) ActivityBlock {
	return ActivityBlock{
		Category:    category,
		Title:       category.Spec().DefaultTitle,
		StartMin:    startMin,
		DurationMin: durationMin,
	}
}

// EndMin returns the exclusive end of the block in minutes since midnight.
func (b ActivityBlock) EndMin() int {
	return b.StartMin + b.DurationMin
}

// DisplayTitle returns the title, falling back to the category default.
func (b ActivityBlock) DisplayTitle() string {
	return Coalesce(b.Title, b.Category.Spec().DefaultTitle)
}

// Validate checks the block against the timeline domain rules.
func (b ActivityBlock) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("unknown category %q", b.Category)
	}
	if b.StartMin < 0 || b.StartMin >= MinutesPerDay {
		return fmt.Errorf("start %d outside [0, %d)", b.StartMin, MinutesPerDay)
	}
	if b.DurationMin < SlotMinutes || b.DurationMin > MinutesPerDay {
		return fmt.Errorf("duration %d outside [%d, %d]", b.DurationMin, SlotMinutes, MinutesPerDay)
	}
	if b.DurationMin%SlotMinutes != 0 {
		return fmt.Errorf("duration %d is not a multiple of %d", b.DurationMin, SlotMinutes)
	}
	if b.EndMin() > MinutesPerDay {
		return errors.New("block crosses midnight")
	}
	return nil
}
