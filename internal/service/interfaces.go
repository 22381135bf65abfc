package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/swipe"
	"github.com/alexanderramin/tratlus/internal/timeline"
)

// DayService edits the block list of a calendar day. Every mutation loads
// the day, replays the gesture on a timeline.DayTimeline and stores the result
// in one transaction.
type DayService interface {
	Get(ctx context.Context, key calendar.DateKey) ([]domain.ActivityBlock, error)
	// Place drops a new block of category at startMin. placed is false when
	// the slot conflicts, in which case nothing changes.
	Place(ctx context.Context, key calendar.DateKey, category domain.Category, startMin int) (block domain.ActivityBlock, placed bool, err error)
	// Move repositions the block at index, keeping its duration.
	Move(ctx context.Context, key calendar.DateKey, index, startMin int) (moved bool, err error)
	// Resize drags one edge of the block at index by deltaMin.
	Resize(ctx context.Context, key calendar.DateKey, index int, edge timeline.ResizeEdge, deltaMin int) (domain.ActivityBlock, error)
	Edit(ctx context.Context, key calendar.DateKey, index int, form timeline.EditForm) (domain.ActivityBlock, error)
	Delete(ctx context.Context, key calendar.DateKey, index int) error
	Index(ctx context.Context) (*calendar.Index, error)
	Month(ctx context.Context, year int, month time.Month, today time.Time) (calendar.MonthGrid, error)
}

// SwipeService persists swipe sessions as preference profiles.
type SwipeService interface {
	NewSession(seed int64) *swipe.Session
	// Resume restores a session from a saved profile.
	Resume(ctx context.Context, profileID string, seed int64) (*swipe.Session, *domain.PreferenceProfile, error)
	// Save stores the session's scores and progress. An empty profileID
	// creates a new profile.
	Save(ctx context.Context, profileID string, s *swipe.Session) (*domain.PreferenceProfile, error)
	SaveTrip(ctx context.Context, profileID string, trip domain.TripPreferences) (*domain.PreferenceProfile, error)
	// Profile returns the profile with the given ID, or the most recently
	// updated one when id is empty.
	Profile(ctx context.Context, id string) (*domain.PreferenceProfile, error)
	List(ctx context.Context) ([]*domain.PreferenceProfile, error)
	Delete(ctx context.Context, id string) error
}

// ItineraryService generates itineraries and applies edits to saved ones.
// Every edit keeps TotalEstimatedCost equal to the sum of activity costs.
type ItineraryService interface {
	Generate(ctx context.Context, profileID string, trip domain.TripPreferences) (*domain.SavedItinerary, error)
	Get(ctx context.Context, idOrPrefix string) (*domain.SavedItinerary, error)
	List(ctx context.Context) ([]*domain.SavedItinerary, error)
	Delete(ctx context.Context, idOrPrefix string) error

	DeleteActivity(ctx context.Context, id string, day, index int) (*domain.SavedItinerary, error)
	MoveActivity(ctx context.Context, id string, day, from, to int) (*domain.SavedItinerary, error)
	RefreshActivity(ctx context.Context, id string, day, index int) (*domain.SavedItinerary, error)
	AddActivity(ctx context.Context, id string, day int, actType domain.ActivityType, startMin int) (*domain.SavedItinerary, error)
	// Nearby returns cached nearby places, generating them when the cache is
	// empty or refresh is set.
	Nearby(ctx context.Context, id string, refresh bool) (*domain.SavedItinerary, error)
	// AddNearby copies a nearby place into a day at startMin.
	AddNearby(ctx context.Context, id string, day, place, startMin int) (*domain.SavedItinerary, error)
	Reoptimize(ctx context.Context, id string) (*domain.SavedItinerary, error)
}
