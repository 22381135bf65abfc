package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tratlus/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one row.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// DayRepo stores the ordered block list of each calendar day.
type DayRepo interface {
	Get(ctx context.Context, dateKey string) ([]domain.ActivityBlock, error)
	// Replace overwrites the day's blocks. An empty list removes the day.
	Replace(ctx context.Context, dateKey string, blocks []domain.ActivityBlock) error
	ListAll(ctx context.Context) (map[string][]domain.ActivityBlock, error)
	ListKeys(ctx context.Context) ([]string, error)
}

type ItineraryRepo interface {
	Create(ctx context.Context, s *domain.SavedItinerary) error
	GetByID(ctx context.Context, id string) (*domain.SavedItinerary, error)
	// Resolve accepts a full ID or a unique prefix of one.
	Resolve(ctx context.Context, idOrPrefix string) (*domain.SavedItinerary, error)
	List(ctx context.Context) ([]*domain.SavedItinerary, error)
	Update(ctx context.Context, s *domain.SavedItinerary) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Upsert(ctx context.Context, p *domain.PreferenceProfile) error
	GetByID(ctx context.Context, id string) (*domain.PreferenceProfile, error)
	Latest(ctx context.Context) (*domain.PreferenceProfile, error)
	List(ctx context.Context) ([]*domain.PreferenceProfile, error)
	Delete(ctx context.Context, id string) error
}
