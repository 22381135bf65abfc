package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/swipe"
)

type swipeService struct {
	profiles repository.ProfileRepo
	deck     *swipe.Deck
	observer UseCaseObserver
}

func NewSwipeService(profiles repository.ProfileRepo, deck *swipe.Deck, observers ...UseCaseObserver) SwipeService {
	return &swipeService{
		profiles: profiles,
		deck:     deck,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *swipeService) NewSession(seed int64) *swipe.Session {
	return swipe.NewSession(s.deck, rand.New(rand.NewSource(seed)))
}

func (s *swipeService) Resume(ctx context.Context, profileID string, seed int64) (*swipe.Session, *domain.PreferenceProfile, error) {
	p, err := s.Profile(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	sess := s.NewSession(seed)
	sess.Restore(swipe.ScoreMap(p.Scores), p.Progress, p.SwipedIDs)
	return sess, p, nil
}

func (s *swipeService) Save(ctx context.Context, profileID string, sess *swipe.Session) (p *domain.PreferenceProfile, err error) {
	fields := map[string]any{"progress": sess.Progress()}
	defer observe(ctx, s.observer, "swipe-save", time.Now().UTC(), fields, &err)

	now := time.Now().UTC()
	p, err = s.existingOrNew(ctx, profileID, now)
	if err != nil {
		return nil, err
	}
	p.Scores = sess.Scores()
	p.Progress = sess.Counts()
	p.SwipedIDs = sess.SwipedIDs()
	p.UpdatedAt = now
	fields["profile"] = p.ID

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *swipeService) SaveTrip(ctx context.Context, profileID string, trip domain.TripPreferences) (p *domain.PreferenceProfile, err error) {
	defer observe(ctx, s.observer, "swipe-save-trip", time.Now().UTC(), map[string]any{"profile": profileID}, &err)

	now := time.Now().UTC()
	p, err = s.existingOrNew(ctx, profileID, now)
	if err != nil {
		return nil, err
	}
	p.Trip = &trip
	p.UpdatedAt = now
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *swipeService) existingOrNew(ctx context.Context, profileID string, now time.Time) (*domain.PreferenceProfile, error) {
	if profileID != "" {
		return s.profiles.GetByID(ctx, profileID)
	}
	return &domain.PreferenceProfile{
		ID:        uuid.New().String(),
		Scores:    map[string]int{},
		Progress:  map[domain.CardCategory]int{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *swipeService) Profile(ctx context.Context, id string) (*domain.PreferenceProfile, error) {
	if id == "" {
		return s.profiles.Latest(ctx)
	}
	return s.profiles.GetByID(ctx, id)
}

func (s *swipeService) List(ctx context.Context) ([]*domain.PreferenceProfile, error) {
	return s.profiles.List(ctx)
}

func (s *swipeService) Delete(ctx context.Context, id string) error {
	return s.profiles.Delete(ctx, id)
}

// profileOrEmpty looks a profile up but treats a missing one as "no
// preferences yet".
func profileOrEmpty(ctx context.Context, profiles repository.ProfileRepo, id string) (*domain.PreferenceProfile, error) {
	var p *domain.PreferenceProfile
	var err error
	if id == "" {
		p, err = profiles.Latest(ctx)
	} else {
		p, err = profiles.GetByID(ctx, id)
	}
	if errors.Is(err, repository.ErrNotFound) && id == "" {
		return nil, nil
	}
	return p, err
}
