package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/itinerary"
	"github.com/alexanderramin/tratlus/internal/planner"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/swipe"
)

type itineraryService struct {
	itineraries repository.ItineraryRepo
	profiles    repository.ProfileRepo
	gen         *planner.Generator
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewItineraryService(
	itineraries repository.ItineraryRepo,
	profiles repository.ProfileRepo,
	gen *planner.Generator,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ItineraryService {
	return &itineraryService{
		itineraries: itineraries,
		profiles:    profiles,
		gen:         gen,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *itineraryService) Generate(ctx context.Context, profileID string, trip domain.TripPreferences) (saved *domain.SavedItinerary, err error) {
	fields := map[string]any{"profile": profileID, "destination": trip.Destination}
	defer observe(ctx, s.observer, "itinerary-generate", time.Now().UTC(), fields, &err)

	profile, err := profileOrEmpty(ctx, s.profiles, profileID)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	prefs := planner.Preferences{Scores: swipe.ScoreMap{}, Trip: trip}
	if profile != nil {
		prefs.Scores = swipe.ScoreMap(profile.Scores)
	}

	it, err := s.gen.Itinerary(ctx, prefs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	saved = &domain.SavedItinerary{
		ID:        uuid.New().String(),
		Itinerary: *it,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields["itinerary"] = saved.ID
	fields["activities"] = it.ActivityCount()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if profile != nil {
			saved.ProfileID = profile.ID
			profile.Trip = &trip
			profile.UpdatedAt = now
			if err := repository.NewSQLiteProfileRepo(tx).Upsert(ctx, profile); err != nil {
				return err
			}
		}
		return repository.NewSQLiteItineraryRepo(tx).Create(ctx, saved)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *itineraryService) Get(ctx context.Context, idOrPrefix string) (*domain.SavedItinerary, error) {
	return s.itineraries.Resolve(ctx, idOrPrefix)
}

func (s *itineraryService) List(ctx context.Context) ([]*domain.SavedItinerary, error) {
	return s.itineraries.List(ctx)
}

func (s *itineraryService) Delete(ctx context.Context, idOrPrefix string) error {
	saved, err := s.itineraries.Resolve(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	return s.itineraries.Delete(ctx, saved.ID)
}

// edit resolves the itinerary, applies fn and stores the result. fn may
// report unchanged to skip the write.
func (s *itineraryService) edit(ctx context.Context, name, id string, fields map[string]any, fn func(saved *domain.SavedItinerary) (changed bool, err error)) (saved *domain.SavedItinerary, err error) {
	fields["itinerary"] = id
	defer observe(ctx, s.observer, name, time.Now().UTC(), fields, &err)

	saved, err = s.itineraries.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := fn(saved)
	if err != nil {
		return nil, err
	}
	if !changed {
		return saved, nil
	}
	saved.UpdatedAt = time.Now().UTC()
	if err := s.itineraries.Update(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *itineraryService) DeleteActivity(ctx context.Context, id string, day, index int) (*domain.SavedItinerary, error) {
	fields := map[string]any{"day": day, "index": index}
	return s.edit(ctx, "itinerary-delete-activity", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		removed, err := itinerary.DeleteActivity(&saved.Itinerary, day, index)
		if err != nil {
			return false, err
		}
		fields["title"] = removed.Title
		return true, nil
	})
}

func (s *itineraryService) MoveActivity(ctx context.Context, id string, day, from, to int) (*domain.SavedItinerary, error) {
	fields := map[string]any{"day": day, "from": from, "to": to}
	return s.edit(ctx, "itinerary-move-activity", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		if err := itinerary.ReorderActivity(&saved.Itinerary, day, from, to); err != nil {
			return false, err
		}
		return from != to, nil
	})
}

func (s *itineraryService) RefreshActivity(ctx context.Context, id string, day, index int) (*domain.SavedItinerary, error) {
	fields := map[string]any{"day": day, "index": index}
	return s.edit(ctx, "itinerary-refresh-activity", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		prefs, err := s.preferencesFor(ctx, saved)
		if err != nil {
			return false, err
		}
		a, err := s.gen.ReplacementActivity(ctx, &saved.Itinerary, day, index, prefs)
		if err != nil {
			return false, ignoreStale(err, fields)
		}
		return true, itinerary.ReplaceActivity(&saved.Itinerary, day, index, a)
	})
}

func (s *itineraryService) AddActivity(ctx context.Context, id string, day int, actType domain.ActivityType, startMin int) (*domain.SavedItinerary, error) {
	fields := map[string]any{"day": day, "type": string(actType), "start_min": startMin}
	return s.edit(ctx, "itinerary-add-activity", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		prefs, err := s.preferencesFor(ctx, saved)
		if err != nil {
			return false, err
		}
		a, err := s.gen.NewActivity(ctx, &saved.Itinerary, day, actType, startMin, prefs)
		if err != nil {
			return false, ignoreStale(err, fields)
		}
		_, err = itinerary.AddActivity(&saved.Itinerary, day, a)
		return err == nil, err
	})
}

func (s *itineraryService) Nearby(ctx context.Context, id string, refresh bool) (*domain.SavedItinerary, error) {
	fields := map[string]any{"refresh": refresh}
	return s.edit(ctx, "itinerary-nearby", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		if len(saved.Nearby) > 0 && !refresh {
			fields["cached"] = true
			return false, nil
		}
		prefs, err := s.preferencesFor(ctx, saved)
		if err != nil {
			return false, err
		}
		places, err := s.gen.Nearby(ctx, saved.Itinerary.Destination, prefs)
		if err != nil {
			return false, ignoreStale(err, fields)
		}
		saved.Nearby = places
		fields["places"] = len(places)
		return true, nil
	})
}

func (s *itineraryService) AddNearby(ctx context.Context, id string, day, place, startMin int) (*domain.SavedItinerary, error) {
	fields := map[string]any{"day": day, "place": place, "start_min": startMin}
	return s.edit(ctx, "itinerary-add-nearby", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		if place < 0 || place >= len(saved.Nearby) {
			return false, fmt.Errorf("%w: nearby place %d (have %d)", itinerary.ErrIndexOutOfRange, place, len(saved.Nearby))
		}
		a := saved.Nearby[place]
		a.Time = itinerary.FormatActivityTime(startMin)
		_, err := itinerary.AddActivity(&saved.Itinerary, day, a)
		return err == nil, err
	})
}

func (s *itineraryService) Reoptimize(ctx context.Context, id string) (*domain.SavedItinerary, error) {
	fields := map[string]any{}
	return s.edit(ctx, "itinerary-reoptimize", id, fields, func(saved *domain.SavedItinerary) (bool, error) {
		prefs, err := s.preferencesFor(ctx, saved)
		if err != nil {
			return false, err
		}
		it, err := s.gen.Itinerary(ctx, prefs)
		if err != nil {
			return false, ignoreStale(err, fields)
		}
		saved.Itinerary = *it
		saved.Nearby = nil
		fields["activities"] = it.ActivityCount()
		return true, nil
	})
}

// preferencesFor rebuilds the generation inputs of a saved itinerary. The
// linked profile supplies scores and trip answers; without one the trip is
// derived from the itinerary itself.
func (s *itineraryService) preferencesFor(ctx context.Context, saved *domain.SavedItinerary) (planner.Preferences, error) {
	prefs := planner.Preferences{Scores: swipe.ScoreMap{}}
	var profile *domain.PreferenceProfile
	if saved.ProfileID != "" {
		p, err := s.profiles.GetByID(ctx, saved.ProfileID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return prefs, fmt.Errorf("loading preferences: %w", err)
		}
		profile = p
	}
	if profile != nil {
		prefs.Scores = swipe.ScoreMap(profile.Scores)
		if profile.Trip != nil {
			prefs.Trip = *profile.Trip
			return prefs, nil
		}
	}
	prefs.Trip = domain.DefaultTripPreferences(time.Now())
	prefs.Trip.Destination = saved.Itinerary.Destination
	prefs.Trip.StartDate = saved.Itinerary.TripDates.StartDate
	prefs.Trip.EndDate = saved.Itinerary.TripDates.EndDate
	return prefs, nil
}

// ignoreStale turns a superseded response into a no-op edit.
func ignoreStale(err error, fields map[string]any) error {
	if errors.Is(err, planner.ErrStaleResponse) {
		fields["stale"] = true
		return nil
	}
	return err
}
