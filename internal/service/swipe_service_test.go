package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/swipe"
)

func newSwipeService(t *testing.T, observers ...UseCaseObserver) (SwipeService, testRepos) {
	t.Helper()
	r := setupRepos(t)
	deck, err := swipe.LoadDeck()
	require.NoError(t, err)
	return NewSwipeService(r.profiles, deck, observers...), r
}

func TestSwipeService_SaveCreatesProfile(t *testing.T) {
	obs := &recordingObserver{}
	svc, r := newSwipeService(t, obs)
	ctx := context.Background()

	sess := svc.NewSession(7)
	for i := 0; i < 3; i++ {
		_, _, err := sess.Swipe(swipe.Right)
		require.NoError(t, err)
	}

	p, err := svc.Save(ctx, "", sess)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 3, p.Progress[domain.CardLocations])
	assert.Len(t, p.SwipedIDs, 3)

	stored, err := r.profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int(sess.Scores()), stored.Scores)

	ev := obs.last(t)
	assert.Equal(t, "swipe-save", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, p.ID, ev.Fields["profile"])
}

func TestSwipeService_ResumeRestoresProgress(t *testing.T) {
	svc, _ := newSwipeService(t)
	ctx := context.Background()

	sess := svc.NewSession(1)
	_, err := sess.AutoComplete()
	require.NoError(t, err)
	require.True(t, sess.AllComplete())

	saved, err := svc.Save(ctx, "", sess)
	require.NoError(t, err)

	resumed, p, err := svc.Resume(ctx, "", 2)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, p.ID)
	assert.True(t, resumed.AllComplete())
	assert.Equal(t, 100, resumed.Progress())
	assert.Equal(t, sess.Scores(), resumed.Scores())
}

func TestSwipeService_SaveUpdatesExisting(t *testing.T) {
	svc, r := newSwipeService(t)
	ctx := context.Background()

	sess := svc.NewSession(3)
	p, err := svc.Save(ctx, "", sess)
	require.NoError(t, err)

	_, _, err = sess.Swipe(swipe.Left)
	require.NoError(t, err)
	_, err = svc.Save(ctx, p.ID, sess)
	require.NoError(t, err)

	all, err := r.profiles.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].Progress[domain.CardLocations])
}

func TestSwipeService_SaveTrip(t *testing.T) {
	svc, _ := newSwipeService(t)
	ctx := context.Background()

	p, err := svc.Save(ctx, "", svc.NewSession(1))
	require.NoError(t, err)

	trip := domain.TripPreferences{Destination: "Porto", Travelers: 3}
	_, err = svc.SaveTrip(ctx, p.ID, trip)
	require.NoError(t, err)

	got, err := svc.Profile(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Trip)
	assert.Equal(t, "Porto", got.Trip.Destination)
}

func TestSwipeService_MissingProfile(t *testing.T) {
	svc, _ := newSwipeService(t)
	ctx := context.Background()

	_, _, err := svc.Resume(ctx, "", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Save(ctx, "nope", svc.NewSession(1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "nope"), repository.ErrNotFound)
}
