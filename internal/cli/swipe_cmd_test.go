package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/swipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwipeCmd_NeedsTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "swipe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNeedsTerminal))

	profiles, err := app.Swipe.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestSwipeCmd_Auto(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "swipe", "--auto", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, output, "All categories complete")
	assert.Contains(t, output, "Saved profile")

	p, err := app.Swipe.Profile(context.Background(), "")
	require.NoError(t, err)
	for _, cat := range domain.CardCategories {
		assert.GreaterOrEqual(t, p.Progress[cat], swipe.RequiredSwipes, cat)
	}
}

func TestSwipeCmd_Moves(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "swipe", "--moves", "rrlrl>rr", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Locations complete")

	p, err := app.Swipe.Profile(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Progress[domain.CardLocations])
	assert.Equal(t, 2, p.Progress[domain.CardActivities])
	assert.Len(t, p.SwipedIDs, 7)
}

func TestSwipeCmd_MovesRejectsUnknown(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "swipe", "--moves", "rrx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move 3")
}

func TestSwipeCmd_AutoAndMovesExclusive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "swipe", "--auto", "--moves", "r")
	assert.Error(t, err)
}

func TestSwipeCmd_ResumeUpdatesProfile(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "swipe", "--moves", "rr", "--seed", "1")
	require.NoError(t, err)
	first, err := app.Swipe.Profile(context.Background(), "")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "swipe", "--profile", first.ID[:8], "--moves", "ll", "--seed", "2")
	require.NoError(t, err)

	profiles, err := app.Swipe.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 4, profiles[0].Progress[domain.CardLocations])
	assert.Len(t, profiles[0].SwipedIDs, 4)
}

func TestSwipeCmd_UnknownProfile(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "swipe", "--profile", "nope", "--auto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "nope" not found`)
}

func TestProfileCmds(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "tratlus swipe")

	_, err = executeCmd(t, app, "profile", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no preference profiles yet")

	p := seedProfile(t, app)

	output, err = executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, output, p.ID[:8])

	output, err = executeCmd(t, app, "profile", "show", p.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "PREFERENCES")

	output, err = executeCmd(t, app, "profile", "delete", p.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted profile")

	profiles, err := app.Swipe.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
