package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = calendar.DateKey("2026-05-01")

func TestDayShow_Empty(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "day", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "FRIDAY, MAY 1 2026")
	assert.Contains(t, output, "No activities planned.")
}

func TestDayAdd_PlacesDefaultBlock(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)
	assert.Contains(t, output, "Placed Visit Local Attraction at 9:00 AM–11:00 AM")

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 9*60, blocks[0].StartMin)
	assert.Equal(t, 120, blocks[0].DurationMin)
}

func TestDayAdd_WithFields(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app, "day", "add", "food", "19:00", "--title", "Dinner", "--location", "Bairro Alto")
	require.NoError(t, err)
	assert.Contains(t, output, "Placed Dinner at 7:00 PM–8:00 PM")
	assert.Contains(t, output, "Bairro Alto")

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Dinner", blocks[0].Title)
	assert.Equal(t, "Bairro Alto", blocks[0].Location)
}

func TestDayAdd_ConflictLeavesDayUnchanged(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "day", "add", "food", "10:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts with an existing activity")

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestDayAdd_UnknownCategory(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "add", "karaoke", "9:00")
	assert.Error(t, err)
}

func TestDayAdd_DateFlag(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "--date", "tomorrow", "add", "shopping", "15:00")
	require.NoError(t, err)

	blocks, err := app.Days.Get(context.Background(), calendar.DateKey("2026-05-02"))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	blocks, err = app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestDayMove(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "day", "move", "1", "2:00 PM")
	require.NoError(t, err)

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 14*60, blocks[0].StartMin)
	assert.Equal(t, 120, blocks[0].DurationMin)
}

func TestDayMove_OverlapRejected(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "day", "add", "food", "12:00")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "day", "move", "2", "10:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing changed")

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 12*60, blocks[1].StartMin)
}

func TestDayResize(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "day", "resize", "1", "--by", "30")
	require.NoError(t, err)
	assert.Contains(t, output, "9:00 AM–11:30 AM")

	_, err = executeCmd(t, app, "day", "resize", "1", "--edge", "top", "--by", "-60")
	require.NoError(t, err)

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 8*60, blocks[0].StartMin)
	assert.Equal(t, 210, blocks[0].DurationMin)
}

func TestDayResize_RequiresBy(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "resize", "1")
	assert.Error(t, err)
}

func TestDayEdit_OnlyChangedFields(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "food", "12:00", "--location", "Chiado")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "day", "edit", "1", "--title", "Lunch", "--duration", "45")
	require.NoError(t, err)

	blocks, err := app.Days.Get(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Lunch", blocks[0].Title)
	assert.Equal(t, "Chiado", blocks[0].Location)
	assert.Equal(t, 60, blocks[0].DurationMin, "duration rounds up to the grid")
}

func TestDayEdit_OutOfRange(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "day", "edit", "3", "--title", "Nope")
	assert.ErrorIs(t, err, timeline.ErrIndexOutOfRange)
}

func TestDayDelete(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "transport", "8:00")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "day", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "No activities planned.")
}

func TestParsePosition(t *testing.T) {
	i, err := parsePosition("block", "#2")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	for _, bad := range []string{"0", "-1", "two", ""} {
		_, err := parsePosition("block", bad)
		assert.Error(t, err, bad)
	}
}

func TestCalendarCmd(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "day", "add", "attraction", "9:00")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "cal", "--month", "2026-05")
	require.NoError(t, err)
	assert.Contains(t, output, "Su")
	assert.Contains(t, output, "31")
	assert.Contains(t, output, "1 planned day")

	output, err = executeCmd(t, app, "calendar", "--month", "2026-06")
	require.NoError(t, err)
	assert.Contains(t, output, "No planned days this month.")
}

func TestCalendarCmd_BadMonth(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "calendar", "--month", "May")
	assert.Error(t, err)
}
