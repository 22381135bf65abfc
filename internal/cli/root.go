package cli

import (
	"time"

	"github.com/alexanderramin/tratlus/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Days        service.DayService
	Swipe       service.SwipeService
	Itineraries service.ItineraryService

	// IsInteractive reports whether stdin is a terminal. When nil or false,
	// swipe and plan run in batch mode from flags.
	IsInteractive func() bool
	// Now overrides the clock used for default dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "tratlus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tratlus",
		Short:         "Plan trips: day timelines, preference swiping and generated itineraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDayCmd(app),
		newCalendarCmd(app),
		newCategoriesCmd(),
		newSwipeCmd(app),
		newProfileCmd(app),
		newPlanCmd(app),
		newItineraryCmd(app),
	)

	return root
}
