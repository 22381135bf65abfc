package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/export"
	"github.com/alexanderramin/tratlus/internal/itinerary"
	"github.com/spf13/cobra"
)

func newItineraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "itinerary",
		Aliases: []string{"it", "trip"},
		Short:   "Browse, edit and export generated itineraries",
		Long: "Browse, edit and export generated itineraries. ID may be any unique prefix\n" +
			"of an itinerary ID. DAY and activity positions start at 1.",
	}
	cmd.AddCommand(
		newItineraryListCmd(app),
		newItineraryShowCmd(app),
		newItineraryDeleteCmd(app),
		newItineraryDeleteActivityCmd(app),
		newItineraryMoveActivityCmd(app),
		newItineraryRefreshActivityCmd(app),
		newItineraryAddActivityCmd(app),
		newItineraryNearbyCmd(app),
		newItineraryAddNearbyCmd(app),
		newItineraryReoptimizeCmd(app),
		newItineraryExportCmd(app),
	)
	return cmd
}

// withSpinner runs fn behind a spinner on interactive terminals.
func withSpinner(cmd *cobra.Command, app *App, msg string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
	defer stop()
	return fn()
}

func getItinerary(ctx context.Context, app *App, id string) (*domain.SavedItinerary, error) {
	saved, err := app.Itineraries.Get(ctx, id)
	if err != nil {
		return nil, friendly("itinerary", id, err)
	}
	return saved, nil
}

// dayAndPosition parses "DAY N" arguments into 0-based indices.
func dayAndPosition(dayArg, posArg string) (day, index int, err error) {
	if day, err = parsePosition("day", dayArg); err != nil {
		return 0, 0, err
	}
	if index, err = parsePosition("activity", posArg); err != nil {
		return 0, 0, err
	}
	return day, index, nil
}

func printItinerary(cmd *cobra.Command, saved *domain.SavedItinerary) {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItinerary(saved))
}

func newItineraryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved itineraries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Itineraries.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItineraryList(list, app.now()))
			return nil
		},
	}
}

func newItineraryShowCmd(app *App) *cobra.Command {
	var activity string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an itinerary day by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := getItinerary(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			if activity == "" {
				printItinerary(cmd, saved)
				return nil
			}

			dayArg, posArg, ok := strings.Cut(activity, "/")
			if !ok {
				return fmt.Errorf("invalid --activity %q: want DAY/N, e.g. 2/3", activity)
			}
			day, index, err := dayAndPosition(dayArg, posArg)
			if err != nil {
				return err
			}
			a, err := itinerary.Activity(&saved.Itinerary, day, index)
			if err != nil {
				return fmt.Errorf("activity %s: %w", activity, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityDetail(a))
			return nil
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "", "Show the details of one activity, as DAY/N")

	return cmd
}

func newItineraryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved itinerary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Itineraries.Delete(context.Background(), args[0]); err != nil {
				return friendly("itinerary", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted itinerary "+args[0]))
			return nil
		},
	}
}

func newItineraryDeleteActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-activity ID DAY N",
		Short: "Remove activity N from DAY",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, index, err := dayAndPosition(args[1], args[2])
			if err != nil {
				return err
			}
			saved, err := app.Itineraries.DeleteActivity(context.Background(), args[0], day, index)
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}
}

func newItineraryMoveActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move-activity ID DAY FROM TO",
		Short: "Reorder an activity within DAY",
		Long: "Move activity FROM to position TO within DAY. The activity takes the time of\n" +
			"the slot it lands in; later activities are pushed back if they would overlap.\n" +
			"Meals are renamed to match their new time.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, from, err := dayAndPosition(args[1], args[2])
			if err != nil {
				return err
			}
			to, err := parsePosition("position", args[3])
			if err != nil {
				return err
			}
			saved, err := app.Itineraries.MoveActivity(context.Background(), args[0], day, from, to)
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}
}

func newItineraryRefreshActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-activity ID DAY N",
		Short: "Replace activity N of DAY with a new suggestion in the same slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, index, err := dayAndPosition(args[1], args[2])
			if err != nil {
				return err
			}
			var saved *domain.SavedItinerary
			err = withSpinner(cmd, app, "Finding an alternative…", func() (err error) {
				saved, err = app.Itineraries.RefreshActivity(context.Background(), args[0], day, index)
				return err
			})
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}
}

func newItineraryAddActivityCmd(app *App) *cobra.Command {
	actType := domain.ActivityGeneric
	var at int

	cmd := &cobra.Command{
		Use:   "add-activity ID DAY",
		Short: "Generate a new activity of --type at --at on DAY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parsePosition("day", args[1])
			if err != nil {
				return err
			}
			var saved *domain.SavedItinerary
			err = withSpinner(cmd, app, "Suggesting an activity…", func() (err error) {
				saved, err = app.Itineraries.AddActivity(context.Background(), args[0], day, actType, at)
				return err
			})
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}

	cmd.Flags().Var(activityTypeValue{typ: &actType}, "type", "Activity type: food, attraction, activity, transportation or accommodation")
	cmd.Flags().Var(newClockValue(&at, 12*60), "at", "Start time (14:30 or 2:30 PM)")

	return cmd
}

func newItineraryNearbyCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "nearby ID",
		Short: "Suggest places near the destination",
		Long: "Suggest places near the itinerary's destination. Results are cached with the\n" +
			"itinerary; pass --refresh to ask again. Add one to a day with 'add-nearby'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var saved *domain.SavedItinerary
			err := withSpinner(cmd, app, "Looking around…", func() (err error) {
				saved, err = app.Itineraries.Nearby(context.Background(), args[0], refresh)
				return err
			})
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNearby(saved))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached suggestions")

	return cmd
}

func newItineraryAddNearbyCmd(app *App) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "add-nearby ID DAY PLACE",
		Short: "Add nearby place PLACE to DAY at --at",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parsePosition("day", args[1])
			if err != nil {
				return err
			}
			place, err := parsePosition("place", args[2])
			if err != nil {
				return err
			}
			saved, err := app.Itineraries.AddNearby(context.Background(), args[0], day, place, at)
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}

	cmd.Flags().Var(newClockValue(&at, 14*60), "at", "Start time (14:30 or 2:30 PM)")

	return cmd
}

func newItineraryReoptimizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reoptimize ID",
		Short: "Regenerate the whole itinerary from the linked preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var saved *domain.SavedItinerary
			err := withSpinner(cmd, app, "Re-planning your trip…", func() (err error) {
				saved, err = app.Itineraries.Reoptimize(context.Background(), args[0])
				return err
			})
			if err != nil {
				return friendly("itinerary", args[0], err)
			}
			printItinerary(cmd, saved)
			return nil
		},
	}
}

func newItineraryExportCmd(app *App) *cobra.Command {
	var pdf, email, cal, maps bool
	var out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export an itinerary as text, PDF, email, calendar or map links",
		Long: "Export an itinerary. Without flags the plain-text summary is printed.\n" +
			"--pdf writes a PDF (with a calendar QR code) to --out, or to a file named\n" +
			"after the destination and dates.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := getItinerary(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			it := &saved.Itinerary
			w := cmd.OutOrStdout()

			if !pdf && !email && !cal && !maps {
				fmt.Fprint(w, export.Summary(it))
				return nil
			}
			if pdf {
				path, err := writePDFFile(it, out)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, formatter.Success("Wrote "+path))
			}
			if email {
				fmt.Fprintln(w, export.MailtoURL(it))
			}
			if cal {
				fmt.Fprintln(w, export.CalendarURL(it))
			}
			if maps {
				for i, day := range it.Days {
					link, ok := export.DirectionsURL(it, i)
					if !ok {
						fmt.Fprintf(w, "Day %d: %s\n", day.DayNumber, formatter.Dim("no stops to route"))
						continue
					}
					fmt.Fprintf(w, "Day %d: %s\n", day.DayNumber, link)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pdf, "pdf", false, "Write a PDF")
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF output path")
	cmd.Flags().BoolVar(&email, "email", false, "Print a mailto: link with the summary")
	cmd.Flags().BoolVar(&cal, "calendar", false, "Print a Google Calendar event link")
	cmd.Flags().BoolVar(&maps, "maps", false, "Print Google Maps directions per day")

	return cmd
}

// writePDFFile renders the PDF to path, or to the default file name when
// path is empty. A failed render removes the partial file.
func writePDFFile(it *domain.TravelItinerary, path string) (written string, err error) {
	if path == "" {
		path = export.FileName(it)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if err = export.WritePDF(f, it); err != nil {
		return "", fmt.Errorf("writing PDF: %w", err)
	}
	return path, nil
}
