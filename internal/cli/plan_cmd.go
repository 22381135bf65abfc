package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/planner"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// planFlags mirrors the questionnaire. Only flags the user set override the
// profile's saved answers.
type planFlags struct {
	profile       string
	noForm        bool
	from          string
	destination   string
	surprise      bool
	start, end    calendar.DateKey
	travelers     int
	budget        string
	priority      domain.TransportPriority
	transport     []string
	dietary       []string
	allergies     string
	mealBudget    string
	adventurous   int
	cuisines      []string
	stay          []string
	starsMin      int
	starsMax      int
	pricePerNight int
	amenities     []string
	wake, sleep   string
}

func newPlanCmd(app *App) *cobra.Command {
	f := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a day-by-day itinerary from your preferences",
		Long: "Answer the trip questionnaire and generate an itinerary. Swipe scores come\n" +
			"from --profile, or the most recent profile when there is one. Answers default\n" +
			"to that profile's last trip; flags override them and the form lets you review\n" +
			"them. Pass --no-form (or run without a terminal) to skip the form.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, profileID, err := startQuestionnaire(ctx, app, f.profile)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, q); err != nil {
				return err
			}

			if app.interactive() && !f.noForm {
				answers := newTripAnswers(&q.Trip)
				if err := tripForm(answers).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
				if err := answers.apply(); err != nil {
					return err
				}
			}

			q.Normalize()
			if err := q.Validate(); err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), planningMessage(q.Trip))
			}
			saved, err := app.Itineraries.Generate(ctx, profileID, q.Trip)
			stop()
			if errors.Is(err, planner.ErrStaleResponse) {
				return errors.New("a newer plan request replaced this one; nothing saved")
			}
			if err != nil {
				return fmt.Errorf("generating itinerary: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItinerary(saved))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved itinerary "+shortID(saved.ID)))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.profile, "profile", "", "Preference profile to use (ID or prefix; default: most recent)")
	fl.BoolVar(&f.noForm, "no-form", false, "Skip the interactive questionnaire")
	fl.StringVar(&f.from, "from", "", "Departure location")
	fl.StringVar(&f.destination, "to", "", "Destination")
	fl.BoolVar(&f.surprise, "surprise", false, "Let the planner pick a destination")
	fl.Var(dateValue{key: &f.start, now: app.now}, "start", "First trip day (YYYY-MM-DD, today, tomorrow)")
	fl.Var(dateValue{key: &f.end, now: app.now}, "end", "Last trip day (YYYY-MM-DD)")
	fl.IntVar(&f.travelers, "travelers", 0, "Number of travelers")
	fl.StringVar(&f.budget, "budget", "", "Total budget in USD")
	fl.Var(priorityValue{p: &f.priority}, "priority", "Transport priority: speed, cost or comfort")
	fl.StringSliceVar(&f.transport, "transport", nil, "Transport methods ("+strings.Join(planner.TransportMethods, ", ")+")")
	fl.StringSliceVar(&f.dietary, "dietary", nil, "Dietary needs ("+strings.Join(planner.DietaryOptions, ", ")+")")
	fl.StringVar(&f.allergies, "allergies", "", "Food allergies")
	fl.StringVar(&f.mealBudget, "meal-budget", "", "Meal budget: $, $$, $$$ or $$$$")
	fl.IntVar(&f.adventurous, "adventurousness", 0, "Food adventurousness, 1-10")
	fl.StringSliceVar(&f.cuisines, "cuisines", nil, "Favorite cuisines")
	fl.StringSliceVar(&f.stay, "stay", nil, "Accommodation types ("+strings.Join(planner.AccommodationOptions, ", ")+")")
	fl.IntVar(&f.starsMin, "stars-min", 0, "Minimum star rating")
	fl.IntVar(&f.starsMax, "stars-max", 0, "Maximum star rating")
	fl.IntVar(&f.pricePerNight, "price-per-night", 0, fmt.Sprintf("Nightly price in USD (%d-%d)", planner.MinPricePerNight, planner.MaxPricePerNight))
	fl.StringSliceVar(&f.amenities, "amenities", nil, "Amenities ("+strings.Join(planner.AmenityOptions, ", ")+")")
	fl.StringVar(&f.wake, "wake", "", "Wake-up time (08:00)")
	fl.StringVar(&f.sleep, "sleep", "", "Bedtime (22:00)")
	cmd.MarkFlagsMutuallyExclusive("to", "surprise")

	return cmd
}

// startQuestionnaire resolves the profile and prefills the questionnaire
// with its last trip answers.
func startQuestionnaire(ctx context.Context, app *App, input string) (*planner.Questionnaire, string, error) {
	q := planner.NewQuestionnaire(app.now())
	id, err := resolveProfileID(ctx, app, input)
	if err != nil {
		return nil, "", friendly("profile", input, err)
	}
	p, err := app.Swipe.Profile(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound) && input == "":
		return q, "", nil
	case err != nil:
		return nil, "", friendly("profile", input, err)
	}
	if p.Trip != nil {
		q.Trip = *p.Trip
	}
	return q, p.ID, nil
}

func (f *planFlags) apply(cmd *cobra.Command, q *planner.Questionnaire) error {
	t := &q.Trip
	fl := cmd.Flags()
	if fl.Changed("from") {
		t.DepartureLocation = f.from
	}
	if fl.Changed("to") {
		t.Destination, t.SurpriseMe = f.destination, false
	}
	if fl.Changed("surprise") {
		t.SurpriseMe = f.surprise
	}
	if fl.Changed("start") {
		t.StartDate = f.start.String()
		if !fl.Changed("end") && t.EndDate < t.StartDate {
			t.EndDate = t.StartDate
		}
	}
	if fl.Changed("end") {
		t.EndDate = f.end.String()
	}
	if fl.Changed("travelers") {
		t.Travelers = f.travelers
	}
	if fl.Changed("budget") {
		v, err := parseBudget(f.budget)
		if err != nil {
			return err
		}
		t.TotalBudget = &v
	}
	if fl.Changed("priority") {
		t.TransportPriority = f.priority
	}
	if fl.Changed("transport") {
		t.TransportMethods = canonical(f.transport, planner.TransportMethods)
	}
	if fl.Changed("dietary") {
		t.DietaryNeeds = canonical(f.dietary, planner.DietaryOptions)
	}
	if fl.Changed("allergies") {
		t.FoodAllergies = f.allergies
	}
	if fl.Changed("meal-budget") {
		t.MealBudget = f.mealBudget
	}
	if fl.Changed("adventurousness") {
		t.FoodAdventurousness = f.adventurous
	}
	if fl.Changed("cuisines") {
		t.FavoriteCuisines = canonical(f.cuisines, planner.CuisineOptions)
	}
	if fl.Changed("stay") {
		t.AccommodationTypes = canonical(f.stay, planner.AccommodationOptions)
	}
	if fl.Changed("stars-min") {
		t.StarRatingMin = f.starsMin
	}
	if fl.Changed("stars-max") {
		t.StarRatingMax = f.starsMax
	}
	if fl.Changed("price-per-night") {
		t.PricePerNight = f.pricePerNight
	}
	if fl.Changed("amenities") {
		t.Amenities = canonical(f.amenities, planner.AmenityOptions)
	}
	if fl.Changed("wake") {
		t.WakeUpTime = f.wake
	}
	if fl.Changed("sleep") {
		t.SleepTime = f.sleep
	}
	return nil
}

// canonical maps case-insensitive matches onto the option spelling and keeps
// unknown values as typed.
func canonical(values, options []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		for _, o := range options {
			if strings.EqualFold(v, o) {
				v = o
				break
			}
		}
		out = append(out, v)
	}
	return out
}

func planningMessage(t domain.TripPreferences) string {
	if t.SurpriseMe || t.Destination == "" {
		return "Picking a destination and planning your trip…"
	}
	return "Planning your trip to " + t.Destination + "…"
}
