package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/planner"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tratlusHuhTheme returns a huh theme in the Gruvbox palette of the formatter.
func tratlusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// tripAnswers holds the questionnaire fields that huh edits as text. The
// rest bind straight to the trip.
type tripAnswers struct {
	trip      *domain.TripPreferences
	travelers string
	budget    string
	priority  string
}

func newTripAnswers(trip *domain.TripPreferences) *tripAnswers {
	a := &tripAnswers{
		trip:      trip,
		travelers: strconv.Itoa(trip.Travelers),
		priority:  string(trip.TransportPriority),
	}
	if trip.TotalBudget != nil {
		a.budget = strconv.FormatFloat(*trip.TotalBudget, 'f', -1, 64)
	}
	return a
}

// apply copies the text answers back into the trip.
func (a *tripAnswers) apply() error {
	n, err := strconv.Atoi(strings.TrimSpace(a.travelers))
	if err != nil {
		return fmt.Errorf("travelers %q: want a whole number", a.travelers)
	}
	a.trip.Travelers = n
	a.trip.TotalBudget = nil
	if b := strings.TrimSpace(a.budget); b != "" {
		v, err := parseBudget(b)
		if err != nil {
			return err
		}
		a.trip.TotalBudget = &v
	}
	a.trip.TransportPriority = domain.TransportPriority(a.priority)
	return nil
}

// tripForm builds the trip questionnaire.
func tripForm(a *tripAnswers) *huh.Form {
	t := a.trip
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Where are you leaving from?").Placeholder("Chicago").Value(&t.DepartureLocation),
			huh.NewConfirm().Title("Surprise me with a destination?").Affirmative("Yes").Negative("No").Value(&t.SurpriseMe),
		),
		huh.NewGroup(
			huh.NewInput().Title("Where to?").Placeholder("Lisbon").Value(&t.Destination).
				Validate(requiredText("destination")),
		).WithHideFunc(func() bool { return t.SurpriseMe }),
		huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&t.StartDate).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&t.EndDate).Validate(validateDate),
			huh.NewInput().Title("Travelers").Value(&a.travelers).Validate(validatePositiveInt),
			huh.NewInput().Title("Total budget (blank for none)").Placeholder("2500").Value(&a.budget).Validate(validateOptionalBudget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Transport priority").
				Options(huh.NewOption("Cost", string(domain.PriorityCost)), huh.NewOption("Speed", string(domain.PrioritySpeed)), huh.NewOption("Comfort", string(domain.PriorityComfort))).
				Value(&a.priority),
			huh.NewMultiSelect[string]().Title("Ways to get around").Options(huh.NewOptions(planner.TransportMethods...)...).Value(&t.TransportMethods),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Dietary needs").Options(huh.NewOptions(planner.DietaryOptions...)...).Value(&t.DietaryNeeds),
			huh.NewInput().Title("Food allergies").Placeholder("peanuts, shellfish").Value(&t.FoodAllergies),
			huh.NewSelect[string]().Title("Meal budget").Options(huh.NewOptions(planner.MealBudgets...)...).Value(&t.MealBudget),
			huh.NewSelect[int]().Title("Food adventurousness (1-10)").Options(intOptions(1, 10, 1)...).Value(&t.FoodAdventurousness),
			huh.NewMultiSelect[string]().Title("Favorite cuisines").Options(huh.NewOptions(planner.CuisineOptions...)...).Value(&t.FavoriteCuisines),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Where would you stay?").Options(huh.NewOptions(planner.AccommodationOptions...)...).Value(&t.AccommodationTypes),
			huh.NewSelect[int]().Title("Minimum stars").Options(intOptions(1, 5, 1)...).Value(&t.StarRatingMin),
			huh.NewSelect[int]().Title("Maximum stars").Options(intOptions(1, 5, 1)...).Value(&t.StarRatingMax),
			huh.NewSelect[int]().Title("Price per night (USD)").
				Options(intOptions(planner.MinPricePerNight, planner.MaxPricePerNight, planner.PricePerNightStep)...).
				Value(&t.PricePerNight),
			huh.NewMultiSelect[string]().Title("Must-have amenities").Options(huh.NewOptions(planner.AmenityOptions...)...).Value(&t.Amenities),
		),
		huh.NewGroup(
			huh.NewInput().Title("Wake-up time").Placeholder("08:00").Value(&t.WakeUpTime).Validate(validateOptionalClock),
			huh.NewInput().Title("Bedtime").Placeholder("22:00").Value(&t.SleepTime).Validate(validateOptionalClock),
		),
	).WithTheme(tratlusHuhTheme()).WithShowHelp(false)
}

func intOptions(from, to, step int) []huh.Option[int] {
	var opts []huh.Option[int]
	for v := from; v <= to; v += step {
		opts = append(opts, huh.NewOption(strconv.Itoa(v), v))
	}
	return opts
}

func requiredText(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a number of at least 1")
	}
	return nil
}

func validateOptionalBudget(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseBudget(s)
	return err
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := domain.ParseTimeOfDay(s)
	return err
}

// parseBudget accepts "2500", "$2,500" or "2500.50".
func parseBudget(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("budget %q: want a positive amount", s)
	}
	return v, nil
}
