package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/swipe"
)

const countBarWidth = 10

// SwipeProgress is the per-category swipe tally shown by FormatSwipeProgress.
type SwipeProgress struct {
	Counts   map[domain.CardCategory]int
	Required int
	Current  domain.CardCategory
}

// FormatSwipeProgress renders one counter bar per card category and marks
// the current one with an arrow.
func FormatSwipeProgress(p SwipeProgress) string {
	var b strings.Builder
	for _, cat := range domain.CardCategories {
		marker := "  "
		label := StyleFg.Render(fmt.Sprintf("%-10s", cat.DisplayName()))
		if cat == p.Current {
			marker = StyleHeader.Render("▸ ")
			label = StyleHeader.Render(fmt.Sprintf("%-10s", cat.DisplayName()))
		}
		b.WriteString(marker + label + " " + RenderCount(p.Counts[cat], p.Required, countBarWidth) + "\n")
	}
	return b.String()
}

// FormatTagScores renders the strongest likes and dislikes.
func FormatTagScores(scores swipe.ScoreMap) string {
	liked := scores.TopLiked(10)
	disliked := scores.TopDisliked(5)
	if len(liked) == 0 && len(disliked) == 0 {
		return Dim("No preferences recorded yet.")
	}
	var b strings.Builder
	if len(liked) > 0 {
		b.WriteString(StyleGreen.Render("Likes: "))
		b.WriteString(joinScores(liked, StyleGreen.Render) + "\n")
	}
	if len(disliked) > 0 {
		b.WriteString(StyleRed.Render("Dislikes: "))
		b.WriteString(joinScores(disliked, StyleRed.Render) + "\n")
	}
	return b.String()
}

func joinScores(scores []swipe.TagScore, render func(...string) string) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = s.Tag + " " + render(fmt.Sprintf("%+d", s.Score))
	}
	return strings.Join(parts, Dim(", "))
}

// FormatProfile renders a preference profile: swipe progress, tag scores and
// any saved trip answers.
func FormatProfile(p *domain.PreferenceProfile, required int) string {
	var b strings.Builder
	b.WriteString(Dim("Profile ") + TruncID(p.ID) + "\n\n")
	b.WriteString(FormatSwipeProgress(SwipeProgress{Counts: p.Progress, Required: required}))
	b.WriteString("\n" + FormatTagScores(swipe.ScoreMap(p.Scores)))
	if p.Trip != nil {
		b.WriteString("\n" + FormatTrip(*p.Trip))
	}
	return RenderBox("Preferences", b.String())
}

// FormatTrip summarizes questionnaire answers.
func FormatTrip(t domain.TripPreferences) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			b.WriteString(StyleHeader.Render(fmt.Sprintf("%-13s", label)) + value + "\n")
		}
	}
	dest := t.Destination
	if t.SurpriseMe || dest == "" {
		dest = StylePurple.Render("Surprise me")
	}
	line("Destination", dest)
	line("From", t.DepartureLocation)
	line("Dates", TripRange(t.StartDate, t.EndDate))
	line("Travelers", strconv.Itoa(t.Travelers))
	if t.TotalBudget != nil {
		line("Budget", Money(*t.TotalBudget))
	}
	line("Transport", string(t.TransportPriority)+listSuffix(t.TransportMethods))
	line("Meals", t.MealBudget+fmt.Sprintf(", adventurousness %d/10", t.FoodAdventurousness))
	line("Dietary", strings.Join(t.DietaryNeeds, ", "))
	line("Allergies", t.FoodAllergies)
	line("Cuisines", strings.Join(t.FavoriteCuisines, ", "))
	line("Stay", fmt.Sprintf("%d-%d stars, up to $%d/night", t.StarRatingMin, t.StarRatingMax, t.PricePerNight)+listSuffix(t.AccommodationTypes))
	line("Amenities", strings.Join(t.Amenities, ", "))
	if t.WakeUpTime != "" || t.SleepTime != "" {
		line("Day", t.WakeUpTime+" – "+t.SleepTime)
	}
	return b.String()
}

func listSuffix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return " (" + strings.Join(items, ", ") + ")"
}

// FormatProfileList renders saved preference profiles, most recent first.
func FormatProfileList(list []*domain.PreferenceProfile, now time.Time) string {
	if len(list) == 0 {
		return Dim("No preference profiles. Start one with: tratlus swipe")
	}
	cols := []Column{
		{Title: "ID"},
		{Title: "SWIPES", AlignRight: true},
		{Title: "TOP LIKES"},
		{Title: "TRIP"},
		{Title: "UPDATED"},
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		var swipes int
		for _, n := range p.Progress {
			swipes += n
		}
		var likes []string
		for _, s := range swipe.ScoreMap(p.Scores).TopLiked(3) {
			likes = append(likes, s.Tag)
		}
		trip := Dim("--")
		if p.Trip != nil && p.Trip.Destination != "" {
			trip = p.Trip.Destination
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			strconv.Itoa(swipes),
			strings.Join(likes, ", "),
			trip,
			Dim(RelativeDateFrom(p.UpdatedAt, now)),
		})
	}
	return RenderColumns(cols, rows)
}

// FormatCard renders a travel card for the swipe deck.
func FormatCard(card domain.TravelCard) string {
	var b strings.Builder
	b.WriteString(StylePurple.Render(card.Category.DisplayName()) + "\n\n")
	b.WriteString(Bold(card.Title) + "\n")
	if card.Description != "" {
		b.WriteString(StyleFg.Render(card.Description) + "\n")
	}
	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, t := range card.Tags {
			tags[i] = "#" + t
		}
		b.WriteString("\n" + StyleBlue.Render(strings.Join(tags, " ")))
	}
	return RenderBox("", b.String())
}
