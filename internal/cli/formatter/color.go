package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle returns the style for a timeline block category, using the
// category's own color from the palette table.
func CategoryStyle(c domain.Category) lipgloss.Style {
	spec := c.Spec()
	if spec.Color == "" {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(spec.Color))
}

// CategoryBadge returns the icon and display name of a category, colored.
func CategoryBadge(c domain.Category) string {
	spec := c.Spec()
	if spec.DisplayName == "" {
		return StyleDim.Render(string(c))
	}
	return CategoryStyle(c).Render(spec.Icon + " " + spec.DisplayName)
}

// ActivityTypeStyle maps itinerary activity types onto the palette.
func ActivityTypeStyle(t domain.ActivityType) lipgloss.Style {
	switch t {
	case domain.ActivityFood:
		return StyleYellow
	case domain.ActivityAttraction:
		return StyleBlue
	case domain.ActivityAccommodation:
		return StylePurple
	case domain.ActivityTransportation, domain.ActivityTransportBetween:
		return StyleGreen
	default:
		return StyleFg
	}
}

// ActivityTypeBadge returns a short bracketed type label such as "[food]".
func ActivityTypeBadge(t domain.ActivityType) string {
	if t == "" {
		t = domain.ActivityGeneric
	}
	return ActivityTypeStyle(t).Render("[" + string(t) + "]")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green confirmation line prefixed with a check mark.
func Success(text string) string {
	return StyleGreen.Render("✔ " + text)
}

// Warning renders a yellow notice line.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}
