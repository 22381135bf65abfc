package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	return fmt.Sprintf("[%s] %3.0f%%", bar(pct, width, progressStyle(pct).Render), pct*100)
}

// RenderCount renders a swipe counter bar like [███░░] 3/5. A full bar is
// green and gets a check mark.
func RenderCount(n, required, width int) string {
	if required <= 0 {
		required = 1
	}
	pct := clampPct(float64(n) / float64(required))
	label := fmt.Sprintf("%d/%d", min(n, required), required)
	if n >= required {
		return fmt.Sprintf("[%s] %s", bar(1, width, StyleGreen.Render), StyleGreen.Render(label+" ✔"))
	}
	return fmt.Sprintf("[%s] %s", bar(pct, width, progressStyle(pct).Render), label)
}

func bar(pct float64, width int, render func(...string) string) string {
	if width < 2 {
		width = 2
	}
	filled := min(int(pct*float64(width)), width)
	return render(strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled))
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func progressStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}
