package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/timeline"
)

const (
	stripSlots = domain.MinutesPerDay / domain.SlotMinutes
	freeSlot   = "·"
)

// FormatDay renders the block list of one calendar day: an occupancy strip
// for the whole day followed by a numbered table. Numbers are 1-based to
// match the day subcommands.
func FormatDay(key calendar.DateKey, blocks []domain.ActivityBlock) string {
	title := key.String()
	if t, err := key.Time(); err == nil {
		title = t.Format("Monday, Jan 2 2006")
	}

	if len(blocks) == 0 {
		return RenderBox(title, Dim("No activities planned.")+"\n"+
			Dim("Add one with: tratlus day add --date "+key.String()+" <category> <time>"))
	}

	var b strings.Builder
	b.WriteString(RenderDayStrip(blocks) + "\n\n")

	cols := []Column{
		{Title: "#", AlignRight: true},
		{Title: "TIME"},
		{Title: "LENGTH", AlignRight: true},
		{Title: "CATEGORY"},
		{Title: "TITLE"},
		{Title: "LOCATION"},
	}
	rows := make([][]string, 0, len(blocks))
	var planned int
	for i, blk := range blocks {
		planned += blk.DurationMin
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			fmt.Sprintf("%s–%s", domain.FormatClock(blk.StartMin), domain.FormatClock(blk.EndMin())),
			FormatMinutes(blk.DurationMin),
			CategoryBadge(blk.Category),
			Bold(blk.DisplayTitle()),
			Dim(blk.Location),
		})
	}
	b.WriteString(RenderColumns(cols, rows))
	b.WriteString("\n" + Dim(fmt.Sprintf("%d activities, %s planned", len(blocks), FormatMinutes(planned))) + "\n")

	for _, pair := range timeline.Overlaps(blocks) {
		b.WriteString(Warning(fmt.Sprintf("#%d %s overlaps #%d %s",
			pair[0]+1, blocks[pair[0]].DisplayTitle(), pair[1]+1, blocks[pair[1]].DisplayTitle())) + "\n")
	}
	for i, blk := range blocks {
		if blk.Notes != "" {
			b.WriteString(Dim(fmt.Sprintf("#%d note: %s", i+1, blk.Notes)) + "\n")
		}
	}

	return RenderBox(title, b.String())
}

// RenderDayStrip draws the day as one cell per half hour, colored by the
// category occupying it, with an hour ruler underneath.
func RenderDayStrip(blocks []domain.ActivityBlock) string {
	var cells [stripSlots]string
	for i := range cells {
		cells[i] = Dim(freeSlot)
	}
	for _, blk := range blocks {
		style := CategoryStyle(blk.Category)
		for m := blk.StartMin; m < blk.EndMin() && m < domain.MinutesPerDay; m += domain.SlotMinutes {
			cells[m/domain.SlotMinutes] = style.Render(filledBlock)
		}
	}

	var ruler strings.Builder
	for h := 0; h < 24; h += 6 {
		label := strconv.Itoa(h)
		ruler.WriteString(label + strings.Repeat(" ", 12-len(label)))
	}
	return strings.Join(cells[:], "") + "\n" + Dim(ruler.String()+"24")
}

// FormatCategories renders the block palette with each category's defaults.
func FormatCategories() string {
	cols := []Column{
		{Title: "ID"},
		{Title: "NAME"},
		{Title: "DEFAULT TITLE"},
		{Title: "LENGTH", AlignRight: true},
	}
	var rows [][]string
	for _, spec := range domain.Categories() {
		rows = append(rows, []string{
			string(spec.ID),
			CategoryBadge(spec.ID),
			spec.DefaultTitle,
			FormatMinutes(spec.DefaultDuration),
		})
	}
	return RenderBox("Categories", RenderColumns(cols, rows))
}

// FormatMonth renders a Sunday-first month grid. Days with planned
// activities are green and marked with a dot; today is highlighted.
func FormatMonth(grid calendar.MonthGrid) string {
	var b strings.Builder
	for _, wd := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		b.WriteString(StyleHeader.Render(wd.String()[:2]) + "  ")
	}
	b.WriteString("\n")

	var planned int
	for _, week := range grid.Weeks {
		for _, cell := range week {
			b.WriteString(monthCell(cell) + " ")
			if cell.HasActivities {
				planned++
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if planned == 0 {
		b.WriteString(Dim("No planned days this month."))
	} else {
		b.WriteString(StyleGreen.Render("•") + Dim(fmt.Sprintf(" %d planned day(s)", planned)))
	}
	return RenderBox(grid.Title(), b.String())
}

func monthCell(c calendar.Cell) string {
	if c.Day == 0 {
		return "   "
	}
	day := fmt.Sprintf("%2d", c.Day)
	marker := " "
	switch {
	case c.IsToday && c.HasActivities:
		day, marker = StyleHeader.Render(day), StyleGreen.Render("•")
	case c.IsToday:
		day = StyleHeader.Render(day)
	case c.HasActivities:
		day, marker = StyleGreen.Render(day), StyleGreen.Render("•")
	default:
		day = StyleFg.Render(day)
	}
	return day + marker
}
