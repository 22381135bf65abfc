package calendar

import (
	"strconv"
	"time"
)

// Cell is one day of a month grid.
type Cell struct {
	Key           DateKey
	Day           int
	HasActivities bool
	IsToday       bool
}

// MonthGrid is a Sunday-first grid of weeks. Cells outside the month are zero.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// Month lays out year/month. HasActivities is read from index and today
// marks the matching cell, if any.
func Month(year int, month time.Month, index *Index, today time.Time) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	rows := (offset + daysInMonth + 6) / 7
	todayKey := KeyFor(today)

	grid := MonthGrid{Year: year, Month: month, Weeks: make([][7]Cell, rows)}
	for day := 1; day <= daysInMonth; day++ {
		pos := offset + day - 1
		key := KeyFor(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		grid.Weeks[pos/7][pos%7] = Cell{
			Key:           key,
			Day:           day,
			HasActivities: index != nil && index.HasActivities(key),
			IsToday:       key == todayKey,
		}
	}
	return grid
}

// Title returns "October 2026".
func (g MonthGrid) Title() string {
	return g.Month.String() + " " + strconv.Itoa(g.Year)
}
