// Package itinerary implements edits on a generated travel itinerary. Every
// mutation keeps TotalEstimatedCost equal to the sum of activity costs and
// leaves the itinerary untouched when it returns an error.
package itinerary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// ErrIndexOutOfRange is returned for a day or activity index that does not exist.
var ErrIndexOutOfRange = errors.New("itinerary index out of range")

// Recompute resets the total to the literal sum of activity costs.
func Recompute(it *domain.TravelItinerary) {
	it.TotalEstimatedCost = it.SumCosts()
}

// DeleteActivity removes one activity and returns it.
func DeleteActivity(it *domain.TravelItinerary, dayIndex, activityIndex int) (domain.Activity, error) {
	day, err := dayAt(it, dayIndex)
	if err != nil {
		return domain.Activity{}, err
	}
	if err := checkActivity(day, activityIndex); err != nil {
		return domain.Activity{}, err
	}

	removed := day.Activities[activityIndex]
	acts := make([]domain.Activity, 0, len(day.Activities)-1)
	acts = append(acts, day.Activities[:activityIndex]...)
	acts = append(acts, day.Activities[activityIndex+1:]...)
	day.Activities = acts

	Recompute(it)
	return removed, nil
}

// ReplaceActivity swaps one activity for a regenerated one.
func ReplaceActivity(it *domain.TravelItinerary, dayIndex, activityIndex int, replacement domain.Activity) error {
	day, err := dayAt(it, dayIndex)
	if err != nil {
		return err
	}
	if err := checkActivity(day, activityIndex); err != nil {
		return err
	}
	day.Activities[activityIndex] = replacement
	Recompute(it)
	return nil
}

// ReorderActivity moves an activity within one day. toIndex may equal the
// number of activities to drop past the end. The moved activity takes the
// time of the slot it lands in and later activities that would now start
// before it ends are pushed forward in ReflowStepMin steps.
func ReorderActivity(it *domain.TravelItinerary, dayIndex, fromIndex, toIndex int) error {
	day, err := dayAt(it, dayIndex)
	if err != nil {
		return err
	}
	if err := checkActivity(day, fromIndex); err != nil {
		return err
	}
	n := len(day.Activities)
	if toIndex < 0 || toIndex > n {
		return fmt.Errorf("%w: target %d (day has %d activities)", ErrIndexOutOfRange, toIndex, n)
	}
	if fromIndex == toIndex {
		return nil
	}

	acts := append([]domain.Activity(nil), day.Activities...)

	var newMin int
	switch {
	case toIndex == 0:
		newMin = ActivityMinutes(acts[0].Time)
	case toIndex >= n:
		newMin = min(ActivityMinutes(acts[n-1].Time)+ReflowStepMin, LatestAppendMin)
	default:
		newMin = ActivityMinutes(acts[toIndex].Time)
	}

	moved := acts[fromIndex]
	acts = append(acts[:fromIndex], acts[fromIndex+1:]...)

	insertAt := toIndex
	if fromIndex < toIndex {
		insertAt--
	}
	moved = Retime(moved, FormatActivityTime(newMin))
	acts = append(acts[:insertAt], append([]domain.Activity{moved}, acts[insertAt:]...)...)

	prevEnd := newMin + ReflowStepMin
	for i := insertAt + 1; i < len(acts); i++ {
		at := ActivityMinutes(acts[i].Time)
		if at < prevEnd {
			acts[i] = Retime(acts[i], FormatActivityTime(prevEnd))
			prevEnd += ReflowStepMin
		} else {
			prevEnd = at + ReflowStepMin
		}
	}

	day.Activities = acts
	Recompute(it)
	return nil
}

// AddActivity inserts an activity and re-sorts the day by time. It returns
// the activity's final position.
func AddActivity(it *domain.TravelItinerary, dayIndex int, a domain.Activity) (int, error) {
	day, err := dayAt(it, dayIndex)
	if err != nil {
		return 0, err
	}

	type indexed struct {
		act   domain.Activity
		added bool
	}
	list := make([]indexed, 0, len(day.Activities)+1)
	for _, existing := range day.Activities {
		list = append(list, indexed{act: existing})
	}
	list = append(list, indexed{act: a, added: true})
	sort.SliceStable(list, func(i, j int) bool {
		return sortMinutes(list[i].act.Time) < sortMinutes(list[j].act.Time)
	})

	pos := 0
	acts := make([]domain.Activity, len(list))
	for i, e := range list {
		acts[i] = e.act
		if e.added {
			pos = i
		}
	}
	day.Activities = acts
	Recompute(it)
	return pos, nil
}

// Activity returns the activity at the given position.
func Activity(it *domain.TravelItinerary, dayIndex, activityIndex int) (domain.Activity, error) {
	day, err := dayAt(it, dayIndex)
	if err != nil {
		return domain.Activity{}, err
	}
	if err := checkActivity(day, activityIndex); err != nil {
		return domain.Activity{}, err
	}
	return day.Activities[activityIndex], nil
}

func dayAt(it *domain.TravelItinerary, dayIndex int) (*domain.ItineraryDay, error) {
	if it == nil {
		return nil, errors.New("no itinerary")
	}
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return nil, fmt.Errorf("%w: day %d (itinerary has %d days)", ErrIndexOutOfRange, dayIndex, len(it.Days))
	}
	return &it.Days[dayIndex], nil
}

func checkActivity(day *domain.ItineraryDay, activityIndex int) error {
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return fmt.Errorf("%w: activity %d (day %d has %d)", ErrIndexOutOfRange, activityIndex, day.DayNumber, len(day.Activities))
	}
	return nil
}
