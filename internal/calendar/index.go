// Package calendar maps calendar days to their activity block lists and
// builds month grids for the day picker.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/tratlus/internal/domain"
)

// DateKey identifies a calendar day as YYYY-MM-DD.
type DateKey string

// KeyFor derives the key from t's own calendar fields, without converting
// time zones.
func KeyFor(t time.Time) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// ParseDateKey validates s and returns it as a key.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return KeyFor(t), nil
}

// Time returns midnight UTC of the key's day.
func (k DateKey) Time() (time.Time, error) {
	return time.Parse(time.DateOnly, string(k))
}

func (k DateKey) String() string { return string(k) }

// Index holds the block list of every day that has been touched.
type Index struct {
	days map[DateKey][]domain.ActivityBlock
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{days: make(map[DateKey][]domain.ActivityBlock)}
}

// Get returns a copy of the day's blocks, empty when the day is unknown.
func (x *Index) Get(key DateKey) []domain.ActivityBlock {
	return append([]domain.ActivityBlock{}, x.days[key]...)
}

// Set replaces the day's blocks. An empty list removes the day.
func (x *Index) Set(key DateKey, blocks []domain.ActivityBlock) {
	if len(blocks) == 0 {
		delete(x.days, key)
		return
	}
	x.days[key] = append([]domain.ActivityBlock(nil), blocks...)
}

// Delete forgets the day.
func (x *Index) Delete(key DateKey) {
	delete(x.days, key)
}

// HasActivities reports whether the day has at least one block.
func (x *Index) HasActivities(key DateKey) bool {
	return len(x.days[key]) > 0
}

// Keys returns every non-empty day in ascending order.
func (x *Index) Keys() []DateKey {
	keys := make([]DateKey, 0, len(x.days))
	for k := range x.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
