package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/spf13/pflag"
)

// clockValue is a pflag.Value for a time of day, accepting "14:30" or
// "2:30 PM". It stores minutes since midnight.
type clockValue struct {
	minutes *int
}

var _ pflag.Value = clockValue{}

func newClockValue(p *int, def int) clockValue {
	*p = def
	return clockValue{minutes: p}
}

func (v clockValue) Set(s string) error {
	m, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*v.minutes = m
	return nil
}

func (v clockValue) String() string {
	if v.minutes == nil {
		return ""
	}
	return domain.FormatClock(*v.minutes)
}

func (clockValue) Type() string { return "time" }

// dateValue is a pflag.Value for a calendar day. Besides YYYY-MM-DD it
// accepts "today", "tomorrow" and "yesterday".
type dateValue struct {
	key *calendar.DateKey
	now func() time.Time
}

var _ pflag.Value = dateValue{}

func (v dateValue) Set(s string) error {
	key, err := parseDay(s, v.now())
	if err != nil {
		return err
	}
	*v.key = key
	return nil
}

func (v dateValue) String() string {
	if v.key == nil {
		return ""
	}
	return v.key.String()
}

func (dateValue) Type() string { return "date" }

func parseDay(s string, now time.Time) (calendar.DateKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return calendar.KeyFor(now), nil
	case "tomorrow":
		return calendar.KeyFor(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return calendar.KeyFor(now.AddDate(0, 0, -1)), nil
	}
	return calendar.ParseDateKey(strings.TrimSpace(s))
}

// monthValue is a pflag.Value for a YYYY-MM month.
type monthValue struct {
	year  *int
	month *time.Month
}

var _ pflag.Value = monthValue{}

func (v monthValue) Set(s string) error {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	*v.year, *v.month = t.Year(), t.Month()
	return nil
}

func (v monthValue) String() string {
	if v.year == nil || *v.year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", *v.year, int(*v.month))
}

func (monthValue) Type() string { return "month" }

// activityTypeValue is a pflag.Value restricted to itinerary activity types.
type activityTypeValue struct {
	typ *domain.ActivityType
}

var _ pflag.Value = activityTypeValue{}

func (v activityTypeValue) Set(s string) error {
	t := domain.ActivityType(strings.ToLower(strings.TrimSpace(s)))
	if !domain.ValidActivityTypes[t] {
		return fmt.Errorf("unknown activity type %q (want food, attraction, activity, transportation or accommodation)", s)
	}
	*v.typ = t
	return nil
}

func (v activityTypeValue) String() string {
	if v.typ == nil {
		return ""
	}
	return string(*v.typ)
}

func (activityTypeValue) Type() string { return "type" }

// priorityValue is a pflag.Value for the transport priority.
type priorityValue struct {
	p *domain.TransportPriority
}

var _ pflag.Value = priorityValue{}

func (v priorityValue) Set(s string) error {
	p := domain.TransportPriority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case domain.PrioritySpeed, domain.PriorityCost, domain.PriorityComfort:
		*v.p = p
		return nil
	}
	return fmt.Errorf("unknown transport priority %q (want speed, cost or comfort)", s)
}

func (v priorityValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (priorityValue) Type() string { return "priority" }

// parsePosition converts a 1-based position argument into a 0-based index.
func parsePosition(what, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: want a number starting at 1", what, arg)
	}
	return n - 1, nil
}
