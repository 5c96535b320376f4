package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date layout used across reports and queries.
const DateLayout = "2006-01-02"

// MondayRule selects how PreviousBusinessDay treats a result that lands on Monday.
type MondayRule string

const (
	// MondayRuleNone keeps a Monday result as is.
	MondayRuleNone MondayRule = "none"
	// MondayRuleAdjust moves a Monday result back to the prior Friday.
	MondayRuleAdjust MondayRule = "adjust"
)

// ParseMondayRule converts a configuration value into a MondayRule.
func ParseMondayRule(s string) (MondayRule, error) {
	switch MondayRule(strings.ToLower(strings.TrimSpace(s))) {
	case MondayRuleNone:
		return MondayRuleNone, nil
	case MondayRuleAdjust, "":
		return MondayRuleAdjust, nil
	default:
		return "", fmt.Errorf("unknown monday rule %q", s)
	}
}

// Day normalises t to midnight UTC of its calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a normalised day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalised day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Format renders a day as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	return ISOWeekday(t) <= 5
}

// BusinessWeekOf returns Monday and Friday of the ISO week containing t.
func BusinessWeekOf(t time.Time) (time.Time, time.Time) {
	d := Day(t)
	monday := d.AddDate(0, 0, -(ISOWeekday(d) - 1))
	return monday, monday.AddDate(0, 0, 4)
}

// PreviousBusinessDay steps back one day and then off the weekend onto Friday.
// With MondayRuleAdjust a Monday result is moved back to the prior Friday as well.
func PreviousBusinessDay(t time.Time, rule MondayRule) time.Time {
	d := Day(t).AddDate(0, 0, -1)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, -1)
	case time.Sunday:
		d = d.AddDate(0, 0, -2)
	case time.Monday:
		if rule == MondayRuleAdjust {
			d = d.AddDate(0, 0, -3)
		}
	}
	return d
}

// TrailingWindow returns the inclusive range [t-days+1, t].
func TrailingWindow(t time.Time, days int) (time.Time, time.Time) {
	end := Day(t)
	if days < 1 {
		days = 1
	}
	return end.AddDate(0, 0, -(days - 1)), end
}

// MonthBounds returns the first and last day of a month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := Date(year, month, 1)
	return first, first.AddDate(0, 1, -1)
}

// Range lists every day in [from, to]. An inverted range yields nil.
func Range(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weekdays lists the Monday-Friday days in [from, to].
func Weekdays(from, to time.Time) []time.Time {
	var days []time.Time
	for _, d := range Range(from, to) {
		if IsWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

// DateSet is a set of calendar days.
type DateSet map[string]struct{}

// NewDateSet builds a set from the given days.
func NewDateSet(days ...time.Time) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(t time.Time) {
	s[Format(Day(t))] = struct{}{}
}

func (s DateSet) Has(t time.Time) bool {
	_, ok := s[Format(Day(t))]
	return ok
}

// Clock returns the current instant. Services take a Clock so tests can pin "today".
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Today returns the normalised current day.
func (c Clock) Today() time.Time {
	return Day(c())
}
