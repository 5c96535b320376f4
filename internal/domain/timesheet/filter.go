package timesheet

import "time"

// Filter narrows a time record query. Zero values mean "no constraint".
type Filter struct {
	EmployeeID string

	// Overlaps keeps records whose coverage intersects [OverlapsFrom, OverlapsTo].
	OverlapsFrom *time.Time
	OverlapsTo   *time.Time

	// ExactStart keeps records starting on the given day.
	ExactStart *time.Time

	// States keeps records in any of the listed states. Empty means draft and submitted.
	States []State
}

// OverlapsRange builds a filter for records intersecting [from, to].
func OverlapsRange(from, to time.Time, states ...State) Filter {
	return Filter{OverlapsFrom: &from, OverlapsTo: &to, States: states}
}

// StartingOn builds a filter for records starting exactly on day.
func StartingOn(day time.Time, states ...State) Filter {
	return Filter{ExactStart: &day, States: states}
}

// EffectiveStates resolves the default state set. Cancelled records are only
// returned when asked for explicitly.
func (f Filter) EffectiveStates() []State {
	if len(f.States) == 0 {
		return []State{StateDraft, StateSubmitted}
	}
	return f.States
}
