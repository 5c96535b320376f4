package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// State mirrors the document status of a timesheet.
type State string

const (
	StateDraft     State = "draft"
	StateSubmitted State = "submitted"
	StateCancelled State = "cancelled"
)

// DocStatus maps a state to the numeric docstatus stored alongside timesheets.
func (s State) DocStatus() int {
	switch s {
	case StateSubmitted:
		return 1
	case StateCancelled:
		return 2
	default:
		return 0
	}
}

// StateFromDocStatus is the inverse of DocStatus.
func StateFromDocStatus(docStatus int) (State, error) {
	switch docStatus {
	case 0:
		return StateDraft, nil
	case 1:
		return StateSubmitted, nil
	case 2:
		return StateCancelled, nil
	default:
		return "", fmt.Errorf("unknown docstatus %d", docStatus)
	}
}

type TimeRecord struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	State      State
	TotalHours decimal.Decimal
	Task       string
	Activity   string
}

// Covers reports whether date falls inside [StartDate, EndDate].
func (r TimeRecord) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Overlaps reports whether the record intersects [from, to].
func (r TimeRecord) Overlaps(from, to time.Time) bool {
	return !r.EndDate.Before(from) && !r.StartDate.After(to)
}
