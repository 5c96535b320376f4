package leave

import "time"

// LeaveRecord is an approved or requested absence over an inclusive date range.
type LeaveRecord struct {
	ID         string
	EmployeeID string
	FromDate   time.Time
	ToDate     time.Time
}

// Covers reports whether date falls inside [FromDate, ToDate].
func (l LeaveRecord) Covers(date time.Time) bool {
	return !date.Before(l.FromDate) && !date.After(l.ToDate)
}
