package report

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// snapshot is the read set of one report invocation. It is built once per call
// and never shared.
type snapshot struct {
	roster   []employee.Employee
	records  map[string][]timesheet.TimeRecord
	leaves   map[string][]leave.LeaveRecord
	holidays calendar.DateSet
}

func newSnapshot(roster []employee.Employee, records []timesheet.TimeRecord, leaves []leave.LeaveRecord, holidays calendar.DateSet) *snapshot {
	s := &snapshot{
		roster:   roster,
		records:  make(map[string][]timesheet.TimeRecord),
		leaves:   make(map[string][]leave.LeaveRecord),
		holidays: holidays,
	}
	if s.holidays == nil {
		s.holidays = calendar.NewDateSet()
	}
	for _, r := range records {
		if r.State == timesheet.StateCancelled {
			continue
		}
		s.records[r.EmployeeID] = append(s.records[r.EmployeeID], r)
	}
	for _, l := range leaves {
		s.leaves[l.EmployeeID] = append(s.leaves[l.EmployeeID], l)
	}
	return s
}

func (s *snapshot) facts(employeeID string, date time.Time) DayFacts {
	day := DayFacts{Date: date, Holiday: s.holidays.Has(date)}
	for _, r := range s.records[employeeID] {
		if !r.Covers(date) {
			continue
		}
		switch r.State {
		case timesheet.StateSubmitted:
			day.Submitted = true
		case timesheet.StateDraft:
			day.Draft = true
		}
	}
	for _, l := range s.leaves[employeeID] {
		if l.Covers(date) {
			day.Leave = true
			break
		}
	}
	return day
}

// submittedOn returns the task/activity of the first submitted record covering
// date. A record's hours land only on its start date so that summing rows
// counts each record once.
func (s *snapshot) submittedOn(employeeID string, date time.Time) (decimal.Decimal, string, string) {
	hours := decimal.Zero
	var task, activity string
	first := true
	for _, r := range s.records[employeeID] {
		if r.State != timesheet.StateSubmitted || !r.Covers(date) {
			continue
		}
		if calendar.Day(r.StartDate).Equal(calendar.Day(date)) {
			hours = hours.Add(r.TotalHours)
		}
		if first {
			task, activity = r.Task, r.Activity
			first = false
		}
	}
	return hours, task, activity
}

// allRecords flattens the non-cancelled records back into one list.
func (s *snapshot) allRecords() []timesheet.TimeRecord {
	var out []timesheet.TimeRecord
	for _, recs := range s.records {
		out = append(out, recs...)
	}
	return out
}
