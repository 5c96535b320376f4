package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/artifact"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var (
	alice = employee.Employee{ID: "HR-EMP-0001", Name: "Alice", Active: true}
	bob   = employee.Employee{ID: "HR-EMP-0002", Name: "Bob", Active: true}
)

type fakeEmployees struct {
	roster []employee.Employee
}

func (f *fakeEmployees) ListActive(context.Context) ([]employee.Employee, error) {
	return f.roster, nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := employee.FindByID(f.roster, id); ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// fakeTimesheets applies the filter the way the SQL adapter does.
type fakeTimesheets struct {
	records []timesheet.TimeRecord
	err     error
	calls   []timesheet.Filter
}

func (f *fakeTimesheets) List(_ context.Context, filter timesheet.Filter) ([]timesheet.TimeRecord, error) {
	f.calls = append(f.calls, filter)
	if f.err != nil {
		return nil, f.err
	}

	states := make(map[timesheet.State]bool)
	for _, s := range filter.EffectiveStates() {
		states[s] = true
	}

	var out []timesheet.TimeRecord
	for _, r := range f.records {
		if !states[r.State] {
			continue
		}
		if filter.EmployeeID != "" && filter.EmployeeID != r.EmployeeID {
			continue
		}
		if filter.OverlapsFrom != nil && !r.Overlaps(*filter.OverlapsFrom, *filter.OverlapsTo) {
			continue
		}
		if filter.ExactStart != nil && !r.StartDate.Equal(*filter.ExactStart) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeLeaves struct {
	records []leave.LeaveRecord
}

func (f *fakeLeaves) ListCovering(_ context.Context, date time.Time) ([]leave.LeaveRecord, error) {
	var out []leave.LeaveRecord
	for _, l := range f.records {
		if l.Covers(date) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaves) ListOverlapping(_ context.Context, from, to time.Time) ([]leave.LeaveRecord, error) {
	var out []leave.LeaveRecord
	for _, l := range f.records {
		if !l.ToDate.Before(from) && !l.FromDate.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeHolidays struct {
	dates []time.Time
}

func (f *fakeHolidays) ListDates(_ context.Context, from, to time.Time) (calendar.DateSet, error) {
	set := calendar.NewDateSet()
	for _, d := range f.dates {
		if !d.Before(from) && !d.After(to) {
			set.Add(d)
		}
	}
	return set, nil
}

type savedArtifact struct {
	name       string
	data       []byte
	visibility artifact.Visibility
}

type fakeArtifacts struct {
	saved []savedArtifact
	err   error
}

func (f *fakeArtifacts) Save(_ context.Context, name, _ string, data []byte, v artifact.Visibility) (artifact.Stored, error) {
	if f.err != nil {
		return artifact.Stored{}, f.err
	}
	f.saved = append(f.saved, savedArtifact{name: name, data: data, visibility: v})
	stored := artifact.Stored{Key: string(v) + "/" + name, FileName: name, Visibility: v}
	if v == artifact.VisibilityPublic {
		stored.URL = "http://files.test/" + stored.Key
	}
	return stored, nil
}

func (f *fakeArtifacts) Delete(context.Context, artifact.Stored) error { return nil }

func record(emp employee.Employee, start, end time.Time, state timesheet.State, hours string) timesheet.TimeRecord {
	return timesheet.TimeRecord{
		ID:         emp.ID + "/" + calendar.Format(start),
		EmployeeID: emp.ID,
		StartDate:  start,
		EndDate:    end,
		State:      state,
		TotalHours: decimal.RequireFromString(hours),
		Task:       "TASK-" + emp.Name,
		Activity:   "Development",
	}
}

type fixture struct {
	employees  *fakeEmployees
	timesheets *fakeTimesheets
	leaves     *fakeLeaves
	holidays   *fakeHolidays
	artifacts  *fakeArtifacts
}

func newFixture(roster ...employee.Employee) *fixture {
	return &fixture{
		employees:  &fakeEmployees{roster: roster},
		timesheets: &fakeTimesheets{},
		leaves:     &fakeLeaves{},
		holidays:   &fakeHolidays{},
		artifacts:  &fakeArtifacts{},
	}
}

func (f *fixture) service(now time.Time) *reportServiceImpl {
	return NewReportService(f.employees, f.timesheets, f.leaves, f.holidays, f.artifacts, calendar.FixedClock(now)).(*reportServiceImpl)
}
