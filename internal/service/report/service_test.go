package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/artifact"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tuesday = calendar.Date(2025, 10, 7)
	now     = time.Date(2025, 10, 8, 10, 0, 0, 0, time.UTC)
)

// ===== DAILY SUMMARY =====

func TestReportService_DailySummary_NobodyFilled(t *testing.T) {
	f := newFixture(alice, bob)

	summary, err := f.service(now).DailySummary(context.Background(), tuesday)
	require.NoError(t, err)

	assert.Equal(t, []employee.Employee{alice, bob}, summary.NotFilled)
	assert.Empty(t, summary.Filled)
	assert.Empty(t, summary.Draft)
	assert.Empty(t, summary.Leave)

	text := RenderDailySummary(summary)
	assert.Contains(t, text, "*Not Filled*\nAlice\nBob\n\n")
	assert.Contains(t, text, "*Filled*\n\n\n")
	assert.NotContains(t, text, "*Draft*")
	assert.NotContains(t, text, "*Leave*")
}

func TestReportService_DailySummary_HolidayIsBannerOnly(t *testing.T) {
	f := newFixture(alice)
	f.holidays.dates = []time.Time{tuesday}

	summary, err := f.service(now).DailySummary(context.Background(), tuesday)
	require.NoError(t, err)

	assert.True(t, summary.Holiday)
	assert.Equal(t, []employee.Employee{alice}, summary.NotFilled)

	text := RenderDailySummary(summary)
	assert.Contains(t, text, "*Today is a Holiday*")
	assert.Contains(t, text, "*Not Filled*\nAlice")
}

func TestReportService_DailySummary_Sections(t *testing.T) {
	carol := employee.Employee{ID: "HR-EMP-0003", Name: "Carol", Active: true}
	dave := employee.Employee{ID: "HR-EMP-0004", Name: "Dave", Active: true}
	f := newFixture(alice, bob, carol, dave)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, tuesday, tuesday, timesheet.StateSubmitted, "8"),
		record(alice, tuesday, tuesday, timesheet.StateDraft, "1"),
		record(bob, tuesday.AddDate(0, 0, -1), tuesday, timesheet.StateDraft, "4"),
	}
	f.leaves.records = []leave.LeaveRecord{
		{EmployeeID: carol.ID, FromDate: tuesday, ToDate: tuesday.AddDate(0, 0, 2)},
		{EmployeeID: bob.ID, FromDate: tuesday, ToDate: tuesday},
	}

	summary, err := f.service(now).DailySummary(context.Background(), tuesday)
	require.NoError(t, err)

	assert.Equal(t, []employee.Employee{alice}, summary.Filled)
	assert.Equal(t, []employee.Employee{bob}, summary.Draft)
	assert.Equal(t, []employee.Employee{carol}, summary.Leave)
	assert.Equal(t, []employee.Employee{dave}, summary.NotFilled)
}

func TestReportService_DailySummary_EmptyRoster(t *testing.T) {
	f := newFixture()

	summary, err := f.service(now).DailySummary(context.Background(), tuesday)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
}

func TestReportService_DailySummary_ReadFailure(t *testing.T) {
	f := newFixture(alice)
	f.timesheets.err = errors.New("connection refused")

	_, err := f.service(now).DailySummary(context.Background(), tuesday)
	assert.ErrorContains(t, err, "list time records")
}

// ===== OUTSTANDING =====

func TestReportService_Outstanding(t *testing.T) {
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, tuesday, tuesday, timesheet.StateDraft, "8"),
	}
	f.leaves.records = []leave.LeaveRecord{{EmployeeID: bob.ID, FromDate: tuesday, ToDate: tuesday}}

	out, err := f.service(now).Outstanding(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{alice}, out.Employees, "a draft is not filled")
	assert.False(t, out.Holiday)
}

func TestReportService_Outstanding_AllCompliant(t *testing.T) {
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, tuesday, tuesday, timesheet.StateSubmitted, "8"),
	}
	f.leaves.records = []leave.LeaveRecord{{EmployeeID: bob.ID, FromDate: tuesday, ToDate: tuesday}}

	out, err := f.service(now).Outstanding(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Empty(t, out.Employees)
}

// ===== WEEKLY HOURS =====

func TestReportService_WeeklyHours(t *testing.T) {
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, tuesday, tuesday, timesheet.StateSubmitted, "8.0"),
		record(bob, tuesday, tuesday, timesheet.StateDraft, "5"),
	}

	weekly, err := f.service(now).WeeklyHours(context.Background(), tuesday)
	require.NoError(t, err)
	assert.True(t, weekly.HasData)
	assert.Equal(t, calendar.Date(2025, 10, 6), weekly.WeekStart)
	assert.Equal(t, calendar.Date(2025, 10, 10), weekly.WeekEnd)

	text := RenderWeeklyHours(weekly)
	assert.Contains(t, text, "Alice — 8.0 hrs\n")
	assert.Contains(t, text, "Bob — 0.0 hrs\n")
}

func TestReportService_WeeklyHours_NoData(t *testing.T) {
	f := newFixture(alice)

	weekly, err := f.service(now).WeeklyHours(context.Background(), tuesday)
	require.NoError(t, err)
	assert.False(t, weekly.HasData)
	assert.Equal(t, "No timesheet data found for this week (2025-10-06 → 2025-10-10).", RenderWeeklyHours(weekly))
}

// Weekly Filled hours equal the hours of every submitted record touching the week.
func TestReportService_WeeklyHours_MatchesSubmittedTotal(t *testing.T) {
	monday := calendar.Date(2025, 10, 6)
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, monday, monday.AddDate(0, 0, 1), timesheet.StateSubmitted, "15.5"),
		record(alice, monday.AddDate(0, 0, 3), monday.AddDate(0, 0, 3), timesheet.StateSubmitted, "6"),
		record(bob, monday.AddDate(0, 0, 4), monday.AddDate(0, 0, 4), timesheet.StateSubmitted, "8"),
		record(bob, monday.AddDate(0, 0, -7), monday.AddDate(0, 0, -7), timesheet.StateSubmitted, "100"),
	}

	weekly, err := f.service(now).WeeklyHours(context.Background(), monday)
	require.NoError(t, err)

	total := decimal.Zero
	for _, eh := range weekly.Employees {
		total = total.Add(eh.Hours)
	}
	assert.True(t, decimal.RequireFromString("29.5").Equal(total), total.String())
}

// ===== EMPLOYEE WEEKLY DETAIL =====

func TestReportService_EmployeeWeeklyDetail(t *testing.T) {
	monday := calendar.Date(2025, 10, 6)
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, monday, monday.AddDate(0, 0, 1), timesheet.StateSubmitted, "16"),
		record(alice, monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 2), timesheet.StateDraft, "8"),
	}
	f.holidays.dates = []time.Time{monday.AddDate(0, 0, 4)}

	detail, err := f.service(now).EmployeeWeeklyDetail(context.Background(), "hr-emp-0001", tuesday)
	require.NoError(t, err)
	assert.True(t, detail.HasRecords)
	assert.Equal(t, "16.0", FormatHours(detail.TotalHours))
	assert.Equal(t, []time.Time{monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 3)}, detail.PendingDays)
}

func TestReportService_EmployeeWeeklyDetail_UnknownEmployee(t *testing.T) {
	f := newFixture(alice)

	_, err := f.service(now).EmployeeWeeklyDetail(context.Background(), "HR-EMP-9999", tuesday)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== MISSING TIMESHEETS =====

func TestReportService_MissingTimesheets(t *testing.T) {
	today := calendar.Date(2025, 10, 8)
	f := newFixture(alice, bob)
	var records []timesheet.TimeRecord
	for _, d := range calendar.Range(today.AddDate(0, 0, -7), today.AddDate(0, 0, -1)) {
		records = append(records, record(bob, d, d, timesheet.StateSubmitted, "8"))
	}
	records = append(records,
		record(alice, calendar.Date(2025, 10, 1), calendar.Date(2025, 10, 3), timesheet.StateSubmitted, "24"),
		record(alice, calendar.Date(2025, 10, 3), calendar.Date(2025, 10, 3), timesheet.StateDraft, "2"),
	)
	f.timesheets.records = records

	missing, err := f.service(now).MissingTimesheets(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2025, 10, 1), missing.WindowStart)
	assert.Equal(t, calendar.Date(2025, 10, 7), missing.WindowEnd)

	require.Len(t, missing.Rows, 1)
	row := missing.Rows[0]
	assert.Equal(t, alice.ID, row.EmployeeID)
	assert.Equal(t, []time.Time{calendar.Date(2025, 10, 3)}, row.DraftDates)
	assert.Equal(t, calendar.Range(calendar.Date(2025, 10, 4), calendar.Date(2025, 10, 7)), row.MissingDates)
}

func TestReportService_MissingTimesheetArtifact(t *testing.T) {
	today := calendar.Date(2025, 10, 8)
	f := newFixture(alice)

	a, err := f.service(now).MissingTimesheetArtifact(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, "Missing_Timesheet_2025-10-01_to_2025-10-08.xlsx", a.FileName)
	assert.Equal(t, "http://files.test/public/Missing_Timesheet_2025-10-01_to_2025-10-08.xlsx", a.URL)

	require.Len(t, f.artifacts.saved, 1)
	assert.Equal(t, artifact.VisibilityPublic, f.artifacts.saved[0].visibility)
}

func TestReportService_MissingTimesheetArtifact_NothingToGenerate(t *testing.T) {
	f := newFixture()

	_, err := f.service(now).MissingTimesheetArtifact(context.Background(), now)
	assert.ErrorIs(t, err, report.ErrNothingToGenerate)
	assert.Empty(t, f.artifacts.saved)
}

// ===== WEEKLY PENDING =====

func TestReportService_WeeklyPendingArtifact(t *testing.T) {
	monday := calendar.Date(2025, 10, 6)
	f := newFixture(alice, bob)
	var records []timesheet.TimeRecord
	for _, d := range calendar.Range(monday, monday.AddDate(0, 0, 4)) {
		records = append(records, record(bob, d, d, timesheet.StateSubmitted, "8"))
	}
	records = append(records, record(alice, monday, monday, timesheet.StateSubmitted, "8"))
	f.timesheets.records = records
	f.holidays.dates = []time.Time{monday.AddDate(0, 0, 1)}

	pending, a, err := f.service(now).WeeklyPendingArtifact(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, pending.Rows, 1)
	assert.Equal(t, alice.ID, pending.Rows[0].EmployeeID)
	assert.Equal(t, []time.Time{monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 3), monday.AddDate(0, 0, 4)}, pending.Rows[0].PendingDates)

	assert.Equal(t, "Pending_Timesheets_40_2025.csv", a.FileName)
	assert.Empty(t, a.URL)
	require.Len(t, f.artifacts.saved, 1)
	assert.Equal(t, artifact.VisibilityPrivate, f.artifacts.saved[0].visibility)
	assert.Equal(t, a.Data, f.artifacts.saved[0].data)
}

func TestReportService_WeeklyPendingArtifact_ArtifactFailure(t *testing.T) {
	f := newFixture(alice)
	f.artifacts.err = artifact.ErrArtifact

	_, _, err := f.service(now).WeeklyPendingArtifact(context.Background(), now)
	assert.ErrorIs(t, err, artifact.ErrArtifact)
}

// ===== EMPLOYEE MONTHLY TIMESHEET =====

func TestReportService_EmployeeTimesheet(t *testing.T) {
	f := newFixture(alice, bob)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, calendar.Date(2025, 2, 3), calendar.Date(2025, 2, 3), timesheet.StateSubmitted, "8"),
		record(alice, calendar.Date(2025, 2, 4), calendar.Date(2025, 2, 4), timesheet.StateSubmitted, "6.5"),
		record(alice, calendar.Date(2025, 2, 5), calendar.Date(2025, 2, 5), timesheet.StateDraft, "8"),
		record(bob, calendar.Date(2025, 2, 5), calendar.Date(2025, 2, 5), timesheet.StateSubmitted, "8"),
	}
	f.holidays.dates = []time.Time{calendar.Date(2025, 2, 4), calendar.Date(2025, 2, 17)}

	got, err := f.service(now).EmployeeTimesheet(context.Background(), report.EmployeeTimesheetReportRequest{
		EmployeeID: alice.ID, Month: 2, Year: 2025,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-02-01", got.PeriodStart)
	assert.Equal(t, "2025-02-28", got.PeriodEnd)
	assert.Equal(t, "2025-10-08T10:00:00Z", got.GeneratedAt)
	require.Len(t, got.Rows, 28)

	assert.Equal(t, report.StatusFilled, got.Rows[2].Status)
	assert.Equal(t, "TASK-Alice", got.Rows[2].Task)
	assert.Equal(t, report.StatusHoliday, got.Rows[3].Status, "holiday wins over a submitted record")
	assert.Equal(t, report.StatusPending, got.Rows[4].Status)

	assert.Equal(t, "8", got.Summary.TotalHours.String())
	assert.Equal(t, 2, got.Summary.Holidays)
	assert.Equal(t, 25, got.Summary.PendingDays)
}

func TestReportService_EmployeeTimesheet_MultiDayRecordCountsOnce(t *testing.T) {
	f := newFixture(alice)
	f.timesheets.records = []timesheet.TimeRecord{
		record(alice, calendar.Date(2025, 2, 3), calendar.Date(2025, 2, 5), timesheet.StateSubmitted, "24"),
	}

	got, err := f.service(now).EmployeeTimesheet(context.Background(), report.EmployeeTimesheetReportRequest{
		EmployeeID: alice.ID, Month: 2, Year: 2025,
	})
	require.NoError(t, err)
	require.Len(t, got.Rows, 28)

	for i := 2; i <= 4; i++ {
		assert.Equal(t, report.StatusFilled, got.Rows[i].Status)
		assert.Equal(t, "TASK-Alice", got.Rows[i].Task)
	}
	assert.Equal(t, "24", got.Rows[2].Hours.String())
	assert.True(t, got.Rows[3].Hours.IsZero())
	assert.True(t, got.Rows[4].Hours.IsZero())
	assert.Equal(t, "24", got.Summary.TotalHours.String())

	weekly, err := f.service(now).WeeklyHours(context.Background(), calendar.Date(2025, 2, 4))
	require.NoError(t, err)
	require.Len(t, weekly.Employees, 1)
	assert.True(t, weekly.Employees[0].Hours.Equal(got.Summary.TotalHours))
}

func TestReportService_EmployeeTimesheet_MissingParams(t *testing.T) {
	f := newFixture(alice)

	_, err := f.service(now).EmployeeTimesheet(context.Background(), report.EmployeeTimesheetReportRequest{Month: 13})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}
