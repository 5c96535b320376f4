package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/artifact"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

// TrailingDays is the width of the missing-timesheet window. The window ends
// the day before the report date.
const TrailingDays = 7

// MissingWindow returns the trailing window reported on for today.
func MissingWindow(today time.Time) (time.Time, time.Time) {
	return calendar.TrailingWindow(calendar.Day(today).AddDate(0, 0, -1), TrailingDays)
}

type reportServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	timesheetRepo   timesheet.TimeRecordRepository
	leaveRepo       leave.LeaveRepository
	holidayRepo     holiday.HolidayRepository
	artifactService artifact.ArtifactService
	clock           calendar.Clock
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	timesheetRepo timesheet.TimeRecordRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	artifactService artifact.ArtifactService,
	clock calendar.Clock,
) report.ReportService {
	if clock == nil {
		clock = calendar.SystemClock(time.UTC)
	}
	return &reportServiceImpl{
		employeeRepo:    employeeRepo,
		timesheetRepo:   timesheetRepo,
		leaveRepo:       leaveRepo,
		holidayRepo:     holidayRepo,
		artifactService: artifactService,
		clock:           clock,
	}
}

// loadRequest says which sources one report reads.
type loadRequest struct {
	from, to time.Time
	filter   timesheet.Filter
	// roster overrides the roster query when set.
	roster   []employee.Employee
	leave    bool
	holidays bool
}

// load fetches every source of one report concurrently and freezes them into a
// snapshot. Nothing is cached between calls.
func (s *reportServiceImpl) load(ctx context.Context, req loadRequest) (*snapshot, error) {
	var (
		roster   = req.roster
		records  []timesheet.TimeRecord
		leaves   []leave.LeaveRecord
		holidays calendar.DateSet
	)

	g, gctx := errgroup.WithContext(ctx)
	if roster == nil {
		g.Go(func() error {
			var err error
			roster, err = s.employeeRepo.ListActive(gctx)
			if err != nil {
				return fmt.Errorf("list active employees: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		records, err = s.timesheetRepo.List(gctx, req.filter)
		if err != nil {
			return fmt.Errorf("list time records: %w", err)
		}
		return nil
	})
	if req.leave {
		g.Go(func() error {
			var err error
			if req.from.Equal(req.to) {
				leaves, err = s.leaveRepo.ListCovering(gctx, req.from)
			} else {
				leaves, err = s.leaveRepo.ListOverlapping(gctx, req.from, req.to)
			}
			if err != nil {
				return fmt.Errorf("list leave records: %w", err)
			}
			return nil
		})
	}
	if req.holidays {
		g.Go(func() error {
			var err error
			holidays, err = s.holidayRepo.ListDates(gctx, req.from, req.to)
			if err != nil {
				return fmt.Errorf("list holidays: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newSnapshot(roster, records, leaves, holidays), nil
}

func (s *reportServiceImpl) DailySummary(ctx context.Context, date time.Time) (report.DailySummary, error) {
	day := calendar.Day(date)
	snap, err := s.load(ctx, loadRequest{
		from:     day,
		to:       day,
		filter:   timesheet.OverlapsRange(day, day),
		leave:    true,
		holidays: true,
	})
	if err != nil {
		return report.DailySummary{}, err
	}

	grouped := GroupByStatus(classifyRows(mustClassifier(PolicyDaily), snap, []time.Time{day}))
	return report.DailySummary{
		Date:      day,
		Holiday:   snap.holidays.Has(day),
		Filled:    grouped.Employees(report.StatusFilled),
		NotFilled: grouped.Employees(report.StatusPending),
		Draft:     grouped.Employees(report.StatusDraft),
		Leave:     grouped.Employees(report.StatusOnLeave),
	}, nil
}

func (s *reportServiceImpl) Outstanding(ctx context.Context, date time.Time) (report.Outstanding, error) {
	day := calendar.Day(date)
	snap, err := s.load(ctx, loadRequest{
		from:     day,
		to:       day,
		filter:   timesheet.OverlapsRange(day, day, timesheet.StateSubmitted),
		leave:    true,
		holidays: true,
	})
	if err != nil {
		return report.Outstanding{}, err
	}

	out := report.Outstanding{Date: day, Holiday: snap.holidays.Has(day)}
	for _, emp := range snap.roster {
		f := snap.facts(emp.ID, day)
		if !f.Submitted && !f.Leave {
			out.Employees = append(out.Employees, emp)
		}
	}
	return out, nil
}

func (s *reportServiceImpl) WeeklyHours(ctx context.Context, date time.Time) (report.WeeklyHours, error) {
	monday, friday := calendar.BusinessWeekOf(date)
	snap, err := s.load(ctx, loadRequest{
		from:   monday,
		to:     friday,
		filter: timesheet.OverlapsRange(monday, friday, timesheet.StateSubmitted),
	})
	if err != nil {
		return report.WeeklyHours{}, err
	}

	records := snap.allRecords()
	return report.WeeklyHours{
		WeekStart: monday,
		WeekEnd:   friday,
		HasData:   len(records) > 0,
		Employees: TotalHours(snap.roster, records),
	}, nil
}

func (s *reportServiceImpl) EmployeeWeeklyDetail(ctx context.Context, employeeID string, date time.Time) (report.EmployeeWeeklyDetail, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeWeeklyDetail{}, err
	}

	monday, friday := calendar.BusinessWeekOf(date)
	filter := timesheet.OverlapsRange(monday, friday, timesheet.StateSubmitted)
	filter.EmployeeID = emp.ID
	snap, err := s.load(ctx, loadRequest{
		from:     monday,
		to:       friday,
		filter:   filter,
		roster:   []employee.Employee{emp},
		holidays: true,
	})
	if err != nil {
		return report.EmployeeWeeklyDetail{}, err
	}

	records := snap.records[emp.ID]
	rows := classifyRows(mustClassifier(PolicyWeeklyPending), snap, calendar.Weekdays(monday, friday))
	hours := TotalHours(snap.roster, records)

	detail := report.EmployeeWeeklyDetail{
		Employee:   emp,
		WeekStart:  monday,
		WeekEnd:    friday,
		HasRecords: len(records) > 0,
		TotalHours: hours[0].Hours,
	}
	for _, ed := range collectDates(snap.roster, rows, report.StatusPending) {
		detail.PendingDays = append(detail.PendingDays, ed.dates(report.StatusPending)...)
	}
	return detail, nil
}

func (s *reportServiceImpl) MissingTimesheets(ctx context.Context, date time.Time) (report.MissingTimesheetReport, error) {
	from, to := MissingWindow(date)
	snap, err := s.load(ctx, loadRequest{
		from:   from,
		to:     to,
		filter: timesheet.OverlapsRange(from, to),
	})
	if err != nil {
		return report.MissingTimesheetReport{}, err
	}

	rows := classifyRows(mustClassifier(PolicyTrailing), snap, calendar.Range(from, to))
	out := report.MissingTimesheetReport{WindowStart: from, WindowEnd: to}
	for _, ed := range collectDates(snap.roster, rows, report.StatusPending, report.StatusDraft) {
		missing, drafts := ed.dates(report.StatusPending), ed.dates(report.StatusDraft)
		if len(missing) == 0 && len(drafts) == 0 {
			continue
		}
		out.Rows = append(out.Rows, report.MissingSummary{
			EmployeeID:   ed.employee.ID,
			EmployeeName: ed.employee.Name,
			MissingDates: missing,
			DraftDates:   drafts,
		})
	}
	return out, nil
}

func (s *reportServiceImpl) WeeklyPending(ctx context.Context, date time.Time) (report.WeeklyPendingReport, error) {
	monday, friday := calendar.BusinessWeekOf(date)
	snap, err := s.load(ctx, loadRequest{
		from:     monday,
		to:       friday,
		filter:   timesheet.OverlapsRange(monday, friday, timesheet.StateSubmitted),
		holidays: true,
	})
	if err != nil {
		return report.WeeklyPendingReport{}, err
	}

	rows := classifyRows(mustClassifier(PolicyWeeklyPending), snap, calendar.Weekdays(monday, friday))
	out := report.WeeklyPendingReport{WeekStart: monday, WeekEnd: friday}
	for _, ed := range collectDates(snap.roster, rows, report.StatusPending) {
		pending := ed.dates(report.StatusPending)
		if len(pending) == 0 {
			continue
		}
		out.Rows = append(out.Rows, report.PendingSummary{
			EmployeeID:   ed.employee.ID,
			EmployeeName: ed.employee.Name,
			PendingDates: pending,
		})
	}
	return out, nil
}

func (s *reportServiceImpl) EmployeeTimesheet(ctx context.Context, req report.EmployeeTimesheetReportRequest) (report.EmployeeTimesheetReport, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeTimesheetReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.EmployeeTimesheetReport{}, err
	}

	first, last := calendar.MonthBounds(req.Year, time.Month(req.Month))
	filter := timesheet.OverlapsRange(first, last, timesheet.StateSubmitted)
	filter.EmployeeID = emp.ID
	snap, err := s.load(ctx, loadRequest{
		from:     first,
		to:       last,
		filter:   filter,
		roster:   []employee.Employee{emp},
		holidays: true,
	})
	if err != nil {
		return report.EmployeeTimesheetReport{}, err
	}

	rows := classifyRows(mustClassifier(PolicyMonthly), snap, calendar.Range(first, last))
	return report.EmployeeTimesheetReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		PeriodStart:  calendar.Format(first),
		PeriodEnd:    calendar.Format(last),
		GeneratedAt:  s.clock().Format(time.RFC3339),
		Rows:         rows,
		Summary: report.EmployeeTimesheetSummary{
			TotalHours:  sumHours(rows, report.StatusFilled),
			PendingDays: countStatus(rows, report.StatusPending),
			Holidays:    countStatus(rows, report.StatusHoliday),
		},
	}, nil
}

func (s *reportServiceImpl) MissingTimesheetArtifact(ctx context.Context, date time.Time) (report.Artifact, error) {
	missing, err := s.MissingTimesheets(ctx, date)
	if err != nil {
		return report.Artifact{}, err
	}

	data, err := RenderMissingSpreadsheet(missing)
	if err != nil {
		return report.Artifact{}, err
	}

	name := MissingTimesheetFileName(missing.WindowStart, calendar.Day(date))
	stored, err := s.artifactService.Save(ctx, name, ContentTypeXLSX, data, artifact.VisibilityPublic)
	if err != nil {
		return report.Artifact{}, err
	}

	slog.Info("Report: missing timesheet spreadsheet generated", "file", name, "employees", len(missing.Rows))
	return report.Artifact{FileName: name, ContentType: ContentTypeXLSX, URL: stored.URL, Data: data}, nil
}

func (s *reportServiceImpl) WeeklyPendingArtifact(ctx context.Context, date time.Time) (report.WeeklyPendingReport, report.Artifact, error) {
	pending, err := s.WeeklyPending(ctx, date)
	if err != nil {
		return report.WeeklyPendingReport{}, report.Artifact{}, err
	}

	data, err := RenderPendingCSV(pending)
	if err != nil {
		return pending, report.Artifact{}, err
	}

	name := PendingCSVFileName(pending.WeekStart)
	if _, err := s.artifactService.Save(ctx, name, ContentTypeCSV, data, artifact.VisibilityPrivate); err != nil {
		return pending, report.Artifact{}, err
	}

	slog.Info("Report: weekly pending csv generated", "file", name, "employees", len(pending.Rows))
	return pending, report.Artifact{FileName: name, ContentType: ContentTypeCSV, Data: data}, nil
}
