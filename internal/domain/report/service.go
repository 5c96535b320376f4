package report

import (
	"context"
	"time"
)

// ReportService classifies employee-days and aggregates them per report.
type ReportService interface {
	// DailySummary classifies every active employee for date under the daily policy.
	DailySummary(ctx context.Context, date time.Time) (DailySummary, error)

	// Outstanding lists employees without a submitted record or leave on date.
	Outstanding(ctx context.Context, date time.Time) (Outstanding, error)

	// WeeklyHours sums submitted hours per employee for the business week of date.
	WeeklyHours(ctx context.Context, date time.Time) (WeeklyHours, error)

	// EmployeeWeeklyDetail reports hours and pending weekdays for one employee.
	EmployeeWeeklyDetail(ctx context.Context, employeeID string, date time.Time) (EmployeeWeeklyDetail, error)

	// MissingTimesheets covers the trailing window ending on date.
	MissingTimesheets(ctx context.Context, date time.Time) (MissingTimesheetReport, error)

	// WeeklyPending lists pending weekdays per employee for the business week of date.
	WeeklyPending(ctx context.Context, date time.Time) (WeeklyPendingReport, error)

	// EmployeeTimesheet builds the monthly day-by-day report for one employee.
	EmployeeTimesheet(ctx context.Context, req EmployeeTimesheetReportRequest) (EmployeeTimesheetReport, error)

	// MissingTimesheetArtifact renders and stores the trailing-window spreadsheet.
	MissingTimesheetArtifact(ctx context.Context, date time.Time) (Artifact, error)

	// WeeklyPendingArtifact renders and stores the weekly pending CSV.
	WeeklyPendingArtifact(ctx context.Context, date time.Time) (WeeklyPendingReport, Artifact, error)
}
