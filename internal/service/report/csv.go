package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
)

const ContentTypeCSV = "text/csv"

var pendingColumns = []string{"Employee ID", "Employee Name", "Pending Dates"}

// PendingCSVFileName names the weekly CSV by week-of-year, Monday first, and year.
func PendingCSVFileName(weekStart time.Time) string {
	return fmt.Sprintf("Pending_Timesheets_%02d_%d.csv", mondayWeekNumber(weekStart), weekStart.Year())
}

// mondayWeekNumber counts weeks from the first Monday of the year; days before
// it are week 0.
func mondayWeekNumber(t time.Time) int {
	yday := t.YearDay() - 1
	wd := (int(t.Weekday()) + 6) % 7
	return (yday + 7 - wd) / 7
}

// RenderPendingCSV writes one row per employee with at least one pending date.
func RenderPendingCSV(r report.WeeklyPendingReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(pendingColumns); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportRenderFailed, err)
	}

	written := 0
	for _, row := range r.Rows {
		if len(row.PendingDates) == 0 {
			continue
		}
		if err := w.Write([]string{row.EmployeeID, row.EmployeeName, joinDates(row.PendingDates)}); err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrReportRenderFailed, err)
		}
		written++
	}
	if written == 0 {
		return nil, report.ErrNothingToGenerate
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportRenderFailed, err)
	}
	return buf.Bytes(), nil
}
