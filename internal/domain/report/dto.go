package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// DAILY SUMMARY
// ========================================

type DailySummary struct {
	Date      time.Time
	Holiday   bool
	Filled    []employee.Employee
	NotFilled []employee.Employee
	Draft     []employee.Employee
	Leave     []employee.Employee
}

// IsEmpty reports whether every section is empty.
func (s DailySummary) IsEmpty() bool {
	return len(s.Filled) == 0 && len(s.NotFilled) == 0 && len(s.Draft) == 0 && len(s.Leave) == 0
}

// Outstanding lists employees who neither submitted nor are on leave for a date.
type Outstanding struct {
	Date      time.Time
	Holiday   bool
	Employees []employee.Employee
}

// ========================================
// WEEKLY HOURS
// ========================================

type EmployeeHours struct {
	Employee employee.Employee
	Hours    decimal.Decimal
}

type WeeklyHours struct {
	WeekStart time.Time
	WeekEnd   time.Time
	// HasData is false when no submitted record touches the week at all.
	HasData   bool
	Employees []EmployeeHours
}

type EmployeeWeeklyDetail struct {
	Employee    employee.Employee
	WeekStart   time.Time
	WeekEnd     time.Time
	HasRecords  bool
	TotalHours  decimal.Decimal
	PendingDays []time.Time
}

// ========================================
// MISSING TIMESHEETS (TRAILING WINDOW)
// ========================================

type MissingSummary struct {
	EmployeeID   string
	EmployeeName string
	MissingDates []time.Time
	DraftDates   []time.Time
}

type MissingTimesheetReport struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Rows        []MissingSummary
}

// ========================================
// WEEKLY PENDING
// ========================================

type PendingSummary struct {
	EmployeeID   string
	EmployeeName string
	PendingDates []time.Time
}

type WeeklyPendingReport struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Rows      []PendingSummary
}

// ========================================
// EMPLOYEE MONTHLY TIMESHEET
// ========================================

type EmployeeTimesheetReportRequest struct {
	EmployeeID string `json:"employee"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *EmployeeTimesheetReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee id contains invalid characters",
		})
	}

	if r.Month == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	} else if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeTimesheetSummary struct {
	TotalHours  decimal.Decimal `json:"total_hours"`
	PendingDays int             `json:"pending_days"`
	Holidays    int             `json:"holidays"`
}

type EmployeeTimesheetReport struct {
	EmployeeID   string                   `json:"employee_id"`
	EmployeeName string                   `json:"employee_name"`
	PeriodStart  string                   `json:"period_start"`
	PeriodEnd    string                   `json:"period_end"`
	GeneratedAt  string                   `json:"generated_at"`
	Rows         []Row                    `json:"rows"`
	Summary      EmployeeTimesheetSummary `json:"summary"`
}

// ========================================
// ARTIFACTS
// ========================================

// GenerateArtifactRequest is the optional body of an on-demand file request.
type GenerateArtifactRequest struct {
	// Date overrides "today" as YYYY-MM-DD.
	Date string `json:"date"`
	// Send also delivers the file to the configured chat.
	Send bool `json:"send"`
}

func (r *GenerateArtifactRequest) Validate() error {
	r.Date = strings.TrimSpace(r.Date)
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

// Artifact is a rendered file ready for persistence or delivery.
type Artifact struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
	Data        []byte `json:"-"`
}
