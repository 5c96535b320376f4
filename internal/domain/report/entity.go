package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived classification of one employee-day. It is never stored.
type Status string

const (
	StatusHoliday Status = "Holiday"
	StatusFilled  Status = "Filled"
	StatusDraft   Status = "Draft"
	StatusOnLeave Status = "OnLeave"
	StatusPending Status = "Pending"
)

// Row is one classified (date, employee) pair.
type Row struct {
	Date         time.Time       `json:"date"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Status       Status          `json:"status"`
	Hours        decimal.Decimal `json:"hours"`
	Task         string          `json:"task,omitempty"`
	Activity     string          `json:"activity,omitempty"`
}
