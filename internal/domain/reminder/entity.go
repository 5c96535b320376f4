package reminder

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// Trigger names a scheduled or manual notification job.
type Trigger string

const (
	TriggerDailyReminder   Trigger = "daily_reminder"
	TriggerPendingReminder Trigger = "pending_reminder"
	TriggerWeeklyPending   Trigger = "weekly_pending_report"
)

func (t Trigger) IsValid() bool {
	switch t {
	case TriggerDailyReminder, TriggerPendingReminder, TriggerWeeklyPending:
		return true
	}
	return false
}

// Status is the observable decision a dispatch made.
type Status string

const (
	StatusSent              Status = "sent"
	StatusHoliday           Status = "holiday"
	StatusAllCompliant      Status = "all_compliant"
	StatusNothingToGenerate Status = "nothing_to_generate"
	StatusFailed            Status = "failed"
)

// Outcome records what one dispatch did.
type Outcome struct {
	Trigger    Trigger   `json:"trigger"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	Recipients int       `json:"recipients"`
	FileName   string    `json:"file_name,omitempty"`
	Err        error     `json:"-"`
}

// Skipped reports whether the dispatch decided not to send.
func (o Outcome) Skipped() bool {
	return o.Status == StatusHoliday || o.Status == StatusAllCompliant || o.Status == StatusNothingToGenerate
}

// TriggerRequest is the body of a manual trigger call.
type TriggerRequest struct {
	// Date overrides "today" as YYYY-MM-DD. Empty means today.
	Date string `json:"date"`
}

func (r *TriggerRequest) Validate() error {
	r.Date = strings.TrimSpace(r.Date)
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

// ParsedDate returns the requested day, or the zero time when none was given.
// Call Validate first.
func (r TriggerRequest) ParsedDate() time.Time {
	date, _ := validator.IsValidDate(strings.TrimSpace(r.Date))
	return date
}

// Accepted is returned when a trigger has been queued.
type Accepted struct {
	TaskID  string  `json:"task_id"`
	Trigger Trigger `json:"trigger"`
	Date    string  `json:"date"`
}
