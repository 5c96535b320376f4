package bot

import "time"

// Kind is what an inbound chat message asks for.
type Kind string

const (
	KindListEmployees        Kind = "list_employees"
	KindDailySummary         Kind = "daily_summary"
	KindWeeklyHours          Kind = "weekly_hours"
	KindEmployeeWeeklyDetail Kind = "employee_weekly_detail"
	KindHelp                 Kind = "help"
	KindUnknown              Kind = "unknown"
)

// Fixed command words. Matching is case-insensitive on the trimmed text.
const (
	CommandEmployee    = "/employee"
	CommandTimesheet   = "/timesheet"
	CommandWeeklyHours = "/weeklyhours"
	CommandHelp        = "/help"
)

// Command is a routed chat message with the dates it targets resolved.
type Command struct {
	Kind       Kind
	EmployeeID string
	// Date is the report date for KindDailySummary.
	Date time.Time
	// WeekStart and WeekEnd bound the business week for the weekly kinds.
	WeekStart time.Time
	WeekEnd   time.Time
}

// Reply is the outcome of handling one message.
type Reply struct {
	ChatID int64
	Kind   Kind
	Text   string
	// Sent is false when no outbound message was attempted.
	Sent bool
	Err  error
}
