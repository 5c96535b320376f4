package report

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Chat messages use Telegram's legacy Markdown.
const (
	DailyReminderText    = "*Please Fill Your Timesheet at the End of the Day*"
	FallbackText         = "Type /help to see available commands."
	ErrorText            = "Something went wrong while preparing the report. Please try again later."
	NoEmployeesText      = "No active employees found."
	EmployeeNotFoundText = "Employee not found. Please check the Employee ID and try again."

	HelpText = "*Available Commands:*\n" +
		"/employee - List all active employees\n" +
		"/timesheet - Show yesterday's timesheet summary\n" +
		"/weeklyhours - Show weekly worked hours by employee\n" +
		"/help - Show this help message\n"

	holidayBanner = "            *Today is a Holiday*\n\n"
	allClear      = "*Everyone has filled their timesheet!*"
	leaveSuffix   = " (Leave Request Raised)"
)

// FormatHours renders hours with one decimal. Rounding only ever happens here.
func FormatHours(h decimal.Decimal) string {
	return h.StringFixed(1)
}

// RenderDailySummary renders the daily summary. The Filled section is always
// present; the other sections only when they have names.
func RenderDailySummary(s report.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Timesheet Summary for %s:*\n\n", calendar.Format(s.Date))
	if s.Holiday {
		b.WriteString(holidayBanner)
	}

	b.WriteString("*Filled*\n" + strings.Join(names(s.Filled, ""), "\n") + "\n\n")
	writeSection(&b, "Not Filled", names(s.NotFilled, ""))
	writeSection(&b, "Draft", names(s.Draft, ""))
	writeSection(&b, "Leave", names(s.Leave, leaveSuffix))

	if s.IsEmpty() {
		b.WriteString(allClear)
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("*" + title + "*\n" + strings.Join(lines, "\n") + "\n\n")
}

func names(emps []employee.Employee, suffix string) []string {
	out := make([]string, 0, len(emps))
	for _, e := range emps {
		out = append(out, e.Name+suffix)
	}
	return out
}

// RenderEmployeeList renders the active roster with identifiers.
func RenderEmployeeList(roster []employee.Employee) string {
	if len(roster) == 0 {
		return NoEmployeesText
	}
	lines := make([]string, 0, len(roster))
	for _, e := range roster {
		lines = append(lines, fmt.Sprintf("%s (`%s`)", e.Name, e.ID))
	}
	return strings.Join(lines, "\n")
}

// RenderWeeklyHours renders submitted hours per employee for a business week.
func RenderWeeklyHours(w report.WeeklyHours) string {
	start, end := calendar.Format(w.WeekStart), calendar.Format(w.WeekEnd)
	if !w.HasData {
		return fmt.Sprintf("No timesheet data found for this week (%s → %s).", start, end)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Weekly Hours* (%s → %s)\n", start, end)
	for _, eh := range w.Employees {
		fmt.Fprintf(&b, "%s — %s hrs\n", eh.Employee.Name, FormatHours(eh.Hours))
	}
	return b.String()
}

// RenderEmployeeWeeklyDetail renders one employee's week.
func RenderEmployeeWeeklyDetail(d report.EmployeeWeeklyDetail) string {
	if !d.HasRecords {
		return fmt.Sprintf("No timesheet records found for %s (%s) this week.", d.Employee.Name, d.Employee.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Weekly Timesheet for %s -%s*\n", d.Employee.Name, d.Employee.ID)
	fmt.Fprintf(&b, "*Total Hours Worked*: %s hrs\n", FormatHours(d.TotalHours))
	if len(d.PendingDays) == 0 {
		b.WriteString("\n*All timesheets filled this week!*")
		return b.String()
	}

	days := make([]string, 0, len(d.PendingDays))
	for _, day := range d.PendingDays {
		days = append(days, calendar.Format(day))
	}
	b.WriteString("\n*Pending Days:*\n" + strings.Join(days, "\n"))
	return b.String()
}

// RenderPendingReminder renders the bulleted list of employees still to fill.
func RenderPendingReminder(o report.Outstanding) string {
	bullets := make([]string, 0, len(o.Employees))
	for _, e := range o.Employees {
		bullets = append(bullets, "• "+e.Name)
	}
	return fmt.Sprintf("*Timesheet Reminder for %s*\n\n"+
		"The following employees have *not filled* their timesheet yet:\n\n"+
		"%s\n\n", calendar.Format(o.Date), strings.Join(bullets, "\n"))
}

// WeeklyPendingCaption is the document caption for the weekly pending CSV.
func WeeklyPendingCaption(r report.WeeklyPendingReport) string {
	return fmt.Sprintf("Pending Timesheets (%s → %s)", calendar.Format(r.WeekStart), calendar.Format(r.WeekEnd))
}
