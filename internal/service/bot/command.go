package bot

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/bot"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
)

// Route maps a chat message onto a command. The fixed commands are tried first,
// then an exact case-insensitive employee id.
func Route(text string, roster []employee.Employee, today time.Time, rule calendar.MondayRule) bot.Command {
	normalized := strings.ToLower(strings.TrimSpace(text))
	monday, friday := calendar.BusinessWeekOf(today)

	switch normalized {
	case bot.CommandEmployee:
		return bot.Command{Kind: bot.KindListEmployees}
	case bot.CommandTimesheet:
		return bot.Command{Kind: bot.KindDailySummary, Date: calendar.PreviousBusinessDay(today, rule)}
	case bot.CommandWeeklyHours:
		return bot.Command{Kind: bot.KindWeeklyHours, WeekStart: monday, WeekEnd: friday}
	case bot.CommandHelp:
		return bot.Command{Kind: bot.KindHelp}
	}

	if emp, ok := employee.FindByID(roster, normalized); ok {
		return bot.Command{
			Kind:       bot.KindEmployeeWeeklyDetail,
			EmployeeID: emp.ID,
			WeekStart:  monday,
			WeekEnd:    friday,
		}
	}
	return bot.Command{Kind: bot.KindUnknown}
}
