package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/bot"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
	reportsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/report"
	"github.com/google/uuid"
)

type botService struct {
	employeeRepo  employee.EmployeeRepository
	reportService report.ReportService
	sender        telegram.Sender
	clock         calendar.Clock
	rule          calendar.MondayRule
}

func NewBotService(
	employeeRepo employee.EmployeeRepository,
	reportService report.ReportService,
	sender telegram.Sender,
	clock calendar.Clock,
	rule calendar.MondayRule,
) bot.BotService {
	if clock == nil {
		clock = calendar.SystemClock(time.UTC)
	}
	return &botService{
		employeeRepo:  employeeRepo,
		reportService: reportService,
		sender:        sender,
		clock:         clock,
		rule:          rule,
	}
}

func (s *botService) Route(text string, roster []employee.Employee, today time.Time) bot.Command {
	return Route(text, roster, today, s.rule)
}

func (s *botService) HandleMessage(ctx context.Context, chatID int64, text string) bot.Reply {
	log := slog.With("invocation_id", uuid.NewString(), "chat_id", chatID)
	reply := bot.Reply{ChatID: chatID, Kind: bot.KindUnknown}

	body, kind, err := s.compose(ctx, text)
	reply.Kind = kind
	if err != nil {
		log.Error("Bot: failed to prepare reply", "kind", kind, "error", err)
		body = reportsvc.ErrorText
		reply.Err = err
	}
	reply.Text = body

	if err := s.sender.SendText(ctx, chatID, body); err != nil {
		log.Error("Bot: failed to send reply", "kind", kind, "error", err)
		reply.Err = err
		return reply
	}

	reply.Sent = true
	log.Info("Bot: replied", "kind", kind)
	return reply
}

// compose routes text and renders the reply body.
func (s *botService) compose(ctx context.Context, text string) (string, bot.Kind, error) {
	roster, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return "", bot.KindUnknown, fmt.Errorf("list active employees: %w", err)
	}

	cmd := s.Route(text, roster, s.clock.Today())
	switch cmd.Kind {
	case bot.KindListEmployees:
		return reportsvc.RenderEmployeeList(roster), cmd.Kind, nil

	case bot.KindDailySummary:
		summary, err := s.reportService.DailySummary(ctx, cmd.Date)
		if err != nil {
			return "", cmd.Kind, err
		}
		return reportsvc.RenderDailySummary(summary), cmd.Kind, nil

	case bot.KindWeeklyHours:
		weekly, err := s.reportService.WeeklyHours(ctx, cmd.WeekStart)
		if err != nil {
			return "", cmd.Kind, err
		}
		return reportsvc.RenderWeeklyHours(weekly), cmd.Kind, nil

	case bot.KindEmployeeWeeklyDetail:
		detail, err := s.reportService.EmployeeWeeklyDetail(ctx, cmd.EmployeeID, cmd.WeekStart)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return reportsvc.EmployeeNotFoundText, cmd.Kind, nil
		}
		if err != nil {
			return "", cmd.Kind, err
		}
		return reportsvc.RenderEmployeeWeeklyDetail(detail), cmd.Kind, nil

	case bot.KindHelp:
		return reportsvc.HelpText, cmd.Kind, nil

	default:
		return reportsvc.FallbackText, bot.KindUnknown, nil
	}
}
