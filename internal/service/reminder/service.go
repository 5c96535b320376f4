package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
	reportsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/report"
	"github.com/google/uuid"
)

type dispatcher struct {
	reportService report.ReportService
	sender        telegram.Sender
	chatID        int64
}

// NewDispatcher sends every notification to the one configured chat.
func NewDispatcher(reportService report.ReportService, sender telegram.Sender, chatID int64) reminder.Dispatcher {
	return &dispatcher{
		reportService: reportService,
		sender:        sender,
		chatID:        chatID,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, trigger reminder.Trigger, today time.Time) reminder.Outcome {
	switch trigger {
	case reminder.TriggerDailyReminder:
		return d.DailyReminder(ctx, today)
	case reminder.TriggerPendingReminder:
		return d.PendingReminder(ctx, today)
	case reminder.TriggerWeeklyPending:
		return d.WeeklyPendingReport(ctx, today)
	default:
		return d.record(reminder.Outcome{
			Trigger: trigger,
			Date:    calendar.Day(today),
			Status:  reminder.StatusFailed,
			Err:     fmt.Errorf("%w: %q", reminder.ErrUnknownTrigger, trigger),
		})
	}
}

// DailyReminder broadcasts the static end-of-day reminder.
func (d *dispatcher) DailyReminder(ctx context.Context, today time.Time) reminder.Outcome {
	out := reminder.Outcome{Trigger: reminder.TriggerDailyReminder, Date: calendar.Day(today)}
	if err := d.sender.SendText(ctx, d.chatID, reportsvc.DailyReminderText); err != nil {
		out.Status, out.Err = reminder.StatusFailed, err
		return d.record(out)
	}
	out.Status = reminder.StatusSent
	return d.record(out)
}

// PendingReminder names everyone without a submitted timesheet or leave today.
// Holidays and a fully compliant roster send nothing.
func (d *dispatcher) PendingReminder(ctx context.Context, today time.Time) reminder.Outcome {
	out := reminder.Outcome{Trigger: reminder.TriggerPendingReminder, Date: calendar.Day(today)}

	outstanding, err := d.reportService.Outstanding(ctx, today)
	if err != nil {
		out.Status, out.Err = reminder.StatusFailed, err
		return d.record(out)
	}

	switch {
	case outstanding.Holiday:
		out.Status = reminder.StatusHoliday
	case len(outstanding.Employees) == 0:
		out.Status = reminder.StatusAllCompliant
	default:
		out.Recipients = len(outstanding.Employees)
		if err := d.sender.SendText(ctx, d.chatID, reportsvc.RenderPendingReminder(outstanding)); err != nil {
			out.Status, out.Err = reminder.StatusFailed, err
		} else {
			out.Status = reminder.StatusSent
		}
	}
	return d.record(out)
}

// WeeklyPendingReport sends the pending-days CSV for the current business week.
func (d *dispatcher) WeeklyPendingReport(ctx context.Context, today time.Time) reminder.Outcome {
	out := reminder.Outcome{Trigger: reminder.TriggerWeeklyPending, Date: calendar.Day(today)}

	pending, file, err := d.reportService.WeeklyPendingArtifact(ctx, today)
	if errors.Is(err, report.ErrNothingToGenerate) {
		out.Status = reminder.StatusNothingToGenerate
		return d.record(out)
	}
	if err != nil {
		out.Status, out.Err = reminder.StatusFailed, err
		return d.record(out)
	}

	out.FileName = file.FileName
	out.Recipients = len(pending.Rows)
	if err := d.sender.SendDocument(ctx, d.chatID, file.FileName, file.Data, reportsvc.WeeklyPendingCaption(pending)); err != nil {
		out.Status, out.Err = reminder.StatusFailed, err
		return d.record(out)
	}
	out.Status = reminder.StatusSent
	return d.record(out)
}

func (d *dispatcher) record(out reminder.Outcome) reminder.Outcome {
	attrs := []any{
		"invocation_id", uuid.NewString(),
		"trigger", out.Trigger,
		"date", calendar.Format(out.Date),
		"status", out.Status,
		"recipients", out.Recipients,
	}
	if out.FileName != "" {
		attrs = append(attrs, "file", out.FileName)
	}
	if out.Err != nil {
		slog.Error("Reminder: dispatch failed", append(attrs, "error", out.Err)...)
		return out
	}
	if out.Skipped() {
		slog.Info("Reminder: skipped", attrs...)
		return out
	}
	slog.Info("Reminder: dispatched", attrs...)
	return out
}
