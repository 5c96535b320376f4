package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/queue"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// Enqueuer accepts background tasks. *queue.Queue satisfies it.
type Enqueuer interface {
	Enqueue(task queue.Task) (string, error)
}

// ReminderJobs turns scheduled and manual triggers into queue tasks that run the
// dispatcher.
type ReminderJobs struct {
	queue      Enqueuer
	dispatcher reminder.Dispatcher
	schedule   config.ScheduleConfig
	loc        *time.Location
	clock      calendar.Clock
}

func NewReminderJobs(
	q Enqueuer,
	dispatcher reminder.Dispatcher,
	schedule config.ScheduleConfig,
	loc *time.Location,
	clock calendar.Clock,
) *ReminderJobs {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = calendar.SystemClock(loc)
	}
	return &ReminderJobs{
		queue:      q,
		dispatcher: dispatcher,
		schedule:   schedule,
		loc:        loc,
		clock:      clock,
	}
}

// RegisterJobs adds the three reminder triggers. Times were validated with the
// configuration, so a parse failure here is a programming error.
func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) error {
	daily, err := j.clockSchedule(j.schedule.DailyReminderTime, -1)
	if err != nil {
		return err
	}
	pending, err := j.clockSchedule(j.schedule.PendingReminderTime, -1)
	if err != nil {
		return err
	}
	weekly, err := j.clockSchedule(j.schedule.WeeklyReportTime, j.schedule.Weekday)
	if err != nil {
		return err
	}

	scheduler.AddJob(string(reminder.TriggerDailyReminder), daily, j.scheduled(reminder.TriggerDailyReminder))
	scheduler.AddJob(string(reminder.TriggerPendingReminder), pending, j.scheduled(reminder.TriggerPendingReminder))
	scheduler.AddJob(string(reminder.TriggerWeeklyPending), weekly, j.scheduled(reminder.TriggerWeeklyPending))
	return nil
}

func (j *ReminderJobs) clockSchedule(value string, weekday time.Weekday) (Schedule, error) {
	hour, minute, ok := validator.ParseClock(value)
	if !ok {
		return nil, fmt.Errorf("cron: invalid time of day %q", value)
	}
	if weekday < 0 {
		return DailyAt(hour, minute, j.loc), nil
	}
	return WeeklyAt(weekday, hour, minute, j.loc), nil
}

func (j *ReminderJobs) scheduled(trigger reminder.Trigger) func(ctx context.Context, at time.Time) error {
	return func(_ context.Context, at time.Time) error {
		_, err := j.Trigger(trigger, calendar.Day(at.In(j.loc)), false)
		// A repeated key means the period already ran; that is not a failure.
		if errors.Is(err, queue.ErrDuplicate) {
			return nil
		}
		return err
	}
}

// Trigger enqueues one dispatch for date. Scheduled triggers are keyed on
// trigger and date so each runs at most once per day; manual ones are not.
func (j *ReminderJobs) Trigger(trigger reminder.Trigger, date time.Time, manual bool) (reminder.Accepted, error) {
	if !trigger.IsValid() {
		return reminder.Accepted{}, fmt.Errorf("%w: %q", reminder.ErrUnknownTrigger, trigger)
	}
	if date.IsZero() {
		date = j.clock.Today()
	}
	date = calendar.Day(date)

	var key string
	if !manual {
		key = string(trigger) + ":" + calendar.Format(date)
	}

	id, err := j.queue.Enqueue(queue.Task{
		Key:  key,
		Name: string(trigger),
		Run: func(ctx context.Context) error {
			out := j.dispatcher.Dispatch(ctx, trigger, date)
			return out.Err
		},
	})
	if err != nil {
		return reminder.Accepted{}, fmt.Errorf("%w: %w", reminder.ErrNotQueued, err)
	}

	slog.Info("Cron: trigger queued", "trigger", trigger, "date", calendar.Format(date), "task_id", id, "manual", manual)
	return reminder.Accepted{TaskID: id, Trigger: trigger, Date: calendar.Format(date)}, nil
}
