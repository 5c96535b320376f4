package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []queue.Task
	seen  map[string]bool
	err   error
}

func (f *fakeEnqueuer) Enqueue(task queue.Task) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if task.Key != "" && f.seen[task.Key] {
		return "", queue.ErrDuplicate
	}
	f.seen[task.Key] = task.Key != ""
	f.tasks = append(f.tasks, task)
	return "task-" + task.Name, nil
}

type fakeDispatcher struct {
	triggers []reminder.Trigger
	dates    []time.Time
	err      error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, trigger reminder.Trigger, today time.Time) reminder.Outcome {
	f.triggers = append(f.triggers, trigger)
	f.dates = append(f.dates, today)
	return reminder.Outcome{Trigger: trigger, Date: today, Status: reminder.StatusSent, Err: f.err}
}

func (f *fakeDispatcher) DailyReminder(ctx context.Context, today time.Time) reminder.Outcome {
	return f.Dispatch(ctx, reminder.TriggerDailyReminder, today)
}

func (f *fakeDispatcher) PendingReminder(ctx context.Context, today time.Time) reminder.Outcome {
	return f.Dispatch(ctx, reminder.TriggerPendingReminder, today)
}

func (f *fakeDispatcher) WeeklyPendingReport(ctx context.Context, today time.Time) reminder.Outcome {
	return f.Dispatch(ctx, reminder.TriggerWeeklyPending, today)
}

func newJobs(q Enqueuer, d reminder.Dispatcher) *ReminderJobs {
	schedule := config.ScheduleConfig{
		DailyReminderTime:   "17:30",
		PendingReminderTime: "19:00",
		WeeklyReportTime:    "18:00",
		Weekday:             time.Friday,
	}
	now := time.Date(2025, 10, 7, 19, 0, 0, 0, jakarta)
	return NewReminderJobs(q, d, schedule, jakarta, calendar.FixedClock(now))
}

func TestReminderJobs_Trigger_ScheduledIsKeyedPerDay(t *testing.T) {
	q := &fakeEnqueuer{}
	jobs := newJobs(q, &fakeDispatcher{})
	tuesday := calendar.Date(2025, 10, 7)

	accepted, err := jobs.Trigger(reminder.TriggerPendingReminder, tuesday, false)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-07", accepted.Date)
	assert.Equal(t, "task-pending_reminder", accepted.TaskID)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, "pending_reminder:2025-10-07", q.tasks[0].Key)

	_, err = jobs.Trigger(reminder.TriggerPendingReminder, tuesday, false)
	assert.ErrorIs(t, err, reminder.ErrNotQueued)
	assert.ErrorIs(t, err, queue.ErrDuplicate)
}

func TestReminderJobs_Trigger_ManualHasNoKey(t *testing.T) {
	q := &fakeEnqueuer{}
	jobs := newJobs(q, &fakeDispatcher{})

	for i := 0; i < 2; i++ {
		_, err := jobs.Trigger(reminder.TriggerDailyReminder, time.Time{}, true)
		require.NoError(t, err)
	}
	require.Len(t, q.tasks, 2)
	assert.Empty(t, q.tasks[0].Key)
}

func TestReminderJobs_Trigger_DefaultsToToday(t *testing.T) {
	q := &fakeEnqueuer{}
	d := &fakeDispatcher{}
	jobs := newJobs(q, d)

	accepted, err := jobs.Trigger(reminder.TriggerWeeklyPending, time.Time{}, true)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-07", accepted.Date)

	require.NoError(t, q.tasks[0].Run(context.Background()))
	assert.Equal(t, []reminder.Trigger{reminder.TriggerWeeklyPending}, d.triggers)
	assert.Equal(t, calendar.Date(2025, 10, 7), d.dates[0])
}

func TestReminderJobs_Trigger_Errors(t *testing.T) {
	jobs := newJobs(&fakeEnqueuer{}, &fakeDispatcher{})
	_, err := jobs.Trigger(reminder.Trigger("birthday"), time.Time{}, true)
	assert.ErrorIs(t, err, reminder.ErrUnknownTrigger)

	jobs = newJobs(&fakeEnqueuer{err: queue.ErrQueueFull}, &fakeDispatcher{})
	_, err = jobs.Trigger(reminder.TriggerDailyReminder, time.Time{}, true)
	assert.ErrorIs(t, err, queue.ErrQueueFull)
}

func TestReminderJobs_TaskReportsDispatchFailure(t *testing.T) {
	q := &fakeEnqueuer{}
	jobs := newJobs(q, &fakeDispatcher{err: errors.New("telegram down")})

	_, err := jobs.Trigger(reminder.TriggerDailyReminder, time.Time{}, true)
	require.NoError(t, err)
	assert.EqualError(t, q.tasks[0].Run(context.Background()), "telegram down")
}

func TestReminderJobs_RegisterJobs(t *testing.T) {
	q := &fakeEnqueuer{}
	jobs := newJobs(q, &fakeDispatcher{})
	s := NewScheduler()
	// 01:00 UTC is 08:00 in Jakarta, so "today" for the scheduled run is the local date.
	s.now = func() time.Time { return time.Date(2025, 10, 7, 1, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.RegisterJobs(s))
	assert.Equal(t, []string{"daily_reminder", "pending_reminder", "weekly_pending_report"}, s.Jobs())

	s.RunOnce(context.Background())
	require.Len(t, q.tasks, 3)
	assert.Equal(t, "daily_reminder:2025-10-07", q.tasks[0].Key)

	// A second run for the same day is swallowed as a duplicate.
	s.RunOnce(context.Background())
	assert.Len(t, q.tasks, 3)
}

func TestReminderJobs_RegisterJobs_InvalidTime(t *testing.T) {
	jobs := NewReminderJobs(&fakeEnqueuer{}, &fakeDispatcher{}, config.ScheduleConfig{DailyReminderTime: "25:00"}, nil, nil)
	assert.Error(t, jobs.RegisterJobs(NewScheduler()))
}
