package reminder

import (
	"context"
	"time"
)

// Dispatcher runs the notification side of each trigger. It never retries.
type Dispatcher interface {
	DailyReminder(ctx context.Context, today time.Time) Outcome
	PendingReminder(ctx context.Context, today time.Time) Outcome
	WeeklyPendingReport(ctx context.Context, today time.Time) Outcome
	Dispatch(ctx context.Context, trigger Trigger, today time.Time) Outcome
}

// TriggerService queues a trigger for background dispatch. Manual triggers
// skip the once-per-day check.
type TriggerService interface {
	Trigger(trigger Trigger, date time.Time, manual bool) (Accepted, error)
}
