package holiday

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
)

type HolidayRepository interface {
	// ListDates resolves every holiday list into one set of dates within [from, to].
	ListDates(ctx context.Context, from, to time.Time) (calendar.DateSet, error)
}
