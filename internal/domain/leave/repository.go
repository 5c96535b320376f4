package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	ListCovering(ctx context.Context, date time.Time) ([]LeaveRecord, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]LeaveRecord, error)
}
