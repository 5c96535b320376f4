package timesheet

import "context"

type TimeRecordRepository interface {
	List(ctx context.Context, filter Filter) ([]TimeRecord, error)
}
