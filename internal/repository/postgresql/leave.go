package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

// leaveCancelled is the docstatus of a withdrawn application.
const leaveCancelled = 2

type leaveRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRepository(db database.Querier) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ListCovering implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListCovering(ctx context.Context, date time.Time) ([]leave.LeaveRecord, error) {
	day := calendar.Day(date)
	return l.list(ctx, day, day)
}

// ListOverlapping implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListOverlapping(ctx context.Context, from, to time.Time) ([]leave.LeaveRecord, error) {
	return l.list(ctx, calendar.Day(from), calendar.Day(to))
}

func (l *leaveRepositoryImpl) list(ctx context.Context, from, to time.Time) ([]leave.LeaveRecord, error) {
	query := `
		SELECT id, employee_id, from_date, to_date
		FROM leave_applications
		WHERE from_date <= $1 AND to_date >= $2 AND docstatus <> $3
		ORDER BY employee_id ASC, from_date ASC
	`

	rows, err := l.db.Query(ctx, query, to, from, leaveCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave applications: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var r leave.LeaveRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.FromDate, &r.ToDate); err != nil {
			return nil, err
		}
		r.FromDate, r.ToDate = calendar.Day(r.FromDate), calendar.Day(r.ToDate)
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
