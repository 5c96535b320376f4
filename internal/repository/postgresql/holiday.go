package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db database.Querier
}

func NewHolidayRepository(db database.Querier) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListDates implements holiday.HolidayRepository. Dates from every list are merged.
func (h *holidayRepositoryImpl) ListDates(ctx context.Context, from, to time.Time) (calendar.DateSet, error) {
	query := `
		SELECT DISTINCT holiday_date
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
	`

	rows, err := h.db.Query(ctx, query, calendar.Day(from), calendar.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query holiday dates: %w", err)
	}
	defer rows.Close()

	dates := calendar.NewDateSet()
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates.Add(d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}
