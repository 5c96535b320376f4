package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db database.Querier
}

func NewTimesheetRepository(db database.Querier) timesheet.TimeRecordRepository {
	return &timesheetRepositoryImpl{db: db}
}

// List implements timesheet.TimeRecordRepository.
func (t *timesheetRepositoryImpl) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.TimeRecord, error) {
	where, args, err := buildTimesheetWhere(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, start_date, end_date, docstatus, total_hours, task, activity_type
		FROM timesheets
		WHERE %s
		ORDER BY employee_id ASC, start_date ASC, id ASC
	`, where)

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var records []timesheet.TimeRecord
	for rows.Next() {
		var (
			r         timesheet.TimeRecord
			docStatus int
		)
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate, &docStatus, &r.TotalHours, &r.Task, &r.Activity); err != nil {
			return nil, err
		}
		if r.State, err = timesheet.StateFromDocStatus(docStatus); err != nil {
			return nil, fmt.Errorf("timesheet %s: %w", r.ID, err)
		}
		r.StartDate, r.EndDate = calendar.Day(r.StartDate), calendar.Day(r.EndDate)
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// buildTimesheetWhere translates a filter into a parameterized WHERE clause.
func buildTimesheetWhere(filter timesheet.Filter) (string, []interface{}, error) {
	if (filter.OverlapsFrom == nil) != (filter.OverlapsTo == nil) {
		return "", nil, timesheet.ErrInvalidFilter
	}

	states := filter.EffectiveStates()
	docStatuses := make([]int, 0, len(states))
	for _, s := range states {
		docStatuses = append(docStatuses, s.DocStatus())
	}

	conditions := []string{"docstatus = ANY($1)"}
	args := []interface{}{docStatuses}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.OverlapsFrom != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d AND end_date >= $%d", argIdx+1, argIdx))
		args = append(args, calendar.Day(*filter.OverlapsFrom), calendar.Day(*filter.OverlapsTo))
		argIdx += 2
	}
	if filter.ExactStart != nil {
		conditions = append(conditions, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, calendar.Day(*filter.ExactStart))
	}

	return strings.Join(conditions, " AND "), args, nil
}
