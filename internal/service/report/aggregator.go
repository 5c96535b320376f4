package report

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// classifyRows walks the roster in order and, per employee, every day in days.
// Days the classifier skips produce no row.
func classifyRows(c Classifier, s *snapshot, days []time.Time) []report.Row {
	rows := make([]report.Row, 0, len(s.roster)*len(days))
	for _, emp := range s.roster {
		for _, day := range days {
			status, ok := c.Classify(s.facts(emp.ID, day))
			if !ok {
				continue
			}

			row := report.Row{
				Date:         day,
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Status:       status,
				Hours:        decimal.Zero,
			}
			if status == report.StatusFilled {
				row.Hours, row.Task, row.Activity = s.submittedOn(emp.ID, day)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Grouped holds rows per status. Each list keeps the order rows were given in.
type Grouped map[report.Status][]report.Row

// GroupByStatus buckets rows by status without reordering them.
func GroupByStatus(rows []report.Row) Grouped {
	g := make(Grouped)
	for _, row := range rows {
		g[row.Status] = append(g[row.Status], row)
	}
	return g
}

// Employees maps the rows of one status back to roster entries.
func (g Grouped) Employees(status report.Status) []employee.Employee {
	rows := g[status]
	if len(rows) == 0 {
		return nil
	}
	emps := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		emps = append(emps, employee.Employee{ID: row.EmployeeID, Name: row.EmployeeName, Active: true})
	}
	return emps
}

// TotalHours sums record hours per roster employee. Every employee gets an
// entry, zero when nothing matched. Each record counts once however many days
// it covers.
func TotalHours(roster []employee.Employee, records []timesheet.TimeRecord) []report.EmployeeHours {
	sums := make(map[string]decimal.Decimal, len(roster))
	for _, r := range records {
		if r.State != timesheet.StateSubmitted {
			continue
		}
		sums[r.EmployeeID] = sums[r.EmployeeID].Add(r.TotalHours)
	}

	out := make([]report.EmployeeHours, 0, len(roster))
	for _, emp := range roster {
		hours, ok := sums[emp.ID]
		if !ok {
			hours = decimal.Zero
		}
		out = append(out, report.EmployeeHours{Employee: emp, Hours: hours})
	}
	return out
}

// employeeDays is one roster entry with its classified dates per status.
type employeeDays struct {
	employee employee.Employee
	byStatus map[report.Status][]time.Time
}

func (e employeeDays) dates(status report.Status) []time.Time {
	return e.byStatus[status]
}

// collectDates regroups rows per employee in roster order, keeping only the
// listed statuses.
func collectDates(roster []employee.Employee, rows []report.Row, statuses ...report.Status) []employeeDays {
	wanted := make(map[report.Status]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	index := make(map[string]int, len(roster))
	out := make([]employeeDays, len(roster))
	for i, emp := range roster {
		index[emp.ID] = i
		out[i] = employeeDays{employee: emp, byStatus: make(map[report.Status][]time.Time)}
	}

	for _, row := range rows {
		if !wanted[row.Status] {
			continue
		}
		i, ok := index[row.EmployeeID]
		if !ok {
			continue
		}
		out[i].byStatus[row.Status] = append(out[i].byStatus[row.Status], row.Date)
	}
	return out
}

func sumHours(rows []report.Row, status report.Status) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row.Status == status {
			total = total.Add(row.Hours)
		}
	}
	return total
}

func countStatus(rows []report.Row, status report.Status) int {
	n := 0
	for _, row := range rows {
		if row.Status == status {
			n++
		}
	}
	return n
}
