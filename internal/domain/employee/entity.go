package employee

import "strings"

// StatusActive is the stored status of employees that appear on the roster.
const StatusActive = "Active"

type Employee struct {
	ID     string
	Name   string
	Active bool
}

// FindByID matches an employee identifier case-insensitively. Only exact matches count.
func FindByID(roster []Employee, id string) (Employee, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Employee{}, false
	}
	for _, emp := range roster {
		if strings.EqualFold(emp.ID, id) {
			return emp, true
		}
	}
	return Employee{}, false
}
