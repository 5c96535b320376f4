package employee

import "context"

type EmployeeRepository interface {
	// ListActive returns active employees in roster order.
	ListActive(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
