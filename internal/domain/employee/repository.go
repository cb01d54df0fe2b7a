package employee

import "context"

type EmployeeRepository interface {
	// ListRoster returns every employee ordered by display name
	ListRoster(ctx context.Context) ([]Employee, error)

	// GetByUsername returns ErrEmployeeNotFound when the username is unknown
	GetByUsername(ctx context.Context, username string) (Employee, error)
}
