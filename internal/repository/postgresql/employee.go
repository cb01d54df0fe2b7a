package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const (
	listRosterQuery = `
		SELECT username, display_name, designation
		FROM employees
		ORDER BY display_name ASC, username ASC
	`

	getEmployeeByUsernameQuery = `
		SELECT username, display_name, designation
		FROM employees
		WHERE username = $1
	`
)

type employeeRepository struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// ListRoster implements employee.EmployeeRepository.
func (r *employeeRepository) ListRoster(ctx context.Context) ([]employee.Employee, error) {
	rows, err := r.db.Query(ctx, listRosterQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var roster []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.Username, &e.DisplayName, &e.Designation); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		roster = append(roster, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return roster, nil
}

// GetByUsername implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	var e employee.Employee
	err := r.db.QueryRow(ctx, getEmployeeByUsernameQuery, username).Scan(&e.Username, &e.DisplayName, &e.Designation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by username: %w", err)
	}
	return e, nil
}
