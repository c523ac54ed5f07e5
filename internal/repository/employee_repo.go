package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mueblesstgo-roster/internal/database"
	"github.com/mueblesstgo-roster/internal/models"
)

// undefinedTable is the PostgreSQL error code for a missing relation
const undefinedTable = "42P01"

const selectEmployees = `
	SELECT id, rut, apellidos, nombres, fecha_nacimiento, categoria, fecha_ingreso
	FROM ` + database.RosterTable + `
	ORDER BY id
`

// employeeRepo is the PostgreSQL implementation of EmployeeRepository
type employeeRepo struct {
	db *database.DB
}

// NewEmployeeRepo creates a new PostgreSQL-backed employee repository
func NewEmployeeRepo(db *database.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

// NewPostgres creates repositories backed by the given database
func NewPostgres(db *database.DB) *Repositories {
	return &Repositories{
		Employee: NewEmployeeRepo(db),
	}
}

// List retrieves the whole roster ordered by id
func (r *employeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	err := r.StreamAll(ctx, func(e *models.Employee) error {
		employees = append(employees, *e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// StreamAll streams all employees for export (memory efficient)
func (r *employeeRepo) StreamAll(ctx context.Context, callback func(*models.Employee) error) error {
	rows, err := r.db.QueryContext(ctx, selectEmployees)
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Employee
		err := rows.Scan(
			&e.ID, &e.NationalID, &e.Surnames, &e.GivenNames,
			&e.BirthDate, &e.Category, &e.AdmissionDate,
		)
		if err != nil {
			return err
		}

		if err := callback(&e); err != nil {
			return err
		}
	}

	return translateError(rows.Err())
}

// Count returns the total number of employees
func (r *employeeRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+database.RosterTable).Scan(&count)
	return count, translateError(err)
}

// HealthCheck pings the database and checks the roster table is migrated
func (r *employeeRepo) HealthCheck(ctx context.Context) error {
	return translateError(r.db.HealthCheck(ctx))
}

// translateError maps driver errors that mean "no roster" onto ErrStoreUnavailable
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return fmt.Errorf("%w: %s", ErrStoreUnavailable, pqErr.Message)
	}
	if errors.Is(err, database.ErrRosterMissing) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
