package repository

import (
	"context"
	"sort"

	"github.com/mueblesstgo-roster/internal/models"
)

// seedEmployees is the built-in roster served when no database is configured
var seedEmployees = []models.Employee{
	{
		ID:            1,
		NationalID:    "12345678-9",
		Surnames:      "Pérez",
		GivenNames:    "Juan",
		BirthDate:     "1990-01-01",
		Category:      "A",
		AdmissionDate: "2020-05-10",
	},
	{
		ID:            2,
		NationalID:    "123-2",
		Surnames:      "Constanza",
		GivenNames:    "Oliva",
		BirthDate:     "2001-11-18",
		Category:      "C",
		AdmissionDate: "2018-05-30",
	},
}

// DefaultEmployees returns a copy of the built-in roster
func DefaultEmployees() []models.Employee {
	out := make([]models.Employee, len(seedEmployees))
	copy(out, seedEmployees)
	return out
}

// memoryEmployeeRepo serves a fixed roster captured at construction
type memoryEmployeeRepo struct {
	employees []models.Employee
}

// NewMemoryEmployeeRepo creates an in-memory repository. The input slice is
// copied and ordered by id; it is never modified afterwards.
func NewMemoryEmployeeRepo(employees []models.Employee) EmployeeRepository {
	owned := make([]models.Employee, len(employees))
	copy(owned, employees)
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return &memoryEmployeeRepo{employees: owned}
}

// List returns a copy of the whole roster
func (r *memoryEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Employee, len(r.employees))
	copy(out, r.employees)
	return out, nil
}

// StreamAll calls callback for each employee in id order
func (r *memoryEmployeeRepo) StreamAll(ctx context.Context, callback func(*models.Employee) error) error {
	for i := range r.employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		employee := r.employees[i]
		if err := callback(&employee); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of employees
func (r *memoryEmployeeRepo) Count(ctx context.Context) (int, error) {
	return len(r.employees), nil
}

// HealthCheck always succeeds for the in-memory roster
func (r *memoryEmployeeRepo) HealthCheck(ctx context.Context) error {
	return nil
}
