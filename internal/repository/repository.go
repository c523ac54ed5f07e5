package repository

import (
	"context"
	"errors"

	"github.com/mueblesstgo-roster/internal/models"
)

// ErrStoreUnavailable is returned when the backing store cannot serve the roster
var ErrStoreUnavailable = errors.New("employee store unavailable")

// EmployeeRepository defines the interface for roster read operations
type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	StreamAll(ctx context.Context, callback func(*models.Employee) error) error
	Count(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Employee EmployeeRepository
}

// NewMemory creates repositories backed by the built-in roster
func NewMemory() *Repositories {
	return &Repositories{
		Employee: NewMemoryEmployeeRepo(DefaultEmployees()),
	}
}
