package mocks

import (
	"context"
	"sync"

	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/repository"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mu          sync.Mutex
	Employees   []models.Employee
	ListError   error
	HealthError error
	ListFunc    func(ctx context.Context) ([]models.Employee, error)
	ListCalls   int
}

// Verify interface compliance
var _ repository.EmployeeRepository = (*MockEmployeeRepository)(nil)

func NewMockEmployeeRepository(employees ...models.Employee) *MockEmployeeRepository {
	return &MockEmployeeRepository{Employees: employees}
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	m.ListCalls++
	listFunc := m.ListFunc
	m.mu.Unlock()

	if listFunc != nil {
		return listFunc(ctx)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Employee, len(m.Employees))
	copy(out, m.Employees)
	return out, nil
}

func (m *MockEmployeeRepository) StreamAll(ctx context.Context, callback func(*models.Employee) error) error {
	if m.ListError != nil {
		return m.ListError
	}
	for i := range m.Employees {
		e := m.Employees[i]
		if err := callback(&e); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int, error) {
	if m.ListError != nil {
		return 0, m.ListError
	}
	return len(m.Employees), nil
}

func (m *MockEmployeeRepository) HealthCheck(ctx context.Context) error {
	return m.HealthError
}

// Calls returns how many times List was invoked
func (m *MockEmployeeRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls
}
