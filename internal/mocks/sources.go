package mocks

import (
	"context"
	"sync"

	"github.com/mueblesstgo-roster/internal/models"
)

// MockEmployeeSource is a controllable EmployeeSource. With Gate set, each
// fetch waits until a result is pushed through Release.
type MockEmployeeSource struct {
	mu        sync.Mutex
	Employees []models.Employee
	Err       error
	Gate      bool
	pending   chan models.EmployeeResult
	calls     int
}

func NewMockEmployeeSource(employees ...models.Employee) *MockEmployeeSource {
	return &MockEmployeeSource{
		Employees: employees,
		pending:   make(chan models.EmployeeResult, 16),
	}
}

// FetchEmployees delivers one result on a buffered channel
func (m *MockEmployeeSource) FetchEmployees(ctx context.Context) <-chan models.EmployeeResult {
	m.mu.Lock()
	m.calls++
	gate := m.Gate
	result := models.EmployeeResult{Err: m.Err}
	if m.Err == nil {
		result.Employees = make([]models.Employee, len(m.Employees))
		copy(result.Employees, m.Employees)
	}
	m.mu.Unlock()

	out := make(chan models.EmployeeResult, 1)
	if !gate {
		out <- result
		close(out)
		return out
	}

	go func() {
		defer close(out)
		select {
		case r := <-m.pending:
			out <- r
		case <-ctx.Done():
		}
	}()
	return out
}

// Release hands a result to one gated fetch
func (m *MockEmployeeSource) Release(result models.EmployeeResult) {
	m.pending <- result
}

// Calls returns how many fetches were started
func (m *MockEmployeeSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
