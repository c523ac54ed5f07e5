package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/service"
)

// MockEmployeeService is a mock implementation of EmployeeService built on a
// MockEmployeeSource, so fetches can be gated the same way
type MockEmployeeService struct {
	*MockEmployeeSource
	HealthError error
}

// Verify interface compliance
var _ service.EmployeeService = (*MockEmployeeService)(nil)

func NewMockEmployeeService(employees ...models.Employee) *MockEmployeeService {
	return &MockEmployeeService{MockEmployeeSource: NewMockEmployeeSource(employees...)}
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	select {
	case result, ok := <-m.FetchEmployees(ctx):
		if !ok {
			return nil, ctx.Err()
		}
		return result.Employees, result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *MockEmployeeService) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Employees), nil
}

func (m *MockEmployeeService) Stats(ctx context.Context) (*models.EmployeeStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	stats := &models.EmployeeStats{Total: len(m.Employees), ByCategory: make(map[string]int), Categories: []string{}}
	for _, e := range m.Employees {
		if stats.ByCategory[e.Category] == 0 {
			stats.Categories = append(stats.Categories, e.Category)
		}
		stats.ByCategory[e.Category]++
	}
	return stats, nil
}

func (m *MockEmployeeService) HealthCheck(ctx context.Context) error {
	return m.HealthError
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mu         sync.Mutex
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Formats    []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error {
	m.mu.Lock()
	m.Formats = append(m.Formats, format)
	streamFunc := m.StreamFunc
	m.mu.Unlock()

	if streamFunc != nil {
		return streamFunc(ctx, w, format)
	}
	return nil
}

// Requested returns the formats asked for so far
func (m *MockExportService) Requested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Formats))
	copy(out, m.Formats)
	return out
}
