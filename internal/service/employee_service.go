package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/repository"
	"github.com/mueblesstgo-roster/internal/validation"
	"github.com/rs/zerolog"
)

// employeeService is the concrete implementation of EmployeeService
type employeeService struct {
	repo repository.EmployeeRepository
	log  zerolog.Logger
}

// newEmployeeService creates a new EmployeeService
func newEmployeeService(repo repository.EmployeeRepository, log zerolog.Logger) *employeeService {
	return &employeeService{
		repo: repo,
		log:  log.With().Str("service", "employee").Logger(),
	}
}

// FetchEmployees starts a fetch and returns a channel that yields exactly one
// result before closing. The channel is buffered so an abandoned fetch never
// blocks its producer.
func (s *employeeService) FetchEmployees(ctx context.Context) <-chan models.EmployeeResult {
	out := make(chan models.EmployeeResult, 1)

	go func() {
		defer close(out)

		start := time.Now()
		employees, err := s.repo.List(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to fetch employees")
			out <- models.EmployeeResult{Err: fmt.Errorf("fetch employees: %w", err)}
			return
		}
		if employees == nil {
			employees = []models.Employee{}
		}

		if dups := validation.DuplicateIDs(employees); len(dups) > 0 {
			s.log.Warn().Ints("ids", dups).Msg("Roster contains duplicate employee ids")
		}

		s.log.Debug().
			Int("count", len(employees)).
			Dur("duration", time.Since(start)).
			Msg("Employees fetched")

		out <- models.EmployeeResult{Employees: employees}
	}()

	return out
}

// ListEmployees waits for a single fetch
func (s *employeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	select {
	case result := <-s.FetchEmployees(ctx):
		return result.Employees, result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Count returns the roster size
func (s *employeeService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Stats counts employees per category in a single pass over the store
func (s *employeeService) Stats(ctx context.Context) (*models.EmployeeStats, error) {
	stats := &models.EmployeeStats{ByCategory: make(map[string]int)}

	err := s.repo.StreamAll(ctx, func(e *models.Employee) error {
		stats.Total++
		stats.ByCategory[e.Category]++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}

	stats.Categories = make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		stats.Categories = append(stats.Categories, category)
	}
	sort.Strings(stats.Categories)

	return stats, nil
}

// HealthCheck reports whether the roster store is reachable
func (s *employeeService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}
