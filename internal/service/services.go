package service

import (
	"context"
	"net/http"

	"github.com/mueblesstgo-roster/internal/config"
	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/repository"
	"github.com/mueblesstgo-roster/internal/views"
	"github.com/rs/zerolog"
)

// EmployeeService is the roster data source
type EmployeeService interface {
	FetchEmployees(ctx context.Context) <-chan models.EmployeeResult
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*models.EmployeeStats, error)
	HealthCheck(ctx context.Context) error
}

// ExportService defines the interface for roster exports
type ExportService interface {
	StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error
}

// StagingService keeps one file staging view per browser session
type StagingService interface {
	Open() (string, *views.FileStagingView)
	Get(id string) (*views.FileStagingView, bool)
	Close(id string)
	ActiveSessions() int
	StartSweeper(ctx context.Context)
	StopSweeper()
}

// Services holds all service interfaces
type Services struct {
	Employee EmployeeService
	Export   ExportService
	Staging  StagingService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Employee: newEmployeeService(repos.Employee, log),
		Export:   newExportService(repos.Employee, log),
		Staging:  newStagingService(cfg.Upload.SessionTTL, cfg.Upload.SweepInterval, log),
	}
}
