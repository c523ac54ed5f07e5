package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/service"
	"github.com/rs/zerolog"
)

// EmployeeHandler handles the roster JSON endpoints
type EmployeeHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(services *service.Services, log zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		services: services,
		log:      log.With().Str("handler", "employees").Logger(),
	}
}

// ListEmployees handles GET /api/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, employeesLoadTimeout)
	defer cancel()

	employees, err := h.services.Employee.ListEmployees(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list employees")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load employees"})
		return
	}

	c.JSON(http.StatusOK, models.EmployeeListResponse{
		Employees: employees,
		Total:     len(employees),
	})
}

// EmployeeStats handles GET /api/employees/stats
func (h *EmployeeHandler) EmployeeStats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, employeesLoadTimeout)
	defer cancel()

	stats, err := h.services.Employee.Stats(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute employee stats")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load employee stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportEmployees handles GET /api/employees/export?format=...
// Streams the roster directly to the response
func (h *EmployeeHandler) ExportEmployees(c *gin.Context) {
	format := c.Query("format")
	if format == "" {
		format = "ndjson" // Default to NDJSON for streaming
	}
	if !service.ExportFormats[format] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json, csv, pdf"})
		return
	}

	start := time.Now()
	err := h.services.Export.StreamEmployees(c.Request.Context(), c.Writer, format)
	if err != nil {
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		// Can't return error JSON after streaming has started
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to export employees"})
		}
		return
	}

	h.log.Debug().Str("format", format).Dur("duration", time.Since(start)).Msg("Export streamed")
}
