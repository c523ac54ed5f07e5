package api

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mueblesstgo-roster/internal/config"
	"github.com/mueblesstgo-roster/internal/service"
	"github.com/mueblesstgo-roster/internal/views"
	"github.com/mueblesstgo-roster/pkg/logger"
	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// NewRouter creates and configures the Gin router. Pages are registered from
// the route table; the JSON API lives under /api.
func NewRouter(services *service.Services, routes views.RouteTable, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxUploadSize
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl")))

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(securityHeadersMiddleware(cfg.Server.Production))
	router.Use(corsMiddleware(cfg.Server.CORSOrigins))

	// Handlers
	pages := NewPageHandler(services, routes, cfg, log)
	employees := NewEmployeeHandler(services, log)

	for _, route := range routes.All() {
		switch route.View {
		case views.MainMenu:
			router.GET(route.Path, pages.Menu)
		case views.EmployeeList:
			router.GET(route.Path, pages.EmployeeList)
			router.POST(route.Path+"/volver", pages.EmployeeListBack)
		case views.FileStaging:
			router.GET(route.Path, pages.DataUpload)
			router.POST(route.Path+"/select", pages.SelectFile)
			router.POST(route.Path+"/confirm", pages.ConfirmStaging)
			router.POST(route.Path+"/volver", pages.DataUploadBack)
		}
	}
	router.NoRoute(pages.NotFound)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services, log))

	// JSON API
	apiGroup := router.Group("/api")
	apiGroup.Use(brotliMiddleware())
	{
		apiGroup.GET("/employees", employees.ListEmployees)
		apiGroup.GET("/employees/stats", employees.EmployeeStats)
		apiGroup.GET("/employees/export", employees.ExportEmployees)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		if err := services.Employee.HealthCheck(ctx); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}

// metricsHandler returns roster and staging metrics
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		employeesCount, err := services.Employee.Count(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count employees for metrics")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":            "employee store unavailable",
				"staging_sessions": services.Staging.ActiveSessions(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"employees":        employeesCount,
			"staging_sessions": services.Staging.ActiveSessions(),
			"timestamp":        time.Now().Format(time.RFC3339),
		})
	}
}
