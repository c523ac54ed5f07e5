package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/repository"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportFormats lists the accepted export formats
var ExportFormats = map[string]bool{
	"ndjson": true,
	"json":   true,
	"csv":    true,
	"pdf":    true,
}

var csvHeader = []string{"id", "rut", "apellidos", "nombres", "fecha_nacimiento", "categoria", "fecha_ingreso"}

// exportService is the concrete implementation of ExportService
type exportService struct {
	repo repository.EmployeeRepository
	log  zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repo repository.EmployeeRepository, log zerolog.Logger) *exportService {
	return &exportService{
		repo: repo,
		log:  log.With().Str("service", "export").Logger(),
	}
}

// StreamEmployees streams the roster in the specified format
func (s *exportService) StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error {
	if !ExportFormats[format] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	s.log.Info().Str("format", format).Msg("Starting employees export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "json":
		return s.streamJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	default:
		return s.writePDF(ctx, w)
	}
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=empleados.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repo.StreamAll(ctx, func(e *models.Employee) error {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Employees export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=empleados.json")

	// The opening bracket goes out with the first record so a failing store
	// leaves the response untouched.
	first := true

	err := s.repo.StreamAll(ctx, func(e *models.Employee) error {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if first {
			w.Write([]byte("["))
			first = false
		} else {
			w.Write([]byte(","))
		}
		w.Write(data)
		return nil
	})
	if err != nil {
		return err
	}

	if first {
		w.Write([]byte("[]"))
	} else {
		w.Write([]byte("]"))
	}
	return nil
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=empleados.csv")

	writer := csv.NewWriter(w)
	writer.Write(csvHeader)

	err := s.repo.StreamAll(ctx, func(e *models.Employee) error {
		return writer.Write([]string{
			strconv.Itoa(e.ID), e.NationalID, e.Surnames, e.GivenNames,
			e.BirthDate, e.Category, e.AdmissionDate,
		})
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// writePDF renders the roster as a single table. The document is built in
// memory first so a store error still yields a clean error response.
func (s *exportService) writePDF(ctx context.Context, w http.ResponseWriter) error {
	var employees []models.Employee
	err := s.repo.StreamAll(ctx, func(e *models.Employee) error {
		employees = append(employees, *e)
		return nil
	})
	if err != nil {
		return err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Empleados", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Empleados")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Generado %s - %d registros", time.Now().Format("2006-01-02 15:04"), len(employees))))
	pdf.Ln(10)

	widths := []float64{15, 35, 55, 55, 35, 25, 35}
	headers := []string{"ID", "RUT", "Apellidos", "Nombres", "Nacimiento", "Categoría", "Ingreso"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range employees {
		row := []string{
			strconv.Itoa(e.ID), e.NationalID, e.Surnames, e.GivenNames,
			e.BirthDate, e.Category, e.AdmissionDate,
		}
		for i, col := range row {
			pdf.CellFormat(widths[i], 7, tr(col), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=empleados.pdf")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	s.log.Info().Int("count", len(employees)).Msg("Employees PDF export completed")
	return nil
}
