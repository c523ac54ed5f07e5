package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mueblesstgo-roster/internal/config"
	"github.com/mueblesstgo-roster/internal/models"
	"github.com/mueblesstgo-roster/internal/service"
	"github.com/mueblesstgo-roster/internal/validation"
	"github.com/mueblesstgo-roster/internal/views"
	"github.com/rs/zerolog"
)

const (
	stagingCookie        = "staging_session"
	employeesLoadTimeout = 10 * time.Second
	loadFailedText       = "No fue posible cargar los empleados."

	// formOverhead is the body allowance on top of MaxUploadSize for multipart
	// boundaries and headers
	formOverhead = 1 << 20
)

// PageHandler renders the three HTML views
type PageHandler struct {
	services  *service.Services
	routes    views.RouteTable
	validator *validation.Validator
	cfg       *config.Config
	log       zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, routes views.RouteTable, cfg *config.Config, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services:  services,
		routes:    routes,
		validator: validation.NewValidator(cfg.Upload.MaxUploadSize),
		cfg:       cfg,
		log:       log.With().Str("handler", "pages").Logger(),
	}
}

// Menu handles GET /
func (h *PageHandler) Menu(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.tmpl", gin.H{
		"Title":  h.title(views.MainMenu),
		"Routes": h.routes.All(),
	})
}

// EmployeeList handles GET /empleados
// Activates a fresh list view and waits for its single fetch to settle.
func (h *PageHandler) EmployeeList(c *gin.Context) {
	view := views.NewEmployeeListView(h.services.Employee)

	ctx, cancel := contextWithTimeout(c, employeesLoadTimeout)
	defer cancel()

	if err := view.Activate(ctx); err != nil {
		h.log.Error().Err(err).Msg("Failed to activate employee list")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	select {
	case <-view.Done():
	case <-c.Request.Context().Done():
	}
	if c.Request.Context().Err() != nil {
		view.Teardown()
		h.log.Debug().Msg("Client left before the roster loaded")
		c.Abort()
		return
	}

	snap := view.Snapshot()
	status := http.StatusOK
	data := gin.H{
		"Title":      h.title(views.EmployeeList),
		"State":      string(snap.State),
		"Employees":  snap.Employees,
		"Total":      len(snap.Employees),
		"RetryPath":  h.routes.PathFor(views.EmployeeList),
		"BackAction": h.routes.PathFor(views.EmployeeList) + "/volver",
	}
	if snap.State == views.StateFailed {
		h.log.Error().Str("error", snap.Error).Msg("Employee list failed to load")
		status = http.StatusServiceUnavailable
		data["Error"] = loadFailedText
	}

	c.HTML(status, "empleados.tmpl", data)
}

// EmployeeListBack handles POST /empleados/volver
func (h *PageHandler) EmployeeListBack(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.routes.PathFor(views.MainMenu))
}

// DataUpload handles GET /data-upload
// Navigating to the view always starts with nothing staged.
func (h *PageHandler) DataUpload(c *gin.Context) {
	if id, err := c.Cookie(stagingCookie); err == nil {
		h.services.Staging.Close(id)
	}

	id, view := h.services.Staging.Open()
	h.setSessionCookie(c, id)

	h.renderUpload(c, http.StatusOK, view, nil, "")
}

// SelectFile handles POST /data-upload/select
// A request without a file clears the staged one.
func (h *PageHandler) SelectFile(c *gin.Context) {
	view := h.session(c)
	defer cleanupMultipart(c)

	file, status, err := h.readStagedFile(c)
	if err != nil {
		h.renderUpload(c, status, view, nil, err.Error())
		return
	}

	view.SelectFile(file)
	if file != nil {
		h.log.Info().Str("file", file.Name).Int64("size", file.Size).Msg("File staged")
	}

	h.renderUpload(c, http.StatusOK, view, nil, "")
}

// ConfirmStaging handles POST /data-upload/confirm
// A file included with the request is staged before confirming.
func (h *PageHandler) ConfirmStaging(c *gin.Context) {
	view := h.session(c)
	defer cleanupMultipart(c)

	file, status, err := h.readStagedFile(c)
	if err != nil {
		h.renderUpload(c, status, view, nil, err.Error())
		return
	}
	if file != nil {
		view.SelectFile(file)
	}

	msg := view.ConfirmStaging()
	h.log.Info().Str("kind", string(msg.Kind)).Msg("Staging confirmed")

	h.renderUpload(c, http.StatusOK, view, &msg, "")
}

// DataUploadBack handles POST /data-upload/volver
func (h *PageHandler) DataUploadBack(c *gin.Context) {
	target := h.routes.PathFor(views.MainMenu)

	if id, err := c.Cookie(stagingCookie); err == nil {
		if view, ok := h.services.Staging.Get(id); ok {
			target = view.ReturnToMenu()
		}
		h.services.Staging.Close(id)
	}
	h.clearSessionCookie(c)

	c.Redirect(http.StatusSeeOther, target)
}

// NotFound renders the fallback page, or a JSON error under /api
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
		"Title":    "Página no encontrada",
		"MenuPath": h.routes.PathFor(views.MainMenu),
	})
}

// session returns the caller's staging view, opening a new session when the
// cookie is missing or expired
func (h *PageHandler) session(c *gin.Context) *views.FileStagingView {
	if id, err := c.Cookie(stagingCookie); err == nil {
		if view, ok := h.services.Staging.Get(id); ok {
			return view
		}
	}

	id, view := h.services.Staging.Open()
	h.setSessionCookie(c, id)
	return view
}

// readStagedFile extracts the picked file's metadata. The content is never
// read. A nil file with a nil error means no file was sent.
func (h *PageHandler) readStagedFile(c *gin.Context) (*models.StagedFile, int, error) {
	if limit := h.cfg.Upload.MaxUploadSize; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, http.StatusOK, nil
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusRequestEntityTooLarge, h.tooLarge()
		}
		h.log.Warn().Err(err).Msg("Failed to parse upload form")
		return nil, http.StatusBadRequest, errors.New("no fue posible leer el formulario")
	}

	file := &models.StagedFile{
		Name:        filepath.Base(header.Filename),
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}

	if errs := h.validator.ValidateStagedFile(file); len(errs) > 0 {
		h.log.Warn().Str("file", file.Name).Int64("size", file.Size).Str("error", errs[0].Message).Msg("Rejected staged file")
		if h.cfg.Upload.MaxUploadSize > 0 && file.Size > h.cfg.Upload.MaxUploadSize {
			return nil, http.StatusRequestEntityTooLarge, h.tooLarge()
		}
		return nil, http.StatusBadRequest, errors.New("el nombre del archivo no es válido")
	}

	return file, http.StatusOK, nil
}

func (h *PageHandler) tooLarge() error {
	return fmt.Errorf("el archivo excede el tamaño máximo de %s", validation.FormatSize(h.cfg.Upload.MaxUploadSize))
}

func (h *PageHandler) renderUpload(c *gin.Context, status int, view *views.FileStagingView, msg *models.StagingMessage, errText string) {
	base := h.routes.PathFor(views.FileStaging)
	data := gin.H{
		"Title":         h.title(views.FileStaging),
		"Staged":        view.Staged(),
		"MaxSize":       validation.FormatSize(h.cfg.Upload.MaxUploadSize),
		"SelectAction":  base + "/select",
		"ConfirmAction": base + "/confirm",
		"BackAction":    base + "/volver",
	}
	if msg != nil {
		data["Message"] = msg.Text
		data["MessageKind"] = string(msg.Kind)
	}
	if errText != "" {
		data["Error"] = errText
	}

	c.HTML(status, "data_upload.tmpl", data)
}

func (h *PageHandler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stagingCookie, id, int(h.cfg.Upload.SessionTTL.Seconds()), "/", "", h.cfg.Server.Production, true)
}

func (h *PageHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stagingCookie, "", -1, "/", "", h.cfg.Server.Production, true)
}

func (h *PageHandler) title(view views.ViewName) string {
	for _, r := range h.routes.All() {
		if r.View == view {
			return r.Title
		}
	}
	return ""
}

// cleanupMultipart removes temp files the multipart parser spilled to disk
func cleanupMultipart(c *gin.Context) {
	if c.Request.MultipartForm != nil {
		c.Request.MultipartForm.RemoveAll()
	}
}
