package views

import (
	"fmt"
	"sync"

	"github.com/mueblesstgo-roster/internal/models"
)

// MissingFileText is shown when confirming without a staged file
const MissingFileText = "Seleccione un archivo primero."

// FileStagingView holds at most one user-selected file reference
type FileStagingView struct {
	mu     sync.Mutex
	staged *models.StagedFile
}

// NewFileStagingView creates a view with nothing staged
func NewFileStagingView() *FileStagingView {
	return &FileStagingView{}
}

// SelectFile replaces the staged file. nil clears it.
func (v *FileStagingView) SelectFile(file *models.StagedFile) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if file == nil {
		v.staged = nil
		return
	}
	staged := *file
	v.staged = &staged
}

// Staged returns a copy of the staged file, or nil
func (v *FileStagingView) Staged() *models.StagedFile {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.staged == nil {
		return nil
	}
	staged := *v.staged
	return &staged
}

// ConfirmStaging acknowledges the staged file. Nothing is transferred.
func (v *FileStagingView) ConfirmStaging() models.StagingMessage {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.staged == nil {
		return models.StagingMessage{Kind: models.StagingMessageMissing, Text: MissingFileText}
	}
	return models.StagingMessage{
		Kind: models.StagingMessageReady,
		Text: fmt.Sprintf("Archivo \"%s\" listo para cargar.", v.staged.Name),
	}
}

// ReturnToMenu returns the menu path
func (v *FileStagingView) ReturnToMenu() string {
	return MenuPath
}
