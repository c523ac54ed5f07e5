package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mueblesstgo-roster/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator provides the few checks the roster and the staging form need
type Validator struct {
	maxUploadSize int64
}

// NewValidator creates a new validator instance
func NewValidator(maxUploadSize int64) *Validator {
	return &Validator{maxUploadSize: maxUploadSize}
}

// ValidateStagedFile checks a picked file before it is staged
func (v *Validator) ValidateStagedFile(file *models.StagedFile) []ValidationError {
	if file == nil {
		return nil
	}

	var errors []ValidationError

	if strings.TrimSpace(file.Name) == "" {
		errors = append(errors, ValidationError{Field: "file", Message: "file name is required"})
	}

	if v.maxUploadSize > 0 && file.Size > v.maxUploadSize {
		errors = append(errors, ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file too large, max size is %s", FormatSize(v.maxUploadSize)),
			Value:   file.Size,
		})
	}

	return errors
}

// DuplicateIDs reports ids that appear more than once, in ascending order.
// Uniqueness is expected of every roster but not enforced by the stores.
func DuplicateIDs(employees []models.Employee) []int {
	seen := make(map[int]int, len(employees))
	for _, e := range employees {
		seen[e.ID]++
	}

	var dups []int
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Ints(dups)
	return dups
}

// FormatSize renders a byte count for user-facing messages
func FormatSize(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%d MB", n/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%d KB", n/unit)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
