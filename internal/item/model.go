package item

import (
	"net/http"
	"time"

	"github.com/pavalka/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrEmptyName           = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyDescription    = apperror.New(http.StatusBadRequest, "description cannot be empty")
	ErrAvailabilityMissing = apperror.New(http.StatusBadRequest, "available flag is required")
)

// Item is something a user offers to lend.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
