package booking

import (
	"net/http"
	"time"

	"github.com/pavalka/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemBookedByOwner = apperror.New(http.StatusNotFound, "owner cannot book own item")
	ErrItemNotAvailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrIllegalApprove    = apperror.New(http.StatusBadRequest, "booking has already been approved or rejected")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "start time must be before end time")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is one request to borrow an item for [StartTime, EndTime).
// ItemName, ItemOwnerID and BookerName are read-only joins.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Role selects whose bookings a listing is scoped to.
type Role string

const (
	RoleBooker Role = "BOOKER"
	RoleOwner  Role = "OWNER"
)

// State is the logical bucket requested by a listing. Values outside the
// declared constants are accepted and select nothing.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)
