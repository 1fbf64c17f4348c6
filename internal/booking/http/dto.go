package http

import (
	"time"

	"github.com/pavalka/shareit/internal/booking"
	itemHttp "github.com/pavalka/shareit/internal/item/http"
	"github.com/pavalka/shareit/internal/pkg/request"
	userHttp "github.com/pavalka/shareit/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
// State is matched case-sensitively; unknown values produce an empty page.
type ListBookingsRequest struct {
	request.ListParams
	State string `form:"state"`
}

func (r ListBookingsRequest) StateOrDefault() booking.State {
	if r.State == "" {
		return booking.StateAll
	}
	return booking.State(r.State)
}

type CreateBookingRequest struct {
	ItemID    string    `json:"item_id" binding:"required,uuid"`
	StartTime time.Time `json:"start" binding:"required"`
	EndTime   time.Time `json:"end" binding:"required"`
}

type SetStatusRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	StartTime time.Time        `json:"start"`
	EndTime   time.Time        `json:"end"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
