package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pavalka/shareit/internal/auth"
	"github.com/pavalka/shareit/internal/booking"
	"github.com/pavalka/shareit/internal/item"
	"github.com/pavalka/shareit/internal/pkg/page"
	"github.com/pavalka/shareit/internal/pkg/request"
	"github.com/pavalka/shareit/internal/pkg/response"
)

// Windows resolves the last/next bookings shown to an item's owner.
// booking.Service satisfies it.
type Windows interface {
	WindowFor(ctx context.Context, viewerID string, it *item.Item) (*booking.Window, error)
	WindowsFor(ctx context.Context, viewerID string, items []*item.Item) (map[string]booking.Window, error)
}

type Handler struct {
	service         item.Service
	windows         Windows
	defaultPageSize int
}

func NewHandler(service item.Service, windows Windows, defaultPageSize int) *Handler {
	return &Handler{
		service:         service,
		windows:         windows,
		defaultPageSize: defaultPageSize,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}
	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), uri.ID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// Get returns an item. Its owner also sees the last and next bookings.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	it, err := h.service.GetByID(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := NewItemResponse(it)
	w, err := h.windows.WindowFor(ctx, auth.GetUserID(c), it)
	if err != nil {
		response.Error(c, err)
		return
	}
	if w != nil {
		resp = resp.WithWindow(*w)
	}

	c.JSON(http.StatusOK, resp)
}

// List returns the current user's items with their booking windows.
func (h *Handler) List(c *gin.Context) {
	var query request.ListParams
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err)
		return
	}
	p, err := query.ToPage(h.defaultPageSize, page.Sort{})
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := auth.GetUserID(c)
	items, total, err := h.service.ListByOwner(ctx, userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	windows, err := h.windows.WindowsFor(ctx, userID, items)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
		if w, ok := windows[it.ID]; ok {
			resp[i] = resp[i].WithWindow(w)
		}
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, p, total))
}

func (h *Handler) Search(c *gin.Context) {
	var query SearchItemsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err)
		return
	}
	p, err := query.ToPage(h.defaultPageSize, page.Sort{})
	if err != nil {
		response.Error(c, err)
		return
	}

	items, total, err := h.service.Search(c.Request.Context(), query.Text, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, p, total))
}
