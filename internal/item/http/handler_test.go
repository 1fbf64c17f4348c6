package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavalka/shareit/internal/booking"
	"github.com/pavalka/shareit/internal/item"
	"github.com/pavalka/shareit/internal/pkg/page"
	"github.com/pavalka/shareit/internal/pkg/response"
)

const (
	ownerID  = "11111111-1111-1111-1111-111111111111"
	viewerID = "22222222-2222-2222-2222-222222222222"
	itemID   = "33333333-3333-3333-3333-333333333333"
)

type stubItems struct {
	item.Service

	item     *item.Item
	items    []*item.Item
	err      error
	lastText string
	create   item.CreateRequest
	update   item.UpdateRequest
}

func (s *stubItems) Create(_ context.Context, ownerID string, req item.CreateRequest) (*item.Item, error) {
	s.create = req
	if s.err != nil {
		return nil, s.err
	}
	return &item.Item{ID: itemID, OwnerID: ownerID, Name: req.Name, Description: req.Description, Available: *req.Available}, nil
}

func (s *stubItems) GetByID(context.Context, string) (*item.Item, error) {
	return s.item, s.err
}

func (s *stubItems) Update(_ context.Context, _, _ string, req item.UpdateRequest) (*item.Item, error) {
	s.update = req
	return s.item, s.err
}

func (s *stubItems) ListByOwner(context.Context, string, page.Page) ([]*item.Item, int, error) {
	return s.items, len(s.items), s.err
}

func (s *stubItems) Search(_ context.Context, text string, _ page.Page) ([]*item.Item, int, error) {
	s.lastText = text
	return s.items, len(s.items), s.err
}

// stubWindows hands out windows only to ownerID, like the real resolver.
type stubWindows struct {
	window booking.Window
	calls  int
}

func (s *stubWindows) WindowFor(_ context.Context, viewer string, it *item.Item) (*booking.Window, error) {
	s.calls++
	if viewer != it.OwnerID {
		return nil, nil
	}
	w := s.window
	return &w, nil
}

func (s *stubWindows) WindowsFor(_ context.Context, viewer string, items []*item.Item) (map[string]booking.Window, error) {
	s.calls++
	out := map[string]booking.Window{}
	for _, it := range items {
		if it.OwnerID == viewer {
			out[it.ID] = s.window
		}
	}
	return out, nil
}

func setupRouter(items item.Service, windows Windows, actorID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	asUser := func(c *gin.Context) {
		c.Set("userID", actorID)
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(items, windows, 10), asUser)
	return r
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func sampleWindow() booking.Window {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	return booking.Window{
		Last: &booking.Booking{ID: "b-last", BookerID: viewerID, StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-24 * time.Hour)},
		Next: &booking.Booking{ID: "b-next", BookerID: viewerID, StartTime: now.Add(24 * time.Hour), EndTime: now.Add(48 * time.Hour)},
	}
}

func TestGetItemShowsWindowToOwner(t *testing.T) {
	items := &stubItems{item: &item.Item{ID: itemID, OwnerID: ownerID, Name: "Drill", Available: true}}
	r := setupRouter(items, &stubWindows{window: sampleWindow()}, ownerID)

	w := doRequest(r, http.MethodGet, "/v1/items/"+itemID, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.LastBooking)
	require.NotNil(t, resp.NextBooking)
	assert.Equal(t, "b-last", resp.LastBooking.ID)
	assert.Equal(t, "b-next", resp.NextBooking.ID)
	assert.Equal(t, viewerID, resp.NextBooking.BookerID)
}

func TestGetItemHidesWindowFromOthers(t *testing.T) {
	items := &stubItems{item: &item.Item{ID: itemID, OwnerID: ownerID, Name: "Drill", Available: true}}
	r := setupRouter(items, &stubWindows{window: sampleWindow()}, viewerID)

	w := doRequest(r, http.MethodGet, "/v1/items/"+itemID, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "last_booking")
	assert.NotContains(t, w.Body.String(), "next_booking")
}

func TestGetItemErrors(t *testing.T) {
	r := setupRouter(&stubItems{err: item.ErrNotFound}, &stubWindows{}, ownerID)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/v1/items/"+itemID, "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/v1/items/not-a-uuid", "").Code)
}

func TestListItemsAttachesWindows(t *testing.T) {
	items := &stubItems{items: []*item.Item{
		{ID: itemID, OwnerID: ownerID, Name: "Drill"},
		{ID: "other", OwnerID: ownerID, Name: "Saw"},
	}}
	windows := &stubWindows{window: booking.Window{Next: sampleWindow().Next}}
	r := setupRouter(items, windows, ownerID)

	w := doRequest(r, http.MethodGet, "/v1/items?size=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, windows.calls, "windows are loaded once per page")

	var resp response.PageResponse[ItemResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 5, resp.Size)
	for _, it := range resp.Items {
		assert.Nil(t, it.LastBooking)
		require.NotNil(t, it.NextBooking)
		assert.Equal(t, "b-next", it.NextBooking.ID)
	}
}

func TestCreateItem(t *testing.T) {
	items := &stubItems{}
	r := setupRouter(items, &stubWindows{}, ownerID)

	w := doRequest(r, http.MethodPost, "/v1/items", `{"name":"Drill","description":"Cordless","available":false}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, items.create.Available)
	assert.False(t, *items.create.Available)
	assert.Contains(t, w.Body.String(), `"owner_id":"`+ownerID+`"`)

	w = doRequest(r, http.MethodPost, "/v1/items", `{"name":"Drill","description":"Cordless"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItemPartial(t *testing.T) {
	items := &stubItems{item: &item.Item{ID: itemID, OwnerID: ownerID, Name: "Drill", Available: false}}
	r := setupRouter(items, &stubWindows{}, ownerID)

	w := doRequest(r, http.MethodPatch, "/v1/items/"+itemID, `{"available":false}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, items.update.Name)
	assert.Nil(t, items.update.Description)
	require.NotNil(t, items.update.Available)
	assert.False(t, *items.update.Available)
}

func TestSearchItems(t *testing.T) {
	items := &stubItems{items: []*item.Item{{ID: itemID, OwnerID: ownerID, Name: "Drill", Available: true}}}
	windows := &stubWindows{}
	r := setupRouter(items, windows, viewerID)

	w := doRequest(r, http.MethodGet, "/v1/items/search?text=dRiLl", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dRiLl", items.lastText)
	assert.Zero(t, windows.calls)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
