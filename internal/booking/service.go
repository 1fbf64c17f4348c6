package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/pavalka/shareit/internal/item"
	"github.com/pavalka/shareit/internal/pkg/page"
	"github.com/pavalka/shareit/internal/user"
)

type CreateRequest struct {
	BookerID  string
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	SetStatus(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error)
	GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error)
	List(ctx context.Context, actorID string, role Role, state State, p page.Page) ([]*Booking, int, error)
	HasConflict(ctx context.Context, itemID string, iv Interval) (bool, error)

	// WindowFor returns the last/next bookings of it, or nil when viewerID is not its owner.
	WindowFor(ctx context.Context, viewerID string, it *item.Item) (*Window, error)
	// WindowsFor is WindowFor over many items with a single storage round-trip.
	// Items not owned by viewerID are absent from the result.
	WindowsFor(ctx context.Context, viewerID string, items []*item.Item) (map[string]Window, error)
}

// UserFinder resolves user ids; user.Service satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemFinder resolves item ids; item.Service satisfies it.
type ItemFinder interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

// Clock supplies the reference instant for temporal queries.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the wall clock in UTC.
var SystemClock Clock = systemClock{}

type service struct {
	repo  Repository
	users UserFinder
	items ItemFinder
	clock Clock
	log   *slog.Logger
}

func NewService(repo Repository, users UserFinder, items ItemFinder, clock Clock, log *slog.Logger) Service {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clock,
		log:   log.With(slog.String("component", "booking")),
	}
}

// Create registers a WAITING booking. Checks run in a fixed order so the
// caller always sees the most specific failure: booker and item existence,
// then ownership, then availability, then the time conflict.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	iv, err := NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if OwnsItem(req.BookerID, it) {
		return nil, ErrItemBookedByOwner
	}
	if !it.Available {
		return nil, ErrItemNotAvailable
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		StartTime:   iv.Start,
		EndTime:     iv.End,
		Status:      StatusWaiting,
	}

	err = s.repo.WithItemLock(ctx, it.ID, func(tx Repository) error {
		conflict, err := tx.HasOverlap(ctx, it.ID, iv)
		if err != nil {
			return err
		}
		if conflict {
			return ErrTimeConflict
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID),
		slog.String("item_id", b.ItemID),
		slog.String("booker_id", b.BookerID),
	)
	return b, nil
}

// SetStatus lets the item owner approve or reject a WAITING booking once.
// A booking of someone else's item is reported as not found.
func (s *service) SetStatus(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if RelationOf(actorID, b) != RelationOwner {
		return nil, ErrNotFound
	}
	if b.Status != StatusWaiting {
		return nil, ErrIllegalApprove
	}

	to := StatusRejected
	if approve {
		to = StatusApproved
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, to); err != nil {
		return nil, err
	}
	b.Status = to

	s.log.InfoContext(ctx, "booking decided",
		slog.String("booking_id", b.ID),
		slog.String("status", string(to)),
	)
	return b, nil
}

// GetByID returns the booking if actorID is its booker or the item owner.
func (s *service) GetByID(ctx context.Context, actorID, bookingID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if RelationOf(actorID, b) == RelationNone {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns the actor's bookings in the requested bucket, newest start first.
func (s *service) List(ctx context.Context, actorID string, role Role, state State, p page.Page) ([]*Booking, int, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, 0, err
	}

	filter, ok := FilterFor(actorID, role, state, s.clock.Now())
	if !ok {
		return nil, 0, nil
	}
	return s.repo.List(ctx, filter, p.WithSort(listingSort))
}

func (s *service) HasConflict(ctx context.Context, itemID string, iv Interval) (bool, error) {
	return s.repo.HasOverlap(ctx, itemID, iv)
}

func (s *service) WindowFor(ctx context.Context, viewerID string, it *item.Item) (*Window, error) {
	if !OwnsItem(viewerID, it) {
		return nil, nil
	}

	bookings, err := s.repo.ListByItems(ctx, []string{it.ID})
	if err != nil {
		return nil, err
	}
	w := ResolveWindow(bookings, s.clock.Now())
	return &w, nil
}

func (s *service) WindowsFor(ctx context.Context, viewerID string, items []*item.Item) (map[string]Window, error) {
	var owned []string
	for _, it := range items {
		if OwnsItem(viewerID, it) {
			owned = append(owned, it.ID)
		}
	}
	windows := make(map[string]Window, len(owned))
	if len(owned) == 0 {
		return windows, nil
	}

	bookings, err := s.repo.ListByItems(ctx, owned)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string][]*Booking, len(owned))
	for _, b := range bookings {
		byItem[b.ItemID] = append(byItem[b.ItemID], b)
	}

	now := s.clock.Now()
	for _, id := range owned {
		windows[id] = ResolveWindow(byItem[id], now)
	}
	return windows, nil
}
