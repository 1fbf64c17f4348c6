package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pavalka/shareit/internal/item"
	"github.com/pavalka/shareit/internal/pkg/page"
	"github.com/pavalka/shareit/internal/user"
)

// memRepo is an in-memory Repository that records which methods were called.
type memRepo struct {
	mu       sync.Mutex
	bookings []*Booking
	calls    []string

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func newMemRepo() *memRepo {
	return &memRepo{locks: map[string]*sync.Mutex{}}
}

func (r *memRepo) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *memRepo) called(call string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (r *memRepo) seed(b *Booking) *Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	}
	r.bookings = append(r.bookings, b)
	return b
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Create")
	b.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	cp := *b
	r.bookings = append(r.bookings, &cp)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GetByID")
	for _, b := range r.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(_ context.Context, f Filter, p page.Page) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("List")
	var out []*Booking
	for _, b := range r.bookings {
		if f.Matches(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	if p.Sort().Key == "start_time" {
		desc := p.Sort().Direction == page.Desc
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].StartTime.After(out[j].StartTime)
			}
			return out[i].StartTime.Before(out[j].StartTime)
		})
	}
	total := len(out)
	start := min(p.Offset(), total)
	end := min(start+p.Size(), total)
	return out[start:end], total, nil
}

func (r *memRepo) ListByItems(_ context.Context, itemIDs []string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ListByItems")
	f := Filter{ItemIDs: itemIDs}
	var out []*Booking
	for _, b := range r.bookings {
		if f.Matches(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UpdateStatus")
	for _, b := range r.bookings {
		if b.ID == id {
			if b.Status != from {
				return ErrIllegalApprove
			}
			b.Status = to
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) HasOverlap(_ context.Context, itemID string, iv Interval) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("HasOverlap")
	for _, b := range r.bookings {
		if b.ItemID == itemID && b.Interval().Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) WithItemLock(_ context.Context, itemID string, fn func(Repository) error) error {
	r.lockMu.Lock()
	l, ok := r.locks[itemID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[itemID] = l
	}
	r.lockMu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(r)
}

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeItems map[string]*item.Item

func (f fakeItems) GetByID(_ context.Context, id string) (*item.Item, error) {
	if it, ok := f[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, item.ErrNotFound
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
