package booking

import (
	"slices"
	"time"

	"github.com/pavalka/shareit/internal/pkg/page"
)

// Filter is the query shape the repository understands. Every non-zero
// field narrows the result.
type Filter struct {
	BookerID   string
	OwnerID    string
	ItemIDs    []string
	Status     Status
	EndBefore  *time.Time // end < t
	StartAfter *time.Time // start > t
	ActiveAt   *time.Time // start <= t <= end
}

// listingSort is applied to every listing regardless of what the caller asked for.
var listingSort = page.By("start_time", page.Desc)

// FilterFor maps a role-scoped logical state onto a Filter evaluated at now.
// ok is false for unknown roles or states; callers answer those with an
// empty result instead of an error.
func FilterFor(actorID string, role Role, state State, now time.Time) (f Filter, ok bool) {
	switch role {
	case RoleBooker:
		f.BookerID = actorID
	case RoleOwner:
		f.OwnerID = actorID
	default:
		return Filter{}, false
	}

	switch state {
	case StateAll:
	case StatePast:
		f.EndBefore = &now
	case StateFuture:
		f.StartAfter = &now
	case StateCurrent:
		f.ActiveAt = &now
	case StateWaiting:
		f.Status = StatusWaiting
	case StateRejected:
		f.Status = StatusRejected
	default:
		return Filter{}, false
	}
	return f, true
}

// Matches evaluates f in memory. The SQL built by the pgx repository
// expresses the same predicate.
func (f Filter) Matches(b *Booking) bool {
	if f.BookerID != "" && b.BookerID != f.BookerID {
		return false
	}
	if f.OwnerID != "" && b.ItemOwnerID != f.OwnerID {
		return false
	}
	if len(f.ItemIDs) > 0 && !slices.Contains(f.ItemIDs, b.ItemID) {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	iv := b.Interval()
	if f.EndBefore != nil && !iv.EndedBefore(*f.EndBefore) {
		return false
	}
	if f.StartAfter != nil && !iv.StartsAfter(*f.StartAfter) {
		return false
	}
	if f.ActiveAt != nil && !iv.Spans(*f.ActiveAt) {
		return false
	}
	return true
}
