package booking

import "github.com/pavalka/shareit/internal/item"

// Relation is how an actor relates to a booking.
type Relation int

const (
	RelationNone Relation = iota
	RelationBooker
	RelationOwner
)

// RelationOf classifies actorID against b. An owner can never be the
// booker of their own item, so the two cases do not overlap.
func RelationOf(actorID string, b *Booking) Relation {
	switch actorID {
	case "":
		return RelationNone
	case b.ItemOwnerID:
		return RelationOwner
	case b.BookerID:
		return RelationBooker
	default:
		return RelationNone
	}
}

// OwnsItem reports whether actorID owns it.
func OwnsItem(actorID string, it *item.Item) bool {
	return actorID != "" && it.OwnerID == actorID
}
