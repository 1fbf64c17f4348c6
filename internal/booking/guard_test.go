package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavalka/shareit/internal/item"
)

func TestRelationOf(t *testing.T) {
	b := &Booking{BookerID: "booker", ItemOwnerID: "owner"}

	assert.Equal(t, RelationBooker, RelationOf("booker", b))
	assert.Equal(t, RelationOwner, RelationOf("owner", b))
	assert.Equal(t, RelationNone, RelationOf("stranger", b))
	assert.Equal(t, RelationNone, RelationOf("", &Booking{}))
}

func TestOwnsItem(t *testing.T) {
	it := &item.Item{ID: "i1", OwnerID: "owner"}

	assert.True(t, OwnsItem("owner", it))
	assert.False(t, OwnsItem("someone", it))
	assert.False(t, OwnsItem("", &item.Item{}))
}
