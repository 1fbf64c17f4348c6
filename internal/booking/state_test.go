package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func TestFilterForScoping(t *testing.T) {
	f, ok := FilterFor("u1", RoleBooker, StateAll, refNow)
	require.True(t, ok)
	assert.Equal(t, Filter{BookerID: "u1"}, f)

	f, ok = FilterFor("u1", RoleOwner, StateAll, refNow)
	require.True(t, ok)
	assert.Equal(t, Filter{OwnerID: "u1"}, f)

	_, ok = FilterFor("u1", Role("ADMIN"), StateAll, refNow)
	assert.False(t, ok)
}

func TestFilterForUnknownState(t *testing.T) {
	for _, s := range []State{"", "all", "UNSUPPORTED_STATUS", "APPROVED"} {
		_, ok := FilterFor("u1", RoleBooker, s, refNow)
		assert.False(t, ok, "state %q", s)
	}
}

func TestFilterPredicates(t *testing.T) {
	mk := func(startOffset, endOffset time.Duration, status Status) *Booking {
		return &Booking{
			BookerID:    "booker",
			ItemOwnerID: "owner",
			StartTime:   refNow.Add(startOffset),
			EndTime:     refNow.Add(endOffset),
			Status:      status,
		}
	}

	past := mk(-48*time.Hour, -24*time.Hour, StatusApproved)
	current := mk(-time.Hour, time.Hour, StatusApproved)
	endsNow := mk(-time.Hour, 0, StatusApproved)
	startsNow := mk(0, time.Hour, StatusWaiting)
	future := mk(24*time.Hour, 48*time.Hour, StatusWaiting)
	rejected := mk(24*time.Hour, 48*time.Hour, StatusRejected)

	tests := []struct {
		state State
		want  []*Booking
	}{
		{StateAll, []*Booking{past, current, endsNow, startsNow, future, rejected}},
		{StatePast, []*Booking{past}},
		{StateCurrent, []*Booking{current, endsNow, startsNow}},
		{StateFuture, []*Booking{future, rejected}},
		{StateWaiting, []*Booking{startsNow, future}},
		{StateRejected, []*Booking{rejected}},
	}

	all := []*Booking{past, current, endsNow, startsNow, future, rejected}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			f, ok := FilterFor("booker", RoleBooker, tt.state, refNow)
			require.True(t, ok)

			var got []*Booking
			for _, b := range all {
				if f.Matches(b) {
					got = append(got, b)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterRoleExcludesOthers(t *testing.T) {
	b := &Booking{BookerID: "booker", ItemOwnerID: "owner", StartTime: refNow, EndTime: refNow.Add(time.Hour)}

	asBooker, _ := FilterFor("owner", RoleBooker, StateAll, refNow)
	asOwner, _ := FilterFor("booker", RoleOwner, StateAll, refNow)

	assert.False(t, asBooker.Matches(b), "owner is not the booker")
	assert.False(t, asOwner.Matches(b), "booker is not the owner")
}

// Every booking lands in exactly one of PAST, CURRENT and FUTURE.
func TestTemporalPartition(t *testing.T) {
	var bookings []*Booking
	for start := -72; start <= 72; start += 6 {
		for length := 1; length <= 48; length += 7 {
			s := refNow.Add(time.Duration(start) * time.Hour)
			bookings = append(bookings, &Booking{
				BookerID:  "booker",
				StartTime: s,
				EndTime:   s.Add(time.Duration(length) * time.Hour),
			})
		}
	}
	// Boundary cases at exactly now.
	bookings = append(bookings,
		&Booking{BookerID: "booker", StartTime: refNow.Add(-time.Hour), EndTime: refNow},
		&Booking{BookerID: "booker", StartTime: refNow, EndTime: refNow.Add(time.Hour)},
	)

	buckets := []State{StatePast, StateCurrent, StateFuture}
	for _, b := range bookings {
		hits := 0
		for _, s := range buckets {
			f, ok := FilterFor("booker", RoleBooker, s, refNow)
			require.True(t, ok)
			if f.Matches(b) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "booking [%s, %s) must fall into exactly one bucket", b.StartTime, b.EndTime)
	}
}
