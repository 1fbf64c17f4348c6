package booking

import (
	"math"
	"time"
)

// Window holds the bookings nearest to a reference instant on either side.
// Either field may be nil.
type Window struct {
	Last *Booking
	Next *Booking
}

// ResolveWindow picks the booking that ended most recently before now and
// the one that starts soonest after now. Bookings spanning now are neither.
// On equal distance the earlier booking in the input wins.
func ResolveWindow(bookings []*Booking, now time.Time) Window {
	var w Window
	lastDist := time.Duration(math.MaxInt64)
	nextDist := time.Duration(math.MaxInt64)

	for _, b := range bookings {
		switch {
		case b.EndTime.Before(now):
			if d := now.Sub(b.EndTime); d < lastDist {
				lastDist = d
				w.Last = b
			}
		case b.StartTime.After(now):
			if d := b.StartTime.Sub(now); d < nextDist {
				nextDist = d
				w.Next = b
			}
		}
	}
	return w
}
