package booking

import "time"

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval rejects empty and inverted spans.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps is the symmetric half-open test s1 < e2 && s2 < e1.
// Intervals that only touch at a boundary do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// EndedBefore reports End < t.
func (i Interval) EndedBefore(t time.Time) bool {
	return i.End.Before(t)
}

// StartsAfter reports Start > t.
func (i Interval) StartsAfter(t time.Time) bool {
	return i.Start.After(t)
}

// Spans reports Start <= t <= End. Both ends are inclusive so that every
// instant falls into exactly one of past, current and future.
func (i Interval) Spans(t time.Time) bool {
	return !i.Start.After(t) && !i.End.Before(t)
}
