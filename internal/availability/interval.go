// internal/availability/interval.go
package availability

import "time"

// Interval is a half-open-ish time range; which endpoints count depends on the
// operation. Overlap treats both intervals as open, containment treats the
// outer interval as closed.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two intervals intersect as open intervals.
// Touching endpoints (one ends exactly when the other starts) do not overlap,
// so a meeting may end at the instant a busy block begins.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether inner lies fully within iv, endpoints inclusive.
func (iv Interval) Contains(inner Interval) bool {
	return !inner.Start.Before(iv.Start) && !inner.End.After(iv.End)
}
