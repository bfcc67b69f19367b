package booking

import "time"

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// overlap. Touching boundaries do not overlap, so back-to-back bookings
// are allowed. Inputs must be absolute instants; the predicate never
// looks at wall-clock representations.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
