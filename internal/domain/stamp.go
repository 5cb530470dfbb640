package domain

import "time"

// Stamp is a point in time passed to the persistence layer. It carries a
// "now" sentinel so callers can ask the database to use its own clock
// instead of shipping a wall-clock value over the wire.
//
// The zero value means "absent" (e.g. no end time on a new record).
type Stamp struct {
	Time time.Time
	// IsNow marks the sentinel: resolve to the database clock at
	// statement execution time. Time is ignored when set.
	IsNow bool
}

// Now returns the sentinel stamp resolved by the database clock.
func Now() Stamp {
	return Stamp{IsNow: true}
}

// At returns a stamp for an explicit instant.
func At(t time.Time) Stamp {
	return Stamp{Time: t}
}

// IsZero reports whether the stamp is absent.
func (s Stamp) IsZero() bool {
	return !s.IsNow && s.Time.IsZero()
}
