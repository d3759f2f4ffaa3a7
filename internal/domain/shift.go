package domain

import "time"

// A single operational shift in the planning horizon. Shifts are contiguous,
// non-overlapping and zero-indexed; the index doubles as the discrete time
// unit of the optimization model.
type Shift struct {
	ID        int
	StartTime time.Time
	EndTime   time.Time
}

func (s Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
