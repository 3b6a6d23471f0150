package helpers

import "cloud.google.com/go/civil"

// Mean accumulates the mean of the non-nil values it is given.
type Mean struct {
	sum   float64
	count int
}

func (m *Mean) Add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.count++
}

// Value is nil when nothing was added.
func (m Mean) Value() *float64 {
	if m.count == 0 {
		return nil
	}
	return Ptr(m.sum / float64(m.count))
}

// CompareDates orders civil dates for slices.SortFunc and friends.
func CompareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
