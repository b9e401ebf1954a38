package telemetry

import (
	"fmt"
	"time"
)

// Window is an optional sub-selection of a series. Start/Stop bound the series
// by absolute time (a nil bound is unbounded on that side); LastDays keeps only
// the trailing span anchored at the newest observation. The two modes are
// mutually exclusive.
type Window struct {
	Start    *time.Time
	Stop     *time.Time
	LastDays *float64
}

// IsZero reports whether no windowing was requested.
func (w Window) IsZero() bool {
	return w.Start == nil && w.Stop == nil && w.LastDays == nil
}

// Select returns the sub-series inside the window. Selection is pure: the
// result is always a fresh slice and the receiver is never modified. Fewer
// than two survivors is an error — ErrEmptyWindow when the window excluded
// everything, ErrInsufficientData when a single observation remains (or the
// input itself is too short).
func (s Series) Select(w Window) (Series, error) {
	if w.LastDays != nil && (w.Start != nil || w.Stop != nil) {
		return nil, ErrConflictingWindow
	}
	if w.LastDays != nil && *w.LastDays < 0 {
		return nil, fmt.Errorf("%w: last-days span %v is negative", ErrBadWindow, *w.LastDays)
	}
	if w.Start != nil && w.Stop != nil && w.Stop.Before(*w.Start) {
		return nil, fmt.Errorf("%w: stop %v precedes start %v", ErrBadWindow, w.Stop, w.Start)
	}

	out := make(Series, 0, len(s))
	switch {
	case w.LastDays != nil:
		if len(s) == 0 {
			return nil, ErrInsufficientData
		}
		cutoff := s.MaxTime().Add(-daysToDuration(*w.LastDays))
		for _, ob := range s {
			if !ob.Time.Before(cutoff) {
				out = append(out, ob)
			}
		}
	case w.Start != nil || w.Stop != nil:
		for _, ob := range s {
			if w.Start != nil && ob.Time.Before(*w.Start) {
				continue
			}
			if w.Stop != nil && ob.Time.After(*w.Stop) {
				continue
			}
			out = append(out, ob)
		}
	default:
		out = append(out, s...)
	}

	switch len(out) {
	case 0:
		if w.IsZero() {
			// The input itself was too short; no window to blame.
			return nil, ErrInsufficientData
		}
		return nil, ErrEmptyWindow
	case 1:
		return nil, fmt.Errorf("%w: only one observation at %v remains after windowing",
			ErrInsufficientData, out[0].Time)
	}
	return out, nil
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 86400 * float64(time.Second))
}
