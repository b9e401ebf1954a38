package telemetry

import (
	"math"
	"sort"
	"time"
)

// Observation is a single battery reading: a UTC timestamp and the battery
// level in the series' own unit (fraction or percent, consistent across the
// whole series and with the projection threshold).
type Observation struct {
	Time  time.Time
	Value float64
}

// Series is an ordered sequence of observations. A normalized Series is sorted
// by time with NaN values removed and duplicate timestamps collapsed.
type Series []Observation

// Normalize returns a cleaned copy of the series: observations with NaN or Inf
// values dropped, the rest stably sorted by time, and duplicate timestamps
// collapsed keeping the first occurrence. The receiver is not modified.
func (s Series) Normalize() Series {
	out := make(Series, 0, len(s))
	for _, ob := range s {
		if math.IsNaN(ob.Value) || math.IsInf(ob.Value, 0) {
			continue
		}
		out = append(out, ob)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	dedup := out[:0]
	for _, ob := range out {
		if len(dedup) > 0 && ob.Time.Equal(dedup[len(dedup)-1].Time) {
			continue
		}
		dedup = append(dedup, ob)
	}
	return dedup
}

// MinTime returns the earliest timestamp. The series must be non-empty.
func (s Series) MinTime() time.Time {
	min := s[0].Time
	for _, ob := range s[1:] {
		if ob.Time.Before(min) {
			min = ob.Time
		}
	}
	return min
}

// MaxTime returns the latest timestamp. The series must be non-empty.
func (s Series) MaxTime() time.Time {
	max := s[0].Time
	for _, ob := range s[1:] {
		if ob.Time.After(max) {
			max = ob.Time
		}
	}
	return max
}

// SpanDays returns the time span of the series in days.
func (s Series) SpanDays() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.MaxTime().Sub(s.MinTime()).Seconds() / 86400
}
