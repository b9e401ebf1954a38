package recovery

import "errors"

var (
	// ErrNoTrend indicates a flat (or numerically degenerate) fitted slope:
	// the trend never reaches the threshold, so no finite crossing time exists.
	ErrNoTrend = errors.New("recovery: fitted slope is flat, threshold is never crossed")

	// ErrSingularFit indicates that every observation shares one timestamp, so
	// the slope is undefined.
	ErrSingularFit = errors.New("recovery: all observations share a single timestamp")
)
