// Package telemetry provides the battery time-series model for recovery
// estimation: loading observation files, normalizing them, and selecting the
// sub-series that the trend projector fits against.
//
// Overview
//
//   - Observation / Series:
//     An Observation is one (UTC timestamp, battery level) pair. A Series is an
//     ordered slice of Observations. Loaders return a normalized Series: sorted
//     by time, missing (NaN) values dropped, duplicate timestamps collapsed to
//     the first occurrence.
//
//   - Loaders:
//     LoadFile dispatches on the file extension (.csv or .json) and decodes the
//     named sensor column against the time column. All timestamps are
//     normalized to UTC at this boundary; zoneless layouts are interpreted as
//     UTC. Accepted time forms: RFC 3339, "2006-01-02 15:04:05",
//     "2006-01-02T15:04:05", "2006-01-02", and numeric epoch seconds.
//
//   - Selection:
//     Series.Select applies a Window — either absolute start/stop bounds or a
//     trailing last-days span anchored at the newest observation, never both —
//     and returns a fresh Series. Fewer than two survivors is an error: zero is
//     ErrEmptyWindow (bad bounds), exactly one is ErrInsufficientData (usually
//     a misconfigured window).
//
//   - Errors (errs.go):
//     ErrConflictingWindow : both windowing modes requested
//     ErrBadWindow         : negative last-days span or stop before start
//     ErrEmptyWindow       : window excluded every observation
//     ErrInsufficientData  : fewer than two observations remain
//     ErrMissingVariable   : time or sensor column absent from an input file
//     ErrBadTime           : timestamp matched no accepted layout
//
// The package does no fitting itself; see pkg/recovery for the projector that
// consumes a selected Series.
package telemetry
