package telemetry

import "errors"

var (
	// ErrConflictingWindow indicates that both absolute start/stop bounds and a
	// trailing last-days bound were requested for the same selection.
	ErrConflictingWindow = errors.New("telemetry: start/stop and last-days windows are mutually exclusive")

	// ErrBadWindow indicates a window with invalid parameters (negative
	// last-days span, or stop before start).
	ErrBadWindow = errors.New("telemetry: invalid window")

	// ErrEmptyWindow indicates that a window excluded every observation.
	ErrEmptyWindow = errors.New("telemetry: window excludes all observations")

	// ErrInsufficientData indicates that fewer than two observations remain,
	// which is not enough to fit a line.
	ErrInsufficientData = errors.New("telemetry: need at least two observations")

	// ErrMissingVariable indicates that an input file lacks the time column or
	// the requested sensor column.
	ErrMissingVariable = errors.New("telemetry: variable not present")

	// ErrBadTime indicates a timestamp that matched none of the accepted
	// layouts.
	ErrBadTime = errors.New("telemetry: unparseable timestamp")
)
