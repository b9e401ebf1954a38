package recovery

import (
	"time"

	"github.com/gliderops/recoverby/pkg/types"
)

// Config holds projection settings.
// Units:
//   - Threshold: same unit as the series values (fraction or percent)
//   - SlopeEps: absolute slope (units/day) below which the fit is treated as flat
type Config struct {
	Threshold float64
	SlopeEps  float64
}

// _defaultConfig returns a Config pre-filled with the tool's defaults:
// recovery at 15 percent charge, flat-slope cutoff near machine epsilon.
func _defaultConfig() *Config {
	return &Config{
		Threshold: 15,
		SlopeEps:  1e-12,
	}
}

// Fit is an ordinary least-squares line through battery level as a function of
// elapsed days since Origin: value = Intercept + Slope*days.
type Fit struct {
	Intercept float64 // fitted level at Origin
	Slope     float64 // units per day; negative while discharging

	// Standard errors of the estimates and the correlation coefficient.
	// Stderrs are zero for a two-point fit (no residual degrees of freedom).
	InterceptStderr float64
	SlopeStderr     float64
	RValue          float64

	Origin time.Time // earliest timestamp of the fitted series; regression time-zero
	N      int       // observations fitted
}

// RSquared returns the coefficient of determination.
func (f Fit) RSquared() float64 { return f.RValue * f.RValue }

// At evaluates the fitted line at an absolute time.
func (f Fit) At(t time.Time) float64 {
	days := t.Sub(f.Origin).Seconds() / 86400
	return f.Intercept + f.Slope*days
}

// Projection is the threshold crossing of a fitted trend.
type Projection struct {
	Fit

	// TCrossDays is the crossing offset from Origin in days. A negative value
	// means the fitted line crossed the threshold before Origin; it is
	// reported as-is and interpretation is left to the caller.
	TCrossDays types.Days

	// RecoverBy is the absolute crossing time: Origin + TCrossDays.
	RecoverBy time.Time
}
