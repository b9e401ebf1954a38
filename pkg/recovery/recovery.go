// Package recovery fits a linear discharge trend to battery telemetry and
// projects the time at which the trend crosses a recovery threshold. Both
// entry points are pure: they read the series, return a result, and touch
// nothing else.
package recovery

import (
	"math"
	"time"

	"github.com/gliderops/recoverby/pkg/telemetry"
	"github.com/gliderops/recoverby/pkg/types"
)

// Projector fits and projects battery series against a fixed configuration.
type Projector struct {
	cfg *Config
}

// New creates a projector with the given config. Zero-valued fields fall back
// to defaults; Threshold may legitimately be any level in series units, so only
// SlopeEps <= 0 is defaulted, and a nil cfg takes defaults wholesale.
func New(cfg *Config) *Projector {
	base := _defaultConfig()
	if cfg == nil {
		return &Projector{cfg: base}
	}
	merged := *cfg
	if merged.SlopeEps <= 0 {
		merged.SlopeEps = base.SlopeEps
	}
	return &Projector{cfg: &merged}
}

// Threshold returns the configured recovery threshold.
func (p *Projector) Threshold() float64 { return p.cfg.Threshold }

// Fit computes the ordinary least-squares line through battery level versus
// elapsed days since the earliest timestamp of the series. The series must
// hold at least two observations on at least two distinct timestamps.
func (p *Projector) Fit(s telemetry.Series) (Fit, error) {
	n := len(s)
	if n < 2 {
		return Fit{}, telemetry.ErrInsufficientData
	}
	origin := s.MinTime()

	xs := make([]float64, n)
	var sumX, sumY float64
	for i, ob := range s {
		xs[i] = ob.Time.Sub(origin).Seconds() / 86400
		sumX += xs[i]
		sumY += ob.Value
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXX, ssXY, ssYY float64
	for i, ob := range s {
		dx := xs[i] - meanX
		dy := ob.Value - meanY
		ssXX += dx * dx
		ssXY += dx * dy
		ssYY += dy * dy
	}
	if ssXX == 0 {
		return Fit{}, ErrSingularFit
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	fit := Fit{
		Intercept: intercept,
		Slope:     slope,
		Origin:    origin,
		N:         n,
	}
	if ssYY > 0 {
		fit.RValue = ssXY / math.Sqrt(ssXX*ssYY)
	}
	if n > 2 {
		// Residual variance; clamp tiny negative values from cancellation.
		sse := ssYY - slope*ssXY
		if sse < 0 {
			sse = 0
		}
		mse := sse / float64(n-2)
		fit.SlopeStderr = math.Sqrt(mse / ssXX)
		fit.InterceptStderr = fit.SlopeStderr * math.Sqrt(ssXX/float64(n)+meanX*meanX)
	}
	return fit, nil
}

// Project fits the series and solves for the time at which the fitted line
// crosses the configured threshold. A flat slope (within SlopeEps) fails with
// ErrNoTrend. A crossing in the past is returned as-is with a negative
// TCrossDays.
func (p *Projector) Project(s telemetry.Series) (Projection, error) {
	fit, err := p.Fit(s)
	if err != nil {
		return Projection{}, err
	}
	if math.Abs(fit.Slope) < p.cfg.SlopeEps {
		return Projection{}, ErrNoTrend
	}
	tCross := (p.cfg.Threshold - fit.Intercept) / fit.Slope
	return Projection{
		Fit:        fit,
		TCrossDays: types.Days(tCross),
		RecoverBy:  fit.Origin.Add(time.Duration(tCross * 86400 * float64(time.Second))),
	}, nil
}
