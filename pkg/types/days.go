package types

import (
	"fmt"
	"math"
	"time"
)

// Days is a float64 wrapper representing an elapsed time in days.
type Days float64

// Humanized returns a human-readable string with automatic unit
// (minutes, hours, days). Negative spans keep their sign.
func (d Days) Humanized() string {
	v := float64(d)
	abs := math.Abs(v)
	switch {
	case abs >= 1:
		return fmt.Sprintf("%.1f days", v)
	case abs >= 1.0/24:
		return fmt.Sprintf("%.1f hours", v*24)
	default:
		return fmt.Sprintf("%.0f minutes", v*24*60)
	}
}

// Hours returns the number of hours.
func (d Days) Hours() float64 { return float64(d) * 24 }

// Seconds returns the number of seconds.
func (d Days) Seconds() float64 { return float64(d) * 86400 }

// Duration converts the span to a time.Duration.
func (d Days) Duration() time.Duration {
	return time.Duration(float64(d) * 86400 * float64(time.Second))
}
