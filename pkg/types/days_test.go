package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDays_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Days
		want string
	}{
		{Days(4), "4.0 days"},
		{Days(1), "1.0 days"},         // exactly one day
		{Days(0.5), "12.0 hours"},     // half a day
		{Days(1.0 / 24), "1.0 hours"}, // exactly one hour
		{Days(0.01), "14 minutes"},    // 14.4 minutes, rounded
		{Days(0), "0 minutes"},        // zero span
		{Days(-2), "-2.0 days"},       // negative spans keep their sign
		{Days(-0.25), "-6.0 hours"},   // negative sub-day
		{Days(365.25), "365.2 days"},  // long deployments stay in days
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
		})
	}
}

func TestDays_Conversions(t *testing.T) {
	d := Days(1.5)
	assert.InDelta(t, 36.0, d.Hours(), 1e-12)
	assert.InDelta(t, 129600.0, d.Seconds(), 1e-12)
	assert.Equal(t, 36*time.Hour, d.Duration())

	assert.Equal(t, -12*time.Hour, Days(-0.5).Duration())
}
