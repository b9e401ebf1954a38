package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gliderops/recoverby/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useEmptyDefaults points the global defaults-file path at an empty YAML so
// run tests never pick up a real ~/.config/recoverby.yaml.
func useEmptyDefaults(t *testing.T) {
	t.Helper()
	prev := cfgPath
	cfgPath = writeYAML(t, "")
	t.Cleanup(func() { cfgPath = prev })
}

func writeTelemetryCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sg644.csv")
	content := strings.Join([]string{
		"time,m_lithium_battery_relative_charge",
		"2025-01-10T00:00:00Z,90.0",
		"2025-01-11T00:00:00Z,80.0",
		"2025-01-12T00:00:00Z,70.0",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildWindow(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var o opts
		w, err := buildWindow(newTestCmd(&o), o)
		require.NoError(t, err)
		assert.True(t, w.IsZero())
	})

	t.Run("start and stop", func(t *testing.T) {
		var o opts
		cmd := newTestCmd(&o)
		o.start = "2025-01-10"
		o.stop = "2025-01-20T12:00:00Z"
		w, err := buildWindow(cmd, o)
		require.NoError(t, err)
		require.NotNil(t, w.Start)
		require.NotNil(t, w.Stop)
		assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *w.Start)
		assert.Equal(t, time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC), *w.Stop)
		assert.Nil(t, w.LastDays)
	})

	t.Run("ndays only when set", func(t *testing.T) {
		var o opts
		cmd := newTestCmd(&o)
		w, err := buildWindow(cmd, o)
		require.NoError(t, err)
		assert.Nil(t, w.LastDays, "untouched --ndays must not window")

		require.NoError(t, cmd.Flags().Set("ndays", "1.5"))
		w, err = buildWindow(cmd, o)
		require.NoError(t, err)
		require.NotNil(t, w.LastDays)
		assert.InDelta(t, 1.5, *w.LastDays, 1e-12)
	})

	t.Run("bad bounds", func(t *testing.T) {
		var o opts
		cmd := newTestCmd(&o)

		o.start = "next tuesday"
		_, err := buildWindow(cmd, o)
		require.ErrorIs(t, err, telemetry.ErrBadTime)
		assert.Contains(t, err.Error(), "--start")

		o.start = ""
		o.stop = "whenever"
		_, err = buildWindow(cmd, o)
		require.ErrorIs(t, err, telemetry.ErrBadTime)
		assert.Contains(t, err.Error(), "--stop")
	})
}

func TestRun_ConflictingFlagsRejected(t *testing.T) {
	useEmptyDefaults(t)

	var o opts
	cmd := newTestCmd(&o)
	o.start = "2025-01-10T00:00:00Z"
	require.NoError(t, cmd.Flags().Set("start", o.start))
	require.NoError(t, cmd.Flags().Set("ndays", "2"))

	// The conflict must be rejected before any file is touched: the input
	// path does not exist and the error is still the window conflict.
	err := run(cmd, o, []string{filepath.Join(t.TempDir(), "missing.csv")})
	require.ErrorIs(t, err, telemetry.ErrConflictingWindow)
}

func TestRun_DefaultsFileNDaysWithExplicitStart(t *testing.T) {
	// ndays in the defaults file plus --start on the command line must not
	// manufacture a conflict: the explicit bound wins and the run succeeds.
	prev := cfgPath
	cfgPath = writeYAML(t, "ndays: 3.5\n")
	t.Cleanup(func() { cfgPath = prev })

	var o opts
	cmd := newTestCmd(&o)
	o.start = "2025-01-10T00:00:00Z"
	require.NoError(t, cmd.Flags().Set("start", o.start))

	require.NoError(t, run(cmd, o, []string{writeTelemetryCSV(t)}))
}

func TestRun_OutputWriteFailureFails(t *testing.T) {
	useEmptyDefaults(t)

	// A plain file where the CSV output's parent directory should go makes
	// the write fail; the run must report that, not exit clean.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var o opts
	cmd := newTestCmd(&o)
	o.csvPath = filepath.Join(blocker, "rows.csv")

	err := run(cmd, o, []string{writeTelemetryCSV(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write csv")
}
