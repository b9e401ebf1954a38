package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sensor = "m_lithium_battery_relative_charge"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_CSV(t *testing.T) {
	// Unsorted rows, a NaN reading, a duplicate timestamp and a zoneless
	// time — the loader must hand back a clean UTC series.
	path := writeTemp(t, "sg644.csv", strings.Join([]string{
		"time," + sensor + ",m_depth",
		"2025-01-11T00:00:00Z,80.0,45.2",
		"2025-01-10 00:00:00,90.0,12.0",
		"2025-01-12T00:00:00Z,NaN,50.1",
		"2025-01-11T00:00:00Z,79.5,46.0",
		"2025-01-13T00:00:00Z,60.0,48.8",
	}, "\n"))

	s, err := LoadFile(path, sensor)
	require.NoError(t, err)
	require.Len(t, s, 3)

	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), s[0].Time)
	assert.Equal(t, time.UTC, s[0].Time.Location())
	assert.InDelta(t, 90.0, s[0].Value, 1e-12)
	assert.InDelta(t, 80.0, s[1].Value, 1e-12, "first duplicate wins")
	assert.InDelta(t, 60.0, s[2].Value, 1e-12)
}

func TestLoadCSV_EpochSeconds(t *testing.T) {
	s, err := LoadCSV(strings.NewReader(
		"time,"+sensor+"\n0,0.90\n86400,0.80\n172800,0.70\n"), sensor)
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, time.Unix(0, 0).UTC(), s[0].Time)
	assert.Equal(t, time.Unix(86400, 0).UTC(), s[1].Time)
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("time,m_depth\n0,1\n"), sensor)
	require.ErrorIs(t, err, ErrMissingVariable)
	assert.Contains(t, err.Error(), sensor)

	_, err = LoadCSV(strings.NewReader("stamp,"+sensor+"\n0,1\n"), sensor)
	require.ErrorIs(t, err, ErrMissingVariable)
	assert.Contains(t, err.Error(), "time")
}

func TestLoadCSV_BadValue(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("time,"+sensor+"\n0,eighty\n"), sensor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTemp(t, "dive.json", `[
	  {"time": "2025-01-10T00:00:00Z", "`+sensor+`": 90.0},
	  {"time": 1736553600, "`+sensor+`": 80.0},
	  {"time": "2025-01-12T00:00:00Z", "m_depth": 33.0},
	  {"time": "2025-01-13T00:00:00Z", "`+sensor+`": 70.0}
	]`)

	s, err := LoadFile(path, sensor)
	require.NoError(t, err)
	require.Len(t, s, 3, "record without the sensor key is dropped")
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), s[1].Time)
}

func TestLoadJSON_MissingSensorEverywhere(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(
		`[{"time": "2025-01-10T00:00:00Z", "m_depth": 1.0}]`), sensor)
	require.ErrorIs(t, err, ErrMissingVariable)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "dive.nc", "not a format we read")
	_, err := LoadFile(path, sensor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestParseTime_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-10T12:30:00Z", time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)},
		{"2025-01-10T12:30:00+02:00", time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC)},
		{"2025-01-10 12:30:00", time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)},
		{"2025-01-10T12:30:00", time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)},
		{"2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"86400", time.Unix(86400, 0).UTC()},
		{"86400.5", time.Unix(86400, 5e8).UTC()},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTime(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v want %v", got, tc.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTime("next tuesday")
	require.ErrorIs(t, err, ErrBadTime)
}
