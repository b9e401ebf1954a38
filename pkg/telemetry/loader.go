package telemetry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for timestamp columns and --start/--stop values. Zoneless
// layouts are interpreted as UTC.
var timeLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// ParseTime decodes a timestamp string in any accepted layout, or as numeric
// epoch seconds, and normalizes it to UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, time.UTC)
		}
		if err == nil {
			return t.UTC(), nil
		}
	}
	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(0, int64(sec*1e9)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, s)
}

// LoadFile loads and normalizes the (time, sensor) series from a telemetry
// file, dispatching on the extension (.csv or .json).
func LoadFile(path, sensor string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(f, sensor)
	case ".json":
		return LoadJSON(f, sensor)
	default:
		return nil, fmt.Errorf("telemetry: unsupported file type %q", ext)
	}
}

// LoadCSV decodes a headered CSV stream holding a "time" column and the named
// sensor column. Rows with an empty or NaN sensor value are dropped; the
// result is normalized.
func LoadCSV(r io.Reader, sensor string) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("telemetry: read csv header: %w", err)
	}
	timeCol, sensorCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "time":
			timeCol = i
		case sensor:
			sensorCol = i
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingVariable, "time")
	}
	if sensorCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingVariable, sensor)
	}

	var s Series
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("telemetry: read csv line %d: %w", line, err)
		}
		raw := strings.TrimSpace(rec[sensorCol])
		if raw == "" || strings.EqualFold(raw, "nan") {
			continue
		}
		ts, err := ParseTime(rec[timeCol])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("telemetry: csv line %d: bad %s value %q", line, sensor, raw)
		}
		s = append(s, Observation{Time: ts, Value: v})
	}
	return s.Normalize(), nil
}

// LoadJSON decodes a JSON array of records keyed by column name, e.g.
// [{"time": "2025-01-05T00:00:00Z", "m_lithium_battery_relative_charge": 87.2}, ...].
// Time values may be strings in any accepted layout or numeric epoch seconds.
// Records missing the sensor key are dropped; the result is normalized.
func LoadJSON(r io.Reader, sensor string) (Series, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("telemetry: decode json: %w", err)
	}

	sawTime, sawSensor := false, false
	var s Series
	for i, rec := range records {
		rawTime, ok := rec["time"]
		if !ok {
			continue
		}
		sawTime = true
		rawVal, ok := rec[sensor]
		if !ok {
			continue
		}
		sawSensor = true

		var (
			ts  time.Time
			err error
		)
		switch tv := rawTime.(type) {
		case string:
			ts, err = ParseTime(tv)
		case float64:
			ts = time.Unix(0, int64(tv*1e9)).UTC()
		default:
			err = fmt.Errorf("%w: record %d has non-scalar time", ErrBadTime, i)
		}
		if err != nil {
			return nil, err
		}

		v, ok := rawVal.(float64)
		if !ok {
			return nil, fmt.Errorf("telemetry: record %d: %s is not numeric", i, sensor)
		}
		s = append(s, Observation{Time: ts, Value: v})
	}

	if len(records) > 0 && !sawTime {
		return nil, fmt.Errorf("%w: %q", ErrMissingVariable, "time")
	}
	if len(records) > 0 && !sawSensor {
		return nil, fmt.Errorf("%w: %q", ErrMissingVariable, sensor)
	}
	return s.Normalize(), nil
}
