package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gliderops/recoverby/pkg/recovery"
	"github.com/gliderops/recoverby/pkg/telemetry"
)

var (
	pretty  bool
	verbose bool
	cfgPath string
)

type opts struct {
	// selection
	sensor string
	start  string
	stop   string
	ndays  float64

	// model
	threshold float64

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
	plot     bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "recoverby FILE...",
		Short: "Glider battery recovery-time estimation tool",
		Long: `The recoverby tool estimates when an underwater glider will need to be
recovered, from the battery charge telemetry it has reported so far. It fits a
linear trend to the charge series and projects when the trend crosses the
recovery threshold.

The fit assumes roughly constant usage in time. If the mission is changing
modes, set --start/--stop (or --ndays) to a steady stretch of the record.

Examples:
  recoverby --threshold 15 sg644_telemetry.csv
  recoverby --ndays 7 --plot deployment1.csv deployment2.csv
  recoverby --start 2025-01-10T00:00:00Z --stop 2025-01-20T00:00:00Z dive_log.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args)
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "per-file text blocks instead of CSV-like lines")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&cfgPath, "config", "", "YAML defaults file (default ~/.config/recoverby.yaml)")

	root.Flags().StringVar(&o.sensor, "sensor", "m_lithium_battery_relative_charge", "battery variable to fit")
	root.Flags().StringVar(&o.start, "start", "", "only use data at or after this UTC time")
	root.Flags().StringVar(&o.stop, "stop", "", "only use data at or before this UTC time")
	root.Flags().Float64VarP(&o.ndays, "ndays", "n", 0, "only use data from the trailing N days")

	root.Flags().Float64VarP(&o.threshold, "threshold", "t", 15, "battery level at which recovery should happen")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write per-file fit rows to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write per-file fit rows to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report (defaults to recoverby.html when --plot is set)")
	root.Flags().BoolVar(&o.plot, "plot", false, "embed charts of observations and fitted lines in the HTML report")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o opts, args []string) error {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	fc, err := mergeFileConfig(cmd, &o, cfgPath)
	if err != nil {
		return err
	}
	if fc != nil {
		slog.Debug("applied defaults file", "path", fc.path)
	}

	w, err := buildWindow(cmd, o)
	if err != nil {
		return err
	}
	// Conflicting modes are a configuration error; reject before any file I/O.
	if w.LastDays != nil && (w.Start != nil || w.Stop != nil) {
		return telemetry.ErrConflictingWindow
	}

	if o.plot && o.htmlPath == "" {
		o.htmlPath = "recoverby.html"
	}

	prj := recovery.New(&recovery.Config{Threshold: o.threshold})

	if !pretty {
		fmt.Println("# file, n, intercept, slope(/day), rvalue, recover_by, t_cross_days")
	}

	var (
		results []fileResult
		failed  int
	)
	for _, fn := range args {
		res, err := processFile(fn, o.sensor, w, prj)
		if err != nil {
			slog.Error("no projection", "file", fn, "err", err)
			failed++
			continue
		}
		if pretty {
			printBlock(res)
		} else {
			printCsvLike(res)
		}
		results = append(results, res)
	}

	if pretty && len(results) > 1 {
		fmt.Println()
		tw := newTable()
		fmt.Fprintln(tw, "FILE\tPOINTS\tSLOPE (/day)\tRVALUE\tRECOVER BY")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%s\n",
				r.File, r.Points, r.Slope, r.RValue, r.RecoverBy.Format(time.RFC3339))
		}
		tw.Flush()
	}

	// A requested output that cannot be written is a failure of the run, not
	// just a log line.
	var outErr error
	if o.csvPath != "" {
		if err := writeCSVRows(o.csvPath, results); err != nil {
			slog.Error("write csv", "err", err)
			outErr = errors.Join(outErr, fmt.Errorf("write csv: %w", err))
		}
	}
	if o.jsonPath != "" {
		if err := writeJSONRows(o.jsonPath, results); err != nil {
			slog.Error("write json", "err", err)
			outErr = errors.Join(outErr, fmt.Errorf("write json: %w", err))
		}
	}
	if o.htmlPath != "" {
		if err := writeHTMLReport(o.htmlPath, results, o.plot, o.sensor); err != nil {
			slog.Error("write html", "err", err)
			outErr = errors.Join(outErr, fmt.Errorf("write html: %w", err))
		} else {
			slog.Info("wrote report", "path", o.htmlPath)
		}
	}

	if failed > 0 {
		outErr = errors.Join(outErr,
			fmt.Errorf("%d of %d input files produced no projection", failed, len(args)))
	}
	return outErr
}

// buildWindow translates flags into a selection window. Only flags the user
// actually set become bounds, so a zero --ndays stays meaningful.
func buildWindow(cmd *cobra.Command, o opts) (telemetry.Window, error) {
	var w telemetry.Window
	if o.start != "" {
		t, err := telemetry.ParseTime(o.start)
		if err != nil {
			return w, fmt.Errorf("bad --start: %w", err)
		}
		w.Start = &t
	}
	if o.stop != "" {
		t, err := telemetry.ParseTime(o.stop)
		if err != nil {
			return w, fmt.Errorf("bad --stop: %w", err)
		}
		w.Stop = &t
	}
	if cmd.Flags().Changed("ndays") {
		nd := o.ndays
		w.LastDays = &nd
	}
	return w, nil
}

type fileResult struct {
	File       string    `json:"file"`
	Points     int       `json:"points"`
	Intercept  float64   `json:"intercept"`
	IntStderr  float64   `json:"intercept_stderr"`
	Slope      float64   `json:"slope_per_day"`
	SlpStderr  float64   `json:"slope_stderr"`
	RValue     float64   `json:"rvalue"`
	Threshold  float64   `json:"threshold"`
	Origin     time.Time `json:"origin"`
	RecoverBy  time.Time `json:"recover_by"`
	TCrossDays float64   `json:"t_cross_days"`

	series telemetry.Series
	proj   recovery.Projection
}

func processFile(fn, sensor string, w telemetry.Window, prj *recovery.Projector) (fileResult, error) {
	full, err := telemetry.LoadFile(fn, sensor)
	if err != nil {
		return fileResult{}, err
	}
	slog.Debug("loaded series", "file", fn, "points", len(full), "span_days", full.SpanDays())

	sel, err := full.Select(w)
	if err != nil {
		return fileResult{}, err
	}
	slog.Debug("selected series", "file", fn, "points", len(sel))

	proj, err := prj.Project(sel)
	if err != nil {
		return fileResult{}, err
	}

	return fileResult{
		File:       fn,
		Points:     proj.N,
		Intercept:  proj.Intercept,
		IntStderr:  proj.InterceptStderr,
		Slope:      proj.Slope,
		SlpStderr:  proj.SlopeStderr,
		RValue:     proj.RValue,
		Threshold:  prj.Threshold(),
		Origin:     proj.Origin,
		RecoverBy:  proj.RecoverBy,
		TCrossDays: float64(proj.TCrossDays),

		series: sel,
		proj:   proj,
	}, nil
}

func printBlock(r fileResult) {
	fmt.Println()
	fmt.Println(r.File)
	fmt.Printf("Intercept: %.4f+-%.4f\n", r.Intercept, r.IntStderr)
	fmt.Printf("Slope:     %.4f+-%.4f\n", r.Slope, r.SlpStderr)
	fmt.Printf("Rvalue:    %.4f\n", r.RValue)
	fmt.Printf("Recover by: %s (%s after fit origin)\n",
		r.RecoverBy.Format(time.RFC3339), r.proj.TCrossDays.Humanized())
	if until := time.Until(r.RecoverBy); until < 0 {
		fmt.Printf("Note: threshold %.1f already passed %s ago\n",
			r.Threshold, (-until).Round(time.Minute))
	}
}

func printCsvLike(r fileResult) {
	fmt.Printf("%s, %d, %.4f, %.4f, %.4f, %s, %.2f\n",
		r.File, r.Points, r.Intercept, r.Slope, r.RValue,
		r.RecoverBy.Format(time.RFC3339), r.TCrossDays)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}
