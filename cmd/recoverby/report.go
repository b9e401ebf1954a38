package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

func writeCSVRows(path string, results []fileResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"file", "points", "intercept", "intercept_stderr", "slope_per_day",
		"slope_stderr", "rvalue", "threshold", "origin", "recover_by", "t_cross_days",
	}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{
			r.File,
			fmt.Sprintf("%d", r.Points),
			fmtFloat(r.Intercept), fmtFloat(r.IntStderr),
			fmtFloat(r.Slope), fmtFloat(r.SlpStderr),
			fmtFloat(r.RValue), fmtFloat(r.Threshold),
			r.Origin.Format(time.RFC3339),
			r.RecoverBy.Format(time.RFC3339),
			fmtFloat(r.TCrossDays),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSONRows(path string, results []fileResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

func fmtFloat(v float64) string { return fmt.Sprintf("%.6g", v) }

// chart is the geometry of one inline SVG: observation dots plus the fitted
// line, both already mapped into viewport pixels.
type chart struct {
	Width, Height int
	Points        []chartPoint
	X1, Y1        float64 // fitted line at the first observation
	X2, Y2        float64 // fitted line at the last observation
	YMinLabel     string
	YMaxLabel     string
	XMinLabel     string
	XMaxLabel     string
}

type chartPoint struct {
	X, Y float64
}

const (
	chartWidth  = 640
	chartHeight = 320
	chartPad    = 42.0
)

// buildChart maps a fitted file result into SVG viewport coordinates. The x
// domain is the observed time range; the y domain covers both the observations
// and the fitted endpoints so the line never leaves the viewport.
func buildChart(r fileResult) chart {
	s := r.series
	t0, t1 := s.MinTime(), s.MaxTime()
	fit0 := r.proj.At(t0)
	fit1 := r.proj.At(t1)

	yMin, yMax := minF(fit0, fit1), maxF(fit0, fit1)
	for _, ob := range s {
		yMin, yMax = minF(yMin, ob.Value), maxF(yMax, ob.Value)
	}

	spanX := t1.Sub(t0).Seconds()
	spanY := yMax - yMin
	plotW := float64(chartWidth) - 2*chartPad
	plotH := float64(chartHeight) - 2*chartPad

	xOf := func(t time.Time) float64 {
		if spanX == 0 {
			return chartPad + plotW/2
		}
		return chartPad + t.Sub(t0).Seconds()/spanX*plotW
	}
	yOf := func(v float64) float64 {
		if spanY == 0 {
			return chartPad + plotH/2
		}
		return float64(chartHeight) - chartPad - (v-yMin)/spanY*plotH
	}

	c := chart{
		Width:  chartWidth,
		Height: chartHeight,
		X1:     xOf(t0), Y1: yOf(fit0),
		X2: xOf(t1), Y2: yOf(fit1),
		YMinLabel: fmt.Sprintf("%.1f", yMin),
		YMaxLabel: fmt.Sprintf("%.1f", yMax),
		XMinLabel: t0.Format("2006-01-02 15:04"),
		XMaxLabel: t1.Format("2006-01-02 15:04"),
	}
	for _, ob := range s {
		c.Points = append(c.Points, chartPoint{X: xOf(ob.Time), Y: yOf(ob.Value)})
	}
	return c
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

type reportFile struct {
	Result fileResult
	Fitted string // "a - m * days" style fit label
	Chart  *chart
}

type reportView struct {
	Sensor string
	Now    string
	Files  []reportFile
}

func writeHTMLReport(path string, results []fileResult, plot bool, sensor string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	view := reportView{
		Sensor: sensor,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, r := range results {
		rf := reportFile{
			Result: r,
			Fitted: fmt.Sprintf("%.1f%+.2f * days", r.Intercept, r.Slope),
		}
		if plot {
			c := buildChart(r)
			rf.Chart = &c
		}
		view.Files = append(view.Files, rf)
	}
	return reportTpl.Execute(f, view)
}

var reportTpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Recovery Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
ul{margin:6px 0 14px;padding-left:20px}
code{background:#f5f5f5;padding:2px 4px;border-radius:4px}
.small{color:#555}
svg{border:1px solid #ddd;background:#fff}
.axis{font-size:11px;fill:#555}
</style>

<h1>Recovery Report</h1>
<p class="small">Sensor: <code>{{.Sensor}}</code> &nbsp;|&nbsp; Generated: {{.Now}} UTC</p>

{{range .Files}}
<h2>{{.Result.File}}</h2>
<ul>
<li>Points: {{.Result.Points}}</li>
<li>Intercept: {{printf "%.4f" .Result.Intercept}} &plusmn; {{printf "%.4f" .Result.IntStderr}}</li>
<li>Slope: {{printf "%.4f" .Result.Slope}} &plusmn; {{printf "%.4f" .Result.SlpStderr}} per day</li>
<li>R value: {{printf "%.4f" .Result.RValue}}</li>
<li>Fit: <code>{{.Fitted}}</code></li>
<li><b>Recover by {{.Result.RecoverBy.Format "2006-01-02 15:04:05"}} UTC</b>
    ({{printf "%.1f" .Result.TCrossDays}} days after fit origin, threshold {{printf "%.1f" .Result.Threshold}})</li>
</ul>
{{with .Chart}}
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  {{range .Points}}<circle cx="{{printf "%.1f" .X}}" cy="{{printf "%.1f" .Y}}" r="2.5" fill="#1f77b4"/>
  {{end}}
  <line x1="{{printf "%.1f" .X1}}" y1="{{printf "%.1f" .Y1}}" x2="{{printf "%.1f" .X2}}" y2="{{printf "%.1f" .Y2}}" stroke="#d62728" stroke-width="1.5"/>
  <text class="axis" x="4" y="{{.Height}}">{{.XMinLabel}}</text>
  <text class="axis" x="{{.Width}}" y="{{.Height}}" text-anchor="end">{{.XMaxLabel}}</text>
  <text class="axis" x="4" y="12">{{.YMaxLabel}}</text>
  <text class="axis" x="4" y="{{.Height}}" dy="-14">{{.YMinLabel}}</text>
</svg>
{{end}}
{{end}}
</html>`))
