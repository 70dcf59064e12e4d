// Package plot renders scan and analysis results as PNG charts. Render and
// RenderSizes plot an observable against temperature for one or several
// lattice sizes; RenderCurves draws fits and scaling collapses.
// Errors are drawn as a dashed envelope around each curve.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/rabbott99/statmech-ising/analysis"
	"github.com/rabbott99/statmech-ising/jackknife"
	"github.com/rabbott99/statmech-ising/scan"
)

var (
	// ErrTooFewRows indicates a curve with fewer than two points, or no
	// curves at all.
	ErrTooFewRows = errors.New("plot: need at least two points per curve")

	// ErrBadCurve indicates X, Y and Err slices of different lengths.
	ErrBadCurve = errors.New("plot: curve slices differ in length")
)

// Observable selects the quantity on the y axis.
type Observable int

const (
	// Energy is the total energy.
	Energy Observable = iota
	// HeatCapacity is C = (⟨E²⟩ − ⟨E⟩²)/(V·T²).
	HeatCapacity
	// Magnetization is ⟨|M|⟩ per site.
	Magnetization
	// Susceptibility is χ = (⟨M²⟩ − ⟨M⟩²)·V/T.
	Susceptibility
)

// Observables lists every Observable in a stable order.
var Observables = []Observable{Energy, HeatCapacity, Magnetization, Susceptibility}

// String returns a short file-friendly name.
func (o Observable) String() string {
	switch o {
	case Energy:
		return "energy"
	case HeatCapacity:
		return "heat_capacity"
	case Magnetization:
		return "magnetization"
	case Susceptibility:
		return "susceptibility"
	}
	return fmt.Sprintf("observable(%d)", int(o))
}

func (o Observable) pick(p jackknife.PhysicalResult) float64 {
	switch o {
	case HeatCapacity:
		return p.HeatCapacity
	case Magnetization:
		return p.Magnetization
	case Susceptibility:
		return p.Susceptibility
	}
	return p.Energy
}

// Options tunes a chart.
//
//   - Title: chart title; empty uses the observable name.
//   - XName, YName: axis labels; empty uses "T" and the observable name.
//   - Scale: divide values and errors by this; 0 means 1.
//   - PerSpin: in RenderSizes, also divide each series by its L².
//   - XMin, XMax: when XMin < XMax, only points inside [XMin, XMax] are drawn.
//   - Width, Height: pixel size; 0 uses 800×480.
type Options struct {
	Title   string
	XName   string
	YName   string
	Scale   float64
	PerSpin bool
	XMin    float64
	XMax    float64
	Width   int
	Height  int
}

// Curve is one plotted line. Err may be nil; Markers draws points
// instead of a connecting line.
type Curve struct {
	Name    string
	X, Y    []float64
	Err     []float64
	Markers bool
}

// Render writes a PNG of obs against temperature for rows to w.
// Returns ErrTooFewRows if len(rows) < 2.
func Render(w io.Writer, rows []scan.Row, obs Observable, opts Options) error {
	return RenderCurves(w, []Curve{observableCurve(obs.String(), rows, obs, scaleOf(opts))}, observableOptions(obs, opts))
}

// RenderSizes overlays obs against temperature for every series, one
// curve per lattice size, as in a finite-size comparison.
func RenderSizes(w io.Writer, series []analysis.Series, obs Observable, opts Options) error {
	curves := make([]Curve, len(series))
	for i, s := range series {
		scale := scaleOf(opts)
		if opts.PerSpin {
			scale *= float64(s.Volume())
		}
		curves[i] = observableCurve(fmt.Sprintf("L = %d", s.Size), s.Rows, obs, scale)
	}
	return RenderCurves(w, curves, observableOptions(obs, opts))
}

// Points converts analysis points into a curve.
func Points(name string, pts []analysis.Point) Curve {
	c := Curve{Name: name, X: make([]float64, len(pts)), Y: make([]float64, len(pts)), Err: make([]float64, len(pts))}
	for i, p := range pts {
		c.X[i], c.Y[i], c.Err[i] = p.X, p.Y, p.Err
	}
	return c
}

// Line samples f over [x0, x1] at its endpoints, for drawing a fit.
func Line(name string, f analysis.Fit, x0, x1 float64) Curve {
	return Curve{Name: name, X: []float64{x0, x1}, Y: []float64{f.At(x0), f.At(x1)}}
}

// RenderCurves writes a PNG of every curve to w, with a legend when there
// is more than one.
func RenderCurves(w io.Writer, curves []Curve, opts Options) error {
	if len(curves) == 0 {
		return ErrTooFewRows
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 800
	}
	if height == 0 {
		height = 480
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for i, c := range curves {
		c, err := clip(c, opts)
		if err != nil {
			return err
		}
		color := chart.GetDefaultColor(i)
		style := chart.Style{StrokeColor: color, StrokeWidth: 2}
		if c.Markers {
			style = chart.Style{StrokeWidth: chart.Disabled, DotColor: color, DotWidth: 4}
		}
		series = append(series, chart.ContinuousSeries{Name: c.Name, XValues: c.X, YValues: c.Y, Style: style})

		n := len(c.X)
		for j := 0; j < n; j++ {
			e := 0.0
			if c.Err != nil {
				e = math.Abs(c.Err[j])
			}
			minY, maxY = math.Min(minY, c.Y[j]-e), math.Max(maxY, c.Y[j]+e)
		}
		if c.Err == nil {
			continue
		}
		// Envelope: lower edge left to right, then upper edge back.
		xs := make([]float64, 0, 2*n)
		ys := make([]float64, 0, 2*n)
		for j := 0; j < n; j++ {
			xs, ys = append(xs, c.X[j]), append(ys, c.Y[j]-c.Err[j])
		}
		for j := n - 1; j >= 0; j-- {
			xs, ys = append(xs, c.X[j]), append(ys, c.Y[j]+c.Err[j])
		}
		series = append(series, chart.ContinuousSeries{
			Name: c.Name + " ± err", XValues: xs, YValues: ys,
			Style: chart.Style{StrokeColor: color, StrokeWidth: 1, StrokeDashArray: []float64{4, 4}},
		})
	}
	pad := 0.05 * (maxY - minY)
	if pad == 0 {
		pad = math.Max(1, math.Abs(maxY)) * 0.05
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: opts.XName},
		YAxis: chart.YAxis{
			Name:  opts.YName,
			Range: &chart.ContinuousRange{Min: minY - pad, Max: maxY + pad},
		},
		Series: series,
	}
	if opts.XMin < opts.XMax {
		graph.XAxis.Range = &chart.ContinuousRange{Min: opts.XMin, Max: opts.XMax}
	}
	if len(curves) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", opts.Title, err)
	}
	return nil
}

// clip checks c and drops points outside the X window of opts.
func clip(c Curve, opts Options) (Curve, error) {
	if len(c.Y) != len(c.X) || (c.Err != nil && len(c.Err) != len(c.X)) {
		return c, fmt.Errorf("%s: %w", c.Name, ErrBadCurve)
	}
	if opts.XMin < opts.XMax {
		out := Curve{Name: c.Name, Markers: c.Markers}
		for j, x := range c.X {
			if x < opts.XMin || x > opts.XMax {
				continue
			}
			out.X, out.Y = append(out.X, x), append(out.Y, c.Y[j])
			if c.Err != nil {
				out.Err = append(out.Err, c.Err[j])
			}
		}
		c = out
	}
	if len(c.X) < 2 {
		return c, fmt.Errorf("%s: %w", c.Name, ErrTooFewRows)
	}
	return c, nil
}

func scaleOf(opts Options) float64 {
	if opts.Scale == 0 {
		return 1
	}
	return opts.Scale
}

// observableCurve extracts obs and its error from rows, divided by scale.
func observableCurve(name string, rows []scan.Row, obs Observable, scale float64) Curve {
	c := Curve{Name: name, X: make([]float64, len(rows)), Y: make([]float64, len(rows)), Err: make([]float64, len(rows))}
	for i, r := range rows {
		c.X[i] = r.Temperature
		c.Y[i] = obs.pick(r.Estimate.Value) / scale
		c.Err[i] = obs.pick(r.Estimate.Error) / scale
	}
	return c
}

// observableOptions fills the title and axis names for an observable chart.
func observableOptions(obs Observable, opts Options) Options {
	if opts.Title == "" {
		opts.Title = obs.String()
	}
	if opts.XName == "" {
		opts.XName = "T"
	}
	if opts.YName == "" {
		opts.YName = obs.String()
	}
	return opts
}
