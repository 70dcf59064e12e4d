package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/rabbott99/statmech-ising/analysis"
	"github.com/rabbott99/statmech-ising/plot"
)

// writeReport prints one line per size (L, Tc from χ, χ_max, Tc from C,
// C_max, M at Tc) followed by the fitted quantities.
func writeReport(w io.Writer, rep analysis.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# L Tc(chi) chi_max chi_max_err Tc(C) C_max C_max_err M(Tc)")
	for _, s := range rep.Sizes {
		chi, c := s.Susceptibility, s.HeatCapacity
		fmt.Fprintf(bw, "%d %g %g %g %g %g %g %g\n",
			s.Size, chi.Temperature, chi.Value, chi.Error,
			c.Temperature, c.Value, c.Error, s.Magnetization)
	}
	fmt.Fprintf(bw, "gamma/nu %g (exact %g, R2 %g)\n", rep.GammaOverNu.Value, analysis.ExactGammaOverNu, rep.GammaOverNu.Fit.RSquared)
	fmt.Fprintf(bw, "beta/nu %g (exact %g, R2 %g)\n", rep.BetaOverNu.Value, analysis.ExactBetaOverNu, rep.BetaOverNu.Fit.RSquared)
	fmt.Fprintf(bw, "Tc(inf) chi %g C %g (exact %g)\n", rep.TcFromChi.Intercept, rep.TcFromC.Intercept, analysis.ExactTc)
	fmt.Fprintf(bw, "C_max slope vs log L %g\n", rep.HeatCapacity.Slope)
	return bw.Flush()
}

// chart is one output file.
type chart struct {
	name   string
	curves []plot.Curve
	opts   plot.Options
}

// writePlots renders the size comparison of every observable, the fits
// across sizes, the scaling collapses and the thermodynamic curves.
func writePlots(dir string, series []analysis.Series, rep analysis.Report, window float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, obs := range plot.Observables {
		opts := plot.Options{PerSpin: obs == plot.Energy}
		if err := writeFile(dir, obs.String()+".png", func(w io.Writer) error {
			return plot.RenderSizes(w, series, obs, opts)
		}); err != nil {
			return err
		}
	}

	charts, err := analysisCharts(series, rep, window)
	if err != nil {
		return err
	}
	for _, c := range charts {
		if err := writeFile(dir, c.name+".png", func(w io.Writer) error {
			return plot.RenderCurves(w, c.curves, c.opts)
		}); err != nil {
			return err
		}
	}
	return nil
}

// analysisCharts builds every chart that is derived from the report.
func analysisCharts(series []analysis.Series, rep analysis.Report, window float64) ([]chart, error) {
	n := len(rep.Sizes)
	logL := make([]float64, n)
	invL := make([]float64, n)
	logChi := make([]float64, n)
	tcChi := make([]float64, n)
	tcC := make([]float64, n)
	cMax := make([]float64, n)
	for i, s := range rep.Sizes {
		logL[i], invL[i] = math.Log(float64(s.Size)), 1/float64(s.Size)
		logChi[i] = math.Log(s.Susceptibility.Value)
		tcChi[i], tcC[i] = s.Susceptibility.Temperature, s.HeatCapacity.Temperature
		cMax[i] = s.HeatCapacity.Value
	}
	lo, hi := logL[0], logL[n-1]

	charts := []chart{
		{"chi_max", []plot.Curve{
			{Name: "log chi_max", X: logL, Y: logChi, Markers: true},
			plot.Line(fmt.Sprintf("slope %.3f", rep.GammaOverNu.Value), rep.GammaOverNu.Fit, lo, hi),
		}, plot.Options{Title: "log chi_max vs log L", XName: "log L", YName: "log chi_max"}},
		{"tc_chi", []plot.Curve{
			{Name: "Tc(L)", X: invL, Y: tcChi, Markers: true},
			plot.Line(fmt.Sprintf("Tc(inf) %.4f", rep.TcFromChi.Intercept), rep.TcFromChi, 0, invL[0]),
		}, plot.Options{Title: "Tc from susceptibility vs 1/L", XName: "1/L", YName: "Tc(L)"}},
		{"tc_heat_capacity", []plot.Curve{
			{Name: "Tc(L)", X: invL, Y: tcC, Markers: true},
			plot.Line(fmt.Sprintf("Tc(inf) %.4f", rep.TcFromC.Intercept), rep.TcFromC, 0, invL[0]),
		}, plot.Options{Title: "Tc from heat capacity vs 1/L", XName: "1/L", YName: "Tc(L)"}},
		{"heat_capacity_max", []plot.Curve{
			{Name: "C_max", X: logL, Y: cMax, Markers: true},
			plot.Line("fit", rep.HeatCapacity, lo, hi),
		}, plot.Options{Title: "C_max vs log L", XName: "log L", YName: "C_max"}},
	}

	collapse := []struct {
		name, title string
		points      func(analysis.Series) ([]analysis.Point, error)
	}{
		{"chi_scaling_exact", "chi collapse, exact gamma/nu", func(s analysis.Series) ([]analysis.Point, error) {
			return analysis.ChiCollapse(s, analysis.ExactGammaOverNu, analysis.ExactNu)
		}},
		{"chi_scaling_fit", "chi collapse, fitted gamma/nu", func(s analysis.Series) ([]analysis.Point, error) {
			return analysis.ChiCollapse(s, rep.GammaOverNu.Value, analysis.ExactNu)
		}},
		{"magnetization_scaling", "M collapse, fitted beta/nu", func(s analysis.Series) ([]analysis.Point, error) {
			return analysis.MagnetizationCollapse(s, rep.BetaOverNu.Value, analysis.ExactNu)
		}},
	}
	for _, c := range collapse {
		var curves []plot.Curve
		for _, s := range series {
			pts, err := c.points(s)
			if err != nil {
				return nil, err
			}
			curves = append(curves, plot.Points(fmt.Sprintf("L = %d", s.Size), pts))
		}
		charts = append(charts, chart{c.name, curves, plot.Options{
			Title: c.title, XName: "L^(1/nu) (T - Tc(L))", XMin: -window, XMax: window,
		}})
	}

	thermo := []struct {
		name, title string
		values      func(analysis.Series) ([]float64, error)
	}{
		{"entropy", "entropy per spin", analysis.Entropy},
		{"free_energy", "free energy per spin", analysis.FreeEnergy},
	}
	for _, th := range thermo {
		var curves []plot.Curve
		for _, s := range series {
			ys, err := th.values(s)
			if err != nil {
				return nil, err
			}
			ts := make([]float64, len(s.Rows))
			for i, r := range s.Rows {
				ts[i] = r.Temperature
			}
			curves = append(curves, plot.Curve{Name: fmt.Sprintf("L = %d", s.Size), X: ts, Y: ys})
		}
		charts = append(charts, chart{th.name, curves, plot.Options{Title: th.title, XName: "T", YName: th.name}})
	}

	return charts, nil
}

func writeFile(dir, name string, render func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	err = render(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
