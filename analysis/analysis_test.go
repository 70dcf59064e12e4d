package analysis_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbott99/statmech-ising/analysis"
	"github.com/rabbott99/statmech-ising/jackknife"
	"github.com/rabbott99/statmech-ising/sample"
	"github.com/rabbott99/statmech-ising/scan"
)

const eps = 1e-9

// row is shorthand for a scan row with errors set to a tenth of each value.
func row(T, e, c, m, chi float64) scan.Row {
	v := jackknife.PhysicalResult{Energy: e, HeatCapacity: c, Magnetization: m, Susceptibility: chi}
	return scan.Row{Temperature: T, Estimate: jackknife.Estimate{Value: v, Error: v.Scale(0.1)}}
}

// tcOf is the pseudo-critical temperature planted in synthetic(L).
func tcOf(L int) float64 { return 2.25 + 1.5/float64(L) }

// synthetic builds a three-row scan whose middle row carries the planted
// peaks: χ_max = 2·L^1.75, C_max = 0.5 + 0.5·ln L, M(Tc) = L^(−1/8).
func synthetic(L int) analysis.Series {
	fl := float64(L)
	return analysis.Series{Size: L, Rows: []scan.Row{
		row(1, -2*fl*fl, 0.1, 0.99, 1),
		row(tcOf(L), -1.4*fl*fl, 0.5+0.5*math.Log(fl), math.Pow(fl, -0.125), 2*math.Pow(fl, 1.75)),
		row(4, -0.5*fl*fl, 0.2, 0.05, 1),
	}}
}

func syntheticSizes(sizes ...int) []analysis.Series {
	out := make([]analysis.Series, len(sizes))
	for i, L := range sizes {
		out[i] = synthetic(L)
	}
	return out
}

//----------------------------------------------------------------------------//
// Peaks
//----------------------------------------------------------------------------//

// TestPeaks locates both maxima and carries the error of the peak row.
func TestPeaks(t *testing.T) {
	s := synthetic(16)
	chi, err := analysis.SusceptibilityPeak(s)
	require.NoError(t, err)
	assert.Equal(t, 1, chi.Index)
	assert.InDelta(t, tcOf(16), chi.Temperature, eps)
	assert.InDelta(t, 2*math.Pow(16, 1.75), chi.Value, eps)
	assert.InDelta(t, 0.2*math.Pow(16, 1.75), chi.Error, eps)

	c, err := analysis.HeatCapacityPeak(s)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Index)
}

// TestPeaks_TieTakesLowestTemperature keeps the first of equal maxima.
func TestPeaks_TieTakesLowestTemperature(t *testing.T) {
	s := analysis.Series{Size: 4, Rows: []scan.Row{
		row(1, 0, 0, 0, 1), row(2, 0, 0, 0, 5), row(3, 0, 0, 0, 5),
	}}
	p, err := analysis.SusceptibilityPeak(s)
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Temperature)
}

// TestSeries_Invalid covers every rejected series shape.
func TestSeries_Invalid(t *testing.T) {
	good := synthetic(8)
	cases := []struct {
		name string
		s    analysis.Series
		err  error
	}{
		{"ZeroSize", analysis.Series{Size: 0, Rows: good.Rows}, analysis.ErrBadSeries},
		{"OneRow", analysis.Series{Size: 8, Rows: good.Rows[:1]}, analysis.ErrTooFewRows},
		{"Unordered", analysis.Series{Size: 8, Rows: []scan.Row{good.Rows[1], good.Rows[0]}}, analysis.ErrBadSeries},
		{"Repeated", analysis.Series{Size: 8, Rows: []scan.Row{good.Rows[0], good.Rows[0]}}, analysis.ErrBadSeries},
		{"ZeroTemperature", analysis.Series{Size: 8, Rows: []scan.Row{row(0, 0, 0, 0, 0), good.Rows[1]}}, analysis.ErrBadSeries},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := analysis.SusceptibilityPeak(tc.s)
			assert.ErrorIs(t, err, tc.err)
			_, err = analysis.Entropy(tc.s)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

//----------------------------------------------------------------------------//
// Fits across sizes
//----------------------------------------------------------------------------//

// TestExponents recovers the planted 2D Ising exponent ratios.
func TestExponents(t *testing.T) {
	series := syntheticSizes(8, 16, 32, 64)

	gamma, err := analysis.GammaOverNu(series)
	require.NoError(t, err)
	assert.InDelta(t, analysis.ExactGammaOverNu, gamma.Value, eps)
	assert.InDelta(t, math.Log(2), gamma.Fit.Intercept, eps)
	assert.InDelta(t, 1, gamma.Fit.RSquared, eps)

	beta, err := analysis.BetaOverNu(series)
	require.NoError(t, err)
	assert.InDelta(t, analysis.ExactBetaOverNu, beta.Value, eps)
}

// TestExtrapolateTc recovers Tc(∞) and the 1/L amplitude from both peaks.
func TestExtrapolateTc(t *testing.T) {
	series := syntheticSizes(8, 16, 32)
	for name, peak := range map[string]analysis.PeakFunc{
		"Chi": analysis.SusceptibilityPeak,
		"C":   analysis.HeatCapacityPeak,
	} {
		t.Run(name, func(t *testing.T) {
			f, err := analysis.ExtrapolateTc(series, peak)
			require.NoError(t, err)
			assert.InDelta(t, 2.25, f.Intercept, eps)
			assert.InDelta(t, 1.5, f.Slope, eps)
			assert.InDelta(t, tcOf(8), f.At(1.0/8), eps)
		})
	}
}

// TestHeatCapacityGrowth fits the planted logarithmic growth.
func TestHeatCapacityGrowth(t *testing.T) {
	f, err := analysis.HeatCapacityGrowth(syntheticSizes(8, 16, 32))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f.Slope, eps)
	assert.InDelta(t, 0.5, f.Intercept, eps)
}

// TestFits_Errors covers size-set and logarithm failures.
func TestFits_Errors(t *testing.T) {
	_, err := analysis.GammaOverNu(syntheticSizes(8))
	assert.ErrorIs(t, err, analysis.ErrTooFewSizes)
	_, err = analysis.BetaOverNu(nil)
	assert.ErrorIs(t, err, analysis.ErrTooFewSizes)
	_, err = analysis.ExtrapolateTc(syntheticSizes(8, 8), analysis.SusceptibilityPeak)
	assert.ErrorIs(t, err, analysis.ErrBadSeries)

	flat := syntheticSizes(8, 16)
	for i := range flat[1].Rows {
		flat[1].Rows[i].Estimate.Value.Susceptibility = 0
	}
	_, err = analysis.GammaOverNu(flat)
	assert.ErrorIs(t, err, analysis.ErrNotPositive)

	noM := syntheticSizes(8, 16)
	noM[0].Rows[1].Estimate.Value.Magnetization = 0
	_, err = analysis.BetaOverNu(noM)
	assert.ErrorIs(t, err, analysis.ErrNotPositive)
}

//----------------------------------------------------------------------------//
// Collapse
//----------------------------------------------------------------------------//

// TestChiCollapse: the peak maps to x = 0 and y = 2 for every L.
func TestChiCollapse(t *testing.T) {
	for _, L := range []int{8, 16, 32} {
		pts, err := analysis.ChiCollapse(synthetic(L), analysis.ExactGammaOverNu, analysis.ExactNu)
		require.NoError(t, err)
		require.Len(t, pts, 3)
		assert.InDelta(t, 0, pts[1].X, eps)
		assert.InDelta(t, 2, pts[1].Y, eps)
		assert.InDelta(t, 0.2, pts[1].Err, eps)
		assert.InDelta(t, float64(L)*(1-tcOf(L)), pts[0].X, eps)
	}
}

// TestMagnetizationCollapse: M(Tc)·L^(1/8) = 1 for every L.
func TestMagnetizationCollapse(t *testing.T) {
	for _, L := range []int{8, 16, 32} {
		pts, err := analysis.MagnetizationCollapse(synthetic(L), analysis.ExactBetaOverNu, 1)
		require.NoError(t, err)
		assert.InDelta(t, 1, pts[1].Y, eps)
	}
	_, err := analysis.MagnetizationCollapse(synthetic(8), 0.125, 0)
	assert.ErrorIs(t, err, analysis.ErrNotPositive)
}

//----------------------------------------------------------------------------//
// Thermodynamics
//----------------------------------------------------------------------------//

// TestEntropy_FreeEnergy: with C = T the integrand is 1, so s(T) = T − T0
// exactly under the trapezoidal rule.
func TestEntropy_FreeEnergy(t *testing.T) {
	s := analysis.Series{Size: 2, Rows: []scan.Row{
		row(0.5, -8, 0.5, 1, 0),
		row(1.0, -6, 1.0, 1, 0),
		row(2.5, -4, 2.5, 1, 0),
	}}
	entropy, err := analysis.Entropy(s)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 2}, entropy, eps)

	f, err := analysis.FreeEnergy(s)
	require.NoError(t, err)
	// E/V − T·s with V = 4.
	assert.InDeltaSlice(t, []float64{-2, -1.5 - 0.5, -1 - 5}, f, eps)
}

//----------------------------------------------------------------------------//
// Analyze
//----------------------------------------------------------------------------//

// TestAnalyze sorts sizes, leaves the input alone and fills every field.
func TestAnalyze(t *testing.T) {
	in := syntheticSizes(32, 8, 16)
	rep, err := analysis.Analyze(in)
	require.NoError(t, err)

	assert.Equal(t, []int{32, 8, 16}, []int{in[0].Size, in[1].Size, in[2].Size})
	require.Len(t, rep.Sizes, 3)
	for i, L := range []int{8, 16, 32} {
		assert.Equal(t, L, rep.Sizes[i].Size)
		assert.InDelta(t, tcOf(L), rep.Sizes[i].Susceptibility.Temperature, eps)
		assert.InDelta(t, math.Pow(float64(L), -0.125), rep.Sizes[i].Magnetization, eps)
	}
	assert.InDelta(t, 1.75, rep.GammaOverNu.Value, eps)
	assert.InDelta(t, 0.125, rep.BetaOverNu.Value, eps)
	assert.InDelta(t, 2.25, rep.TcFromChi.Intercept, eps)
	assert.InDelta(t, 2.25, rep.TcFromC.Intercept, eps)
	assert.InDelta(t, 0.5, rep.HeatCapacity.Slope, eps)

	_, err = analysis.Analyze(in[:1])
	assert.ErrorIs(t, err, analysis.ErrTooFewSizes)
}

// TestAnalyze_Scans analyzes real short scans at two sizes.
func TestAnalyze_Scans(t *testing.T) {
	if testing.Short() {
		t.Skip("runs Monte Carlo chains")
	}
	var series []analysis.Series
	for _, L := range []int{4, 6} {
		cfg := scan.Config{
			Size: L, TMin: 1.5, TMax: 3.5, TStep: 0.5, Seed: 7, Hot: true,
			Sampling: sample.Options{Thermalization: 200, Separation: 2, Samples: 200},
		}
		rows, err := scan.Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		series = append(series, analysis.Series{Size: L, Rows: rows})
	}

	rep, err := analysis.Analyze(series)
	require.NoError(t, err)
	for _, s := range rep.Sizes {
		assert.GreaterOrEqual(t, s.Susceptibility.Temperature, 1.5)
		assert.LessOrEqual(t, s.Susceptibility.Temperature, 3.5)
	}
	assert.False(t, math.IsNaN(rep.GammaOverNu.Value))
	assert.False(t, math.IsNaN(rep.TcFromChi.Intercept))
}
