package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// sizes validates a set of series for a fit across L.
func sizes(series []Series) error {
	seen := make(map[int]bool, len(series))
	for _, s := range series {
		if err := s.validate(); err != nil {
			return err
		}
		if seen[s.Size] {
			return fmt.Errorf("L=%d repeated: %w", s.Size, ErrBadSeries)
		}
		seen[s.Size] = true
	}
	if len(series) < 2 {
		return ErrTooFewSizes
	}
	return nil
}

// fit is an unweighted least-squares line through (x, y).
func fit(x, y []float64) Fit {
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Fit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(x, y, nil, alpha, beta),
	}
}

// logOf returns ln v, or ErrNotPositive for v ≤ 0.
func logOf(v float64, L int, what string) (float64, error) {
	if !(v > 0) {
		return 0, fmt.Errorf("L=%d %s=%g: %w", L, what, v, ErrNotPositive)
	}
	return math.Log(v), nil
}

// GammaOverNu fits log χ_max(L) = const + (γ/ν)·log L.
func GammaOverNu(series []Series) (Exponent, error) {
	if err := sizes(series); err != nil {
		return Exponent{}, err
	}
	x := make([]float64, len(series))
	y := make([]float64, len(series))
	for i, s := range series {
		p, err := SusceptibilityPeak(s)
		if err != nil {
			return Exponent{}, err
		}
		if y[i], err = logOf(p.Value, s.Size, "chi_max"); err != nil {
			return Exponent{}, err
		}
		x[i] = math.Log(float64(s.Size))
	}
	f := fit(x, y)

	return Exponent{Value: f.Slope, Fit: f}, nil
}

// BetaOverNu fits log M(Tc(L)) = const − (β/ν)·log L, with Tc(L) taken
// from the susceptibility peak.
func BetaOverNu(series []Series) (Exponent, error) {
	if err := sizes(series); err != nil {
		return Exponent{}, err
	}
	x := make([]float64, len(series))
	y := make([]float64, len(series))
	for i, s := range series {
		p, err := SusceptibilityPeak(s)
		if err != nil {
			return Exponent{}, err
		}
		m := s.Rows[p.Index].Estimate.Value.Magnetization
		if y[i], err = logOf(m, s.Size, "M(Tc)"); err != nil {
			return Exponent{}, err
		}
		x[i] = math.Log(float64(s.Size))
	}
	f := fit(x, y)

	return Exponent{Value: -f.Slope, Fit: f}, nil
}

// ExtrapolateTc fits Tc(L) = Tc(∞) + a/L with Tc(L) from peak; the
// intercept is the infinite-volume estimate.
func ExtrapolateTc(series []Series, peak PeakFunc) (Fit, error) {
	if err := sizes(series); err != nil {
		return Fit{}, err
	}
	x := make([]float64, len(series))
	y := make([]float64, len(series))
	for i, s := range series {
		p, err := peak(s)
		if err != nil {
			return Fit{}, err
		}
		x[i], y[i] = 1/float64(s.Size), p.Temperature
	}
	return fit(x, y), nil
}

// HeatCapacityGrowth fits C_max(L) = const + a·log L.
func HeatCapacityGrowth(series []Series) (Fit, error) {
	if err := sizes(series); err != nil {
		return Fit{}, err
	}
	x := make([]float64, len(series))
	y := make([]float64, len(series))
	for i, s := range series {
		p, err := HeatCapacityPeak(s)
		if err != nil {
			return Fit{}, err
		}
		x[i], y[i] = math.Log(float64(s.Size)), p.Value
	}
	return fit(x, y), nil
}

// ChiCollapse maps s onto x = L^{1/ν}(T − Tc(L)), y = L^{−γ/ν}·χ.
func ChiCollapse(s Series, gammaOverNu, nu float64) ([]Point, error) {
	return collapse(s, nu, -gammaOverNu, func(i int) (float64, float64) {
		r := s.Rows[i].Estimate
		return r.Value.Susceptibility, r.Error.Susceptibility
	})
}

// MagnetizationCollapse maps s onto x = L^{1/ν}(T − Tc(L)), y = L^{β/ν}·M.
func MagnetizationCollapse(s Series, betaOverNu, nu float64) ([]Point, error) {
	return collapse(s, nu, betaOverNu, func(i int) (float64, float64) {
		r := s.Rows[i].Estimate
		return r.Value.Magnetization, r.Error.Magnetization
	})
}

func collapse(s Series, nu, power float64, value func(i int) (float64, float64)) ([]Point, error) {
	if !(nu > 0) {
		return nil, fmt.Errorf("nu=%g: %w", nu, ErrNotPositive)
	}
	p, err := SusceptibilityPeak(s)
	if err != nil {
		return nil, err
	}
	L := float64(s.Size)
	xScale, yScale := math.Pow(L, 1/nu), math.Pow(L, power)
	out := make([]Point, len(s.Rows))
	for i, r := range s.Rows {
		v, e := value(i)
		out[i] = Point{
			X:   xScale * (r.Temperature - p.Temperature),
			Y:   yScale * v,
			Err: yScale * e,
		}
	}
	return out, nil
}

// Analyze runs every per-size and cross-size analysis. The input is not
// modified; the report lists sizes in increasing order.
func Analyze(series []Series) (Report, error) {
	if err := sizes(series); err != nil {
		return Report{}, err
	}
	sorted := append([]Series(nil), series...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Size < sorted[j].Size })

	var rep Report
	for _, s := range sorted {
		chi, err := SusceptibilityPeak(s)
		if err != nil {
			return Report{}, err
		}
		c, err := HeatCapacityPeak(s)
		if err != nil {
			return Report{}, err
		}
		rep.Sizes = append(rep.Sizes, SizeSummary{
			Size:           s.Size,
			Susceptibility: chi,
			HeatCapacity:   c,
			Magnetization:  s.Rows[chi.Index].Estimate.Value.Magnetization,
		})
	}

	var err error
	if rep.GammaOverNu, err = GammaOverNu(sorted); err != nil {
		return Report{}, err
	}
	if rep.BetaOverNu, err = BetaOverNu(sorted); err != nil {
		return Report{}, err
	}
	if rep.TcFromChi, err = ExtrapolateTc(sorted, SusceptibilityPeak); err != nil {
		return Report{}, err
	}
	if rep.TcFromC, err = ExtrapolateTc(sorted, HeatCapacityPeak); err != nil {
		return Report{}, err
	}
	if rep.HeatCapacity, err = HeatCapacityGrowth(sorted); err != nil {
		return Report{}, err
	}

	return rep, nil
}
