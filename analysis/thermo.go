package analysis

import (
	"gonum.org/v1/gonum/integrate"
)

// Entropy returns the entropy per spin at every row,
// s(T_i) = ∫_{T_0}^{T_i} C(T)/T dT, with s(T_0) = 0.
//
// The anchor is the ordered ground state, so the result is only
// meaningful when the scan starts deep in the ordered phase.
// Complexity: O(n).
func Entropy(s Series) ([]float64, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n := len(s.Rows)
	ts := make([]float64, n)
	integrand := make([]float64, n)
	for i, r := range s.Rows {
		ts[i] = r.Temperature
		integrand[i] = r.Estimate.Value.HeatCapacity / r.Temperature
	}

	out := make([]float64, n)
	for i := 1; i < n; i++ {
		out[i] = out[i-1] + integrate.Trapezoidal(ts[i-1:i+1], integrand[i-1:i+1])
	}
	return out, nil
}

// FreeEnergy returns the free energy per spin f = E/V − T·s at every row,
// with s from Entropy.
func FreeEnergy(s Series) ([]float64, error) {
	entropy, err := Entropy(s)
	if err != nil {
		return nil, err
	}
	v := float64(s.Volume())
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Estimate.Value.Energy/v - r.Temperature*entropy[i]
	}
	return out, nil
}
