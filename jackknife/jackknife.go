package jackknife

import (
	"math"

	"github.com/rabbott99/statmech-ising/sample"
)

// Resample returns the n leave-one-out means of samples: element i is the
// average of every sample except samples[i].
// Returns ErrTooFewSamples if len(samples) < 2.
// Complexity: O(n) time and memory.
func Resample(samples []sample.RawSample) ([]sample.RawSample, error) {
	n := len(samples)
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	total := sample.Sum(samples)
	out := make([]sample.RawSample, n)
	for i, s := range samples {
		out[i] = total.Sub(s).Div(float64(n - 1))
	}

	return out, nil
}

// Physical applies the fluctuation estimators to one averaged or resampled
// sample at the given lattice volume and temperature.
// Returns ErrDegenerate if volume ≤ 0, temperature is ≤ 0 or NaN, either
// denominator V·T² or T is zero or infinite in float64, or either
// fluctuation estimate is not finite.
func Physical(raw sample.RawSample, volume int, temperature float64) (PhysicalResult, error) {
	if volume <= 0 || !(temperature > 0) {
		return PhysicalResult{}, ErrDegenerate
	}
	v := float64(volume)
	denom := v * temperature * temperature
	if denom == 0 || math.IsInf(denom, 0) || math.IsInf(temperature, 0) {
		return PhysicalResult{}, ErrDegenerate
	}
	e, e2 := raw.Energy, raw.EnergySquared
	m, m2 := raw.Magnetization, raw.MagnetizationSquared

	c := (e2 - e*e) / denom
	chi := (m2 - m*m) * v / temperature
	if !finite(c) || !finite(chi) {
		return PhysicalResult{}, ErrDegenerate
	}

	return PhysicalResult{
		Energy:         e,
		HeatCapacity:   c,
		Magnetization:  m,
		Susceptibility: chi,
	}, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Reduce runs the full jackknife reduction of samples taken at the given
// volume and temperature.
//
// Errors:
//   - ErrTooFewSamples from Resample.
//   - ErrDegenerate from Physical.
//
// Complexity: O(n).
func Reduce(samples []sample.RawSample, volume int, temperature float64) (Estimate, error) {
	replicas, err := Resample(samples)
	if err != nil {
		return Estimate{}, err
	}
	results := make([]PhysicalResult, len(replicas))
	for i, r := range replicas {
		if results[i], err = Physical(r, volume, temperature); err != nil {
			return Estimate{}, err
		}
	}

	return Estimate{
		Value: Mean(results),
		Error: Error(results),
	}, nil
}

// Error returns sqrt((n−1)/n · Σ_i (r_i − mean)²) elementwise over the
// jackknife replicas. Fewer than two replicas yield a zero error.
func Error(replicas []PhysicalResult) PhysicalResult {
	n := len(replicas)
	if n < 2 {
		return PhysicalResult{}
	}
	mean := Mean(replicas)
	var acc PhysicalResult
	for _, r := range replicas {
		d := r.Sub(mean)
		acc = acc.Add(d.Mul(d))
	}
	return acc.Scale(float64(n-1) / float64(n)).Sqrt()
}
