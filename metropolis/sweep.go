package metropolis

import (
	"math"
	"math/rand"

	"github.com/rabbott99/statmech-ising/lattice"
)

// DeltaH returns the energy change of flipping a spin with value spin whose
// neighbours sum to neighbors, in an external field of strength field.
func DeltaH(spin, neighbors int, field float64) float64 {
	delta := -2 * spin
	return float64(-delta*neighbors) - field*float64(delta)
}

// Sweep performs one full sequential Metropolis pass over l at inverse
// temperature beta and field strength field, mutating l in place.
// It draws exactly one uniform value from r per site.
//
// Returns ErrNonPositiveBeta, with l untouched, if beta ≤ 0 or NaN.
// Complexity: O(Volume()).
func Sweep(l *lattice.Spins, beta, field float64, r *rand.Rand) (Stats, error) {
	if !(beta > 0) {
		return Stats{}, ErrNonPositiveBeta
	}

	values := l.Values()
	st := Stats{Proposed: len(values)}
	for idx := range values {
		dH := DeltaH(values[idx], lattice.NeighborSum(l, idx), field)
		u := r.Float64()
		if dH > 0 && u > math.Exp(-beta*dH) {
			continue
		}
		values[idx] = -values[idx]
		st.Accepted++
	}

	return st, nil
}

// Sweeps runs n consecutive sweeps and returns the combined statistics.
// beta is validated even when n is 0.
func Sweeps(l *lattice.Spins, n int, beta, field float64, r *rand.Rand) (Stats, error) {
	var total Stats
	if !(beta > 0) {
		return total, ErrNonPositiveBeta
	}
	for i := 0; i < n; i++ {
		st, err := Sweep(l, beta, field, r)
		if err != nil {
			return total, err
		}
		total.Add(st)
	}
	return total, nil
}
