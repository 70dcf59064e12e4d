package sample

import (
	"math"

	"github.com/rabbott99/statmech-ising/lattice"
)

// SpinEnergy returns −Σ_<ij> s_i s_j, i.e. −½·Σ_i s_i·n_i; the ½ undoes the
// double counting of every bond.
func SpinEnergy(l *lattice.Spins) float64 {
	bonds := 0
	for idx, s := range l.Values() {
		bonds += s * lattice.NeighborSum(l, idx)
	}
	return -float64(bonds) / 2
}

// Magnetization returns the signed magnetization per site, Σ_i s_i / V.
func Magnetization(l *lattice.Spins) float64 {
	return float64(l.Sum()) / float64(l.Volume())
}

// Measure records the observables of the current configuration in a field
// of strength field.
func Measure(l *lattice.Spins, field float64) RawSample {
	m := Magnetization(l)
	e := SpinEnergy(l) - field*m
	return RawSample{
		Energy:               e,
		EnergySquared:        e * e,
		Magnetization:        math.Abs(m),
		MagnetizationSquared: m * m,
	}
}
