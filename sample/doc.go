// Package sample drives a Metropolis chain and records raw thermodynamic
// observables along it.
//
// A run is:
//
//	thermalize:  Thermalization sweeps, nothing recorded
//	repeat Samples times:
//	    Separation sweeps
//	    Measure → RawSample
//
// Measure computes, for the current configuration with V sites:
//
//	M   = Σ_i s_i / V              (recorded as |M|)
//	M²  = M·M
//	E   = −½·Σ_i s_i·n_i − h·M     (n_i = periodic neighbour sum)
//	E²  = E·E
//
// The absolute value on M keeps the ±M symmetry at zero field from
// averaging the magnetization to zero. The field term uses the signed M.
//
// Samples are returned in chain order and are not reduced here; see the
// jackknife package for estimates with errors.
package sample
