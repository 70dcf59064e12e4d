// Package ising estimates thermodynamic observables of the two-dimensional
// Ising model with Metropolis Monte Carlo and jackknife error analysis.
//
// The root package holds no code; everything lives in subpackages:
//
//	lattice/    periodic spin lattice, index/coordinate mapping, neighbor sums
//	metropolis/ sequential single-spin-flip sweeps
//	sample/     thermalization, measurement and raw sample arithmetic
//	jackknife/  leave-one-out resampling into E, C, M and chi with errors
//	scan/       temperature grid and parallel per-temperature chains
//	store/      SQLite persistence of finished scans
//	plot/       PNG charts of observables, size overlays and fits
//	analysis/   finite-size scaling across lattice sizes
//	rng/        deterministic seeding and per-chain stream derivation
//
// The cmd/ising binary ties these together:
//
//	ising -L 16 -tmin 1 -tmax 4 -tstep 0.1 -db runs.db -plot out/
//
// and cmd/fss analyzes the stored scans of several sizes:
//
//	fss -db runs.db -plot fss/
//
// Hamiltonian, with J = 1 and periodic boundaries:
//
//	H = -Σ⟨ij⟩ s_i s_j - h Σ_i s_i
package ising
