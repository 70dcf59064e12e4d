// Package scan runs one independent Metropolis chain per temperature and
// reduces each chain to a jackknife estimate.
//
// Every chain starts from a clone of the same initial lattice and owns a
// random stream derived from (Seed, temperature index), so rows are
// bit-identical whatever the concurrency level. Chains share no mutable
// state; they are fanned out with an errgroup bounded by Concurrency, and
// the first failure cancels the rest.
package scan
