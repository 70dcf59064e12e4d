// Package jackknife reduces raw Monte Carlo samples to physical estimates
// with leave-one-out (jackknife) error bars.
//
// Algorithm Outline:
//  1. Resample: for n samples with total S, replica i = (S − x_i)/(n − 1).
//  2. Physical: map every replica through the fluctuation estimators
//     C = (⟨E²⟩ − ⟨E⟩²)/(V·T²) and χ = (⟨M²⟩ − ⟨M⟩²)·V/T.
//  3. Reduce: value = mean of the n physical replicas;
//     error = sqrt((n−1)/n · Σ_i (replica_i − value)²), elementwise.
//
// The error formula is only correct for leave-one-out means; do not feed
// raw samples to step 2 and 3 directly.
//
// Errors:
//
//   - ErrTooFewSamples: jackknife needs n ≥ 2.
//   - ErrDegenerate: non-positive volume or temperature, a non-finite
//     temperature, a V·T² that underflows to zero, or a C or χ that is not
//     finite.
package jackknife
