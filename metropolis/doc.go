// Package metropolis implements the sequential single-spin-flip Metropolis
// update for the Ising model on a periodic lattice.
//
// Hamiltonian (coupling J = 1):
//
//	H = −Σ_<ij> s_i s_j − h·Σ_i s_i
//
// Algorithm (one sweep):
//  1. Visit every site index in increasing order.
//  2. n = NeighborSum(site); δ = −2·s; ΔH = −δ·n − h·δ.
//  3. Draw u ~ U[0,1) (always, exactly once per site).
//  4. Accept if ΔH ≤ 0, otherwise accept iff u ≤ exp(−β·ΔH).
//  5. On acceptance negate the spin in place; later sites read the new value.
//
// Determinism:
//
//	A sweep consumes exactly Volume() draws from the caller-owned stream,
//	independent of the accept/reject outcomes, so a seed and a starting
//	configuration fix the whole chain.
//
// Errors:
//
//   - ErrNonPositiveBeta: β ≤ 0 or NaN; reported before any mutation.
package metropolis
