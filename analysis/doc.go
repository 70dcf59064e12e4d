// Package analysis extracts finite-size-scaling results from scans run at
// several lattice sizes.
//
// Inputs are Series: the rows of one scan, in increasing temperature, with
// the linear size L that produced them.
//
// Per size:
//   - Peak locations of χ and C give the pseudo-critical temperature Tc(L)
//     and the peak heights χ_max(L), C_max(L).
//   - Entropy per spin s(T) = ∫ C/T dT from the lowest temperature (taken as
//     s = 0, the ordered ground state), by trapezoidal integration.
//   - Free energy per spin f(T) = E/V − T·s(T).
//   - Scaling collapse points x = L^{1/ν}(T − Tc(L)) with
//     y = L^{−γ/ν}·χ or y = L^{β/ν}·M.
//
// Across sizes (least squares, gonum/stat):
//   - γ/ν: slope of log χ_max against log L.
//   - β/ν: minus the slope of log M(Tc(L)) against log L.
//   - Tc(∞): intercept of Tc(L) against 1/L.
//   - C_max against log L, whose slope is the amplitude of the logarithmic
//     divergence of the 2D model.
//
// Errors:
//
//   - ErrTooFewRows: a series with fewer than two rows.
//   - ErrBadSeries: a non-positive size or temperature, temperatures that
//     do not strictly increase, or a size repeated across series.
//   - ErrTooFewSizes: a fit over fewer than two sizes.
//   - ErrNotPositive: a logarithm of a value ≤ 0, or a non-positive ν.
package analysis
