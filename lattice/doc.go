// Package lattice provides a periodic (toroidal) hyper-cubic lattice of
// scalar site values with a fixed dimensionality, together with the
// nearest-neighbour sum used by the Ising Metropolis update.
//
// What:
//
//   - Lattice[T] stores L^Dims values in one flat row-major buffer.
//   - CoordToIndex / IndexToCoord form a bijection between Coord tuples
//     (each component in [0, L)) and linear indices in [0, L^Dims).
//   - Shift relabels coordinates cyclically along one axis.
//   - NeighborSum adds the 2·Dims periodic nearest neighbours of a site.
//
// Topology:
//
//	Coordinate arithmetic wraps modulo L, so every site has exactly 2·Dims
//	neighbours and there is no boundary special case. For L=1 a site is its
//	own neighbour in every direction; for L=2 the +1 and −1 neighbours along
//	an axis are the same site and are counted twice.
//
// Complexity:
//
//   - CoordToIndex, IndexToCoord: O(Dims).
//   - NeighborSum: O(1) on the 2D fast path, O(Dims) on the general path.
//   - Shift, Clone, Equal: O(L^Dims).
//
// Errors:
//
//   - ErrBadSize: non-positive linear size.
//
// Out-of-range coordinates, indices and axes are caller bugs and panic,
// like slice indexing does.
package lattice
