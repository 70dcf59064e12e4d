package lattice

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// Dims is the lattice dimensionality. It is fixed per build.
const Dims = 2

// ErrBadSize indicates a non-positive linear lattice size.
var ErrBadSize = errors.New("lattice: size must be > 0")

// Panic messages for caller bugs.
const (
	panicCoordRange = "lattice: coordinate out of range"
	panicIndexRange = "lattice: index out of range"
	panicAxisRange  = "lattice: axis out of range"
)

// Scalar is the set of site value types a Lattice can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Coord is a site position; each component lies in [0, L).
type Coord [Dims]int

// Lattice is an owned, flat, row-major buffer of L^Dims site values.
// Coord[0] is the slowest-varying component.
type Lattice[T Scalar] struct {
	size   int
	volume int
	values []T
}

// Spins is the Ising spin lattice; every site holds +1 or −1.
type Spins = Lattice[int]

// Fill initializes a freshly allocated value buffer in index order.
type Fill[T Scalar] func(values []T)
