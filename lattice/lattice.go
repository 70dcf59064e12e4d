package lattice

import (
	"strings"

	"github.com/rabbott99/statmech-ising/rng"
)

// New allocates a lattice of linear size L and applies fill to its values.
// A nil fill leaves every site at the zero value.
// Returns ErrBadSize if L ≤ 0.
// Complexity: O(L^Dims) time and memory.
func New[T Scalar](L int, fill Fill[T]) (*Lattice[T], error) {
	if L <= 0 {
		return nil, ErrBadSize
	}
	vol := 1
	for mu := 0; mu < Dims; mu++ {
		vol *= L
	}
	l := &Lattice[T]{
		size:   L,
		volume: vol,
		values: make([]T, vol),
	}
	if fill != nil {
		fill(l.values)
	}

	return l, nil
}

// Cold fills every site with value (the aligned "cold" start uses +1).
func Cold[T Scalar](value T) Fill[T] {
	return func(values []T) {
		for i := range values {
			values[i] = value
		}
	}
}

// Random fills every site independently with +1 or −1, each with
// probability ½, from a stream seeded by seed (0 ⇒ rng.DefaultSeed).
func Random(seed int64) Fill[int] {
	return func(values []int) {
		r := rng.New(seed)
		for i := range values {
			values[i] = 2*r.Intn(2) - 1
		}
	}
}

// Size returns the linear size L.
func (l *Lattice[T]) Size() int { return l.size }

// Volume returns the number of sites, L^Dims.
func (l *Lattice[T]) Volume() int { return l.volume }

// Values exposes the backing buffer in index order. It is not a copy;
// writes through it mutate the lattice.
func (l *Lattice[T]) Values() []T { return l.values }

// At returns the value at linear index idx.
func (l *Lattice[T]) At(idx int) T {
	l.checkIndex(idx)
	return l.values[idx]
}

// Set stores v at linear index idx.
func (l *Lattice[T]) Set(idx int, v T) {
	l.checkIndex(idx)
	l.values[idx] = v
}

// Get returns the value at coordinate c.
func (l *Lattice[T]) Get(c Coord) T {
	return l.values[l.CoordToIndex(c)]
}

// Sum totals every site value.
func (l *Lattice[T]) Sum() T {
	var s T
	for _, v := range l.values {
		s += v
	}
	return s
}

// CoordToIndex maps c to its row-major linear index.
// Panics if any component lies outside [0, L).
func (l *Lattice[T]) CoordToIndex(c Coord) int {
	idx := 0
	for mu := 0; mu < Dims; mu++ {
		if c[mu] < 0 || c[mu] >= l.size {
			panic(panicCoordRange)
		}
		idx = idx*l.size + c[mu]
	}
	return idx
}

// IndexToCoord maps a linear index back to its coordinate.
// Panics if idx lies outside [0, Volume()).
func (l *Lattice[T]) IndexToCoord(idx int) Coord {
	l.checkIndex(idx)
	var c Coord
	stride := l.volume
	for mu := 0; mu < Dims; mu++ {
		stride /= l.size
		c[mu] = idx / stride
		idx -= c[mu] * stride
	}
	return c
}

// Shift returns a new lattice whose site at coordinate c+amount·ê_axis
// (mod L) holds the value the receiver has at c. It relabels coordinates;
// it is not an evolution step. Panics if axis is outside [0, Dims).
// Complexity: O(L^Dims).
func (l *Lattice[T]) Shift(axis, amount int) *Lattice[T] {
	if axis < 0 || axis >= Dims {
		panic(panicAxisRange)
	}
	out := &Lattice[T]{
		size:   l.size,
		volume: l.volume,
		values: make([]T, l.volume),
	}
	for idx, v := range l.values {
		c := l.IndexToCoord(idx)
		c[axis] = CyclicShift(c[axis], amount, l.size)
		out.values[l.CoordToIndex(c)] = v
	}

	return out
}

// Clone returns an independent deep copy, used to fork chains.
func (l *Lattice[T]) Clone() *Lattice[T] {
	out := &Lattice[T]{
		size:   l.size,
		volume: l.volume,
		values: make([]T, l.volume),
	}
	copy(out.values, l.values)
	return out
}

// Equal reports whether both lattices have the same size and values.
func (l *Lattice[T]) Equal(other *Lattice[T]) bool {
	if other == nil || l.size != other.size {
		return false
	}
	for i, v := range l.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// Picture renders a 2D view of the lattice, one row of L sites per line:
// "x" for a positive value, "o" otherwise.
func (l *Lattice[T]) Picture() string {
	var b strings.Builder
	b.Grow(l.volume + l.volume/l.size)
	for idx, v := range l.values {
		if v > 0 {
			b.WriteByte('x')
		} else {
			b.WriteByte('o')
		}
		if idx%l.size == l.size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// CyclicShift returns (val + diff) mod L in [0, L) for any sign of diff.
func CyclicShift(val, diff, L int) int {
	r := (val + diff) % L
	if r < 0 {
		r += L
	}
	return r
}

func (l *Lattice[T]) checkIndex(idx int) {
	if idx < 0 || idx >= l.volume {
		panic(panicIndexRange)
	}
}
