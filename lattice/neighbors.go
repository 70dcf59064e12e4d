package lattice

// NeighborSum returns the sum of the 2·Dims periodic nearest-neighbour
// values of the site at idx. The 2D fast path is selected by a constant
// condition on Dims; it agrees exactly with the general path.
// Panics if idx lies outside [0, Volume()).
func NeighborSum[T Scalar](l *Lattice[T], idx int) T {
	l.checkIndex(idx)
	if Dims == 2 {
		return neighborSum2D(l, idx)
	}
	return neighborSumGeneral(l, idx)
}

// neighborSumGeneral decomposes idx into coordinates and looks up the ±1
// neighbour along every axis.
func neighborSumGeneral[T Scalar](l *Lattice[T], idx int) T {
	var sum T
	c := l.IndexToCoord(idx)
	for mu := 0; mu < Dims; mu++ {
		n := c
		n[mu] = CyclicShift(c[mu], 1, l.size)
		sum += l.values[l.CoordToIndex(n)]
		n[mu] = CyclicShift(c[mu], -1, l.size)
		sum += l.values[l.CoordToIndex(n)]
	}
	return sum
}

// neighborSum2D computes the four neighbour indices directly on the flat
// index. Axis 0 moves by ±L (mod V); axis 1 moves by ±1 within the row,
// wrapping at the row edges.
func neighborSum2D[T Scalar](l *Lattice[T], idx int) T {
	L, V := l.size, l.volume
	up := (idx + L) % V
	down := (idx + V - L) % V

	col := idx % L
	left := idx - 1
	if col == 0 {
		left = idx + L - 1
	}
	right := idx + 1
	if col == L-1 {
		right = idx - L + 1
	}

	v := l.values
	return v[up] + v[down] + v[left] + v[right]
}
