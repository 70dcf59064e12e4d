package lattice

// Expose both neighbour-sum strategies to the external test package.
var (
	NeighborSumGeneral = neighborSumGeneral[int]
	NeighborSum2D      = neighborSum2D[int]
)
