package metropolis_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbott99/statmech-ising/lattice"
	"github.com/rabbott99/statmech-ising/metropolis"
	"github.com/rabbott99/statmech-ising/rng"
)

// fixedSource is a rand.Source that always yields the same value, pinning
// every uniform draw of a sweep.
type fixedSource struct{ v int64 }

func (f fixedSource) Int63() int64 { return f.v }
func (f fixedSource) Seed(int64)   {}

// alwaysZero makes every draw u = 0 (accept every proposal).
func alwaysZero() *rand.Rand { return rand.New(fixedSource{0}) }

// almostOne makes every draw u = 1 − 2⁻⁵³, the largest float64 below 1,
// so every uphill proposal is rejected.
func almostOne() *rand.Rand { return rand.New(fixedSource{math.MaxInt64 - 1023}) }

// totalEnergy recomputes −½Σ s_i·n_i − h·Σ s_i from scratch.
func totalEnergy(l *lattice.Spins, field float64) float64 {
	bonds := 0
	for idx, s := range l.Values() {
		bonds += s * lattice.NeighborSum(l, idx)
	}
	return -float64(bonds)/2 - field*float64(l.Sum())
}

// TestDeltaH pins the energy-change formula.
func TestDeltaH(t *testing.T) {
	cases := []struct {
		name            string
		spin, neighbors int
		field, want     float64
	}{
		{"AlignedUp", 1, 4, 0, 8},
		{"AlignedDown", -1, -4, 0, 8},
		{"AntiAligned", -1, 4, 0, -8},
		{"Mixed", 1, 2, 0, 4},
		{"FieldOpposesFlip", 1, 0, 1, 2},
		{"FieldFavoursFlip", -1, 0, 1, -2},
		{"Combined", 1, -2, 0.5, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metropolis.DeltaH(tc.spin, tc.neighbors, tc.field))
		})
	}
}

// TestSweep_RejectsBadBeta verifies that invalid beta fails before any
// mutation or random draw.
func TestSweep_RejectsBadBeta(t *testing.T) {
	for _, beta := range []float64{0, -1, math.NaN(), math.Inf(-1)} {
		l, _ := lattice.New(4, lattice.Random(9))
		before := l.Clone()
		r := rng.New(3)

		_, err := metropolis.Sweep(l, beta, 0, r)
		require.ErrorIs(t, err, metropolis.ErrNonPositiveBeta, "beta=%v", beta)
		assert.True(t, before.Equal(l), "lattice mutated for beta=%v", beta)
		assert.Equal(t, rng.New(3).Float64(), r.Float64(), "stream consumed for beta=%v", beta)

		_, err = metropolis.Sweeps(l, 0, beta, 0, r)
		assert.ErrorIs(t, err, metropolis.ErrNonPositiveBeta)
	}
}

// TestSweep_OneDrawPerSite checks that a sweep consumes exactly Volume()
// draws regardless of temperature and outcome.
func TestSweep_OneDrawPerSite(t *testing.T) {
	for _, beta := range []float64{1e-9, 0.2, 0.44, 1, 50} {
		l, _ := lattice.New(6, lattice.Random(2))
		r := rng.New(77)
		st, err := metropolis.Sweep(l, beta, 0.3, r)
		require.NoError(t, err)
		assert.Equal(t, l.Volume(), st.Proposed)

		ref := rng.New(77)
		for i := 0; i < l.Volume(); i++ {
			ref.Float64()
		}
		assert.Equal(t, ref.Float64(), r.Float64(), "beta=%v", beta)
	}
}

// TestSweep_ZeroTemperatureNeverRaisesEnergy runs sweeps at very large beta
// and checks that the energy is non-increasing.
func TestSweep_ZeroTemperatureNeverRaisesEnergy(t *testing.T) {
	l, _ := lattice.New(8, lattice.Random(4))
	r := rng.New(4)
	e := totalEnergy(l, 0)
	for i := 0; i < 20; i++ {
		_, err := metropolis.Sweep(l, 1e9, 0, r)
		require.NoError(t, err)
		next := totalEnergy(l, 0)
		require.LessOrEqual(t, next, e, "sweep %d raised the energy", i)
		e = next
	}
}

// TestSweep_UphillRejectedAtLargeDraw pins the comparison direction: a cold
// lattice has ΔH = 8 everywhere and u ≈ 1 exceeds exp(−8β).
func TestSweep_UphillRejectedAtLargeDraw(t *testing.T) {
	l, _ := lattice.New(4, lattice.Cold(1))
	st, err := metropolis.Sweep(l, 1, 0, almostOne())
	require.NoError(t, err)
	assert.Zero(t, st.Accepted)
	assert.Equal(t, 16, l.Sum())
}

// TestSweep_ZeroDrawAcceptsEverything checks that u = 0 accepts every
// proposal, including uphill ones.
func TestSweep_ZeroDrawAcceptsEverything(t *testing.T) {
	l, _ := lattice.New(4, lattice.Cold(1))
	st, err := metropolis.Sweep(l, 5, 0, alwaysZero())
	require.NoError(t, err)
	assert.Equal(t, 16, st.Accepted)
	assert.Equal(t, -16, l.Sum())
}

// TestSweep_HighTemperatureAcceptsAll checks that as beta → 0 the threshold
// tends to 1 and every flip is accepted.
func TestSweep_HighTemperatureAcceptsAll(t *testing.T) {
	l, _ := lattice.New(4, lattice.Cold(1))
	st, err := metropolis.Sweep(l, 1e-15, 0, rng.New(8))
	require.NoError(t, err)
	assert.Equal(t, l.Volume(), st.Accepted)
	assert.Equal(t, 1.0, st.AcceptanceRate())
	assert.Equal(t, -l.Volume(), l.Sum())
}

// TestSweep_DownhillAlwaysAccepted checks that a spin against its
// neighbours and the field flips even with u ≈ 1.
func TestSweep_DownhillAlwaysAccepted(t *testing.T) {
	l, _ := lattice.New(3, lattice.Cold(1))
	l.Set(0, -1)
	st, err := metropolis.Sweep(l, 1, 0.5, almostOne())
	require.NoError(t, err)
	assert.Equal(t, 1, st.Accepted)
	assert.Equal(t, 9, l.Sum())
}

// TestSweep_SingleSiteFlipsEachSweep: with u = 0 on a 1×1 lattice the
// single spin flips on every sweep.
func TestSweep_SingleSiteFlipsEachSweep(t *testing.T) {
	l, _ := lattice.New(1, lattice.Cold(1))
	r := alwaysZero()
	for i := 0; i < 3; i++ {
		_, err := metropolis.Sweep(l, 1, 0, r)
		require.NoError(t, err)
	}
	assert.Equal(t, -1, l.At(0))
}

// TestSweep_SequentialUpdate verifies that site 1 sees the flip made at
// site 0 earlier in the same sweep. Against the pre-sweep snapshot site 1
// would have n = 2 (uphill, rejected); after site 0 flips it has n = 0.
func TestSweep_SequentialUpdate(t *testing.T) {
	l, _ := lattice.New[int](3, nil)
	copy(l.Values(), []int{
		+1, +1, -1,
		-1, +1, +1,
		-1, +1, +1,
	})
	st, err := metropolis.Sweep(l, 1, 0, almostOne())
	require.NoError(t, err)
	assert.Equal(t, -1, l.At(0), "site 0 is downhill and flips")
	assert.Equal(t, -1, l.At(1), "site 1 must see the updated site 0")
	assert.GreaterOrEqual(t, st.Accepted, 2)
}

// TestSweep_Deterministic checks bit-identical chains for identical seeds.
func TestSweep_Deterministic(t *testing.T) {
	a, _ := lattice.New(10, lattice.Random(6))
	b := a.Clone()
	ra, rb := rng.New(21), rng.New(21)

	sa, err := metropolis.Sweeps(a, 25, 0.4, 0.1, ra)
	require.NoError(t, err)
	sb, err := metropolis.Sweeps(b, 25, 0.4, 0.1, rb)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 25*a.Volume(), sa.Proposed)
}

// TestStats_AcceptanceRate covers the empty case.
func TestStats_AcceptanceRate(t *testing.T) {
	assert.Zero(t, metropolis.Stats{}.AcceptanceRate())
	s := metropolis.Stats{Proposed: 4, Accepted: 1}
	s.Add(metropolis.Stats{Proposed: 4, Accepted: 3})
	assert.Equal(t, 0.5, s.AcceptanceRate())
}
