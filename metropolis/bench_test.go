package metropolis_test

import (
	"testing"

	"github.com/rabbott99/statmech-ising/lattice"
	"github.com/rabbott99/statmech-ising/metropolis"
	"github.com/rabbott99/statmech-ising/rng"
)

// BenchmarkSweep measures one sweep of a 64×64 lattice near T_c.
func BenchmarkSweep(b *testing.B) {
	l, err := lattice.New(64, lattice.Random(42))
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	r := rng.New(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := metropolis.Sweep(l, 0.44, 0, r); err != nil {
			b.Fatal(err)
		}
	}
}
