package metropolis

import "errors"

// ErrNonPositiveBeta indicates an inverse temperature that is not > 0.
var ErrNonPositiveBeta = errors.New("metropolis: beta must be > 0")

// Stats records the proposals made and accepted during one or more sweeps.
type Stats struct {
	Proposed int
	Accepted int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Proposed += other.Proposed
	s.Accepted += other.Accepted
}

// AcceptanceRate returns Accepted/Proposed, or 0 when nothing was proposed.
func (s Stats) AcceptanceRate() float64 {
	if s.Proposed == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Proposed)
}
