package analysis

import (
	"fmt"

	"github.com/rabbott99/statmech-ising/jackknife"
)

// validate checks one series for use by any analysis.
func (s Series) validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("size=%d: %w", s.Size, ErrBadSeries)
	}
	if len(s.Rows) < 2 {
		return fmt.Errorf("L=%d: %w", s.Size, ErrTooFewRows)
	}
	if !(s.Rows[0].Temperature > 0) {
		return fmt.Errorf("L=%d: temperature %g: %w", s.Size, s.Rows[0].Temperature, ErrBadSeries)
	}
	for i := 1; i < len(s.Rows); i++ {
		if !(s.Rows[i].Temperature > s.Rows[i-1].Temperature) {
			return fmt.Errorf("L=%d: temperatures not increasing at row %d: %w", s.Size, i, ErrBadSeries)
		}
	}
	return nil
}

// SusceptibilityPeak returns the row with the largest χ; its temperature is
// the pseudo-critical Tc(L) used for every collapse and for β/ν.
// Ties resolve to the lowest temperature.
func SusceptibilityPeak(s Series) (Peak, error) {
	return peak(s, func(p jackknife.PhysicalResult) float64 { return p.Susceptibility })
}

// HeatCapacityPeak returns the row with the largest C.
func HeatCapacityPeak(s Series) (Peak, error) {
	return peak(s, func(p jackknife.PhysicalResult) float64 { return p.HeatCapacity })
}

func peak(s Series, pick func(jackknife.PhysicalResult) float64) (Peak, error) {
	if err := s.validate(); err != nil {
		return Peak{}, err
	}
	best := 0
	for i, r := range s.Rows {
		if pick(r.Estimate.Value) > pick(s.Rows[best].Estimate.Value) {
			best = i
		}
	}
	r := s.Rows[best]

	return Peak{
		Index:       best,
		Temperature: r.Temperature,
		Value:       pick(r.Estimate.Value),
		Error:       pick(r.Estimate.Error),
	}, nil
}
