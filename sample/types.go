package sample

import (
	"errors"
	"fmt"
)

// ErrBadOptions indicates an invalid sweep or sample budget.
var ErrBadOptions = errors.New("sample: invalid options")

// RawSample is one measurement of the chain. Values are per configuration:
// Energy is the total energy, Magnetization is per site.
type RawSample struct {
	Energy               float64
	EnergySquared        float64
	Magnetization        float64
	MagnetizationSquared float64
}

// Add returns s + o.
func (s RawSample) Add(o RawSample) RawSample {
	return RawSample{
		Energy:               s.Energy + o.Energy,
		EnergySquared:        s.EnergySquared + o.EnergySquared,
		Magnetization:        s.Magnetization + o.Magnetization,
		MagnetizationSquared: s.MagnetizationSquared + o.MagnetizationSquared,
	}
}

// Sub returns s − o.
func (s RawSample) Sub(o RawSample) RawSample {
	return s.Add(o.Neg())
}

// Scale returns c·s.
func (s RawSample) Scale(c float64) RawSample {
	return RawSample{
		Energy:               c * s.Energy,
		EnergySquared:        c * s.EnergySquared,
		Magnetization:        c * s.Magnetization,
		MagnetizationSquared: c * s.MagnetizationSquared,
	}
}

// Div returns s / c.
func (s RawSample) Div(c float64) RawSample {
	return RawSample{
		Energy:               s.Energy / c,
		EnergySquared:        s.EnergySquared / c,
		Magnetization:        s.Magnetization / c,
		MagnetizationSquared: s.MagnetizationSquared / c,
	}
}

// Neg returns −s.
func (s RawSample) Neg() RawSample {
	return s.Scale(-1)
}

// String formats the four fields on one line.
func (s RawSample) String() string {
	return fmt.Sprintf("E=%g E^2=%g M=%g M^2=%g",
		s.Energy, s.EnergySquared, s.Magnetization, s.MagnetizationSquared)
}

// Sum returns the pointwise total of samples (zero for an empty slice).
func Sum(samples []RawSample) RawSample {
	var total RawSample
	for _, s := range samples {
		total = total.Add(s)
	}
	return total
}

// Mean returns the pointwise average of samples.
// An empty slice yields the zero sample.
func Mean(samples []RawSample) RawSample {
	if len(samples) == 0 {
		return RawSample{}
	}
	return Sum(samples).Div(float64(len(samples)))
}

// Options sets the sweep budget of a run.
//
//   - Thermalization: discarded burn-in sweeps before the first measurement (≥ 0).
//   - Separation:     sweeps between consecutive measurements (≥ 0).
//   - Samples:        number of measurements to record (≥ 1).
type Options struct {
	Thermalization int
	Separation     int
	Samples        int
}

// DefaultOptions returns the production budget: 100000 burn-in sweeps,
// 10 sweeps between measurements and 30000 measurements.
func DefaultOptions() Options {
	return Options{
		Thermalization: 100000,
		Separation:     10,
		Samples:        30000,
	}
}

// Validate reports ErrBadOptions (wrapped with the offending field) when
// the budget is unusable.
func (o Options) Validate() error {
	switch {
	case o.Thermalization < 0:
		return fmt.Errorf("thermalization=%d: %w", o.Thermalization, ErrBadOptions)
	case o.Separation < 0:
		return fmt.Errorf("separation=%d: %w", o.Separation, ErrBadOptions)
	case o.Samples < 1:
		return fmt.Errorf("samples=%d: %w", o.Samples, ErrBadOptions)
	}
	return nil
}

// TotalSweeps is the number of sweeps a run with these options performs.
func (o Options) TotalSweeps() int {
	return o.Thermalization + o.Samples*o.Separation
}
