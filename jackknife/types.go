package jackknife

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewSamples indicates a jackknife over fewer than two samples.
	ErrTooFewSamples = errors.New("jackknife: need at least two samples")

	// ErrDegenerate indicates a zero or invalid volume or temperature, or a
	// fluctuation estimate that is not representable.
	ErrDegenerate = errors.New("jackknife: degenerate volume or temperature")
)

// PhysicalResult holds the four derived observables. Energy is the total
// energy, Magnetization is per site.
type PhysicalResult struct {
	Energy         float64
	HeatCapacity   float64
	Magnetization  float64
	Susceptibility float64
}

// Add returns p + o.
func (p PhysicalResult) Add(o PhysicalResult) PhysicalResult {
	return PhysicalResult{
		Energy:         p.Energy + o.Energy,
		HeatCapacity:   p.HeatCapacity + o.HeatCapacity,
		Magnetization:  p.Magnetization + o.Magnetization,
		Susceptibility: p.Susceptibility + o.Susceptibility,
	}
}

// Sub returns p − o.
func (p PhysicalResult) Sub(o PhysicalResult) PhysicalResult {
	return p.Add(o.Neg())
}

// Mul returns the elementwise product p·o.
func (p PhysicalResult) Mul(o PhysicalResult) PhysicalResult {
	return PhysicalResult{
		Energy:         p.Energy * o.Energy,
		HeatCapacity:   p.HeatCapacity * o.HeatCapacity,
		Magnetization:  p.Magnetization * o.Magnetization,
		Susceptibility: p.Susceptibility * o.Susceptibility,
	}
}

// Scale returns c·p.
func (p PhysicalResult) Scale(c float64) PhysicalResult {
	return PhysicalResult{
		Energy:         c * p.Energy,
		HeatCapacity:   c * p.HeatCapacity,
		Magnetization:  c * p.Magnetization,
		Susceptibility: c * p.Susceptibility,
	}
}

// Div returns p / c.
func (p PhysicalResult) Div(c float64) PhysicalResult {
	return PhysicalResult{
		Energy:         p.Energy / c,
		HeatCapacity:   p.HeatCapacity / c,
		Magnetization:  p.Magnetization / c,
		Susceptibility: p.Susceptibility / c,
	}
}

// Neg returns −p.
func (p PhysicalResult) Neg() PhysicalResult {
	return p.Scale(-1)
}

// Sqrt returns the elementwise square root.
func (p PhysicalResult) Sqrt() PhysicalResult {
	return PhysicalResult{
		Energy:         math.Sqrt(p.Energy),
		HeatCapacity:   math.Sqrt(p.HeatCapacity),
		Magnetization:  math.Sqrt(p.Magnetization),
		Susceptibility: math.Sqrt(p.Susceptibility),
	}
}

// String formats the four fields on one line.
func (p PhysicalResult) String() string {
	return fmt.Sprintf("E=%g C=%g M=%g chi=%g",
		p.Energy, p.HeatCapacity, p.Magnetization, p.Susceptibility)
}

// Mean returns the elementwise average of results (zero for an empty slice).
func Mean(results []PhysicalResult) PhysicalResult {
	var total PhysicalResult
	if len(results) == 0 {
		return total
	}
	for _, r := range results {
		total = total.Add(r)
	}
	return total.Div(float64(len(results)))
}

// Estimate is a jackknife point estimate with its statistical error.
type Estimate struct {
	Value PhysicalResult
	Error PhysicalResult
}
