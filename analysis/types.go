package analysis

import (
	"errors"
	"math"

	"github.com/rabbott99/statmech-ising/scan"
)

var (
	// ErrTooFewRows indicates a series with fewer than two rows.
	ErrTooFewRows = errors.New("analysis: need at least two rows per series")

	// ErrBadSeries indicates a malformed series or set of series.
	ErrBadSeries = errors.New("analysis: invalid series")

	// ErrTooFewSizes indicates a fit over fewer than two lattice sizes.
	ErrTooFewSizes = errors.New("analysis: need at least two lattice sizes")

	// ErrNotPositive indicates a logarithm or exponent of a non-positive value.
	ErrNotPositive = errors.New("analysis: value must be > 0")
)

// Exact values of the 2D Ising model on the square lattice.
var (
	ExactTc          = 2 / math.Log(1+math.Sqrt2)
	ExactNu          = 1.0
	ExactGammaOverNu = 1.75
	ExactBetaOverNu  = 0.125
)

// Series is one temperature scan at linear size Size.
type Series struct {
	Size int
	Rows []scan.Row
}

// Volume returns Size².
func (s Series) Volume() int { return s.Size * s.Size }

// Peak is the grid row at which an observable is largest.
type Peak struct {
	Index       int
	Temperature float64
	Value       float64
	Error       float64
}

// PeakFunc locates a peak in one series.
type PeakFunc func(s Series) (Peak, error)

// Fit is a least-squares line y = Intercept + Slope·x.
type Fit struct {
	Slope     float64
	Intercept float64
	// RSquared is the coefficient of determination; 1 for two points,
	// NaN when every y is equal.
	RSquared float64
}

// At evaluates the line at x.
func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// Exponent is a critical-exponent ratio with the fit it was read from.
type Exponent struct {
	Value float64
	Fit   Fit
}

// Point is one plotted value with its error.
type Point struct {
	X, Y, Err float64
}

// SizeSummary holds the per-size peak data of a Report.
type SizeSummary struct {
	Size           int
	Susceptibility Peak
	HeatCapacity   Peak
	// Magnetization is M at the susceptibility peak.
	Magnetization float64
}

// Report is the full finite-size analysis of several sizes, sorted by size.
type Report struct {
	Sizes        []SizeSummary
	GammaOverNu  Exponent
	BetaOverNu   Exponent
	TcFromChi    Fit
	TcFromC      Fit
	HeatCapacity Fit
}
