package charts

import (
	"errors"
	"fmt"
	"math"
)

var ErrLengthMismatch = errors.New("x and y lengths differ")

// Series is an ordered set of (X[i], Y[i]) points.
type Series struct {
	X []float64
	Y []float64
}

// NewSeries copies x and y so later changes by the caller do not leak in.
func NewSeries(x, y []float64) Series {
	return Series{
		X: append([]float64(nil), x...),
		Y: append([]float64(nil), y...),
	}
}

// SampleSeries is the monthly sales dataset rendered when no data file is given.
func SampleSeries() Series {
	return NewSeries(
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 20, 15, 25, 30},
	)
}

func (s Series) Len() int {
	return len(s.X)
}

// Validate reports ErrEmptySeries or ErrLengthMismatch. Values themselves
// are not checked; non-finite points are skipped while drawing.
func (s Series) Validate() error {
	if len(s.X) == 0 || len(s.Y) == 0 {
		return ErrEmptySeries
	}
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(s.X), len(s.Y))
	}
	return nil
}

type point struct {
	X, Y float64
}

// finitePoints drops pairs where either coordinate is NaN or ±Inf.
func (s Series) finitePoints() []point {
	pts := make([]point, 0, len(s.X))
	for i := range s.X {
		x, y := s.X[i], s.Y[i]
		if isFinite(x) && isFinite(y) {
			pts = append(pts, point{X: x, Y: y})
		}
	}
	return pts
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
