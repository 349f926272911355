package scaler

import (
	"errors"
	"fmt"
	"math"
)

var ErrDimensionMismatch = errors.New("dimension mismatch")

// Standard is a fitted standardization: (x - mean) / scale per column.
type Standard struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s Standard) NumFeatures() int {
	return len(s.Mean)
}

func (s Standard) Validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no columns")
	}
	if len(s.Scale) != len(s.Mean) {
		return fmt.Errorf("mean has %d entries, scale has %d: %w", len(s.Mean), len(s.Scale), ErrDimensionMismatch)
	}
	for i := range s.Mean {
		if math.IsNaN(s.Mean[i]) || math.IsNaN(s.Scale[i]) || math.IsInf(s.Scale[i], 0) {
			return fmt.Errorf("column %d has non-finite parameters", i)
		}
	}
	return nil
}

// Transform returns a new scaled row; the input is not modified.
// A zero scale is treated as 1.
func (s Standard) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("expected %d features, got %d: %w", len(s.Mean), len(x), ErrDimensionMismatch)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
