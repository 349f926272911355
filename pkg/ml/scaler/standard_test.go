package scaler

import (
	"errors"
	"testing"
)

func TestTransform(t *testing.T) {
	s := Standard{Mean: []float64{50, 0, 1}, Scale: []float64{10, 0, 2}}
	in := []float64{70, 3, 1}
	out, err := s.Transform(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], out[i])
		}
	}
	if in[0] != 70 {
		t.Fatal("input row was modified")
	}
}

func TestTransformDimensionMismatch(t *testing.T) {
	s := Standard{Mean: []float64{0, 0}, Scale: []float64{1, 1}}
	if _, err := s.Transform([]float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Standard{}).Validate(); err == nil {
		t.Fatal("expected error for empty scaler")
	}
	s := Standard{Mean: []float64{0, 0}, Scale: []float64{1}}
	if err := s.Validate(); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}
