package linear

import (
	"fmt"
	"math"
)

type Weights struct {
	Bias         float64   `json:"bias"`
	Coefficients []float64 `json:"coefficients"`
}

// Model is a fitted binary logistic regression.
type Model struct {
	Weights Weights
}

func NewModel(weights Weights) (*Model, error) {
	if len(weights.Coefficients) == 0 {
		return nil, fmt.Errorf("logistic model has no coefficients")
	}
	return &Model{Weights: weights}, nil
}

func (m *Model) NumFeatures() int {
	return len(m.Weights.Coefficients)
}

func (m *Model) PredictProba(sample []float64) ([2]float64, error) {
	if len(sample) != len(m.Weights.Coefficients) {
		return [2]float64{}, fmt.Errorf("expected %d features, got %d", len(m.Weights.Coefficients), len(sample))
	}
	p := Predict(m.Weights, sample)
	return [2]float64{1 - p, p}, nil
}

// Predict returns 1 when the positive class probability exceeds one half.
func (m *Model) Predict(sample []float64) (int, error) {
	proba, err := m.PredictProba(sample)
	if err != nil {
		return 0, err
	}
	if proba[1] > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func Predict(weights Weights, sample []float64) float64 {
	return sigmoid(dot(weights.Coefficients, sample) + weights.Bias)
}

func dot(weights []float64, sample []float64) float64 {
	var sum float64
	for i := 0; i < len(weights); i++ {
		sum += weights[i] * sample[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
