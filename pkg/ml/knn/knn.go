package knn

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	WeightsUniform  = "uniform"
	WeightsDistance = "distance"
)

// Model is a k-nearest-neighbours binary classifier over pre-scaled points.
type Model struct {
	k       int
	weights string
	points  [][]float64
	labels  []int
	width   int
}

func NewModel(k int, weights string, points [][]float64, labels []int) (*Model, error) {
	if len(points) == 0 {
		return nil, errors.New("knn model has no training points")
	}
	if len(points) != len(labels) {
		return nil, fmt.Errorf("knn model has %d points and %d labels", len(points), len(labels))
	}
	if k <= 0 || k > len(points) {
		return nil, fmt.Errorf("k=%d out of range for %d points", k, len(points))
	}
	switch weights {
	case "":
		weights = WeightsUniform
	case WeightsUniform, WeightsDistance:
	default:
		return nil, fmt.Errorf("unsupported knn weights %q", weights)
	}

	width := len(points[0])
	stored := make([][]float64, len(points))
	for i, p := range points {
		if len(p) != width {
			return nil, fmt.Errorf("point %d has %d features, expected %d", i, len(p), width)
		}
		if labels[i] != 0 && labels[i] != 1 {
			return nil, fmt.Errorf("point %d has label %d, expected 0 or 1", i, labels[i])
		}
		stored[i] = append([]float64(nil), p...)
	}

	return &Model{
		k:       k,
		weights: weights,
		points:  stored,
		labels:  append([]int(nil), labels...),
		width:   width,
	}, nil
}

func (m *Model) NumFeatures() int {
	return m.width
}

type neighbour struct {
	distance float64
	label    int
}

func (m *Model) PredictProba(sample []float64) ([2]float64, error) {
	if len(sample) != m.width {
		return [2]float64{}, fmt.Errorf("expected %d features, got %d", m.width, len(sample))
	}

	all := make([]neighbour, len(m.points))
	for i, p := range m.points {
		all[i] = neighbour{distance: euclidean(p, sample), label: m.labels[i]}
	}
	// Stable so that equidistant points keep training order.
	sort.SliceStable(all, func(i, j int) bool { return all[i].distance < all[j].distance })
	nearest := all[:m.k]

	if m.weights == WeightsDistance {
		// An exact match takes all the weight.
		var exact [2]float64
		for _, n := range nearest {
			if n.distance == 0 {
				exact[n.label]++
			}
		}
		if exact[0]+exact[1] > 0 {
			total := exact[0] + exact[1]
			return [2]float64{exact[0] / total, exact[1] / total}, nil
		}
	}

	var votes [2]float64
	for _, n := range nearest {
		w := 1.0
		if m.weights == WeightsDistance {
			w = 1 / n.distance
		}
		votes[n.label] += w
	}
	total := votes[0] + votes[1]
	return [2]float64{votes[0] / total, votes[1] / total}, nil
}

// Predict returns the majority class; ties go to class 0.
func (m *Model) Predict(sample []float64) (int, error) {
	proba, err := m.PredictProba(sample)
	if err != nil {
		return 0, err
	}
	if proba[1] > proba[0] {
		return 1, nil
	}
	return 0, nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
