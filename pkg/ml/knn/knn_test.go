package knn

import "testing"

func fixture(t *testing.T, k int, weights string) *Model {
	t.Helper()
	points := [][]float64{{0, 0}, {0, 1}, {1, 0}, {5, 5}, {5, 6}, {6, 5}}
	labels := []int{0, 0, 0, 1, 1, 1}
	m, err := NewModel(k, weights, points, labels)
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	return m
}

func TestPredictUniform(t *testing.T) {
	m := fixture(t, 3, "")
	label, err := m.Predict([]float64{5.2, 5.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
	proba, _ := m.PredictProba([]float64{0.1, 0.1})
	if proba[0] != 1 || proba[1] != 0 {
		t.Fatalf("expected [1 0], got %v", proba)
	}
}

func TestPredictMixedNeighbourhood(t *testing.T) {
	m := fixture(t, 5, WeightsUniform)
	proba, _ := m.PredictProba([]float64{0, 0})
	if proba[0] != 0.6 || proba[1] != 0.4 {
		t.Fatalf("expected [0.6 0.4], got %v", proba)
	}
}

func TestPredictDistanceWeighted(t *testing.T) {
	m := fixture(t, 6, WeightsDistance)
	proba, _ := m.PredictProba([]float64{5, 5})
	if proba[1] != 1 {
		t.Fatalf("expected exact match to dominate, got %v", proba)
	}
	label, _ := m.Predict([]float64{4.5, 4.5})
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestTieGoesToNegativeClass(t *testing.T) {
	m, err := NewModel(2, WeightsUniform, [][]float64{{0}, {2}}, []int{1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label, _ := m.Predict([]float64{1})
	if label != 0 {
		t.Fatalf("expected tie to resolve to 0, got %d", label)
	}
}

func TestNewModelValidation(t *testing.T) {
	if _, err := NewModel(1, "", nil, nil); err == nil {
		t.Fatal("expected error for empty model")
	}
	if _, err := NewModel(3, "", [][]float64{{0}}, []int{0}); err == nil {
		t.Fatal("expected error for k larger than training set")
	}
	if _, err := NewModel(1, "cosine", [][]float64{{0}}, []int{0}); err == nil {
		t.Fatal("expected error for unknown weights")
	}
	if _, err := NewModel(1, "", [][]float64{{0}, {1, 2}}, []int{0, 1}); err == nil {
		t.Fatal("expected error for ragged points")
	}
	if _, err := NewModel(1, "", [][]float64{{0}}, []int{2}); err == nil {
		t.Fatal("expected error for non-binary label")
	}
}

func TestPredictRejectsWrongWidth(t *testing.T) {
	m := fixture(t, 1, "")
	if _, err := m.Predict([]float64{1}); err == nil {
		t.Fatal("expected width error")
	}
}
