package ml

import (
	"encoding/json"
	"testing"
)

func TestDecodeLogistic(t *testing.T) {
	raw := `{"model":{"type":"logistic","feature_names":["a","b"],"weights":{"bias":0.5,"coefficients":[1,-1]}}}`
	var artifact Artifact
	if err := json.Unmarshal([]byte(raw), &artifact); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	clf, err := Decode(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clf.NumFeatures() != 2 {
		t.Fatalf("expected 2 features, got %d", clf.NumFeatures())
	}
}

func TestDecodeKNN(t *testing.T) {
	raw := `{"model":{"type":"knn","neighbours":{"k":1,"points":[[0],[1]],"labels":[0,1]}}}`
	var artifact Artifact
	if err := json.Unmarshal([]byte(raw), &artifact); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	clf, err := Decode(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label, err := clf.Predict([]float64{0.9})
	if err != nil || label != 1 {
		t.Fatalf("expected label 1, got %d (%v)", label, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	var artifact Artifact
	if _, err := Decode(artifact); err == nil {
		t.Fatal("expected error for missing type")
	}
	artifact.Model.Type = "forest"
	if _, err := Decode(artifact); err == nil {
		t.Fatal("expected error for unsupported type")
	}
	artifact.Model.Type = TypeKNN
	if _, err := Decode(artifact); err == nil {
		t.Fatal("expected error for missing neighbours")
	}
}
