package ml

import (
	"fmt"

	"github.com/synaptica-ai/heartrisk/pkg/ml/knn"
	"github.com/synaptica-ai/heartrisk/pkg/ml/linear"
)

const (
	TypeKNN      = "knn"
	TypeLogistic = "logistic"
)

// Classifier is a fitted binary classifier. Implementations are immutable
// and safe for concurrent use.
type Classifier interface {
	NumFeatures() int
	Predict(sample []float64) (int, error)
	PredictProba(sample []float64) ([2]float64, error)
}

// Artifact is the serialized form of a trained model.
type Artifact struct {
	Model struct {
		Type         string   `json:"type"`
		Algorithm    string   `json:"algorithm,omitempty"`
		Version      string   `json:"version,omitempty"`
		FeatureNames []string `json:"feature_names,omitempty"`
		Weights      *struct {
			Bias         float64   `json:"bias"`
			Coefficients []float64 `json:"coefficients"`
		} `json:"weights,omitempty"`
		Neighbours *struct {
			K       int         `json:"k"`
			Weights string      `json:"weights,omitempty"`
			Points  [][]float64 `json:"points"`
			Labels  []int       `json:"labels"`
		} `json:"neighbours,omitempty"`
	} `json:"model"`
}

func Decode(artifact Artifact) (Classifier, error) {
	switch artifact.Model.Type {
	case TypeLogistic:
		w := artifact.Model.Weights
		if w == nil {
			return nil, fmt.Errorf("logistic artifact missing weights")
		}
		return linear.NewModel(linear.Weights{Bias: w.Bias, Coefficients: w.Coefficients})
	case TypeKNN:
		n := artifact.Model.Neighbours
		if n == nil {
			return nil, fmt.Errorf("knn artifact missing neighbours")
		}
		return knn.NewModel(n.K, n.Weights, n.Points, n.Labels)
	case "":
		return nil, fmt.Errorf("artifact missing model type")
	default:
		return nil, fmt.Errorf("unsupported model type %q", artifact.Model.Type)
	}
}
