package models

import (
	"time"

	"github.com/synaptica-ai/heartrisk/pkg/clinical"
)

const (
	LabelHigh = "HIGH"
	LabelLow  = "LOW"
)

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // assessment.completed
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Inference is the raw classifier output for one feature vector.
type Inference struct {
	Prediction    int        `json:"prediction"`
	Probabilities [2]float64 `json:"probabilities"`
}

// Assessment is the outcome of one form submission.
type Assessment struct {
	ID              string               `json:"id"`
	Label           string               `json:"label"`
	Prediction      int                  `json:"prediction"`
	Probabilities   [2]float64           `json:"probabilities"`
	RiskPercent     float64              `json:"risk_percent"`
	RiskFactors     []string             `json:"risk_factors"`
	Recommendations []string             `json:"recommendations"`
	Unmatched       []string             `json:"unmatched_columns,omitempty"`
	ModelType       string               `json:"model_type"`
	ModelVersion    string               `json:"model_version,omitempty"`
	Observation     clinical.Observation `json:"observation"`
	Features        map[string]float64   `json:"features,omitempty"`
	Cached          bool                 `json:"cached"`
	RequestID       string               `json:"request_id,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	Latency         time.Duration        `json:"latency"`
}

func (a Assessment) IsHighRisk() bool {
	return a.Label == LabelHigh
}

// SchemaInfo describes the loaded model's expected input.
type SchemaInfo struct {
	Columns      []string          `json:"columns"`
	ModelType    string            `json:"model_type"`
	ModelVersion string            `json:"model_version,omitempty"`
	Domains      []clinical.Domain `json:"domains"`
}

// AssessmentRecord is a persisted assessment as returned by listing endpoints.
type AssessmentRecord struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	RiskPercent float64   `json:"risk_percent"`
	RiskFactors []string  `json:"risk_factors"`
	ModelType   string    `json:"model_type"`
	LatencyMs   float64   `json:"latency_ms"`
	RequestID   string    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
