package serving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentLog is the persistence model for completed assessments.
type AssessmentLog struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey;column:id"`
	RequestID    string                      `gorm:"column:request_id"`
	Label        string                      `gorm:"column:label;index"`
	Prediction   int                         `gorm:"column:prediction"`
	ProbLow      float64                     `gorm:"column:prob_low"`
	ProbHigh     float64                     `gorm:"column:prob_high"`
	RiskPercent  float64                     `gorm:"column:risk_percent"`
	RiskFactors  datatypes.JSONSlice[string] `gorm:"column:risk_factors"`
	Observation  datatypes.JSONMap           `gorm:"column:observation"`
	Features     datatypes.JSONMap           `gorm:"column:features"`
	ModelType    string                      `gorm:"column:model_type"`
	ModelVersion string                      `gorm:"column:model_version"`
	LatencyMs    float64                     `gorm:"column:latency_ms"`
	CreatedAt    time.Time                   `gorm:"column:created_at;index"`
}

// TableName overrides gorm naming.
func (AssessmentLog) TableName() string {
	return "assessment_logs"
}

// Repository persists assessments.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&AssessmentLog{})
}

// RecordAssessment inserts the assessment; a row with the same id is left
// untouched, so the service and the auditor can both write.
func (r *Repository) RecordAssessment(ctx context.Context, assessment models.Assessment) error {
	log, err := toLog(assessment)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&log).Error
}

// Recent returns the most recent assessments up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []AssessmentLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	records := make([]models.AssessmentRecord, 0, len(logs))
	for _, l := range logs {
		records = append(records, toRecord(l))
	}
	return records, nil
}

func toLog(a models.Assessment) (AssessmentLog, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return AssessmentLog{}, err
	}
	observation := map[string]interface{}{
		"age":             a.Observation.Age,
		"sex":             a.Observation.Sex,
		"chest_pain_type": a.Observation.ChestPainType,
		"resting_bp":      a.Observation.RestingBP,
		"cholesterol":     a.Observation.Cholesterol,
		"fasting_bs":      a.Observation.FastingBS,
		"resting_ecg":     a.Observation.RestingECG,
		"max_hr":          a.Observation.MaxHR,
		"exercise_angina": a.Observation.ExerciseAngina,
		"oldpeak":         a.Observation.Oldpeak,
		"st_slope":        a.Observation.STSlope,
	}
	features := make(map[string]interface{}, len(a.Features))
	for k, v := range a.Features {
		features[k] = v
	}
	return AssessmentLog{
		ID:           id,
		RequestID:    a.RequestID,
		Label:        a.Label,
		Prediction:   a.Prediction,
		ProbLow:      a.Probabilities[0],
		ProbHigh:     a.Probabilities[1],
		RiskPercent:  a.RiskPercent,
		RiskFactors:  datatypes.NewJSONSlice(a.RiskFactors),
		Observation:  datatypes.JSONMap(observation),
		Features:     datatypes.JSONMap(features),
		ModelType:    a.ModelType,
		ModelVersion: a.ModelVersion,
		LatencyMs:    float64(a.Latency.Microseconds()) / 1000.0,
		CreatedAt:    a.CreatedAt,
	}, nil
}

func toRecord(l AssessmentLog) models.AssessmentRecord {
	factors := []string(l.RiskFactors)
	if factors == nil {
		factors = []string{}
	}
	return models.AssessmentRecord{
		ID:          l.ID.String(),
		Label:       l.Label,
		RiskPercent: l.RiskPercent,
		RiskFactors: factors,
		ModelType:   l.ModelType,
		LatencyMs:   l.LatencyMs,
		RequestID:   l.RequestID,
		CreatedAt:   l.CreatedAt,
	}
}
