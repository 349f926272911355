package serving

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

func TestToLogAndRecord(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := models.Assessment{
		ID:            uuid.New().String(),
		Label:         models.LabelHigh,
		Prediction:    1,
		Probabilities: [2]float64{0.2, 0.8},
		RiskPercent:   80,
		RiskFactors:   []string{"High BP"},
		ModelType:     "logistic",
		ModelVersion:  "v1",
		Observation:   clinical.DefaultObservation(),
		Features:      map[string]float64{"Age": 40, "Sex_M": 1},
		RequestID:     "req-1",
		CreatedAt:     created,
		Latency:       1500 * time.Microsecond,
	}

	log, err := toLog(a)
	require.NoError(t, err)
	assert.Equal(t, a.ID, log.ID.String())
	assert.Equal(t, 0.2, log.ProbLow)
	assert.Equal(t, 0.8, log.ProbHigh)
	assert.Equal(t, 1.5, log.LatencyMs)
	assert.Equal(t, "M", log.Observation["sex"])
	assert.Equal(t, 1.0, log.Features["Sex_M"])

	rec := toRecord(log)
	assert.Equal(t, models.AssessmentRecord{
		ID:          a.ID,
		Label:       models.LabelHigh,
		RiskPercent: 80,
		RiskFactors: []string{"High BP"},
		ModelType:   "logistic",
		LatencyMs:   1.5,
		RequestID:   "req-1",
		CreatedAt:   created,
	}, rec)
}

func TestToLogRejectsBadID(t *testing.T) {
	_, err := toLog(models.Assessment{ID: "not-a-uuid"})
	require.Error(t, err)
}

func TestToRecordEmptyFactors(t *testing.T) {
	rec := toRecord(AssessmentLog{ID: uuid.New()})
	assert.NotNil(t, rec.RiskFactors)
	assert.Empty(t, rec.RiskFactors)
}
