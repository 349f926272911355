package serving

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
	"github.com/synaptica-ai/heartrisk/pkg/features"
	"github.com/synaptica-ai/heartrisk/pkg/gateway/middleware"
	"github.com/synaptica-ai/heartrisk/pkg/observability/metrics"
	"github.com/synaptica-ai/heartrisk/pkg/risk"
	"github.com/synaptica-ai/heartrisk/pkg/serving/artifacts"
)

const EventAssessmentCompleted = "assessment.completed"

var ErrInference = errors.New("inference failed")

// ResultCache stores classifier outputs keyed by feature vector.
type ResultCache interface {
	Get(ctx context.Context, key string) (models.Inference, bool, error)
	Set(ctx context.Context, key string, inference models.Inference) error
}

type Recorder interface {
	RecordAssessment(ctx context.Context, assessment models.Assessment) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

type Options struct {
	Cache     ResultCache
	Recorder  Recorder
	Publisher Publisher
	Source    string
}

// Assessor runs submissions against a loaded artifact bundle. It holds no
// mutable state and is safe for concurrent use.
type Assessor struct {
	bundle     *artifacts.Bundle
	opts       Options
	references map[string]struct{}
	now        func() time.Time
}

func NewAssessor(bundle *artifacts.Bundle, opts Options) (*Assessor, error) {
	if bundle == nil || bundle.Classifier == nil {
		return nil, errors.New("assessor requires a loaded artifact bundle")
	}
	if opts.Source == "" {
		opts.Source = "assessment-service"
	}
	references := make(map[string]struct{})
	for _, key := range features.ReferenceLevels(bundle.Schema, clinical.CategoricalDomains()) {
		references[key] = struct{}{}
	}
	return &Assessor{bundle: bundle, opts: opts, references: references, now: time.Now}, nil
}

func (a *Assessor) Schema() models.SchemaInfo {
	return models.SchemaInfo{
		Columns:      a.bundle.Schema.Columns(),
		ModelType:    a.bundle.ModelType,
		ModelVersion: a.bundle.ModelVersion,
		Domains:      clinical.CategoricalDomains(),
	}
}

// Assess validates the observation, aligns it to the schema, runs the model
// and attaches the rule-based risk factors.
func (a *Assessor) Assess(ctx context.Context, obs clinical.Observation) (models.Assessment, error) {
	start := a.now()
	obs = obs.Normalize()
	if err := obs.Validate(); err != nil {
		metrics.ObserveRejected()
		return models.Assessment{}, err
	}

	vector := features.Build(a.bundle.Schema, obs)
	unmatched := a.unexpected(vector.Unmatched)
	if len(unmatched) > 0 {
		metrics.ObserveUnmatched(len(unmatched))
		logger.Log.WithField("keys", unmatched).Warn("one-hot keys not in schema were dropped")
	}
	if len(unmatched) < len(vector.Unmatched) {
		logger.Log.WithField("keys", vector.Unmatched).Debug("reference levels encoded as zeros")
	}

	inference, cached, err := a.infer(ctx, vector)
	if err != nil {
		metrics.ObserveFailed()
		logger.Log.WithError(err).Error("assessment failed")
		return models.Assessment{}, err
	}

	label := models.LabelLow
	if inference.Prediction == 1 {
		label = models.LabelHigh
	}

	assessment := models.Assessment{
		ID:              uuid.New().String(),
		Label:           label,
		Prediction:      inference.Prediction,
		Probabilities:   inference.Probabilities,
		RiskPercent:     inference.Probabilities[inference.Prediction] * 100,
		RiskFactors:     risk.Evaluate(obs),
		Recommendations: Recommendations(label),
		Unmatched:       unmatched,
		ModelType:       a.bundle.ModelType,
		ModelVersion:    a.bundle.ModelVersion,
		Observation:     obs,
		Features:        vector.Map(),
		Cached:          cached,
		RequestID:       middleware.RequestIDFromContext(ctx),
		CreatedAt:       start.UTC(),
	}
	assessment.Latency = a.now().Sub(start)

	metrics.ObserveAssessment(assessment.IsHighRisk(), cached, assessment.Latency.Microseconds())
	a.emit(ctx, assessment)

	logger.Log.WithFields(map[string]interface{}{
		"assessment_id": assessment.ID,
		"label":         assessment.Label,
		"risk_percent":  assessment.RiskPercent,
		"cached":        cached,
		"latency_ms":    assessment.Latency.Milliseconds(),
	}).Info("Assessment completed")

	return assessment, nil
}

func (a *Assessor) infer(ctx context.Context, vector features.Vector) (models.Inference, bool, error) {
	key := a.cacheKey(vector)
	if a.opts.Cache != nil {
		hit, ok, err := a.opts.Cache.Get(ctx, key)
		if err != nil {
			logger.Log.WithError(err).Warn("result cache read failed")
		} else if ok {
			return hit, true, nil
		}
	}

	if !a.bundle.Schema.Equal(vector.Columns) {
		return models.Inference{}, false, fmt.Errorf("feature columns do not match schema: %w", ErrInference)
	}
	scaled, err := a.bundle.Scaler.Transform(vector.Values)
	if err != nil {
		return models.Inference{}, false, fmt.Errorf("scale features: %v: %w", err, ErrInference)
	}
	prediction, err := a.bundle.Classifier.Predict(scaled)
	if err != nil {
		return models.Inference{}, false, fmt.Errorf("predict: %v: %w", err, ErrInference)
	}
	proba, err := a.bundle.Classifier.PredictProba(scaled)
	if err != nil {
		return models.Inference{}, false, fmt.Errorf("predict proba: %v: %w", err, ErrInference)
	}
	if prediction != 0 && prediction != 1 {
		return models.Inference{}, false, fmt.Errorf("model returned label %d: %w", prediction, ErrInference)
	}

	inference := models.Inference{Prediction: prediction, Probabilities: proba}
	if a.opts.Cache != nil {
		if err := a.opts.Cache.Set(ctx, key, inference); err != nil {
			logger.Log.WithError(err).Warn("result cache write failed")
		}
	}
	return inference, false, nil
}

// unexpected drops the reference levels of a drop-first schema from keys.
func (a *Assessor) unexpected(keys []string) []string {
	var out []string
	for _, key := range keys {
		if _, ok := a.references[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// cacheKey ties an entry to the artifact contents, not just the declared
// model version.
func (a *Assessor) cacheKey(vector features.Vector) string {
	return fmt.Sprintf("%s:%s:%s:%s", a.bundle.ModelType, a.bundle.ModelVersion, a.bundle.Digest, vector.Fingerprint())
}

// emit hands the finished assessment to the optional sinks. Their failures
// are logged and do not affect the result.
func (a *Assessor) emit(ctx context.Context, assessment models.Assessment) {
	if a.opts.Recorder != nil {
		if err := a.opts.Recorder.RecordAssessment(ctx, assessment); err != nil {
			logger.Log.WithError(err).WithField("assessment_id", assessment.ID).Warn("failed to record assessment")
		}
	}
	if a.opts.Publisher != nil {
		data, err := EventData(assessment)
		if err == nil {
			err = a.opts.Publisher.PublishEvent(ctx, EventAssessmentCompleted, a.opts.Source, data)
		}
		if err != nil {
			logger.Log.WithError(err).WithField("assessment_id", assessment.ID).Warn("failed to publish assessment")
		}
	}
}

func Recommendations(label string) []string {
	if label == models.LabelHigh {
		return []string{
			"Visit a cardiologist",
			"Get advanced tests",
			"Lifestyle changes",
			"Quit smoking",
		}
	}
	return []string{"Keep maintaining a healthy lifestyle"}
}
