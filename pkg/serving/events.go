package serving

import (
	"encoding/json"
	"fmt"

	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

// EventData flattens an assessment into an event payload.
func EventData(assessment models.Assessment) (map[string]interface{}, error) {
	raw, err := json.Marshal(assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// AssessmentFromEvent is the inverse of EventData.
func AssessmentFromEvent(event models.Event) (models.Assessment, error) {
	if event.Type != EventAssessmentCompleted {
		return models.Assessment{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return models.Assessment{}, err
	}
	var assessment models.Assessment
	if err := json.Unmarshal(raw, &assessment); err != nil {
		return models.Assessment{}, fmt.Errorf("failed to decode assessment event: %w", err)
	}
	if assessment.ID == "" {
		return models.Assessment{}, fmt.Errorf("assessment event %s has no id", event.ID)
	}
	return assessment, nil
}
