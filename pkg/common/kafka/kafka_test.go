package kafka

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	event := NewEvent("assessment.completed", "assessment-service", map[string]interface{}{"label": "HIGH"})
	message, err := EncodeMessage(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(message.Key) != event.ID {
		t.Fatalf("expected key %s, got %s", event.ID, message.Key)
	}
	if len(message.Headers) != 2 || string(message.Headers[0].Value) != "assessment.completed" {
		t.Fatalf("unexpected headers %v", message.Headers)
	}

	decoded, err := DecodeMessage(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.ID != event.ID || decoded.Data["label"] != "HIGH" {
		t.Fatalf("unexpected event %+v", decoded)
	}
}
