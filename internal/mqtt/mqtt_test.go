package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestCommandPayload(t *testing.T) {
	payload, err := commandPayload(gesture.CommandNext)
	if err != nil {
		t.Fatalf("commandPayload() error = %v", err)
	}

	if string(payload) != `{"command":"next"}` {
		t.Errorf("payload = %s, want {\"command\":\"next\"}", payload)
	}
}

func TestCommandPayload_Decodes(t *testing.T) {
	payload, err := commandPayload(gesture.CommandZoomOut)
	if err != nil {
		t.Fatalf("commandPayload() error = %v", err)
	}

	var msg struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if msg.Command != "zoom_out" {
		t.Errorf("command = %q, want zoom_out", msg.Command)
	}
}
