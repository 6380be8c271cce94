// ABOUTME: Tests for transport state string formatting
// ABOUTME: Covers all named states and the unknown fallback
package waveplay

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected string
	}{
		{"stopped", StateStopped, "stopped"},
		{"running", StateRunning, "running"},
		{"paused", StatePaused, "paused"},
		{"ended", StateEnded, "ended"},
		{"unknown", State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
