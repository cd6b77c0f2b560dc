package transcribe

import (
	"testing"

	"clipcaption/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to types.ProjectStatus
		want     bool
	}{
		{types.StatusProcessing, types.StatusReady, true},
		{types.StatusProcessing, types.StatusFailed, true},
		{types.StatusReady, types.StatusProcessing, true},
		{types.StatusFailed, types.StatusProcessing, true},
		{types.StatusFailed, types.StatusReady, false}, // needs a new attempt
		{types.StatusReady, types.StatusFailed, false},
		{types.StatusProcessing, types.StatusProcessing, false},
		{"", types.StatusProcessing, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
