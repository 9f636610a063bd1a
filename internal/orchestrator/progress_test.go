package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name  string
		event ProgressEvent
		want  string
	}{
		{
			name:  "plan",
			event: ProgressEvent{Phase: PhasePlanning, Status: ProgressComplete, Plan: []string{"A", "B"}},
			want:  "📋 PLAN:\n  1. A\n  2. B",
		},
		{
			name:  "subtask header",
			event: ProgressEvent{Phase: PhaseExecuting, Status: ProgressWorking, Index: 2, Subtask: "B"},
			want:  "\n⚙️ Subtask 2: B",
		},
		{
			name:  "subtask result",
			event: ProgressEvent{Phase: PhaseExecuting, Status: ProgressComplete, Index: 2, Message: "- done"},
			want:  "- done",
		},
		{
			name:  "synthesis",
			event: ProgressEvent{Phase: PhaseSynthesizing, Status: ProgressWorking},
			want:  "\n🧩 SYNTHESIS:",
		},
		{
			name:  "subtask failure",
			event: ProgressEvent{Phase: PhaseExecuting, Status: ProgressFailed, Index: 1, Message: "boom"},
			want:  "  ✗ subtask 1 failed: boom",
		},
		{
			name:  "phase failure",
			event: ProgressEvent{Phase: PhasePlanning, Status: ProgressFailed, Message: "boom"},
			want:  "  ✗ planning failed: boom",
		},
		{
			name:  "silent",
			event: ProgressEvent{Phase: PhasePlanning, Status: ProgressWorking},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProgress(tt.event))
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "synthesizing", PhaseSynthesizing.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
