package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dusk-indust/agentchain/internal/orchestrator"
)

// RunExport is the top-level JSON export structure.
type RunExport struct {
	ID         string       `json:"id"`
	Goal       string       `json:"goal"`
	StartedAt  string       `json:"startedAt"`
	FinishedAt string       `json:"finishedAt"`
	ExportedAt string       `json:"exportedAt"`
	Steps      []StepExport `json:"steps"`
	Answer     string       `json:"answer"`
}

// StepExport pairs one subtask with its result.
type StepExport struct {
	Step    int    `json:"step"`
	Subtask string `json:"subtask"`
	Result  string `json:"result"`
}

// ExportRun builds a RunExport from a completed run.
func ExportRun(run *orchestrator.Run) *RunExport {
	export := &RunExport{
		ID:         run.ID,
		Goal:       run.Goal,
		StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: run.FinishedAt.UTC().Format(time.RFC3339),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Answer:     run.Answer,
	}
	for i, subtask := range run.Plan {
		step := StepExport{Step: i + 1, Subtask: subtask}
		if i < len(run.Results) {
			step.Result = run.Results[i]
		}
		export.Steps = append(export.Steps, step)
	}
	return export
}

// WriteJSON writes the export of run to path, indented.
func WriteJSON(path string, run *orchestrator.Run) error {
	data, err := json.MarshalIndent(ExportRun(run), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
