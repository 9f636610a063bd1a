package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrResultMismatch is returned when plan and results differ in length.
var ErrResultMismatch = errors.New("orchestrator: plan and results differ in length")

// Synthesizer merges subtask results into one answer.
type Synthesizer struct {
	gen Generator
}

// NewSynthesizer creates a Synthesizer backed by gen.
func NewSynthesizer(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Synthesize pairs plan[i] with results[i] and asks for a single
// consolidated answer ending in three next actions. The count of next
// actions is requested, not checked.
func (s *Synthesizer) Synthesize(ctx context.Context, goal string, plan, results []string) (string, error) {
	if len(plan) != len(results) {
		return "", fmt.Errorf("%w: %d subtasks, %d results", ErrResultMismatch, len(plan), len(results))
	}

	out, err := s.gen.Route(ctx, synthesisPrompt(goal, plan, results))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func synthesisPrompt(goal string, plan, results []string) string {
	blocks := make([]string, len(plan))
	for i := range plan {
		blocks[i] = fmt.Sprintf("Step %d: %s\nResult:\n%s", i+1, plan[i], results[i])
	}

	return "Merge the step results into ONE final answer. Remove repetition.\n" +
		"Structure it with short sections and finish with EXACTLY 3 next actions.\n\n" +
		"User goal: " + goal + "\n\n" +
		strings.Join(blocks, "\n\n") + "\n\n" +
		"Final consolidated answer:"
}
