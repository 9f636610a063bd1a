package orchestrator

import (
	"context"
	"strings"
)

// Executor solves one subtask in the context of the original goal.
type Executor struct {
	gen Generator
}

// NewExecutor creates an Executor backed by gen.
func NewExecutor(gen Generator) *Executor {
	return &Executor{gen: gen}
}

// Execute returns the trimmed answer for subtask. Generator errors are
// returned unchanged.
func (e *Executor) Execute(ctx context.Context, goal, subtask string) (string, error) {
	prompt := "Complete the subtask concisely. Use bullet points if helpful.\n" +
		"Original goal: " + goal + "\n" +
		"Subtask: " + subtask + "\n"

	out, err := e.gen.Route(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
