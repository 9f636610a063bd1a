// Package orchestrator turns a goal into a final answer in three phases:
// plan the goal into subtasks, execute each subtask, then synthesize the
// results. Every model call goes through a Generator.
package orchestrator

import (
	"context"
	"time"
)

// Generator produces text for a prompt. *llm.Router satisfies it.
type Generator interface {
	Route(ctx context.Context, prompt string) (string, error)
}

// Phase is a state of a pipeline run. Phases only move forward.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseExecuting
	PhaseSynthesizing
	PhaseDone
)

func (p Phase) String() string {
	names := [...]string{
		"planning",
		"executing",
		"synthesizing",
		"done",
	}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// ProgressEvent is emitted to the user during a run.
type ProgressEvent struct {
	Phase Phase

	// Index is the 1-based subtask number during PhaseExecuting, else 0.
	Index   int
	Subtask string

	// Plan is set on the event that completes PhasePlanning.
	Plan []string

	Status  ProgressStatus
	Message string // subtask result, final answer, or error text
}

// ProgressStatus is the state of a phase or subtask.
type ProgressStatus string

const (
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Run is the record of one completed pipeline run.
type Run struct {
	ID         string
	Goal       string
	Plan       []string
	Results    []string // Results[i] answers Plan[i]
	Answer     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunObserver is told how every pipeline run ended. err is nil for a
// completed run.
type RunObserver interface {
	ObserveRun(err error)
}

// Orchestrator runs the plan, execute and synthesize phases for a goal.
type Orchestrator interface {
	Run(ctx context.Context, goal string) (*Run, error)
}
