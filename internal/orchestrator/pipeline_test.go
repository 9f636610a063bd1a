package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phaseGenerator answers by prompt kind and logs the order of calls.
func phaseGenerator(calls *[]string) *mockGenerator {
	return &mockGenerator{reply: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Break"):
			*calls = append(*calls, "plan")
			return "1. Alpha step\n2. Beta step", nil
		case strings.HasPrefix(prompt, "Complete"):
			sub := prompt[strings.Index(prompt, "Subtask: ")+len("Subtask: "):]
			sub = strings.TrimSpace(sub)
			*calls = append(*calls, "execute:"+sub)
			return "result of " + sub, nil
		case strings.HasPrefix(prompt, "Merge"):
			*calls = append(*calls, "synthesize")
			return "the answer", nil
		}
		return "", errors.New("unexpected prompt")
	}}
}

func TestPipeline_Run_OrderAndResults(t *testing.T) {
	var calls []string
	gen := phaseGenerator(&calls)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}

	run, err := NewPipeline(gen, WithClock(clock)).Run(context.Background(), "Build a thing")
	require.NoError(t, err)

	assert.Equal(t, []string{"plan", "execute:Alpha step", "execute:Beta step", "synthesize"}, calls)
	assert.Equal(t, []string{"Alpha step", "Beta step"}, run.Plan)
	assert.Equal(t, []string{"result of Alpha step", "result of Beta step"}, run.Results)
	assert.Equal(t, "the answer", run.Answer)
	assert.Equal(t, "Build a thing", run.Goal)
	assert.NotEmpty(t, run.ID)
	assert.True(t, run.FinishedAt.After(run.StartedAt))

	synth := gen.prompts[len(gen.prompts)-1]
	assert.Contains(t, synth, "Step 1: Alpha step\nResult:\nresult of Alpha step")
	assert.Contains(t, synth, "Step 2: Beta step\nResult:\nresult of Beta step")
}

func TestPipeline_Run_EmitsProgressInOrder(t *testing.T) {
	var calls []string
	var events []ProgressEvent
	p := NewPipeline(phaseGenerator(&calls), WithProgress(func(e ProgressEvent) {
		events = append(events, e)
	}))

	_, err := p.Run(context.Background(), "goal")
	require.NoError(t, err)

	var seq []string
	for _, e := range events {
		seq = append(seq, e.Phase.String()+"/"+string(e.Status))
	}
	assert.Equal(t, []string{
		"planning/working",
		"planning/complete",
		"executing/working",
		"executing/complete",
		"executing/working",
		"executing/complete",
		"synthesizing/working",
		"done/complete",
	}, seq)
	assert.Equal(t, []string{"Alpha step", "Beta step"}, events[1].Plan)
	assert.Equal(t, 2, events[4].Index)
	assert.Equal(t, "the answer", events[7].Message)
}

func TestPipeline_Run_ExecutorFailureAborts(t *testing.T) {
	boom := errors.New("all providers failed")
	var synthCalls int
	gen := &mockGenerator{reply: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Break"):
			return "1. First step\n2. Second step", nil
		case strings.Contains(prompt, "Subtask: Second step"):
			return "", boom
		case strings.HasPrefix(prompt, "Merge"):
			synthCalls++
		}
		return "ok", nil
	}}

	var failed []ProgressEvent
	p := NewPipeline(gen, WithProgress(func(e ProgressEvent) {
		if e.Status == ProgressFailed {
			failed = append(failed, e)
		}
	}))

	run, err := p.Run(context.Background(), "goal")
	assert.Nil(t, run)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "subtask 2")
	assert.Equal(t, 0, synthCalls)

	require.Len(t, failed, 1)
	assert.Equal(t, PhaseExecuting, failed[0].Phase)
	assert.Equal(t, 2, failed[0].Index)
}

func TestPipeline_Run_PlannerFailureAborts(t *testing.T) {
	boom := errors.New("no provider")
	gen := &mockGenerator{reply: func(string) (string, error) { return "", boom }}

	_, err := NewPipeline(gen).Run(context.Background(), "goal")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, gen.prompts, 1)
}

func TestPipeline_Run_UnparseablePlanUsesDefault(t *testing.T) {
	gen := &mockGenerator{reply: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Break") {
			return "ok", nil
		}
		return "done", nil
	}}

	run, err := NewPipeline(gen).Run(context.Background(), "goal")
	require.NoError(t, err)
	assert.Equal(t, DefaultPlan, run.Plan)
	assert.Len(t, run.Results, 3)
	// plan + 3 subtasks + synthesis
	assert.Len(t, gen.prompts, 5)
}

type recordingRunObserver struct {
	results []error
}

func (r *recordingRunObserver) ObserveRun(err error) {
	r.results = append(r.results, err)
}

func TestPipeline_Run_ObservesResult(t *testing.T) {
	var calls []string
	obs := &recordingRunObserver{}

	_, err := NewPipeline(phaseGenerator(&calls), WithRunObserver(obs)).Run(context.Background(), "goal")
	require.NoError(t, err)
	require.Len(t, obs.results, 1)
	assert.NoError(t, obs.results[0])

	boom := errors.New("no provider")
	failing := &mockGenerator{reply: func(string) (string, error) { return "", boom }}
	_, err = NewPipeline(failing, WithRunObserver(obs)).Run(context.Background(), "goal")
	require.Error(t, err)
	require.Len(t, obs.results, 2)
	assert.ErrorIs(t, obs.results[1], boom)
}
