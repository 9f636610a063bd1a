package mcptools

import (
	"context"
	"errors"
	"testing"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/dusk-indust/agentchain/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRouter is a test double for Router.
type mockRouter struct {
	text     string
	err      error
	settings llm.Settings
	prompts  []string
}

func (m *mockRouter) Route(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

func (m *mockRouter) Order() []llm.Identity { return m.settings.Order() }

func (m *mockRouter) Settings() llm.Settings { return m.settings }

// mockOrchestrator is a test double for orchestrator.Orchestrator.
type mockOrchestrator struct {
	run    *orchestrator.Run
	err    error
	called int
}

func newMockOrchestrator() *mockOrchestrator {
	return &mockOrchestrator{run: &orchestrator.Run{
		ID:      "run-1",
		Plan:    []string{"A", "B"},
		Results: []string{"ra", "rb"},
		Answer:  "final",
	}}
}

func (m *mockOrchestrator) Run(_ context.Context, goal string) (*orchestrator.Run, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	run := *m.run
	run.Goal = goal
	return &run, nil
}

type fakeProber struct{ err error }

func (f fakeProber) Alive(context.Context) error { return f.err }

func TestAgentService_RoutePrompt_Failure(t *testing.T) {
	router := &mockRouter{err: errors.New("llm: all providers failed (tried ollama)")}
	svc := NewAgentService(router, newMockOrchestrator(), nil)

	_, out, err := svc.RoutePrompt(context.Background(), nil, RoutePromptInput{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.Contains(t, out.Message, "all providers failed")
	assert.Equal(t, []string{"ollama"}, out.Order)
}

func TestAgentService_RoutePrompt_EmptyPrompt(t *testing.T) {
	router := &mockRouter{}
	svc := NewAgentService(router, newMockOrchestrator(), nil)

	_, _, err := svc.RoutePrompt(context.Background(), nil, RoutePromptInput{Prompt: "  "})
	require.Error(t, err)
	assert.Empty(t, router.prompts)
}

func TestAgentService_RunGoal(t *testing.T) {
	mock := newMockOrchestrator()
	svc := NewAgentService(&mockRouter{}, mock, nil)

	_, out, err := svc.RunGoal(context.Background(), nil, RunGoalInput{Goal: "ship it"})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, []StepOutput{{Subtask: "A", Result: "ra"}, {Subtask: "B", Result: "rb"}}, out.Steps)
	assert.Equal(t, "final", out.Answer)
	assert.Equal(t, 1, mock.called)
}

func TestAgentService_RunGoal_Failure(t *testing.T) {
	mock := newMockOrchestrator()
	mock.err = errors.New("orchestrator: subtask 1: boom")
	svc := NewAgentService(&mockRouter{}, mock, nil)

	_, out, err := svc.RunGoal(context.Background(), nil, RunGoalInput{Goal: "ship it"})
	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.Contains(t, out.Message, "boom")
}

func TestAgentService_ListProviders(t *testing.T) {
	settings := llm.DefaultSettings()
	settings.Groq.APIKey = "gsk_0123456789abcdef"
	router := &mockRouter{settings: settings}
	probes := map[llm.Identity]status.Prober{
		llm.Groq:   fakeProber{},
		llm.Ollama: fakeProber{err: errors.New("down")},
	}
	svc := NewAgentService(router, newMockOrchestrator(), probes)

	_, out, err := svc.ListProviders(context.Background(), nil, ListProvidersInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"groq", "ollama"}, out.Order)
	require.Len(t, out.Providers, 3)
	assert.Nil(t, out.Providers[0].Reachable)

	_, out, err = svc.ListProviders(context.Background(), nil, ListProvidersInput{Probe: true})
	require.NoError(t, err)
	require.NotNil(t, out.Providers[0].Reachable)
	assert.True(t, *out.Providers[0].Reachable)
	require.NotNil(t, out.Providers[2].Reachable)
	assert.False(t, *out.Providers[2].Reachable)
	assert.Equal(t, "down", out.Providers[2].Detail)
}
