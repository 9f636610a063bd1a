package mcptools

import (
	"context"
	"errors"
	"strings"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/dusk-indust/agentchain/internal/status"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Router is the part of *llm.Router the tools use.
type Router interface {
	Route(ctx context.Context, prompt string) (string, error)
	Order() []llm.Identity
	Settings() llm.Settings
}

// AgentService handles MCP tool calls for the server mode.
type AgentService struct {
	router   Router
	pipeline orchestrator.Orchestrator
	probes   map[llm.Identity]status.Prober
}

// NewAgentService creates an AgentService. probes may be nil, in which case
// list_providers never probes.
func NewAgentService(router Router, pipeline orchestrator.Orchestrator, probes map[llm.Identity]status.Prober) *AgentService {
	return &AgentService{
		router:   router,
		pipeline: pipeline,
		probes:   probes,
	}
}

// RoutePrompt sends one prompt through the router.
func (s *AgentService) RoutePrompt(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RoutePromptInput,
) (*mcp.CallToolResult, RoutePromptOutput, error) {
	order := identityNames(s.router.Order())
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, RoutePromptOutput{Order: order, Status: "failed", Message: "prompt is required"},
			errors.New("prompt is required")
	}

	text, err := s.router.Route(ctx, input.Prompt)
	if err != nil {
		return nil, RoutePromptOutput{
			Order:   order,
			Status:  "failed",
			Message: err.Error(),
		}, nil
	}

	return nil, RoutePromptOutput{
		Text:   text,
		Order:  order,
		Status: "completed",
	}, nil
}

// RunGoal runs the full pipeline for a goal.
func (s *AgentService) RunGoal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunGoalInput,
) (*mcp.CallToolResult, RunGoalOutput, error) {
	if strings.TrimSpace(input.Goal) == "" {
		return nil, RunGoalOutput{Status: "failed", Message: "goal is required"},
			errors.New("goal is required")
	}

	run, err := s.pipeline.Run(ctx, input.Goal)
	if err != nil {
		return nil, RunGoalOutput{
			Status:  "failed",
			Message: err.Error(),
		}, nil
	}

	steps := make([]StepOutput, len(run.Plan))
	for i, subtask := range run.Plan {
		steps[i] = StepOutput{Subtask: subtask, Result: run.Results[i]}
	}
	return nil, RunGoalOutput{
		RunID:  run.ID,
		Steps:  steps,
		Answer: run.Answer,
		Status: "completed",
	}, nil
}

// ListProviders reports provider configuration and the routing order.
func (s *AgentService) ListProviders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListProvidersInput,
) (*mcp.CallToolResult, ListProvidersOutput, error) {
	var probes map[llm.Identity]status.Prober
	if input.Probe {
		probes = s.probes
	}
	report := status.Check(ctx, s.router.Settings(), probes)

	out := ListProvidersOutput{
		Order:  identityNames(report.Order),
		Forced: string(report.Forced),
	}
	for _, p := range report.Providers {
		summary := ProviderSummary{
			Name:       string(p.Provider),
			Role:       p.Role,
			Model:      p.Model,
			Configured: p.Configured,
			Detail:     p.Detail,
		}
		if p.Probed {
			reachable := p.Reachable
			summary.Reachable = &reachable
		}
		out.Providers = append(out.Providers, summary)
	}
	return nil, out, nil
}

func identityNames(ids []llm.Identity) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}
