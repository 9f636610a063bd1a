package mcptools

// --- MCP Tool Types for the server mode (agentchain serve) ---
// These tools let an MCP client route a single prompt, run the full
// plan/execute/synthesize pipeline, or inspect provider configuration.

// RoutePromptInput is the input for the route_prompt MCP tool.
type RoutePromptInput struct {
	Prompt string `json:"prompt" jsonschema:"the prompt to send to the first available provider"`
}

// RoutePromptOutput is the result of the route_prompt MCP tool.
type RoutePromptOutput struct {
	Text    string   `json:"text,omitempty"`
	Order   []string `json:"order"`
	Status  string   `json:"status"` // "completed" or "failed"
	Message string   `json:"message,omitempty"`
}

// RunGoalInput is the input for the run_goal MCP tool.
type RunGoalInput struct {
	Goal string `json:"goal" jsonschema:"high-level goal to plan, execute and synthesize"`
}

// RunGoalOutput is the result of the run_goal MCP tool.
type RunGoalOutput struct {
	RunID   string       `json:"runId,omitempty"`
	Steps   []StepOutput `json:"steps,omitempty"`
	Answer  string       `json:"answer,omitempty"`
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
}

// StepOutput pairs one subtask with its result.
type StepOutput struct {
	Subtask string `json:"subtask"`
	Result  string `json:"result"`
}

// ListProvidersInput is the input for the list_providers MCP tool.
type ListProvidersInput struct {
	Probe bool `json:"probe,omitempty" jsonschema:"also check reachability of configured providers"`
}

// ListProvidersOutput is the result of the list_providers MCP tool.
type ListProvidersOutput struct {
	Order     []string          `json:"order"`
	Forced    string            `json:"forced,omitempty"`
	Providers []ProviderSummary `json:"providers"`
}

// ProviderSummary is a brief overview of one provider.
type ProviderSummary struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Reachable  *bool  `json:"reachable,omitempty"`
	Detail     string `json:"detail,omitempty"`
}
