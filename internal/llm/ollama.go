package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Compile-time interface check.
var _ Client = (*OllamaClient)(nil)

// OllamaClient calls a local Ollama server.
type OllamaClient struct {
	cfg OllamaSettings
	transport
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a local server client. A trailing slash on the
// host is ignored.
func NewOllamaClient(cfg OllamaSettings, opts ...ClientOption) *OllamaClient {
	cfg.Host = strings.TrimRight(cfg.Host, "/")
	return &OllamaClient{cfg: cfg, transport: newTransport(opts)}
}

func (c *OllamaClient) Identity() Identity { return Ollama }

// Alive probes /api/tags with the short probe timeout.
func (c *OllamaClient) Alive(ctx context.Context) error {
	if f := c.probe(ctx); f != nil {
		return f
	}
	return nil
}

func (c *OllamaClient) probe(ctx context.Context) *Failure {
	resp, err := c.do(ctx, http.MethodGet, c.cfg.Host+"/api/tags", "", nil, c.cfg.ProbeTimeout)
	if err != nil {
		return unavailable(Ollama, fmt.Sprintf("probe: %v", err)).Failure()
	}
	if resp.status != http.StatusOK {
		return unavailable(Ollama, fmt.Sprintf("probe: HTTP %d", resp.status)).Failure()
	}
	return nil
}

// Call probes the server first and only generates when it is alive.
func (c *OllamaClient) Call(ctx context.Context, prompt string) Outcome {
	if f := c.probe(ctx); f != nil {
		return Failed(f)
	}

	req := ollamaGenerateRequest{Model: c.cfg.Model, Prompt: prompt}
	resp, err := c.do(ctx, http.MethodPost, c.cfg.Host+"/api/generate", "", req, c.cfg.Timeout)
	if err != nil {
		return unavailable(Ollama, err.Error())
	}
	if resp.status != http.StatusOK {
		return Failed(serverError(Ollama, resp.status, resp.body))
	}

	var gen ollamaGenerateResponse
	if err := json.Unmarshal(resp.body, &gen); err != nil {
		return Failed(malformed(Ollama, fmt.Sprintf("decode: %v", err), resp.body))
	}
	return Succeeded(gen.Response)
}
