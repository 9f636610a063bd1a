package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Compile-time interface check.
var _ Client = (*GroqClient)(nil)

// GroqClient calls an OpenAI-compatible chat-completions endpoint.
type GroqClient struct {
	cfg GroqSettings
	transport
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type groqChatResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// NewGroqClient creates a chat-completions client.
func NewGroqClient(cfg GroqSettings, opts ...ClientOption) *GroqClient {
	return &GroqClient{cfg: cfg, transport: newTransport(opts)}
}

func (c *GroqClient) Identity() Identity { return Groq }

// Call sends prompt as a single user message. Without an API key it fails
// as unconfigured and makes no request.
func (c *GroqClient) Call(ctx context.Context, prompt string) Outcome {
	if c.cfg.APIKey == "" {
		return unconfigured(Groq)
	}

	req := groqChatRequest{
		Model:       c.cfg.Model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}
	resp, err := c.do(ctx, http.MethodPost, c.cfg.URL, c.cfg.APIKey, req, c.cfg.Timeout)
	if err != nil {
		return unavailable(Groq, err.Error())
	}
	if resp.status != http.StatusOK {
		return Failed(serverError(Groq, resp.status, resp.body))
	}

	var chat groqChatResponse
	if err := json.Unmarshal(resp.body, &chat); err != nil {
		return Failed(malformed(Groq, fmt.Sprintf("decode: %v", err), resp.body))
	}
	if len(chat.Choices) == 0 {
		return Failed(malformed(Groq, "no choices in response", resp.body))
	}
	return Succeeded(chat.Choices[0].Message.Content)
}

// modelsURL returns the explicit ModelsURL, or swaps a trailing
// /chat/completions path segment pair of URL for /models.
func (c *GroqClient) modelsURL() (string, bool) {
	if c.cfg.ModelsURL != "" {
		return c.cfg.ModelsURL, true
	}
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", false
	}
	base, found := strings.CutSuffix(strings.TrimRight(u.Path, "/"), "/chat/completions")
	if !found {
		return "", false
	}
	u.Path = base + "/models"
	u.RawPath = ""
	return u.String(), true
}

// Alive checks that the API accepts the key by listing models. It does not
// generate anything.
func (c *GroqClient) Alive(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return unconfigured(Groq).Failure()
	}
	endpoint, ok := c.modelsURL()
	if !ok {
		return &Failure{Provider: Groq, Kind: KindUnconfigured, Detail: "no models URL for " + c.cfg.URL}
	}
	resp, err := c.do(ctx, http.MethodGet, endpoint, c.cfg.APIKey, nil, c.cfg.Timeout)
	if err != nil {
		return unavailable(Groq, err.Error()).Failure()
	}
	if resp.status != http.StatusOK {
		return serverError(Groq, resp.status, resp.body)
	}
	return nil
}
