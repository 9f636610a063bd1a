package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Compile-time interface check.
var _ Client = (*HuggingFaceClient)(nil)

// errModelLoading marks a response that is worth retrying.
var errModelLoading = errors.New("model loading")

// HuggingFaceClient calls the hosted inference API for one model.
type HuggingFaceClient struct {
	cfg HuggingFaceSettings
	transport
}

type hfParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// NewHuggingFaceClient creates an inference client.
func NewHuggingFaceClient(cfg HuggingFaceSettings, opts ...ClientOption) *HuggingFaceClient {
	return &HuggingFaceClient{cfg: cfg, transport: newTransport(opts)}
}

func (c *HuggingFaceClient) Identity() Identity { return HuggingFace }

// Call posts the prompt and retries while the model reports 503 or 524.
// Any other non-success status fails immediately.
func (c *HuggingFaceClient) Call(ctx context.Context, prompt string) Outcome {
	if c.cfg.Token == "" {
		return unconfigured(HuggingFace)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + c.cfg.Model
	req := hfRequest{Inputs: prompt, Parameters: hfParameters{MaxNewTokens: c.cfg.MaxNewTokens}}

	op := func() (string, error) {
		resp, err := c.do(ctx, http.MethodPost, url, c.cfg.Token, req, c.cfg.Timeout)
		if err != nil {
			return "", backoff.Permanent(unavailable(HuggingFace, err.Error()).Failure())
		}
		switch resp.status {
		case http.StatusOK:
			return generatedText(resp.body), nil
		case http.StatusServiceUnavailable, 524:
			return "", errModelLoading
		default:
			return "", backoff.Permanent(serverError(HuggingFace, resp.status, resp.body))
		}
	}

	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	text, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(&linearBackOff{base: c.cfg.RetryBase, step: c.cfg.RetryStep}),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(_ error, wait time.Duration) {
			c.log.Debug().Str("provider", string(HuggingFace)).Dur("wait", wait).Msg("model loading, retrying")
		}),
	)
	if err == nil {
		return Succeeded(text)
	}

	var f *Failure
	switch {
	case errors.As(err, &f):
		return Failed(f)
	case errors.Is(err, errModelLoading):
		return unavailable(HuggingFace, "still loading")
	default:
		return unavailable(HuggingFace, err.Error())
	}
}

// generatedText extracts generated_text from a list-of-objects body. Any
// other shape is returned as compact JSON, or verbatim if it is not JSON.
func generatedText(body []byte) string {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil && len(items) > 0 {
		var first struct {
			GeneratedText string `json:"generated_text"`
		}
		if err := json.Unmarshal(items[0], &first); err == nil && first.GeneratedText != "" {
			return first.GeneratedText
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}

// linearBackOff waits base, base+step, base+2*step, ...
type linearBackOff struct {
	base, step time.Duration
	n          int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	d := b.base + time.Duration(b.n)*b.step
	b.n++
	return d
}

func (b *linearBackOff) Reset() { b.n = 0 }
