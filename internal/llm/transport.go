package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// maxResponseBody caps how much of a provider response is read.
const maxResponseBody = 8 << 20

// transport is the HTTP plumbing shared by the provider clients.
type transport struct {
	http *http.Client
	log  zerolog.Logger
}

// ClientOption configures a provider client.
type ClientOption func(*transport)

// WithHTTPClient replaces the underlying *http.Client. Per-request timeouts
// are applied through the request context, so the client's own Timeout may
// be left at zero.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(t *transport) {
		t.http = hc
	}
}

// WithClientLogger sets the logger used for per-client diagnostics such as
// retry notices.
func WithClientLogger(l zerolog.Logger) ClientOption {
	return func(t *transport) {
		t.log = l
	}
}

func newTransport(opts []ClientOption) transport {
	t := transport{
		http: &http.Client{},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// do sends a request bounded by timeout and reads the whole body.
// A non-nil error means no response was obtained.
func (t transport) do(ctx context.Context, method, url, bearer string, payload any, timeout time.Duration) (response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}
	return response{status: resp.StatusCode, body: data}, nil
}
