package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	err    error
	called int
}

func (f *fakeProber) Alive(context.Context) error {
	f.called++
	return f.err
}

func byProvider(r Report, id llm.Identity) ProviderStatus {
	for _, p := range r.Providers {
		if p.Provider == id {
			return p
		}
	}
	return ProviderStatus{}
}

func TestCheck_NoCredentials(t *testing.T) {
	groq := &fakeProber{}
	ollama := &fakeProber{err: errors.New("connection refused")}

	r := Check(context.Background(), llm.DefaultSettings(), map[llm.Identity]Prober{
		llm.Groq:   groq,
		llm.Ollama: ollama,
	})

	assert.Equal(t, []llm.Identity{llm.Ollama}, r.Order)
	assert.Equal(t, 0, groq.called)
	assert.Equal(t, 1, ollama.called)

	g := byProvider(r, llm.Groq)
	assert.False(t, g.Configured)
	assert.False(t, g.Probed)
	assert.Equal(t, "(not set)", g.MaskedKey)
	assert.Equal(t, 0, g.Position)

	o := byProvider(r, llm.Ollama)
	assert.True(t, o.Probed)
	assert.False(t, o.Reachable)
	assert.Equal(t, "connection refused", o.Detail)
	assert.Equal(t, 1, o.Position)
}

func TestCheck_ConfiguredProvidersProbed(t *testing.T) {
	s := llm.DefaultSettings()
	s.Groq.APIKey = "gsk_0123456789abcdef"
	s.HuggingFace.Token = "hf_0123456789abcdef"

	r := Check(context.Background(), s, map[llm.Identity]Prober{
		llm.Groq:   &fakeProber{},
		llm.Ollama: &fakeProber{},
	})

	assert.Equal(t, []llm.Identity{llm.Groq, llm.HuggingFace, llm.Ollama}, r.Order)

	g := byProvider(r, llm.Groq)
	assert.True(t, g.Reachable)
	assert.Equal(t, "gsk_012...cdef", g.MaskedKey)
	assert.Equal(t, 1, g.Position)

	hf := byProvider(r, llm.HuggingFace)
	assert.True(t, hf.Configured)
	assert.False(t, hf.Probed)
	assert.Equal(t, 2, hf.Position)
}

func TestProbes_OllamaAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	s := llm.DefaultSettings()
	s.Ollama.Host = srv.URL

	r := Check(context.Background(), s, Probes(s))
	o := byProvider(r, llm.Ollama)
	require.True(t, o.Probed)
	assert.True(t, o.Reachable)
	assert.Empty(t, o.Detail)
}
