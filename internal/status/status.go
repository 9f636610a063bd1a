// Package status reports which providers are configured and reachable.
package status

import (
	"context"

	"github.com/dusk-indust/agentchain/internal/config"
	"github.com/dusk-indust/agentchain/internal/llm"
	"golang.org/x/sync/errgroup"
)

// Prober checks that a provider is reachable without generating text.
type Prober interface {
	Alive(ctx context.Context) error
}

// ProviderStatus describes one provider.
type ProviderStatus struct {
	Provider   llm.Identity
	Role       string
	Model      string
	Endpoint   string
	MaskedKey  string // empty for providers without a credential
	Configured bool
	Probed     bool
	Reachable  bool
	Detail     string
	Position   int // 1-based position in the routing order, 0 if absent
}

// Report is the status of every provider plus the routing order.
type Report struct {
	Order     []llm.Identity
	Forced    llm.Identity
	Providers []ProviderStatus
}

// Check builds a report for settings. Providers with an entry in probes
// are probed concurrently; an unconfigured remote provider is never probed.
func Check(ctx context.Context, settings llm.Settings, probes map[llm.Identity]Prober) Report {
	report := Report{
		Order:     settings.Order(),
		Forced:    settings.Forced,
		Providers: describe(settings),
	}

	position := make(map[llm.Identity]int, len(report.Order))
	for i, id := range report.Order {
		position[id] = i + 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range report.Providers {
		ps := &report.Providers[i]
		ps.Position = position[ps.Provider]

		prober, ok := probes[ps.Provider]
		if !ok || !ps.Configured {
			continue
		}
		g.Go(func() error {
			ps.Probed = true
			if err := prober.Alive(ctx); err != nil {
				ps.Detail = err.Error()
				return nil
			}
			ps.Reachable = true
			return nil
		})
	}
	// Probe failures are recorded per provider, never returned.
	_ = g.Wait()

	return report
}

// Probes returns the default probes for settings: the chat API's model list
// and the local server's tag list. The inference API has no free probe.
func Probes(settings llm.Settings, opts ...llm.ClientOption) map[llm.Identity]Prober {
	return map[llm.Identity]Prober{
		llm.Groq:   llm.NewGroqClient(settings.Groq, opts...),
		llm.Ollama: llm.NewOllamaClient(settings.Ollama, opts...),
	}
}

func describe(s llm.Settings) []ProviderStatus {
	return []ProviderStatus{
		{
			Provider:   llm.Groq,
			Role:       llm.Groq.Role(),
			Model:      s.Groq.Model,
			Endpoint:   s.Groq.URL,
			MaskedKey:  config.MaskKey(s.Groq.APIKey),
			Configured: s.Configured(llm.Groq),
		},
		{
			Provider:   llm.HuggingFace,
			Role:       llm.HuggingFace.Role(),
			Model:      s.HuggingFace.Model,
			Endpoint:   s.HuggingFace.BaseURL + "/" + s.HuggingFace.Model,
			MaskedKey:  config.MaskKey(s.HuggingFace.Token),
			Configured: s.Configured(llm.HuggingFace),
		},
		{
			Provider:   llm.Ollama,
			Role:       llm.Ollama.Role(),
			Model:      s.Ollama.Model,
			Endpoint:   s.Ollama.Host,
			Configured: true,
		},
	}
}
