package llm

import "time"

// Settings is the resolved, read-only configuration for every provider.
// It is built once at startup and handed to NewRouter; routing never reads
// the process environment.
type Settings struct {
	// Forced, when set, restricts the routing order to this one provider,
	// whether or not it is configured.
	Forced Identity

	Groq        GroqSettings
	HuggingFace HuggingFaceSettings
	Ollama      OllamaSettings
}

// GroqSettings configures the remote chat-completions client.
type GroqSettings struct {
	APIKey      string
	Model       string
	URL         string
	Temperature float64
	Timeout     time.Duration

	// ModelsURL is the model listing used as a liveness check. When empty
	// it is derived from a URL ending in /chat/completions.
	ModelsURL string
}

// HuggingFaceSettings configures the remote inference client.
type HuggingFaceSettings struct {
	Token        string
	Model        string
	BaseURL      string // model name is appended as a path segment
	MaxNewTokens int
	Timeout      time.Duration

	// MaxAttempts bounds calls made while the model reports it is loading.
	// The wait before retry i (0-based) is RetryBase + i*RetryStep.
	MaxAttempts int
	RetryBase   time.Duration
	RetryStep   time.Duration
}

// OllamaSettings configures the local server client.
type OllamaSettings struct {
	Host         string
	Model        string
	ProbeTimeout time.Duration
	Timeout      time.Duration
}

// DefaultSettings returns settings with every default filled in and no
// credentials.
func DefaultSettings() Settings {
	return Settings{
		Groq: GroqSettings{
			Model:       "mixtral-8x7b-32768",
			URL:         "https://api.groq.com/openai/v1/chat/completions",
			Temperature: 0.6,
			Timeout:     60 * time.Second,
		},
		HuggingFace: HuggingFaceSettings{
			Model:        "gpt2",
			BaseURL:      "https://api-inference.huggingface.co/models",
			MaxNewTokens: 128,
			Timeout:      60 * time.Second,
			MaxAttempts:  6,
			RetryBase:    2 * time.Second,
			RetryStep:    time.Second,
		},
		Ollama: OllamaSettings{
			Host:         "http://localhost:11434",
			Model:        "mistral",
			ProbeTimeout: 5 * time.Second,
			Timeout:      120 * time.Second,
		},
	}
}

// Configured reports whether the provider has the credential it needs.
func (s Settings) Configured(id Identity) bool {
	switch id {
	case Groq:
		return s.Groq.APIKey != ""
	case HuggingFace:
		return s.HuggingFace.Token != ""
	case Ollama:
		return true
	default:
		return false
	}
}

// Order computes the routing order. A forced provider is returned alone.
// Otherwise credentialed remote providers come first and the local server
// is always appended, so the order is never empty.
func (s Settings) Order() []Identity {
	if s.Forced != "" {
		return []Identity{s.Forced}
	}
	var order []Identity
	if s.Configured(Groq) {
		order = append(order, Groq)
	}
	if s.Configured(HuggingFace) {
		order = append(order, HuggingFace)
	}
	return append(order, Ollama)
}
