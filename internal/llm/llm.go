// Package llm routes prompts to text-generation providers. Each provider is
// wrapped by a Client that turns one HTTP contract into an Outcome; the
// Router tries clients in priority order until one yields usable text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Identity names one provider backend.
type Identity string

const (
	// Groq is the remote chat-completions provider.
	Groq Identity = "groq"

	// HuggingFace is the remote inference provider.
	HuggingFace Identity = "hf"

	// Ollama is the local server provider. It needs no credential and is
	// always the last entry of a default routing order.
	Ollama Identity = "ollama"
)

// Identities lists every known provider in default priority order.
var Identities = []Identity{Groq, HuggingFace, Ollama}

// ErrUnknownProvider is returned by ParseIdentity for names outside the
// closed provider set.
var ErrUnknownProvider = errors.New("llm: unknown provider")

// ParseIdentity parses a provider name, ignoring case and surrounding space.
func ParseIdentity(s string) (Identity, error) {
	id := Identity(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case Groq, HuggingFace, Ollama:
		return id, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Role describes the kind of backend behind an identity.
func (id Identity) Role() string {
	switch id {
	case Groq:
		return "remote-chat"
	case HuggingFace:
		return "remote-inference"
	case Ollama:
		return "local-server"
	default:
		return "unknown"
	}
}

func (id Identity) String() string { return string(id) }

// Client wraps a single provider's HTTP contract.
type Client interface {
	Identity() Identity
	Call(ctx context.Context, prompt string) Outcome
}
