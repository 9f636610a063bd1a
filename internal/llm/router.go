package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dusk-indust/agentchain/internal/llm"

// Observer receives one callback per provider attempt and per route.
// result is "ok" or a FailureKind string.
type Observer interface {
	ObserveAttempt(provider Identity, result string, elapsed time.Duration)
	ObserveRoute(result string)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(Identity, string, time.Duration) {}
func (nopObserver) ObserveRoute(string)                            {}

// Router tries provider clients in priority order and returns the first
// non-blank text.
type Router struct {
	settings Settings
	clients  map[Identity]Client
	log      zerolog.Logger
	observer Observer
	tracer   trace.Tracer
}

// RouterOption configures a Router.
type RouterOption func(*routerOptions)

type routerOptions struct {
	clients  []Client
	log      zerolog.Logger
	observer Observer
	http     *http.Client
}

// WithClient replaces the default client for c.Identity().
func WithClient(c Client) RouterOption {
	return func(o *routerOptions) {
		o.clients = append(o.clients, c)
	}
}

// WithLogger sets the logger for routing diagnostics and provider trace lines.
func WithLogger(l zerolog.Logger) RouterOption {
	return func(o *routerOptions) {
		o.log = l
	}
}

// WithObserver registers a metrics observer.
func WithObserver(obs Observer) RouterOption {
	return func(o *routerOptions) {
		o.observer = obs
	}
}

// WithTransport sets the *http.Client shared by the default clients.
func WithTransport(hc *http.Client) RouterOption {
	return func(o *routerOptions) {
		o.http = hc
	}
}

// NewRouter creates a Router over the three default clients built from
// settings. Clients passed with WithClient take precedence.
func NewRouter(settings Settings, opts ...RouterOption) *Router {
	o := routerOptions{
		log:      zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	copts := []ClientOption{WithClientLogger(o.log)}
	if o.http != nil {
		copts = append(copts, WithHTTPClient(o.http))
	}

	r := &Router{
		settings: settings,
		clients: map[Identity]Client{
			Groq:        NewGroqClient(settings.Groq, copts...),
			HuggingFace: NewHuggingFaceClient(settings.HuggingFace, copts...),
			Ollama:      NewOllamaClient(settings.Ollama, copts...),
		},
		log:      o.log,
		observer: o.observer,
		tracer:   otel.Tracer(tracerName),
	}
	for _, c := range o.clients {
		r.clients[c.Identity()] = c
	}
	return r
}

// Settings returns the settings the router was built with.
func (r *Router) Settings() Settings { return r.settings }

// Order returns the routing order for the next call.
func (r *Router) Order() []Identity { return r.settings.Order() }

// Route sends prompt to each provider in order and returns the first
// non-blank text, trimmed. Later providers are not called once one
// succeeds. When every provider fails, the error is an
// *AllProvidersFailedError.
func (r *Router) Route(ctx context.Context, prompt string) (string, error) {
	order := r.Order()
	ctx, span := r.tracer.Start(ctx, "llm.Route",
		trace.WithAttributes(attribute.Int("llm.order.length", len(order))))
	defer span.End()

	var attempts []Attempt
	for _, id := range order {
		out := r.attempt(ctx, id, prompt)
		if text, ok := out.Text(); ok {
			if text = strings.TrimSpace(text); text != "" {
				r.log.Info().Str("provider", string(id)).Msg("used provider")
				span.SetAttributes(attribute.String("llm.provider", string(id)))
				r.observer.ObserveRoute("ok")
				return text, nil
			}
			out = Failed(&Failure{Provider: id, Kind: KindEmpty, Detail: "no usable output"})
		}

		f := out.Failure()
		attempts = append(attempts, Attempt{Provider: id, Failure: f})
		r.log.Warn().Str("provider", string(id)).Str("kind", f.Kind.String()).
			Msgf("[%s] failed: %v", id, f)
	}

	err := &AllProvidersFailedError{Attempts: attempts}
	span.RecordError(err)
	span.SetStatus(codes.Error, "all providers failed")
	r.observer.ObserveRoute("failed")
	return "", err
}

func (r *Router) attempt(ctx context.Context, id Identity, prompt string) Outcome {
	ctx, span := r.tracer.Start(ctx, "llm.Attempt",
		trace.WithAttributes(attribute.String("llm.provider", string(id))))
	defer span.End()

	client, ok := r.clients[id]
	if !ok {
		return Failed(&Failure{Provider: id, Kind: KindUnconfigured, Detail: "no client"})
	}

	start := time.Now()
	out := client.Call(ctx, prompt)
	elapsed := time.Since(start)

	result := "ok"
	if f := out.Failure(); f != nil {
		result = f.Kind.String()
		span.RecordError(f)
		span.SetStatus(codes.Error, result)
	}
	r.observer.ObserveAttempt(id, result, elapsed)
	r.log.Debug().Str("provider", string(id)).Str("result", result).Dur("elapsed", elapsed).Msg("provider attempt")
	return out
}

// Attempt records one failed provider call.
type Attempt struct {
	Provider Identity
	Failure  *Failure
}

// AllProvidersFailedError is the only error Route returns. It lists every
// provider tried and keeps the most recent failure.
type AllProvidersFailedError struct {
	Attempts []Attempt
}

// Last returns the most recent failure, or nil when nothing was attempted.
func (e *AllProvidersFailedError) Last() *Failure {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Failure
}

// Providers returns the attempted providers in order.
func (e *AllProvidersFailedError) Providers() []Identity {
	ids := make([]Identity, len(e.Attempts))
	for i, a := range e.Attempts {
		ids[i] = a.Provider
	}
	return ids
}

func (e *AllProvidersFailedError) Error() string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = string(a.Provider)
	}
	last := "none"
	if f := e.Last(); f != nil {
		last = f.Error()
	}
	return fmt.Sprintf("llm: all providers failed (tried %s). Last error: %s", strings.Join(names, ", "), last)
}

// Unwrap exposes the last failure to errors.As.
func (e *AllProvidersFailedError) Unwrap() error {
	if f := e.Last(); f != nil {
		return f
	}
	return nil
}
