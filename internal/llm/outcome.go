package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxExcerpt bounds the response body kept in a ServerError failure.
const maxExcerpt = 200

// FailureKind classifies why a provider produced no text.
type FailureKind int

const (
	// KindUnconfigured means the provider lacks a credential. No request was made.
	KindUnconfigured FailureKind = iota

	// KindUnavailable means the provider could not be reached, failed its
	// liveness probe, or stayed in a loading state past the retry ceiling.
	KindUnavailable

	// KindServerError means a reachable provider answered with a non-success
	// status or a body that could not be interpreted.
	KindServerError

	// KindEmpty means the provider succeeded but the text was blank.
	KindEmpty
)

func (k FailureKind) String() string {
	switch k {
	case KindUnconfigured:
		return "unconfigured"
	case KindUnavailable:
		return "unavailable"
	case KindServerError:
		return "server-error"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Failure is the detail of an unsuccessful provider call.
type Failure struct {
	Provider Identity
	Kind     FailureKind

	// Status and BodyExcerpt are set for KindServerError. Status is zero
	// when the body, not the status, was the problem.
	Status      int
	BodyExcerpt string

	// Detail is free-form context, e.g. "still loading".
	Detail string
}

func (f *Failure) Error() string {
	var sb strings.Builder
	if f.Provider != "" {
		sb.WriteString(string(f.Provider))
		sb.WriteString(": ")
	}
	switch f.Kind {
	case KindServerError:
		if f.Status != 0 {
			fmt.Fprintf(&sb, "HTTP %d", f.Status)
		} else {
			sb.WriteString("malformed response")
		}
		if f.Detail != "" {
			sb.WriteString(": ")
			sb.WriteString(f.Detail)
		}
		if f.BodyExcerpt != "" {
			sb.WriteString(": ")
			sb.WriteString(f.BodyExcerpt)
		}
	default:
		sb.WriteString(f.Kind.String())
		if f.Detail != "" {
			sb.WriteString(": ")
			sb.WriteString(f.Detail)
		}
	}
	return sb.String()
}

// Outcome is the tagged result of a provider call: text or a failure,
// never both.
type Outcome struct {
	text    string
	failure *Failure
}

// Succeeded returns a text outcome.
func Succeeded(text string) Outcome {
	return Outcome{text: text}
}

// Failed returns a failure outcome.
func Failed(f *Failure) Outcome {
	return Outcome{failure: f}
}

// Text returns the generated text and true for a text outcome.
func (o Outcome) Text() (string, bool) {
	if o.failure != nil {
		return "", false
	}
	return o.text, true
}

// Failure returns the failure detail, or nil for a text outcome.
func (o Outcome) Failure() *Failure {
	return o.failure
}

func unconfigured(id Identity) Outcome {
	return Failed(&Failure{Provider: id, Kind: KindUnconfigured, Detail: "no credential"})
}

func unavailable(id Identity, detail string) Outcome {
	return Failed(&Failure{Provider: id, Kind: KindUnavailable, Detail: detail})
}

func serverError(id Identity, status int, body []byte) *Failure {
	return &Failure{Provider: id, Kind: KindServerError, Status: status, BodyExcerpt: excerpt(body)}
}

func malformed(id Identity, detail string, body []byte) *Failure {
	return &Failure{Provider: id, Kind: KindServerError, Detail: detail, BodyExcerpt: excerpt(body)}
}

// excerpt returns at most maxExcerpt characters of body.
func excerpt(body []byte) string {
	s := string(body)
	if utf8.RuneCountInString(s) <= maxExcerpt {
		return s
	}
	return string([]rune(s)[:maxExcerpt])
}
