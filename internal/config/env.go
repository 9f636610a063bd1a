package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvProvider    = "PROVIDER"
	EnvGroqKey     = "GROQ_API_KEY"
	EnvGroqModel   = "GROQ_MODEL"
	EnvGroqURL     = "GROQ_URL"
	EnvGroqModels  = "GROQ_MODELS_URL"
	EnvHFToken     = "HF_TOKEN"
	EnvHFModel     = "HF_MODEL"
	EnvHFURL       = "HF_URL"
	EnvOllamaHost  = "OLLAMA_HOST"
	EnvOllamaModel = "OLLAMA_MODEL"
)

// LoadEnvFile loads a .env file into the process environment. Variables
// already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Source bundles everything Resolve reads.
type Source struct {
	Project     *ProjectConfig
	Credentials *Credentials
	Getenv      func(string) string // defaults to os.Getenv
}

// Resolve layers defaults, the project file, credentials.toml and the
// environment (highest precedence) into provider settings. An unknown
// forced provider is logged and ignored.
func Resolve(src Source, log zerolog.Logger) llm.Settings {
	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	project := src.Project
	if project == nil {
		project = &ProjectConfig{}
	}

	s := llm.DefaultSettings()

	// Project file.
	setString(&s.Groq.Model, project.Groq.Model)
	setString(&s.Groq.URL, project.Groq.URL)
	setString(&s.Groq.ModelsURL, project.Groq.ModelsURL)
	if project.Groq.Temperature != nil {
		s.Groq.Temperature = *project.Groq.Temperature
	}
	setDuration(&s.Groq.Timeout, project.Groq.Timeout)

	hf := project.HuggingFace
	setString(&s.HuggingFace.Model, hf.Model)
	setString(&s.HuggingFace.BaseURL, hf.URL)
	setInt(&s.HuggingFace.MaxNewTokens, hf.MaxNewTokens)
	setDuration(&s.HuggingFace.Timeout, hf.Timeout)
	setInt(&s.HuggingFace.MaxAttempts, hf.MaxAttempts)
	setDuration(&s.HuggingFace.RetryBase, hf.RetryBase)
	setDuration(&s.HuggingFace.RetryStep, hf.RetryStep)

	setString(&s.Ollama.Host, project.Ollama.Host)
	setString(&s.Ollama.Model, project.Ollama.Model)
	setDuration(&s.Ollama.ProbeTimeout, project.Ollama.ProbeTimeout)
	setDuration(&s.Ollama.Timeout, project.Ollama.Timeout)

	// Credentials file.
	setString(&s.Groq.APIKey, strings.TrimSpace(src.Credentials.groqKey()))
	setString(&s.HuggingFace.Token, strings.TrimSpace(src.Credentials.huggingFaceKey()))

	// Environment.
	setString(&s.Groq.APIKey, env(EnvGroqKey))
	setString(&s.Groq.Model, env(EnvGroqModel))
	setString(&s.Groq.URL, env(EnvGroqURL))
	setString(&s.Groq.ModelsURL, env(EnvGroqModels))
	setString(&s.HuggingFace.Token, env(EnvHFToken))
	setString(&s.HuggingFace.Model, env(EnvHFModel))
	setString(&s.HuggingFace.BaseURL, env(EnvHFURL))
	setString(&s.Ollama.Host, env(EnvOllamaHost))
	setString(&s.Ollama.Model, env(EnvOllamaModel))
	s.Ollama.Host = strings.TrimRight(s.Ollama.Host, "/")

	forced := project.Provider
	if v := env(EnvProvider); v != "" {
		forced = v
	}
	if forced != "" {
		id, err := llm.ParseIdentity(forced)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring forced provider")
		} else {
			s.Forced = id
		}
	}

	return s
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
