package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds settings loaded from agentchain.yml. Credentials do
// not belong here; they come from the environment or credentials.toml.
type ProjectConfig struct {
	Provider    string            `yaml:"provider,omitempty"`
	Verbose     bool              `yaml:"verbose,omitempty"`
	Groq        GroqConfig        `yaml:"groq,omitempty"`
	HuggingFace HuggingFaceConfig `yaml:"hf,omitempty"`
	Ollama      OllamaConfig      `yaml:"ollama,omitempty"`
}

// GroqConfig overrides remote chat defaults.
type GroqConfig struct {
	Model       string        `yaml:"model,omitempty"`
	URL         string        `yaml:"url,omitempty"`
	ModelsURL   string        `yaml:"modelsUrl,omitempty"`
	Temperature *float64      `yaml:"temperature,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// HuggingFaceConfig overrides remote inference defaults.
type HuggingFaceConfig struct {
	Model        string        `yaml:"model,omitempty"`
	URL          string        `yaml:"url,omitempty"`
	MaxNewTokens int           `yaml:"maxNewTokens,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	MaxAttempts  int           `yaml:"maxAttempts,omitempty"`
	RetryBase    time.Duration `yaml:"retryBase,omitempty"`
	RetryStep    time.Duration `yaml:"retryStep,omitempty"`
}

// OllamaConfig overrides local server defaults.
type OllamaConfig struct {
	Host         string        `yaml:"host,omitempty"`
	Model        string        `yaml:"model,omitempty"`
	ProbeTimeout time.Duration `yaml:"probeTimeout,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
}

// Load attempts to read agentchain.yml or agentchain.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"agentchain.yml", "agentchain.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
