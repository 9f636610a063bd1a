package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Credentials holds API keys loaded from credentials.toml.
type Credentials struct {
	Groq        *ProviderCreds `toml:"groq"`
	HuggingFace *ProviderCreds `toml:"huggingface"`
}

// ProviderCreds holds credentials for a single provider.
type ProviderCreds struct {
	APIKey string `toml:"api_key"`
}

// CredentialPaths returns the credential file locations in priority order.
func CredentialPaths(dir string) []string {
	paths := []string{filepath.Join(dir, "credentials.toml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "agentchain", "credentials.toml"))
	}
	return paths
}

// LoadCredentials loads the first credentials file that exists. It returns
// nil credentials and an empty path when there is none.
func LoadCredentials(paths []string) (*Credentials, string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var creds Credentials
		if _, err := toml.DecodeFile(path, &creds); err != nil {
			return nil, path, err
		}
		return &creds, path, nil
	}
	return nil, "", nil
}

func (c *Credentials) groqKey() string {
	if c == nil || c.Groq == nil {
		return ""
	}
	return c.Groq.APIKey
}

func (c *Credentials) huggingFaceKey() string {
	if c == nil || c.HuggingFace == nil {
		return ""
	}
	return c.HuggingFace.APIKey
}
