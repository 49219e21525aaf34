package auth

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"becat/internal/config"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references with environment values
func expandEnv(value string) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// Verifier validates presented bearer tokens against the configured
// credential. The credential is either a plain token (with ${VAR} expansion)
// compared in constant time via bcrypt, or a bcrypt hash read from a file.
type Verifier struct {
	enabled   bool
	tokenHash string
}

// NewVerifier builds a verifier from the auth configuration
func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if !cfg.Enabled {
		return &Verifier{enabled: false}, nil
	}

	if cfg.TokenHashFile != "" {
		data, err := os.ReadFile(cfg.TokenHashFile)
		if err != nil {
			return nil, fmt.Errorf("read token hash file: %w", err)
		}
		hash := strings.TrimSpace(string(data))
		if hash == "" {
			return nil, fmt.Errorf("token hash file %s is empty", cfg.TokenHashFile)
		}
		return &Verifier{enabled: true, tokenHash: hash}, nil
	}

	token := expandEnv(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("auth is enabled but no token or tokenHashFile is configured")
	}
	hash, err := HashToken(token)
	if err != nil {
		return nil, err
	}
	return &Verifier{enabled: true, tokenHash: hash}, nil
}

// Enabled reports whether authentication is required
func (v *Verifier) Enabled() bool {
	return v.enabled
}

// Verify checks a presented bearer token
func (v *Verifier) Verify(token string) bool {
	if !v.enabled {
		return true
	}
	if token == "" {
		return false
	}
	return VerifyToken(token, v.tokenHash)
}
