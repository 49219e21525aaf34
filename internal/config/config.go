// Package config loads and persists becat configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultModulePath is where a default Backup Exec install puts the BEMCLI module.
const DefaultModulePath = `C:\Program Files\Veritas\Backup Exec\Modules\PowerShell3\BEMCLI`

// Config represents the complete becat configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Shell   ShellConfig   `json:"shell" mapstructure:"shell"`
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Search  SearchConfig  `json:"search" mapstructure:"search"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ShellConfig configures the vendor management shell invocation
type ShellConfig struct {
	// Binary is the primary shell binary (powershell.exe on a media server)
	Binary string `json:"binary" mapstructure:"binary"`
	// FallbackBinary is tried when Binary is not on PATH
	FallbackBinary string `json:"fallbackBinary" mapstructure:"fallbackBinary"`
	// ModulePath is the BEMCLI module install location
	ModulePath string `json:"modulePath" mapstructure:"modulePath"`
	// TimeoutSeconds bounds one full catalog-search invocation
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	Host string     `json:"host" mapstructure:"host"`
	Port int        `json:"port" mapstructure:"port"`
	Auth AuthConfig `json:"auth" mapstructure:"auth"`
}

// AuthConfig configures optional bearer-token authentication
type AuthConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Token is the plain bearer token; ${VAR} expands from the environment
	Token string `json:"token,omitempty" mapstructure:"token"`
	// TokenHashFile holds a bcrypt hash of the token instead of the plain value
	TokenHashFile string `json:"tokenHashFile,omitempty" mapstructure:"tokenHashFile"`
}

// SearchConfig configures catalog search behaviour
type SearchConfig struct {
	// LookbackYears bounds FromBackupTime on catalog queries
	LookbackYears int `json:"lookbackYears" mapstructure:"lookbackYears"`
}

// HistoryConfig configures the search journal
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Path is the journal database file; empty means <configDir>/history.db
	Path string `json:"path,omitempty" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Shell: ShellConfig{
			Binary:         "powershell.exe",
			FallbackBinary: "pwsh",
			ModulePath:     DefaultModulePath,
			TimeoutSeconds: 120,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
			Auth: AuthConfig{
				Enabled: false,
			},
		},
		Search: SearchConfig{
			LookbackYears: 20,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <baseDir>/.becat/config.json.
// A missing config file yields the defaults.
func LoadConfig(baseDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("shell.binary", "powershell.exe")
	v.SetDefault("shell.fallbackBinary", "pwsh")
	v.SetDefault("shell.modulePath", DefaultModulePath)
	v.SetDefault("shell.timeoutSeconds", 120)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("search.lookbackYears", 20)
	v.SetDefault("history.enabled", true)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(baseDir, ".becat"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <baseDir>/.becat/config.json
func (c *Config) Save(baseDir string) error {
	configDir := filepath.Join(baseDir, ".becat")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0o644)
}

// HistoryPath returns the effective journal database path
func (c *Config) HistoryPath(baseDir string) string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(baseDir, ".becat", "history.db")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Shell.Binary == "" {
		return &ConfigError{Field: "shell.binary", Message: "must not be empty"}
	}
	if c.Shell.TimeoutSeconds <= 0 {
		return &ConfigError{Field: "shell.timeoutSeconds", Message: "must be positive"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be a valid port"}
	}
	if c.Search.LookbackYears <= 0 {
		return &ConfigError{Field: "search.lookbackYears", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
