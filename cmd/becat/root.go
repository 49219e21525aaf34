package main

import (
	"os"

	"becat/internal/bemcli"
	"becat/internal/catalog"
	"becat/internal/config"
	"becat/internal/logging"
	"becat/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configDirFlag overrides where the .becat config directory is looked up
	configDirFlag string
	// formatFlag is the CLI --format flag value
	formatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "becat",
	Short: "becat - Backup Exec catalog search",
	Long: `becat searches a Backup Exec backup catalog through the BEMCLI
management shell. A raw path is expanded into wildcard variants and searched
across agent servers in a fixed attempt order, with full diagnostics on what
was tried and why.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("becat version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Directory holding .becat/config.json (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: json, yaml, or human")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (overrides config)")
}

// baseDir resolves the configuration base directory
func baseDir() string {
	if configDirFlag != "" {
		return configDirFlag
	}
	if env := os.Getenv("BECAT_CONFIG_DIR"); env != "" {
		return env
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// loadConfig loads the effective configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(baseDir())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a logger from config plus CLI overrides
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := logging.HumanFormat
	if cfg.Logging.Format == "json" {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(level),
	})
}

// buildService wires the catalog search service from config
func buildService(cfg *config.Config, logger *logging.Logger) (*catalog.Service, *bemcli.Runner) {
	builder := bemcli.NewBuilder(cfg.Shell.ModulePath, cfg.Search.LookbackYears)
	runner := bemcli.NewRunner(cfg.Shell, logger)
	return catalog.NewService(builder, runner, logger), runner
}
