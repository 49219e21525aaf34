package main

import (
	"context"
	"fmt"

	"becat/internal/catalog"

	"github.com/spf13/cobra"
)

var (
	searchAgent   string
	searchRecurse bool
	searchDir     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <path>",
	Short: "Search the backup catalog for a path",
	Long: `Search the backup catalog for files or directories matching a path.
The path is expanded into wildcard variants (bare name, leaf name, drive-less
form) and each variant is searched per-agent and across all agents.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchAgent, "agent", "", "Restrict the first attempts to one agent server")
	searchCmd.Flags().BoolVar(&searchRecurse, "recurse", false, "Search below directory matches")
	searchCmd.Flags().BoolVar(&searchDir, "dir", false, "Treat the path as a directory")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	service, _ := buildService(cfg, logger)

	req := catalog.SearchRequest{
		Path:            args[0],
		AgentName:       searchAgent,
		Recurse:         searchRecurse,
		PathIsDirectory: searchDir,
	}

	outcome, searchErr := service.Search(context.Background(), req)

	out, err := FormatOutcome(outcome, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)

	if searchErr != nil {
		return fmt.Errorf("search failed: %s", outcome.Error)
	}
	return nil
}
