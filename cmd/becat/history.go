package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"becat/internal/config"
	"becat/internal/history"
	"becat/internal/logging"

	"github.com/spf13/cobra"
)

var (
	historyLimit     int
	historyPruneDays int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent journaled searches",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one journaled search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRawCmd = &cobra.Command{
	Use:   "raw <id>",
	Short: "Print the raw shell output of a journaled search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRaw,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journaled searches older than a cutoff",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRawCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of searches to list")
	historyPruneCmd.Flags().IntVar(&historyPruneDays, "older-than", 30, "Delete records older than this many days")
}

func openJournal() (*history.Store, *config.Config, *logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg)
	if !cfg.History.Enabled {
		return nil, nil, nil, fmt.Errorf("the search journal is disabled in config")
	}
	store, err := history.Open(cfg.HistoryPath(baseDir()), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, cfg, logger, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, _, _, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if OutputFormat(formatFlag) != FormatHuman {
		out, err := FormatValue(records, OutputFormat(formatFlag))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No journaled searches")
		return nil
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "FAILED"
		}
		fmt.Printf("%4d  %s  %-6s  %4d matches  %6dms  %s\n",
			rec.ID,
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			status,
			rec.MatchCount,
			rec.DurationMs,
			rec.Path)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	store, _, _, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no journal record with id %d", id)
	}

	format := OutputFormat(formatFlag)
	if format == FormatHuman {
		format = FormatJSON
	}
	out, err := FormatValue(rec, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runHistoryRaw(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	store, _, _, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	raw, err := store.RawOutput(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Println(raw)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, _, _, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	cutoff := time.Now().AddDate(0, 0, -historyPruneDays)
	pruned, err := store.Prune(context.Background(), cutoff)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d records older than %s\n", pruned, cutoff.Format("2006-01-02"))
	return nil
}
