package main

import (
	"fmt"
	"os"

	"becat/internal/errors"
	"becat/internal/history"

	"github.com/spf13/cobra"
)

// DoctorCheck is one diagnostic check result
type DoctorCheck struct {
	Name           string             `json:"name"`
	Status         string             `json:"status"` // pass, warn, fail
	Message        string             `json:"message"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// DoctorReport is the full doctor output
type DoctorReport struct {
	Healthy bool          `json:"healthy"`
	Checks  []DoctorCheck `json:"checks"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local setup",
	Long: `Run diagnostic checks on the local setup: configuration validity,
shell binary resolution, BEMCLI module path, and the search journal.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := DoctorReport{Healthy: true}

	cfg, err := loadConfig()
	if err != nil {
		report.Healthy = false
		report.Checks = append(report.Checks, DoctorCheck{
			Name:    "config",
			Status:  "fail",
			Message: err.Error(),
		})
		return printDoctorReport(&report)
	}
	report.Checks = append(report.Checks, DoctorCheck{
		Name:    "config",
		Status:  "pass",
		Message: "configuration is valid",
	})

	logger := newLogger(cfg)
	_, runner := buildService(cfg, logger)

	// Shell binary resolution
	if binary, err := runner.ResolveBinary(); err != nil {
		report.Healthy = false
		report.Checks = append(report.Checks, DoctorCheck{
			Name:           "shell",
			Status:         "fail",
			Message:        err.Error(),
			SuggestedFixes: errors.GetSuggestedFixes(errors.ShellUnavailable),
		})
	} else {
		report.Checks = append(report.Checks, DoctorCheck{
			Name:    "shell",
			Status:  "pass",
			Message: fmt.Sprintf("shell binary resolved to %s", binary),
		})
	}

	// Module path. On anything but a media server this path will not exist,
	// which is worth a warning but not a failure.
	if _, err := os.Stat(cfg.Shell.ModulePath); err != nil {
		report.Checks = append(report.Checks, DoctorCheck{
			Name:    "modulePath",
			Status:  "warn",
			Message: fmt.Sprintf("BEMCLI module path %s is not accessible; the shell will fall back to registry and Program Files lookups", cfg.Shell.ModulePath),
		})
	} else {
		report.Checks = append(report.Checks, DoctorCheck{
			Name:    "modulePath",
			Status:  "pass",
			Message: fmt.Sprintf("BEMCLI module found at %s", cfg.Shell.ModulePath),
		})
	}

	// Search journal
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath(baseDir()), logger)
		if err != nil {
			report.Healthy = false
			report.Checks = append(report.Checks, DoctorCheck{
				Name:           "journal",
				Status:         "fail",
				Message:        err.Error(),
				SuggestedFixes: errors.GetSuggestedFixes(errors.HistoryUnavailable),
			})
		} else {
			store.Close()
			report.Checks = append(report.Checks, DoctorCheck{
				Name:    "journal",
				Status:  "pass",
				Message: fmt.Sprintf("search journal at %s", cfg.HistoryPath(baseDir())),
			})
		}
	} else {
		report.Checks = append(report.Checks, DoctorCheck{
			Name:    "journal",
			Status:  "pass",
			Message: "search journal disabled",
		})
	}

	return printDoctorReport(&report)
}

func printDoctorReport(report *DoctorReport) error {
	if OutputFormat(formatFlag) != FormatHuman {
		out, err := FormatValue(report, OutputFormat(formatFlag))
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		for _, check := range report.Checks {
			icon := "✓"
			switch check.Status {
			case "warn":
				icon = "⚠"
			case "fail":
				icon = "✗"
			}
			fmt.Printf("%s %s: %s\n", icon, check.Name, check.Message)
			for _, fix := range check.SuggestedFixes {
				fmt.Printf("    - %s\n", fix.Description)
				if fix.Command != "" {
					fmt.Printf("      $ %s\n", fix.Command)
				}
			}
		}
	}

	if !report.Healthy {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}
