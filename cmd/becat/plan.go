package main

import (
	"fmt"

	"becat/internal/catalog"

	"github.com/spf13/cobra"
)

var (
	planAgent string
	planDir   bool
)

// PlanReport shows what a search would execute without running the shell
type PlanReport struct {
	Path     string                   `json:"path"`
	Variants []string                 `json:"variants"`
	Attempts []catalog.PlannedAttempt `json:"attempts"`
}

var planCmd = &cobra.Command{
	Use:   "plan <path>",
	Short: "Show what a search would try, without running it",
	Long: `Expand a path into its wildcard variants and print the attempt plan
in execution order. No shell is invoked.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planAgent, "agent", "", "Plan agent-scoped attempts for this agent server")
	planCmd.Flags().BoolVar(&planDir, "dir", false, "Treat the path as a directory")
}

func runPlan(cmd *cobra.Command, args []string) error {
	variants := catalog.GenerateVariants(args[0])
	toggles := catalog.DirectoryToggles(planDir)
	attempts := catalog.PlanAttempts(variants, toggles, planAgent != "")

	report := PlanReport{
		Path:     args[0],
		Variants: variants,
		Attempts: attempts,
	}

	if OutputFormat(formatFlag) != FormatHuman {
		out, err := FormatValue(report, OutputFormat(formatFlag))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Printf("Variants for %q:\n", args[0])
	for _, v := range variants {
		fmt.Printf("  %s\n", v)
	}
	fmt.Printf("\nAttempts (%d):\n", len(attempts))
	for i, a := range attempts {
		fmt.Printf("  %2d. %-22s pattern=%q dir=%t scope=%s\n", i+1, a.Name, a.Pattern, a.Directory, a.Scope)
	}
	return nil
}
