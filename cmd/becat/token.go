package main

import (
	"fmt"
	"os"

	"becat/internal/auth"

	"github.com/spf13/cobra"
)

var tokenHashFile string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
}

var tokenNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new API token",
	Long: `Generate a new API token. The token is printed once; with --hash-file
its bcrypt hash is written to disk so the plain token never has to appear in
the config file.`,
	RunE: runTokenNew,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenNewCmd)

	tokenNewCmd.Flags().StringVar(&tokenHashFile, "hash-file", "", "Write the token's bcrypt hash to this file")
}

func runTokenNew(cmd *cobra.Command, args []string) error {
	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}

	fmt.Println(token)

	if tokenHashFile != "" {
		hash, err := auth.HashToken(token)
		if err != nil {
			return err
		}
		if err := os.WriteFile(tokenHashFile, []byte(hash+"\n"), 0o600); err != nil {
			return fmt.Errorf("write hash file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Hash written to %s; set server.auth.tokenHashFile to use it\n", tokenHashFile)
	}

	return nil
}
