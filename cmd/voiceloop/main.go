// Package main provides the entry point for the voiceloop content engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voiceloop",
	Short: "Persona-driven marketing content engine",
	Long:  "voiceloop turns a founder interview into a versioned persona profile and generates on-brand LinkedIn and blog drafts with a deterministic quality gate and human feedback loop.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
