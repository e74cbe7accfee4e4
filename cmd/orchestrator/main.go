// Package main provides the entry point for the CV Orchestrator HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orchestrator",
	Short: "CV Orchestrator HTTP API Server",
	Long:  "Backend-for-frontend orchestrator that hydrates student and taxonomy data, assembles the canonical generation payload, and delegates CV generation to the generation service.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
