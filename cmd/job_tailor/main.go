// Package main provides the entry point for the job-tailor server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_tailor",
	Short: "Job Tailor HTTP API Server",
	Long:  "Job Tailor generates a tailored resume and cover letter for a job posting by delegating to a chat-completion API, with best-effort job-description scraping from posting URLs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
