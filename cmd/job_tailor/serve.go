package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tailor/internal/ingestion"
	"github.com/jonathan/job-tailor/internal/server"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the generation and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3001, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render SPA job boards with headless Chrome when direct fetches come back empty")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// A missing key keeps the process up; only generation is disabled.
	apiKey := os.Getenv("OPENAI_API_KEY")
	log.Printf("OpenAI API key configured: %t", apiKey != "")

	port := servePort
	if env := os.Getenv("PORT"); env != "" {
		parsed, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", env, err)
		}
		port = parsed
	}

	cfg := server.Config{
		Port:     port,
		APIKey:   apiKey,
		Resolver: &ingestion.Options{UseBrowser: serveUseBrowser},
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
