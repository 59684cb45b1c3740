package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tailor/internal/config"
	"github.com/jonathan/job-tailor/internal/ingestion"
	"github.com/jonathan/job-tailor/internal/llm"
	"github.com/jonathan/job-tailor/internal/prompt"
	"github.com/jonathan/job-tailor/internal/types"
)

var genFlags config.Config

var genConfigPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume and cover letter from the command line",
	Long: `Run the generation pipeline once without the HTTP server: resolve the
job description from a URL or file, compose the prompt, call the
completion API, and write the tailored resume and cover letter to disk.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to JSON config file")
	generateCmd.Flags().StringVar(&genFlags.JobURL, "job-url", "", "URL of the job posting")
	generateCmd.Flags().StringVar(&genFlags.Job, "job", "", "Path to a job posting text file")
	generateCmd.Flags().StringVar(&genFlags.Resume, "resume", "", "Path to a resume text file")
	generateCmd.Flags().StringVar(&genFlags.AdditionalInfo, "additional-info", "", "Path to a supplementary info text file")
	generateCmd.Flags().StringVar(&genFlags.OutputDir, "output-dir", ".", "Directory for generated files")
	generateCmd.Flags().BoolVar(&genFlags.UseBrowser, "use-browser", false, "Render SPA job boards with headless Chrome")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := genFlags
	if genConfigPath != "" {
		fileCfg, err := config.Load(genConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.JobURL == "" && cfg.Job == "" {
		return fmt.Errorf("either --job-url or --job is required")
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	listing := types.JobListing{URL: cfg.JobURL}
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		listing.Description = strings.TrimSpace(string(data))
	}

	resumeText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	resume := types.ResumePayload{
		Type:    types.ResumeTypeText,
		Content: strings.TrimSpace(string(resumeText)),
	}

	additional := ""
	if cfg.AdditionalInfo != "" {
		data, err := os.ReadFile(cfg.AdditionalInfo)
		if err != nil {
			return fmt.Errorf("failed to read additional info file: %w", err)
		}
		additional = strings.TrimSpace(string(data))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	description := ingestion.ResolveJobDescription(ctx, listing, &ingestion.Options{UseBrowser: cfg.UseBrowser})
	if description == "" && listing.URL != "" {
		log.Printf("Could not fetch a description from %s; generating from the URL alone", listing.URL)
	}

	gateway, err := llm.NewClient(nil, cfg.APIKey)
	if err != nil {
		return err
	}

	systemText, userText := prompt.Compose(listing.URL, description, resume, additional)

	result, err := gateway.Complete(ctx, systemText, userText)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resumePath := filepath.Join(cfg.OutputDir, "tailored_resume.md")
	if err := os.WriteFile(resumePath, []byte(result.TailoredResume), 0o644); err != nil {
		return fmt.Errorf("failed to write tailored resume: %w", err)
	}
	coverPath := filepath.Join(cfg.OutputDir, "cover_letter.md")
	if err := os.WriteFile(coverPath, []byte(result.CoverLetter), 0o644); err != nil {
		return fmt.Errorf("failed to write cover letter: %w", err)
	}

	log.Printf("Wrote %s and %s (tokens: %d prompt, %d completion)",
		resumePath, coverPath, result.Usage.PromptTokens, result.Usage.CompletionTokens)
	return nil
}
