// Package config provides configuration loading for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents CLI configuration loadable from a JSON file. All
// fields are optional; missing values use defaults or come from flags.
type Config struct {
	// Inputs
	JobURL         string `json:"job_url,omitempty"`         // URL to fetch the job posting from
	Job            string `json:"job,omitempty"`             // Path to a job posting text file
	Resume         string `json:"resume,omitempty"`          // Path to a resume text file
	AdditionalInfo string `json:"additional_info,omitempty"` // Path to supplementary info text file

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Completion API key
	OutputDir  string `json:"output_dir,omitempty"`  // Directory for generated files
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Flags always win for booleans, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.AdditionalInfo == "" {
		result.AdditionalInfo = defaults.AdditionalInfo
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}

	return result
}
