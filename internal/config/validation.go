package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"toolfetch/internal/tools"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate checks field values that yaml decoding cannot.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersions()...)
	results = append(results, c.validateDownloads()...)
	return results
}

// Err joins the error-level findings, or returns nil when there are none.
func Err(results []ValidationResult) error {
	var errs []error
	for _, r := range results {
		if r.Level == "error" {
			errs = append(errs, errors.New(r.Message))
		}
	}
	return errors.Join(errs...)
}

func (c Config) validateVersions() []ValidationResult {
	var results []ValidationResult
	names := make([]string, 0, len(c.Versions))
	for name := range c.Versions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := tools.ParseTool(name); err != nil {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("versions: unknown tool %q", name),
			})
			continue
		}
		if strings.TrimSpace(c.Versions[name]) == "" {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("versions: empty pin for %q falls back to the default version", name),
			})
		}
	}
	return results
}

func (c Config) validateDownloads() []ValidationResult {
	var results []ValidationResult

	if c.DownloadTimeout != "" {
		d, err := time.ParseDuration(c.DownloadTimeout)
		switch {
		case err != nil:
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("download_timeout %q is not a duration", c.DownloadTimeout),
			})
		case d < 0:
			results = append(results, ValidationResult{
				Level:   "error",
				Message: "download_timeout must not be negative",
			})
		}
	}

	if c.ExtractWorkers < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("extract_workers must be >= 0, got %d", c.ExtractWorkers),
		})
	}

	if c.ReleaseHost != "" {
		u, err := url.Parse(c.ReleaseHost)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("release_host %q must be an http(s) URL", c.ReleaseHost),
			})
		} else if u.Scheme == "http" {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("release_host %q is not using TLS", c.ReleaseHost),
			})
		}
	}
	return results
}
