package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"toolfetch/internal/tools"
)

// Config captures the user-level settings for resolving tools.
type Config struct {
	Version         int               `yaml:"version"`
	CacheDir        string            `yaml:"cache_dir,omitempty"`
	ReleaseHost     string            `yaml:"release_host"`
	UserAgent       string            `yaml:"user_agent"`
	DownloadTimeout string            `yaml:"download_timeout"`
	ExtractWorkers  int               `yaml:"extract_workers,omitempty"`
	SkipSystem      *bool             `yaml:"skip_system,omitempty"`
	Versions        map[string]string `yaml:"versions,omitempty"`
	// VersionFiles are YAML maps of tool name to version merged into
	// Versions. Relative paths resolve against the config file's directory.
	VersionFiles []string `yaml:"version_files,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:         1,
		ReleaseHost:     tools.DefaultReleaseHost,
		UserAgent:       tools.DefaultUserAgent,
		DownloadTimeout: "10m",
		SkipSystem:      boolPtr(false),
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.loadVersionFiles(filepath.Dir(path)); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.ReleaseHost == "" {
		c.ReleaseHost = defaults.ReleaseHost
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.DownloadTimeout == "" {
		c.DownloadTimeout = defaults.DownloadTimeout
	}
	if c.SkipSystem == nil {
		c.SkipSystem = boolPtr(false)
	}
}

// SkipSystemValue returns the effective skip_system flag.
func (c Config) SkipSystemValue() bool {
	if c.SkipSystem == nil {
		return false
	}
	return *c.SkipSystem
}

// Timeout parses DownloadTimeout. Zero means no timeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.DownloadTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DownloadTimeout)
	if err != nil {
		return 0, fmt.Errorf("download_timeout: %w", err)
	}
	return d, nil
}

// Pins returns the configured version pins keyed by tool.
func (c Config) Pins() (map[tools.Tool]string, error) {
	pins := make(map[tools.Tool]string, len(c.Versions))
	names := make([]string, 0, len(c.Versions))
	for name := range c.Versions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tool, err := tools.ParseTool(name)
		if err != nil {
			return nil, fmt.Errorf("versions: %w", err)
		}
		pins[tool] = c.Versions[name]
	}
	return pins, nil
}

// Options converts the config into resolver options. Callers layer flags and
// runtime collaborators on top.
func (c Config) Options() (tools.Options, error) {
	timeout, err := c.Timeout()
	if err != nil {
		return tools.Options{}, err
	}
	pins, err := c.Pins()
	if err != nil {
		return tools.Options{}, err
	}
	return tools.Options{
		CacheRoot:       c.CacheDir,
		ReleaseHost:     c.ReleaseHost,
		UserAgent:       c.UserAgent,
		DownloadTimeout: timeout,
		ExtractWorkers:  c.ExtractWorkers,
		SkipSystem:      c.SkipSystemValue(),
		Versions:        pins,
	}, nil
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
