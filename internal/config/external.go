package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// resolveExternalPath returns path as-is if absolute, otherwise joins it with baseDir.
func resolveExternalPath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// loadVersionFiles reads each file in VersionFiles, unmarshals it as a map of
// tool name to version and merges it into c.Versions. A tool pinned in two
// places is an error.
func (c *Config) loadVersionFiles(baseDir string) error {
	if len(c.VersionFiles) == 0 {
		return nil
	}

	if c.Versions == nil {
		c.Versions = map[string]string{}
	}

	sources := make(map[string]string, len(c.Versions))
	for name := range c.Versions {
		sources[name] = "inline config"
	}

	for _, relPath := range c.VersionFiles {
		data, err := os.ReadFile(resolveExternalPath(baseDir, relPath))
		if err != nil {
			return fmt.Errorf("load version file %q: %w", relPath, err)
		}

		var versions map[string]string
		if err := yaml.Unmarshal(data, &versions); err != nil {
			return fmt.Errorf("parse version file %q: %w", relPath, err)
		}

		for name, version := range versions {
			if existing, ok := sources[name]; ok {
				return fmt.Errorf("version for %q defined in both %s and %q", name, existing, relPath)
			}
			sources[name] = relPath
			c.Versions[name] = version
		}
	}

	return nil
}
