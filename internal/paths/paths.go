package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CacheDirEnv overrides the default cache root when set.
const CacheDirEnv = "TOOLFETCH_CACHE_DIR"

const appName = "toolfetch"

// CacheRoot returns the directory downloaded tools are installed under,
// creating it when missing. An explicit override wins, then CacheDirEnv,
// then the per-user cache directory for the host OS.
func CacheRoot(override string) (string, error) {
	root := override
	if root == "" {
		root = os.Getenv(CacheDirEnv)
	}
	if root == "" {
		var err error
		root, err = defaultCacheRoot()
		if err != nil {
			return "", err
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve cache root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create cache root: %w", err)
	}
	return abs, nil
}

func defaultCacheRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", appName), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName, "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", appName, "cache"), nil
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return filepath.Join(home, ".cache", appName), nil
	}
}

// ConfigFile returns the default location of the YAML config file. The file
// itself may not exist.
func ConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("detect user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// LogsDir returns the logs directory below root, creating it when missing.
func LogsDir(root string) (string, error) {
	dir := filepath.Join(root, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create logs dir: %w", err)
	}
	return dir, nil
}

// IsExecutable reports whether path is a regular file that can be run. Off
// Windows that means at least one execute bit is set.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
