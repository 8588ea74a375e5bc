package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"toolfetch/internal/paths"
	"toolfetch/internal/platform"
)

var discardLogger = log.New(io.Discard)

// Options configures a Resolver. The zero value resolves against the
// default cache root, the host platform and the public release host.
type Options struct {
	// CacheRoot overrides paths.CacheRoot's lookup.
	CacheRoot string
	// Platform defaults to platform.Host().
	Platform *platform.Info

	Client          *http.Client
	ReleaseHost     string
	UserAgent       string
	DownloadTimeout time.Duration
	ExtractWorkers  int

	// SkipSystem disables the PATH probe so only cached downloads are used.
	SkipSystem bool
	// Versions pins the version used when a caller passes none.
	Versions map[Tool]string

	LookPath func(string) (string, error)
	Runner   Runner

	Logger   *log.Logger
	Reporter ProgressReporter
}

// Resolver turns a tool request into the path of a runnable binary.
type Resolver struct {
	cacheRoot  string
	plat       platform.Info
	skipSystem bool
	versions   map[Tool]string

	probe      SystemProbe
	downloader Downloader
	installer  *Installer
	installs   *InstallCache

	logger   *log.Logger
	reporter ProgressReporter
}

func NewResolver(opts Options) (*Resolver, error) {
	root, err := paths.CacheRoot(opts.CacheRoot)
	if err != nil {
		return nil, err
	}

	plat := platform.Host()
	if opts.Platform != nil {
		plat = *opts.Platform
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = noopReporter{}
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.DownloadTimeout}
	}

	r := &Resolver{
		cacheRoot:  root,
		plat:       plat,
		skipSystem: opts.SkipSystem,
		versions:   opts.Versions,
		probe: SystemProbe{
			LookPath: opts.LookPath,
			Runner:   opts.Runner,
			Logger:   logger,
		},
		installer: NewInstaller(plat, int64(opts.ExtractWorkers)),
		logger:    logger,
		reporter:  reporter,
	}
	r.downloader = Downloader{
		Client:    client,
		Host:      opts.ReleaseHost,
		UserAgent: opts.UserAgent,
		Progress:  r.reportDownload,
	}
	r.installs = processInstalls
	return r, nil
}

// CacheRoot returns the directory installs are placed under.
func (r *Resolver) CacheRoot() string {
	return r.cacheRoot
}

// Platform returns the platform releases are selected for.
func (r *Resolver) Platform() platform.Info {
	return r.plat
}

func (r *Resolver) requested(tool Tool, version string) string {
	if version != "" {
		return version
	}
	return r.versions[tool]
}

// EffectiveVersion returns the version Get installs for a request of
// version: the request itself, the configured pin, or the tool default.
func (r *Resolver) EffectiveVersion(tool Tool, version string) string {
	return r.effective(tool, version)
}

func (r *Resolver) effective(tool Tool, version string) string {
	if v := r.requested(tool, version); v != "" {
		return v
	}
	return DefaultVersion(tool)
}

// InstallDir returns <cache root>/<tool>-<version>.
func (r *Resolver) InstallDir(tool Tool, version string) string {
	return filepath.Join(r.cacheRoot, tool.Name()+"-"+version)
}

// BinaryPath returns where the main binary of tool@version is installed.
func (r *Resolver) BinaryPath(tool Tool, version string) string {
	return filepath.Join(r.InstallDir(tool, version), filepath.FromSlash(MainPath(tool, r.plat)))
}

// Get returns the path of a runnable binary for tool. A system binary
// matching the requested version wins; otherwise the release is downloaded
// and installed into the cache root once per process and reused afterwards.
// An empty version means the configured pin, then the tool's default.
func (r *Resolver) Get(ctx context.Context, tool Tool, version string) (string, error) {
	if _, ok := toolDefinitions[tool]; !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownTool, int(tool))
	}
	wanted := r.requested(tool, version)
	key := InstallKey{Tool: tool, Version: r.effective(tool, version)}
	logger := r.logger.With("tool", tool.Name(), "version", key.Version)

	if !r.skipSystem {
		r.reporter.Stage(key, StageProbing, "")
		if path, found, ok := r.probe.FindSystem(ctx, tool, wanted); ok {
			logger.Info("using system installed binary", "path", path, "found", found)
			r.reporter.Stage(key, StageSystem, path)
			return path, nil
		}
	}

	binPath := r.BinaryPath(tool, key.Version)
	if paths.IsExecutable(binPath) {
		logger.Debug("using cached binary", "path", binPath)
		r.reporter.Stage(key, StageCached, binPath)
		return binPath, nil
	}

	if err := r.installs.InstallOnce(ctx, r.cacheRoot, key, r.install); err != nil {
		r.reporter.Stage(key, StageFailed, err.Error())
		return "", &InstallError{Tool: tool, Version: key.Version, Err: err}
	}
	r.reporter.Stage(key, StageReady, binPath)
	return binPath, nil
}

func (r *Resolver) install(ctx context.Context, key InstallKey) error {
	targetDir := r.InstallDir(key.Tool, key.Version)
	logger := r.logger.With("tool", key.Tool.Name(), "version", key.Version)

	logger.Info("downloading", "platform", r.plat.OS+"/"+r.plat.Arch)
	r.reporter.Stage(key, StageDownloading, "")
	archive, err := r.downloader.Fetch(ctx, key.Tool, key.Version, r.plat, r.cacheRoot)
	if err != nil {
		return err
	}

	logger.Info("installing", "dir", targetDir)
	r.reporter.Stage(key, StageInstalling, "")
	if err := r.installer.Install(ctx, key.Tool, archive, targetDir); err != nil {
		return fmt.Errorf("install from %s: %w", archive, err)
	}
	if err := os.Remove(archive); err != nil {
		return fmt.Errorf("remove temp archive: %w", err)
	}
	return nil
}

func (r *Resolver) reportDownload(key InstallKey, done, total int64) {
	if total > 0 {
		r.reporter.Stage(key, StageDownloading, fmt.Sprintf("%d%%", done*100/total))
		return
	}
	r.reporter.Stage(key, StageDownloading, fmt.Sprintf("%.1f MiB", float64(done)/(1<<20)))
}

// Status reports how Get would satisfy tool@version without downloading
// anything.
func (r *Resolver) Status(ctx context.Context, tool Tool, version string) Status {
	key := InstallKey{Tool: tool, Version: r.effective(tool, version)}
	st := Status{Tool: tool.Name(), Version: key.Version}

	if cached, err := r.Cached(tool); err == nil {
		st.Cached = cached
	} else {
		st.Notes = append(st.Notes, fmt.Sprintf("scan cache: %v", err))
	}

	if !r.skipSystem {
		if path, found, ok := r.probe.FindSystem(ctx, tool, r.requested(tool, version)); ok {
			st.Source = SourceSystem
			st.Path = path
			st.Version = found
			st.Satisfied = true
			return st
		}
	}

	binPath := r.BinaryPath(tool, key.Version)
	if paths.IsExecutable(binPath) {
		st.Source = SourceCache
		st.Path = binPath
		st.Satisfied = true
		return st
	}

	url, err := downloadURL(r.downloader.Host, tool, key.Version, r.plat)
	if err != nil {
		st.Error = err.Error()
		if errors.Is(err, ErrUnsupportedPlatform) {
			st.Notes = append(st.Notes, InstallHints(tool, r.plat)...)
		}
		return st
	}
	st.URL = url
	st.Notes = append(st.Notes, "not installed; downloaded on first use")
	if leftover, _ := paths.FileExists(TempPath(r.cacheRoot, tool, key.Version)); leftover {
		st.Notes = append(st.Notes, "an interrupted download is left in the cache; the next install replaces it")
	}
	return st
}

// Cached lists the versions of tool installed under the cache root, sorted.
// A cache root removed since NewResolver holds nothing.
func (r *Resolver) Cached(tool Tool) ([]string, error) {
	exists, err := paths.DirExists(r.cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("stat cache root: %w", err)
	}
	if !exists {
		return nil, nil
	}
	entries, err := os.ReadDir(r.cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("read cache root: %w", err)
	}
	prefix := tool.Name() + "-"
	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, ok := strings.CutPrefix(entry.Name(), prefix)
		if !ok || version == "" {
			continue
		}
		if paths.IsExecutable(r.BinaryPath(tool, version)) {
			versions = append(versions, version)
		}
	}
	sort.Strings(versions)
	return versions, nil
}

var defaultResolver = sync.OnceValues(func() (*Resolver, error) {
	return NewResolver(Options{})
})

// Get resolves tool through a process-wide Resolver built with default
// options on first use.
func Get(ctx context.Context, tool Tool, version string) (string, error) {
	r, err := defaultResolver()
	if err != nil {
		return "", err
	}
	return r.Get(ctx, tool, version)
}
