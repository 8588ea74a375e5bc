package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"toolfetch/internal/config"
	"toolfetch/internal/logx"
	"toolfetch/internal/paths"
	"toolfetch/internal/platform"
	"toolfetch/internal/tools"
)

var (
	configPath string
	cacheDir   string
	outputJSON bool
	logLevel   string
	logToFile  bool
	noProgress bool
)

// Execute runs the root cobra command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printHints(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "toolfetch",
		Short:         "Locate or install the Sass, wasm-bindgen and wasm-opt binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Override the cache root")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&logToFile, "log-file", false, "Also write logs under <cache>/logs")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable live progress output")

	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// session bundles what every command needs: the loaded config with flag
// overrides applied and a logger.
type session struct {
	configFile string
	cfg        config.Config
	logger     *log.Logger
	closer     io.Closer
}

func openSession(cmd *cobra.Command) (*session, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Err(cfg.Validate()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	var logDir string
	if logToFile {
		root, err := paths.CacheRoot(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		if logDir, err = paths.LogsDir(root); err != nil {
			return nil, err
		}
	}
	logger, closer, err := logx.New(logx.Options{
		Level:  logLevel,
		Prefix: "toolfetch",
		Out:    cmd.ErrOrStderr(),
		LogDir: logDir,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", path)

	return &session{configFile: path, cfg: cfg, logger: logger, closer: closer}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// resolver builds a Resolver from the session config. skipSystem only ever
// tightens the configured value.
func (s *session) resolver(reporter tools.ProgressReporter, skipSystem bool) (*tools.Resolver, error) {
	opts, err := s.cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Logger = s.logger
	opts.Reporter = reporter
	if skipSystem {
		opts.SkipSystem = true
	}
	return tools.NewResolver(opts)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return paths.ConfigFile()
}

// printHints prints package-manager suggestions for every unsupported
// platform failure wrapped in err.
func printHints(w io.Writer, err error) {
	for _, ie := range installErrors(err) {
		if !errors.Is(ie.Err, tools.ErrUnsupportedPlatform) {
			continue
		}
		for _, hint := range tools.InstallHints(ie.Tool, platform.Host()) {
			fmt.Fprintf(w, "hint: %s\n", hint)
		}
	}
}

func installErrors(err error) []*tools.InstallError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*tools.InstallError
		for _, e := range joined.Unwrap() {
			out = append(out, installErrors(e)...)
		}
		return out
	}
	var ie *tools.InstallError
	if errors.As(err, &ie) {
		return []*tools.InstallError{ie}
	}
	return nil
}
