package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"toolfetch/internal/tools"
	"toolfetch/internal/tui"
)

var (
	installVersion  string
	installNoSystem bool
	installJobs     int
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [tool...|all]",
		Short: "Resolve several tools concurrently",
		Long: "Resolves each named tool the same way get does. With no arguments " +
			"or \"all\", every known tool is resolved.",
		RunE: runInstall,
	}

	cmd.Flags().StringVar(&installVersion, "version", "", "Version to install (only with a single tool)")
	cmd.Flags().BoolVar(&installNoSystem, "no-system", false, "Ignore binaries on PATH")
	cmd.Flags().IntVar(&installJobs, "jobs", 3, "Maximum tools resolved at once")

	return cmd
}

type installResult struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

func parseTargets(args []string) ([]tools.Tool, error) {
	if len(args) == 0 || (len(args) == 1 && strings.EqualFold(args[0], "all")) {
		return tools.KnownTools(), nil
	}
	seen := make(map[tools.Tool]bool, len(args))
	targets := make([]tools.Tool, 0, len(args))
	for _, arg := range args {
		tool, err := tools.ParseTool(arg)
		if err != nil {
			return nil, err
		}
		if seen[tool] {
			continue
		}
		seen[tool] = true
		targets = append(targets, tool)
	}
	return targets, nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	targets, err := parseTargets(args)
	if err != nil {
		return err
	}
	if installVersion != "" && len(targets) != 1 {
		return fmt.Errorf("--version requires exactly one tool, got %d", len(targets))
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	switch tui.DetectMode(out, noProgress, outputJSON) {
	case tui.ModeTUI:
		model := tui.NewProgressModel("Installing tools", tui.ToolColumns())
		for _, tool := range targets {
			model.AddRow(tui.RowKey(tool), []string{tool.Name(), "-", "pending", "-"})
		}
		return tui.RunWithWork(out, model, func(send func(tea.Msg)) error {
			_, err := installAll(cmd.Context(), s, targets, tui.NewToolReporter(send))
			return err
		})

	case tui.ModeJSON:
		results, installErr := installAll(cmd.Context(), s, targets, nil)
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return installErr

	default:
		results, installErr := installAll(cmd.Context(), s, targets, nil)
		printInstallResults(cmd, results)
		return installErr
	}
}

// installAll resolves every target with at most installJobs in flight. A
// failure does not cancel the others; all failures are joined.
func installAll(ctx context.Context, s *session, targets []tools.Tool, reporter tools.ProgressReporter) ([]installResult, error) {
	r, err := s.resolver(reporter, installNoSystem)
	if err != nil {
		return nil, err
	}

	results := make([]installResult, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	if installJobs > 0 {
		g.SetLimit(installJobs)
	}
	for i, tool := range targets {
		i, tool := i, tool
		g.Go(func() error {
			res := installResult{Tool: tool.Name(), Version: r.EffectiveVersion(tool, installVersion)}
			path, err := r.Get(ctx, tool, installVersion)
			if err != nil {
				res.Error = err.Error()
				errs[i] = err
			}
			res.Path = path
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

func printInstallResults(cmd *cobra.Command, results []installResult) {
	cmd.Printf("%-14s %-12s %s\n", "Tool", "Version", "Path")
	for _, res := range results {
		path := res.Path
		if path == "" {
			path = "(failed)"
		}
		cmd.Printf("%-14s %-12s %s\n", res.Tool, res.Version, path)
		if res.Error != "" {
			cmd.Printf("  error: %s\n", res.Error)
		}
	}
}
