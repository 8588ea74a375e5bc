package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"toolfetch/internal/tools"
	"toolfetch/internal/tui"
)

var (
	getVersion  string
	getNoSystem bool
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <tool>",
		Short: "Print the path of a runnable binary, installing it if needed",
		Long: "Looks for a matching binary on PATH, then in the cache, and finally " +
			"downloads the release archive for this platform. Prints the binary path.",
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	cmd.Flags().StringVar(&getVersion, "version", "", "Version to resolve (default: configured pin or built-in default)")
	cmd.Flags().BoolVar(&getNoSystem, "no-system", false, "Ignore binaries on PATH")

	return cmd
}

type getResult struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

func runGet(cmd *cobra.Command, args []string) error {
	tool, err := tools.ParseTool(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		reporter tools.ProgressReporter
		status   *tui.StatusWriter
	)
	if tui.DetectMode(cmd.ErrOrStderr(), noProgress, outputJSON) == tui.ModeTUI {
		status = tui.NewStatusWriter(cmd.ErrOrStderr())
		reporter = status
	}

	r, err := s.resolver(reporter, getNoSystem)
	if err != nil {
		return err
	}

	path, err := r.Get(cmd.Context(), tool, getVersion)
	if status != nil {
		status.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		data, err := json.MarshalIndent(getResult{
			Tool:    tool.Name(),
			Version: r.EffectiveVersion(tool, getVersion),
			Path:    path,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}
