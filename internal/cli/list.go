package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"toolfetch/internal/tools"
	"toolfetch/internal/tui"
)

var listNoSystem bool

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show how each tool would be resolved, without downloading",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().BoolVar(&listNoSystem, "no-system", false, "Ignore binaries on PATH")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.resolver(nil, listNoSystem)
	if err != nil {
		return err
	}

	var statuses []tools.Status
	for _, tool := range tools.KnownTools() {
		statuses = append(statuses, r.Status(cmd.Context(), tool, ""))
	}

	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printStatusTable(cmd, statuses)
	return nil
}

func printStatusTable(cmd *cobra.Command, statuses []tools.Status) {
	if len(statuses) == 0 {
		cmd.Println("(no tool statuses)")
		return
	}

	cmd.Printf("%-14s %-8s %-12s %-4s %-20s %s\n", "Tool", "Source", "Version", "OK", "Cached", "Path")
	for _, st := range statuses {
		ok := "no"
		if st.Satisfied {
			ok = "yes"
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		cached := tui.NonEmptyOrDash(strings.Join(st.Cached, ","))
		cmd.Printf("%-14s %-8s %-12s %-4s %-20s %s\n",
			st.Tool, tui.NonEmptyOrDash(string(st.Source)), st.Version, ok, cached, path)
		if st.Error != "" {
			cmd.Printf("  error: %s\n", st.Error)
		}
		for _, note := range st.Notes {
			cmd.Printf("  note: %s\n", note)
		}
	}
}
