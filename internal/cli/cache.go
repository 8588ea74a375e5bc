package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"toolfetch/internal/paths"
	"toolfetch/internal/tools"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the install cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache root",
		Args:  cobra.NoArgs,
		RunE:  runCacheDir,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed versions per tool",
		Args:  cobra.NoArgs,
		RunE:  runCacheList,
	})
	return cmd
}

func runCacheDir(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	root, err := paths.CacheRoot(s.cfg.CacheDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), root)
	return nil
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.resolver(nil, true)
	if err != nil {
		return err
	}

	installed := make(map[string][]string)
	for _, tool := range tools.KnownTools() {
		versions, err := r.Cached(tool)
		if err != nil {
			return err
		}
		installed[tool.Name()] = versions
	}

	if outputJSON {
		data, err := json.MarshalIndent(installed, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.CacheRoot())
	for _, tool := range tools.KnownTools() {
		versions := installed[tool.Name()]
		if len(versions) == 0 {
			fmt.Fprintf(out, "  %-14s (none)\n", tool.Name())
			continue
		}
		fmt.Fprintf(out, "  %-14s %s\n", tool.Name(), strings.Join(versions, ", "))
	}
	return nil
}
