package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"toolfetch/internal/config"
	"toolfetch/internal/paths"
	"toolfetch/internal/platform"
	"toolfetch/internal/tools"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check platform, cache and tool health",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	var checks []healthCheck

	checks = append(checks, checkPlatform(cmd, platform.NewDetector()))

	cfg, cfgErr := config.Load(path)
	checks = append(checks, checkConfig(cfg, cfgErr))
	if cfgErr != nil {
		return writeDoctorResult(cmd, path, checks)
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	cacheCheck, root := checkCache(cfg.CacheDir)
	checks = append(checks, cacheCheck)
	if root == "" {
		return writeDoctorResult(cmd, path, checks)
	}

	opts, err := cfg.Options()
	if err != nil {
		// checkConfig already reported it.
		return writeDoctorResult(cmd, path, checks)
	}
	opts.CacheRoot = root
	r, err := tools.NewResolver(opts)
	if err != nil {
		checks = append(checks, healthCheck{Name: "Tools", Status: "error", Summary: err.Error()})
		return writeDoctorResult(cmd, path, checks)
	}
	for _, tool := range tools.KnownTools() {
		checks = append(checks, checkTool(r.Status(cmd.Context(), tool, "")))
	}

	return writeDoctorResult(cmd, path, checks)
}

func checkPlatform(cmd *cobra.Command, detector platform.Detector) healthCheck {
	info, err := detector.Detect(cmd.Context())
	if err != nil {
		return healthCheck{Name: "Platform", Status: "error", Summary: err.Error()}
	}

	var missing []string
	for _, tool := range tools.KnownTools() {
		if !tools.Supported(tool, *info) {
			missing = append(missing, tool.Name())
		}
	}
	if len(missing) > 0 {
		return healthCheck{
			Name:    "Platform",
			Status:  "warning",
			Summary: fmt.Sprintf("%s; no release for %s", info, joinComma(missing)),
		}
	}
	return healthCheck{Name: "Platform", Status: "ok", Summary: info.String()}
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	validations := cfg.Validate()
	var warnings, errors int
	for _, v := range validations {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := fmt.Sprintf("%d version pins", len(cfg.Versions))
	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

// checkCache resolves the cache root and makes sure it is writable. The
// returned root is empty when it is not usable.
func checkCache(override string) (healthCheck, string) {
	root, err := paths.CacheRoot(override)
	if err != nil {
		return healthCheck{Name: "Cache", Status: "error", Summary: err.Error()}, ""
	}
	probe, err := os.CreateTemp(root, ".doctor-*")
	if err != nil {
		return healthCheck{Name: "Cache", Status: "error", Summary: fmt.Sprintf("%s not writable: %v", root, err)}, ""
	}
	probe.Close()
	os.Remove(probe.Name())
	return healthCheck{Name: "Cache", Status: "ok", Summary: root}, root
}

func checkTool(st tools.Status) healthCheck {
	switch {
	case st.Satisfied:
		return healthCheck{
			Name:    st.Tool,
			Status:  "ok",
			Summary: fmt.Sprintf("%s %s (%s)", st.Source, st.Version, st.Path),
		}
	case st.Error != "":
		summary := st.Error
		if len(st.Notes) > 0 {
			summary += "; " + joinComma(st.Notes)
		}
		return healthCheck{Name: st.Tool, Status: "error", Summary: summary}
	default:
		return healthCheck{
			Name:    st.Tool,
			Status:  "warning",
			Summary: fmt.Sprintf("%s not installed; downloads from %s", st.Version, st.URL),
		}
	}
}

func writeDoctorResult(cmd *cobra.Command, configFile string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("TOOLFETCH HEALTH:")+" "+configFile)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-14s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
