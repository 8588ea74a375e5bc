package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"toolfetch/internal/tools"
)

// Column headers used by ToolColumns and ToolReporter.
const (
	ColTool    = "TOOL"
	ColVersion = "VERSION"
	ColStatus  = "STATUS"
	ColDetail  = "DETAIL"
)

// ToolColumns is the table layout for install progress.
func ToolColumns() []Column {
	return []Column{
		{Header: ColTool, Width: 12},
		{Header: ColVersion, Width: 12},
		{Header: ColStatus, Width: 11},
		{Header: ColDetail, Width: 48},
	}
}

// RowKey returns the table row key for tool.
func RowKey(tool tools.Tool) string {
	return tool.Name()
}

// ToolReporter turns resolver stage changes into row updates.
type ToolReporter struct {
	send func(tea.Msg)
}

func NewToolReporter(send func(tea.Msg)) *ToolReporter {
	return &ToolReporter{send: send}
}

// Stage implements tools.ProgressReporter.
func (r *ToolReporter) Stage(key tools.InstallKey, stage tools.Stage, detail string) {
	r.send(RowUpdateMsg{
		Key: RowKey(key.Tool),
		Fields: map[string]string{
			ColVersion: key.Version,
			ColStatus:  string(stage),
			ColDetail:  NonEmptyOrDash(detail),
		},
	})
}

var _ tools.ProgressReporter = (*ToolReporter)(nil)
