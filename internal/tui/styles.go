package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	// TitleStyle styles the line above the table.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		"ready":  okStyle,
		"system": okStyle,
		"cached": okStyle,

		"probing":     activeStyle,
		"downloading": activeStyle,
		"installing":  activeStyle,

		"missing":     warnStyle,
		"unsupported": warnStyle,

		"failed": errorStyle,

		"pending": pendingStyle,
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// finalStatus reports whether a row in this status needs no more updates.
func finalStatus(status string) bool {
	switch status {
	case "ready", "system", "cached", "failed", "unsupported":
		return true
	}
	return false
}
