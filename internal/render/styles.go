package render

import "github.com/charmbracelet/lipgloss"

// Styles for the terminal-facing renderers (tree and detail). Table cells
// stay plain so tabwriter column widths are not thrown off by escape
// sequences; tables carry single-character status icons instead.
//nolint:gochecknoglobals // Fixed style palette shared by all renderers
var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle  = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// statusIcon returns a single-character icon for a pipeline or job status.
func statusIcon(status string) string {
	switch status {
	case "success":
		return "✓"
	case "failed":
		return "✗"
	case "running":
		return "●"
	case "pending", "created", "waiting_for_resource":
		return "○"
	case "canceled", "skipped":
		return "-"
	case "":
		return " "
	default:
		return "?"
	}
}

// styleStatus colors a status string for tree and detail output.
func styleStatus(status string) string {
	switch status {
	case "success":
		return okStyle.Render(status)
	case "failed":
		return badStyle.Render(status)
	case "running", "pending":
		return warnStyle.Render(status)
	default:
		return status
	}
}
