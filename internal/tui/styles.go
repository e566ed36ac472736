package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/waabox/jobwatch/internal/domain"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

func severityLabel(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return errorStyle.Render("✗ ERROR  ")
	case domain.SeverityWarning:
		return warningStyle.Render("! WARNING")
	default:
		return "?        "
	}
}

func stateIcon(s domain.JobState) string {
	switch s {
	case domain.JobCompleted:
		return okStyle.Render("✓")
	case domain.JobRunning:
		return warningStyle.Render("●")
	case domain.JobMissingStart:
		return errorStyle.Render("✗")
	default:
		return dimStyle.Render("○")
	}
}

// truncate shortens s to at most max terminal cells.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "…")
}
