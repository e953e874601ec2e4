package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/roadmap/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ Loading..."))
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneCosts:
		content = m.costsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneFit:
		content = m.fitModel.View()
	case SceneHelp:
		content = m.help.FullHelpView(m.keys.FullHelp())
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Benefit Intervention Roadmap")

	crumb := m.currentScene.String()
	if m.configPath != "" {
		crumb = filepath.Base(m.configPath) + " / " + crumb
	}
	if m.dirty {
		crumb += " (modified)"
	}
	if m.config != nil {
		crumb += fmt.Sprintf("  •  start %s  •  budget %s/yr",
			output.FormatDate(m.config.Roadmap.StartDate),
			output.FormatCurrency(m.config.Roadmap.YearlyBudget))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the last action and the key help
func (m Model) renderStatusBar() string {
	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		line = InfoStyle.Render(m.status) + "\n" + line
	}
	return StatusBarStyle.Render(line)
}
