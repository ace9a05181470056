package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relishdb/relish/internal/tui/theme"
)

// View renders the active screen.
func (m Model) View() string {
	var view string
	switch m.screen {
	case ScreenDbType:
		view = m.viewDbType()
	case ScreenConnInput:
		view = m.viewConnInput()
	case ScreenDbSelect:
		view = m.viewDbSelect()
	case ScreenTableView:
		view = m.viewTableView()
	case ScreenPopup:
		view = m.viewPopup()
	}

	if m.showDebug {
		view = m.overlayDebug(view)
	}
	return view
}

func (m Model) viewDbType() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(1, 0).
		Render("relish")
	subtitle := theme.StyleMuted.Render("Browse your databases from the terminal.")

	sectionTitle := theme.StyleTitle.Render("Select a database type")

	labels := []string{"PostgreSQL", "MySQL", "SQLite"}
	var items []string
	for i, label := range labels {
		line := "  " + label
		if i == m.dbTypeCursor {
			line = lipgloss.NewStyle().
				Foreground(theme.ColorHighlight).
				Bold(true).
				Render("> " + label)
		}
		items = append(items, line)
	}

	hints := theme.StyleMuted.Render("  ↑/↓: Navigate  Enter: Select  q: Quit")

	parts := []string{"", title, subtitle, "", sectionTitle}
	parts = append(parts, items...)
	parts = append(parts, "", hints)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewConnInput() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(1, 0).
		Render("Connect to " + m.backend.String())

	hints := theme.StyleMuted.Render("↑/↓: Fields  Enter: Next/Connect  Esc: Back")

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		"",
		m.form.View(),
		"",
		hints,
	)

	if m.connErr != "" {
		modal := theme.StylePopup.Render(
			theme.StyleError.Render("Connection failed") + "\n\n" +
				m.connErr + "\n\n" +
				theme.StyleMuted.Render("Enter/Esc: Dismiss"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewDbSelect() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(1, 0).
		Render("Select a database")

	var items []string
	if m.needsDBRefresh {
		items = append(items, theme.StyleMuted.Render("  Loading..."))
	} else if len(m.databases) == 0 {
		items = append(items, theme.StyleMuted.Render("  No databases found"))
	}

	end := m.dbScroll + m.listVisible()
	if end > len(m.databases) {
		end = len(m.databases)
	}
	for i := m.dbScroll; i < end; i++ {
		line := "  " + m.databases[i]
		if i == m.dbCursor {
			line = lipgloss.NewStyle().
				Foreground(theme.ColorHighlight).
				Bold(true).
				Render("> " + m.databases[i])
		}
		items = append(items, line)
	}

	hints := theme.StyleMuted.Render("  ↑/↓: Navigate  Enter: Open  r: Refresh  Esc: Back  q: Quit")

	parts := []string{"", title}
	parts = append(parts, items...)
	parts = append(parts, "", hints)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewPopup() string {
	modal := theme.StylePopup.Render(
		m.popupMsg + "\n\n" +
			theme.StyleMuted.Render("Enter/Esc: Dismiss"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// overlayDebug appends the tail of the debug ring below the screen content.
func (m Model) overlayDebug(view string) string {
	lines := m.debug
	max := 10
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	if len(lines) == 0 {
		lines = []string{"(no events)"}
	}
	panel := theme.StyleBorder.Padding(0, 1).Render(
		theme.StyleTitle.Render("Debug") + "\n" +
			theme.StyleMuted.Render(strings.Join(lines, "\n")))
	return lipgloss.JoinVertical(lipgloss.Left, view, panel)
}
