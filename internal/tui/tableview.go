package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relishdb/relish/internal/tui/theme"
)

func (m Model) viewTableView() string {
	tablesWidth := m.tablesPaneWidth()
	rightWidth := m.width - tablesWidth - 1

	statusHeight := 1
	availHeight := m.height - statusHeight - 2

	tablesBorder := theme.StyleBorder
	if m.focus == FocusTables {
		tablesBorder = theme.StyleActiveBorder
	}
	tablesView := tablesBorder.
		Width(tablesWidth - 2).
		Height(availHeight).
		Render(m.viewTablesList(availHeight))

	editorHeight := availHeight * 40 / 100
	if editorHeight < 5 {
		editorHeight = 5
	}
	resultsHeight := availHeight - editorHeight - 2

	editorBorder := theme.StyleBorder
	if m.focus == FocusEditor {
		editorBorder = theme.StyleActiveBorder
	}
	editorView := editorBorder.
		Width(rightWidth - 2).
		Height(editorHeight).
		Render(m.editor.View())

	resultsBorder := theme.StyleBorder
	if m.focus == FocusResults {
		resultsBorder = theme.StyleActiveBorder
	}
	resultsView := resultsBorder.
		Width(rightWidth - 2).
		Height(resultsHeight).
		Render(m.results.View())

	rightPane := lipgloss.JoinVertical(lipgloss.Left, editorView, resultsView)
	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, tablesView, rightPane)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, m.statusbar.View())
}

// viewTablesList renders the table list with the selected table optionally
// expanded to show its columns.
func (m Model) viewTablesList(height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Render("Tables")
	header := title + " " + theme.StyleMuted.Render(m.database)

	if m.needsTablesRefresh {
		return header + "\n" + theme.StyleMuted.Render("  Loading...")
	}
	if len(m.tables) == 0 {
		return header + "\n" + theme.StyleMuted.Render("  No tables")
	}

	var lines []string
	for i, table := range m.tables {
		marker := "  "
		if i == m.expandedTable {
			marker = "▾ "
		}
		line := marker + table
		if i == m.tableCursor && m.focus == FocusTables {
			line = lipgloss.NewStyle().
				Foreground(theme.ColorHighlight).
				Bold(true).
				Render("> " + strings.TrimPrefix(line, "  "))
		}
		lines = append(lines, line)

		if i == m.expandedTable {
			lines = append(lines, m.viewColumns(table)...)
		}
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := m.tablesScroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	return header + "\n" + strings.Join(lines[start:end], "\n")
}

// viewColumns renders the expanded column rows for one table.
func (m Model) viewColumns(table string) []string {
	schema, ok := m.schemas[table]
	if !ok {
		return []string{theme.StyleMuted.Render("    loading...")}
	}

	var lines []string
	for _, col := range schema.Columns {
		suffix := ""
		if !col.IsNullable {
			suffix = " not null"
		}
		lines = append(lines, theme.StyleMuted.Render(
			"    "+col.Name+" "+col.DataType+suffix))
	}
	if len(lines) == 0 {
		lines = []string{theme.StyleMuted.Render("    (no columns)")}
	}
	return lines
}
