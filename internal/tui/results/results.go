package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/relishdb/relish/internal/app"
	"github.com/relishdb/relish/internal/tui/theme"
)

// Model is the query results component. It shows either a tabular result,
// a success message for statements without a result set, or an error.
type Model struct {
	res        *app.Result
	errMsg     string
	successMsg string
	notice     string

	selectedRow int
	rowScroll   int
	colScroll   int
	statusMsg   string

	width   int
	height  int
	focused bool
	loading bool
}

// New creates a new results model.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Focused returns whether the results pane has focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(l bool) {
	m.loading = l
}

// SetResult displays a tabular result, resetting the selection and both
// scroll offsets. The notice, when non-empty, is shown next to the stats.
func (m *Model) SetResult(r *app.Result, notice string) {
	m.res = r
	m.errMsg = ""
	m.successMsg = ""
	m.notice = notice
	m.selectedRow = 0
	m.rowScroll = 0
	m.colScroll = 0
	m.statusMsg = ""
	m.loading = false
}

// SetSuccess displays an acknowledgement for a statement with no result set.
func (m *Model) SetSuccess(msg string) {
	m.res = nil
	m.errMsg = ""
	m.successMsg = msg
	m.notice = ""
	m.statusMsg = ""
	m.loading = false
}

// SetError displays an error.
func (m *Model) SetError(err error) {
	m.res = nil
	m.errMsg = err.Error()
	m.successMsg = ""
	m.notice = ""
	m.statusMsg = ""
	m.loading = false
}

// Clear resets the pane to its empty state.
func (m *Model) Clear() {
	m.res = nil
	m.errMsg = ""
	m.successMsg = ""
	m.notice = ""
	m.selectedRow = 0
	m.rowScroll = 0
	m.colScroll = 0
	m.statusMsg = ""
	m.loading = false
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows := 0
	cols := 0
	if m.res != nil {
		rows = len(m.res.Rows)
		cols = len(m.res.Columns)
	}

	switch keyMsg.String() {
	case "up", "k":
		m.selectedRow = ClampRow(m.selectedRow-1, rows)
	case "down", "j":
		m.selectedRow = ClampRow(m.selectedRow+1, rows)
	case "pgup":
		m.selectedRow = ClampRow(m.selectedRow-PageStep, rows)
	case "pgdown":
		m.selectedRow = ClampRow(m.selectedRow+PageStep, rows)
	case "left", "h":
		m.colScroll = ClampHorizontal(m.colScroll-1, cols)
	case "right", "l":
		m.colScroll = ClampHorizontal(m.colScroll+1, cols)
	case "home":
		m.selectedRow = 0
	case "end":
		m.selectedRow = ClampRow(rows-1, rows)
	case "c":
		m.doCopyRow()
	case "a":
		m.doCopyAll()
	case "e":
		return m, m.exportCSVCmd()
	}

	m.rowScroll = FollowScroll(m.rowScroll, m.selectedRow, m.visibleRows())
	return m, nil
}

func (m Model) visibleRows() int {
	// title, header, separator, status
	v := m.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

// columnWidths sizes each visible column to its widest cell.
func (m Model) columnWidths(header []string) []int {
	widths := make([]int, len(header))
	for i, col := range header {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range m.res.Rows {
		cells := WindowCells(row, m.colScroll)
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			w := lipgloss.Width(cell)
			if w > maxCellWidth {
				w = maxCellWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

// View renders the results pane.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)
	title := titleStyle.Render("Query Result")

	if m.loading {
		return title + "\n" + theme.StyleMuted.Render("  Executing query...")
	}
	if m.errMsg != "" {
		return title + "\n" + theme.StyleError.Render("  Error: "+m.errMsg)
	}
	if m.successMsg != "" {
		return title + "\n" + theme.StyleSuccess.Render("  "+m.successMsg)
	}
	if m.res == nil {
		return title + "\n" + theme.StyleMuted.Render("  Execute a query to see results")
	}

	stats := fmt.Sprintf("%d row(s)", len(m.res.Rows))
	if m.notice != "" {
		stats += " | " + m.notice
	}
	if total := len(m.res.Columns); total > MaxVisibleColumns {
		hi := m.colScroll + MaxVisibleColumns
		if hi > total {
			hi = total
		}
		stats += fmt.Sprintf(" | cols %d-%d of %d", m.colScroll+1, hi, total)
	}
	header := title + "  " + theme.StyleMuted.Render(stats)

	if len(m.res.Columns) == 0 {
		return header + "\n" + theme.StyleSuccess.Render("  Query executed successfully")
	}

	visible := WindowColumns(m.res.Columns, m.colScroll)
	widths := m.columnWidths(visible)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderRow(visible, widths, true, false))
	b.WriteString("\n")
	b.WriteString(m.renderSeparator(widths))

	end := m.rowScroll + m.visibleRows()
	if end > len(m.res.Rows) {
		end = len(m.res.Rows)
	}
	for i := m.rowScroll; i < end; i++ {
		cells := WindowCells(m.res.Rows[i], m.colScroll)
		b.WriteString("\n")
		b.WriteString(m.renderRow(cells, widths, false, m.focused && i == m.selectedRow))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.StyleMuted.Render("  " + m.statusMsg))
	}

	return b.String()
}

func (m Model) renderRow(cells []string, widths []int, isHeader, selected bool) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := 10
		if i < len(widths) {
			width = widths[i]
		}

		display := TruncateCell(cell, width)
		if pad := width - lipgloss.Width(display); pad > 0 {
			display += strings.Repeat(" ", pad)
		}

		switch {
		case isHeader:
			parts[i] = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorPrimary).
				Render(display)
		case selected:
			parts[i] = lipgloss.NewStyle().
				Foreground(theme.ColorHighlight).
				Bold(true).
				Render(display)
		default:
			parts[i] = display
		}
	}
	return "  " + strings.Join(parts, " │ ")
}

func (m Model) renderSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		if w < 1 {
			w = 1
		}
		parts[i] = strings.Repeat("─", w)
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Join(parts, "─┼─"))
}
