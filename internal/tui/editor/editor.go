package editor

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/relishdb/relish/internal/tui/theme"
)

// ExecuteQueryMsg is sent when the user triggers query execution.
type ExecuteQueryMsg struct {
	Query string
}

// SQL keywords uppercased by the formatter.
var sqlKeywords = map[string]bool{
	"select": true, "from": true, "where": true, "and": true, "or": true,
	"insert": true, "into": true, "update": true, "delete": true,
	"create": true, "drop": true, "alter": true, "table": true,
	"index": true, "join": true, "inner": true, "outer": true,
	"left": true, "right": true, "cross": true, "on": true,
	"not": true, "in": true, "is": true, "null": true, "like": true,
	"order": true, "by": true, "group": true, "having": true,
	"limit": true, "offset": true, "as": true, "distinct": true,
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"between": true, "exists": true, "case": true, "when": true,
	"then": true, "else": true, "end": true, "values": true,
	"set": true, "begin": true, "commit": true, "rollback": true,
	"union": true, "all": true, "asc": true, "desc": true,
	"primary": true, "key": true, "foreign": true, "references": true,
	"cascade": true, "restrict": true, "default": true,
	"true": true, "false": true, "ilike": true, "returning": true,
}

// Model is the SQL query editor component.
type Model struct {
	buffer  *Buffer
	width   int
	height  int
	focused bool
	scrollY int
}

// New creates a new editor model.
func New() Model {
	return Model{buffer: NewBuffer()}
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

// Focused returns whether the editor has focus.
func (m Model) Focused() bool {
	return m.focused
}

// Value returns the current editor content.
func (m Model) Value() string {
	return m.buffer.Value()
}

// SetQuery replaces the editor content.
func (m *Model) SetQuery(query string) {
	m.buffer.SetValue(query)
}

// Clear empties the editor.
func (m *Model) Clear() {
	m.buffer.Clear()
	m.scrollY = 0
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+e", "f5":
			query := strings.TrimSpace(m.buffer.Value())
			if query != "" {
				return m, func() tea.Msg {
					return ExecuteQueryMsg{Query: query}
				}
			}
			return m, nil

		case "ctrl+k":
			m.Clear()
			return m, nil

		case "ctrl+l":
			m.formatKeywords()
			return m, nil

		case "enter":
			m.buffer.Newline()
		case "backspace":
			m.buffer.Backspace()
		case "left":
			m.buffer.CursorLeft()
		case "right":
			m.buffer.CursorRight()
		case "up":
			m.buffer.CursorUp()
		case "down":
			m.buffer.CursorDown()
		default:
			switch msg.Type {
			case tea.KeyRunes:
				for _, r := range msg.Runes {
					m.buffer.InsertRune(r)
				}
			case tea.KeySpace:
				m.buffer.InsertRune(' ')
			}
		}
		m.followCursor()
	}

	return m, nil
}

// followCursor keeps the cursor line inside the visible window.
func (m *Model) followCursor() {
	visible := m.visibleLines()
	_, y := m.buffer.Cursor()
	if y < m.scrollY {
		m.scrollY = y
	}
	if y >= m.scrollY+visible {
		m.scrollY = y - visible + 1
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
}

func (m Model) visibleLines() int {
	v := m.height - 1
	if v < 1 {
		v = 1
	}
	return v
}

// formatKeywords uppercases all SQL keywords in the editor content. Text
// inside string literals is left alone.
func (m *Model) formatKeywords() {
	val := m.buffer.Value()
	if val == "" {
		return
	}

	var result strings.Builder
	word := strings.Builder{}
	inString := false
	quote := rune(0)

	for _, ch := range val {
		if (ch == '\'' || ch == '"') && !inString {
			inString = true
			quote = ch
			flushWord(&word, &result)
			result.WriteRune(ch)
			continue
		}
		if inString && ch == quote {
			inString = false
			result.WriteRune(ch)
			continue
		}
		if inString {
			result.WriteRune(ch)
			continue
		}

		if !unicode.IsLetter(ch) && ch != '_' {
			flushWord(&word, &result)
			result.WriteRune(ch)
		} else {
			word.WriteRune(ch)
		}
	}
	flushWord(&word, &result)

	m.buffer.SetValue(result.String())
}

func flushWord(word *strings.Builder, result *strings.Builder) {
	if word.Len() == 0 {
		return
	}
	w := word.String()
	if sqlKeywords[strings.ToLower(w)] {
		result.WriteString(strings.ToUpper(w))
	} else {
		result.WriteString(w)
	}
	word.Reset()
}

// View renders the editor.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)
	title := titleStyle.Render("SQL Editor")

	promptStyle := lipgloss.NewStyle().Foreground(theme.ColorBorder)
	if m.focused {
		promptStyle = promptStyle.Foreground(theme.ColorPrimary)
	}

	lines := m.buffer.Lines()
	cx, cy := m.buffer.Cursor()

	visible := m.visibleLines()
	end := m.scrollY + visible
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(title)
	for i := m.scrollY; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("│ "))
		if m.focused && i == cy {
			b.WriteString(renderLineWithCursor(lines[i], cx))
		} else {
			b.WriteString(lines[i])
		}
	}
	return b.String()
}

// renderLineWithCursor draws the cursor as a reverse-video cell.
func renderLineWithCursor(line string, x int) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	runes := []rune(line)
	if x > len(runes) {
		x = len(runes)
	}
	if x == len(runes) {
		return string(runes) + cursorStyle.Render(" ")
	}
	return string(runes[:x]) + cursorStyle.Render(string(runes[x])) + string(runes[x+1:])
}
