package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/relishdb/relish/internal/app"
	"github.com/relishdb/relish/internal/db"
	"github.com/relishdb/relish/internal/tui/theme"
)

// Form field order. Enter on the last field submits the form.
const (
	fieldUsername = iota
	fieldPassword
	fieldHostname
	fieldPort
	fieldCount
)

// connForm collects server connection parameters.
type connForm struct {
	inputs   [fieldCount]textinput.Model
	focusIdx int
}

func newConnForm(backend db.Backend) connForm {
	var f connForm

	labels := [fieldCount]string{"username", "password", "hostname", "port"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs[i] = ti
	}

	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '*'
	f.inputs[fieldHostname].SetValue("localhost")
	switch backend {
	case db.BackendPostgres:
		f.inputs[fieldPort].SetValue("5432")
	case db.BackendMySQL:
		f.inputs[fieldPort].SetValue("3306")
	}

	f.inputs[fieldUsername].Focus()
	return f
}

// Update handles key input. The returned flag is true when the form was
// submitted.
func (f connForm) Update(msg tea.Msg) (connForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "shift+tab":
			f.setFocus((f.focusIdx + fieldCount - 1) % fieldCount)
			return f, nil, false
		case "down", "tab":
			f.setFocus((f.focusIdx + 1) % fieldCount)
			return f, nil, false
		case "enter":
			if f.focusIdx == fieldPort {
				return f, nil, true
			}
			f.setFocus(f.focusIdx + 1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return f, cmd, false
}

func (f *connForm) setFocus(idx int) {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = idx
	f.inputs[f.focusIdx].Focus()
}

// Params returns the entered connection parameters.
func (f connForm) Params() app.ConnParams {
	return app.ConnParams{
		Username: f.inputs[fieldUsername].Value(),
		Password: f.inputs[fieldPassword].Value(),
		Hostname: f.inputs[fieldHostname].Value(),
		Port:     f.inputs[fieldPort].Value(),
	}
}

// View renders the form fields with the focused one highlighted.
func (f connForm) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted).Width(10)
	activeLabel := lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true).Width(10)

	labels := [fieldCount]string{"Username", "Password", "Hostname", "Port"}
	rows := make([]string, 0, fieldCount)
	for i := range f.inputs {
		style := labelStyle
		if i == f.focusIdx {
			style = activeLabel
		}
		rows = append(rows, style.Render(labels[i])+" "+f.inputs[i].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
