package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// tsvRows renders the header plus the given rows as tab-separated text.
// Copies always carry the untruncated cell values.
func tsvRows(columns []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, "\t"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

// doCopyRow copies the header and the selected row to the clipboard.
func (m *Model) doCopyRow() {
	if m.res == nil || m.selectedRow < 0 || m.selectedRow >= len(m.res.Rows) {
		m.statusMsg = "No row to copy"
		return
	}
	text := tsvRows(m.res.Columns, [][]string{m.res.Rows[m.selectedRow]})
	if err := clipboard.WriteAll(text); err != nil {
		m.statusMsg = "Copy failed: " + err.Error()
		return
	}
	m.statusMsg = "Copied row"
}

// doCopyAll copies the header and every row to the clipboard.
func (m *Model) doCopyAll() {
	if m.res == nil || len(m.res.Rows) == 0 {
		m.statusMsg = "Nothing to copy"
		return
	}
	text := tsvRows(m.res.Columns, m.res.Rows)
	if err := clipboard.WriteAll(text); err != nil {
		m.statusMsg = "Copy failed: " + err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %d rows", len(m.res.Rows))
}

// exportCSVCmd writes the current result to a timestamped CSV file in the
// working directory.
func (m Model) exportCSVCmd() tea.Cmd {
	res := m.res
	if res == nil {
		return nil
	}
	return func() tea.Msg {
		ts := time.Now().Format("20060102_150405")
		filename := fmt.Sprintf("relish_export_%s.csv", ts)

		f, err := os.Create(filename)
		if err != nil {
			return StatusNotifyMsg{Message: "Export failed: " + err.Error()}
		}
		defer f.Close()

		w := csv.NewWriter(f)
		_ = w.Write(res.Columns)
		for _, row := range res.Rows {
			_ = w.Write(row)
		}
		w.Flush()

		if err := w.Error(); err != nil {
			return StatusNotifyMsg{Message: "Export failed: " + err.Error()}
		}
		return StatusNotifyMsg{Message: fmt.Sprintf("Exported %d rows to %s", len(res.Rows), filename)}
	}
}

// SetStatus shows a transient message below the grid.
func (m *Model) SetStatus(msg string) {
	m.statusMsg = msg
}
