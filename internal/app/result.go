package app

import (
	"strings"

	"github.com/rs/zerolog"
)

// MaxRows caps how many rows a query result carries into the UI. Anything
// past the cap is dropped and reported through the returned notice.
const MaxRows = 1000

// Result is a tabular query result prepared for display.
type Result struct {
	Columns   []string
	Rows      [][]string
	RowCount  int
	Truncated bool
}

// BuildResult normalizes raw backend output into a displayable result.
// Rows shorter than the header are dropped, longer rows are trimmed to the
// header width, and every cell is sanitized. The notice is non-empty when
// the row cap was hit.
func BuildResult(columns []string, rows [][]string, log zerolog.Logger) (*Result, string) {
	res := &Result{Columns: columns}

	for i, row := range rows {
		if len(res.Rows) == MaxRows {
			res.Truncated = true
			break
		}
		if len(row) < len(columns) {
			log.Warn().
				Int("row", i).
				Int("cells", len(row)).
				Int("columns", len(columns)).
				Msg("dropping malformed row")
			continue
		}
		row = row[:len(columns)]
		clean := make([]string, len(row))
		for j, cell := range row {
			clean[j] = sanitizeCell(cell)
		}
		res.Rows = append(res.Rows, clean)
	}

	res.RowCount = len(res.Rows)

	notice := ""
	if res.Truncated {
		notice = "Results limited to 1000 rows"
	}
	return res, notice
}

// sanitizeCell strips control characters (keeping tabs and newlines), trims
// surrounding whitespace, and renders emptiness as NULL.
func sanitizeCell(cell string) string {
	var b strings.Builder
	b.Grow(len(cell))
	for _, r := range cell {
		if r < 0x20 && r != '\t' && r != '\n' {
			continue
		}
		if r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "NULL"
	}
	return out
}
