package results

import "github.com/charmbracelet/lipgloss"

// Display limits for the results grid.
const (
	// MaxVisibleColumns is how many columns fit in the grid at once;
	// horizontal scrolling shifts the window over the full column set.
	MaxVisibleColumns = 8

	// PageStep is the row jump for page up and page down.
	PageStep = 10

	// maxCellWidth caps the rendered width of a single cell. The full
	// value is still available through the copy actions.
	maxCellWidth = 100
)

// MaxHorizontal returns the largest valid column offset for total columns.
func MaxHorizontal(total int) int {
	m := total - MaxVisibleColumns
	if m < 0 {
		return 0
	}
	return m
}

// ClampHorizontal keeps a column offset inside [0, MaxHorizontal(total)].
func ClampHorizontal(offset, total int) int {
	if offset < 0 {
		return 0
	}
	if m := MaxHorizontal(total); offset > m {
		return m
	}
	return offset
}

// ClampRow keeps a row index inside [0, total-1]. An empty result pins the
// index at zero.
func ClampRow(row, total int) int {
	if total == 0 || row < 0 {
		return 0
	}
	if row > total-1 {
		return total - 1
	}
	return row
}

// FollowScroll adjusts a scroll offset so the selected row stays inside a
// window of visible rows.
func FollowScroll(scroll, selected, visible int) int {
	if visible < 1 {
		visible = 1
	}
	if selected < scroll {
		scroll = selected
	}
	if selected >= scroll+visible {
		scroll = selected - visible + 1
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// WindowColumns returns the visible slice of column names at offset.
func WindowColumns(columns []string, offset int) []string {
	offset = ClampHorizontal(offset, len(columns))
	end := offset + MaxVisibleColumns
	if end > len(columns) {
		end = len(columns)
	}
	return columns[offset:end]
}

// WindowCells returns the visible slice of one row at offset. Rows narrower
// than the offset yield an empty slice.
func WindowCells(row []string, offset int) []string {
	if offset >= len(row) {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + MaxVisibleColumns
	if end > len(row) {
		end = len(row)
	}
	return row[offset:end]
}

// TruncateCell shortens a cell for display, appending an ellipsis when text
// was cut. Widths are display widths, not byte counts.
func TruncateCell(cell string, width int) string {
	if width > maxCellWidth {
		width = maxCellWidth
	}
	if width < 1 {
		width = 1
	}
	if lipgloss.Width(cell) <= width {
		return cell
	}
	runes := []rune(cell)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
