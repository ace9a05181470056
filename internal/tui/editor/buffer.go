package editor

import "strings"

// Buffer is a multi-line text buffer with an explicit cursor. The cursor
// column x is measured in runes and may sit one past the end of the line;
// y always points at an existing line.
type Buffer struct {
	lines []string
	x     int
	y     int
}

// NewBuffer creates an empty single-line buffer.
func NewBuffer() *Buffer {
	return &Buffer{lines: []string{""}}
}

// Lines returns the buffer content line by line.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Cursor returns the cursor position as (column, line).
func (b *Buffer) Cursor() (x, y int) {
	return b.x, b.y
}

// Value returns the buffer content joined with newlines.
func (b *Buffer) Value() string {
	return strings.Join(b.lines, "\n")
}

// SetValue replaces the content and moves the cursor to the end.
func (b *Buffer) SetValue(s string) {
	b.lines = strings.Split(s, "\n")
	b.y = len(b.lines) - 1
	b.x = len([]rune(b.lines[b.y]))
}

// Clear empties the buffer and resets the cursor.
func (b *Buffer) Clear() {
	b.lines = []string{""}
	b.x = 0
	b.y = 0
}

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool {
	return len(b.lines) == 1 && b.lines[0] == ""
}

// InsertRune inserts r at the cursor and advances the cursor past it.
func (b *Buffer) InsertRune(r rune) {
	line := []rune(b.lines[b.y])
	b.clampX(len(line))
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:b.x]...)
	out = append(out, r)
	out = append(out, line[b.x:]...)
	b.lines[b.y] = string(out)
	b.x++
}

// InsertString inserts each rune of s at the cursor.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		if r == '\n' {
			b.Newline()
			continue
		}
		b.InsertRune(r)
	}
}

// Newline splits the current line at the cursor and moves the cursor to the
// start of the new line.
func (b *Buffer) Newline() {
	line := []rune(b.lines[b.y])
	b.clampX(len(line))
	before := string(line[:b.x])
	after := string(line[b.x:])

	out := make([]string, 0, len(b.lines)+1)
	out = append(out, b.lines[:b.y]...)
	out = append(out, before, after)
	out = append(out, b.lines[b.y+1:]...)
	b.lines = out

	b.y++
	b.x = 0
}

// Backspace removes the rune before the cursor. At the start of a line it
// joins the line with the previous one.
func (b *Buffer) Backspace() {
	line := []rune(b.lines[b.y])
	b.clampX(len(line))

	if b.x > 0 {
		b.lines[b.y] = string(line[:b.x-1]) + string(line[b.x:])
		b.x--
		return
	}
	if b.y == 0 {
		return
	}

	prev := []rune(b.lines[b.y-1])
	b.lines[b.y-1] = string(prev) + string(line)
	b.lines = append(b.lines[:b.y], b.lines[b.y+1:]...)
	b.y--
	b.x = len(prev)
}

// CursorLeft moves one rune left, wrapping to the end of the previous line.
func (b *Buffer) CursorLeft() {
	if b.x > 0 {
		b.x--
		return
	}
	if b.y > 0 {
		b.y--
		b.x = len([]rune(b.lines[b.y]))
	}
}

// CursorRight moves one rune right, wrapping to the start of the next line.
func (b *Buffer) CursorRight() {
	if b.x < len([]rune(b.lines[b.y])) {
		b.x++
		return
	}
	if b.y < len(b.lines)-1 {
		b.y++
		b.x = 0
	}
}

// CursorUp moves one line up, clamping the column to the new line's length.
func (b *Buffer) CursorUp() {
	if b.y > 0 {
		b.y--
		b.clampX(len([]rune(b.lines[b.y])))
	}
}

// CursorDown moves one line down, clamping the column to the new line's
// length.
func (b *Buffer) CursorDown() {
	if b.y < len(b.lines)-1 {
		b.y++
		b.clampX(len([]rune(b.lines[b.y])))
	}
}

func (b *Buffer) clampX(lineLen int) {
	if b.x > lineLen {
		b.x = lineLen
	}
	if b.x < 0 {
		b.x = 0
	}
}
