package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cursorAt(t *testing.T, b *Buffer, wantX, wantY int) {
	t.Helper()
	x, y := b.Cursor()
	require.Equal(t, wantX, x, "cursor x")
	require.Equal(t, wantY, y, "cursor y")
}

func TestBuffer_Insert(t *testing.T) {
	b := NewBuffer()
	b.InsertString("select 1")
	require.Equal(t, "select 1", b.Value())
	cursorAt(t, b, 8, 0)
}

func TestBuffer_InsertMiddle(t *testing.T) {
	b := NewBuffer()
	b.InsertString("ac")
	b.CursorLeft()
	b.InsertRune('b')
	require.Equal(t, "abc", b.Value())
	cursorAt(t, b, 2, 0)
}

func TestBuffer_Newline(t *testing.T) {
	b := NewBuffer()
	b.InsertString("select 1")
	b.Newline()
	b.InsertString("from t")
	require.Equal(t, "select 1\nfrom t", b.Value())
	cursorAt(t, b, 6, 1)

	// Splitting mid-line carries the tail to the new line.
	b2 := NewBuffer()
	b2.InsertString("abcd")
	b2.CursorLeft()
	b2.CursorLeft()
	b2.Newline()
	require.Equal(t, "ab\ncd", b2.Value())
	cursorAt(t, b2, 0, 1)
}

func TestBuffer_Backspace(t *testing.T) {
	t.Run("removes the rune before the cursor", func(t *testing.T) {
		b := NewBuffer()
		b.InsertString("abc")
		b.Backspace()
		require.Equal(t, "ab", b.Value())
		cursorAt(t, b, 2, 0)
	})

	t.Run("joins lines at line start", func(t *testing.T) {
		b := NewBuffer()
		b.InsertString("ab\ncd")
		b.CursorUp()
		b.CursorDown() // back on line 1
		for i := 0; i < 2; i++ {
			b.CursorLeft()
		}
		b.Backspace()
		require.Equal(t, "abcd", b.Value())
		cursorAt(t, b, 2, 0)
	})

	t.Run("at buffer start is a no-op", func(t *testing.T) {
		b := NewBuffer()
		b.Backspace()
		require.Equal(t, "", b.Value())
		cursorAt(t, b, 0, 0)
	})
}

func TestBuffer_CursorMovement(t *testing.T) {
	b := NewBuffer()
	b.InsertString("long line\nab")

	t.Run("up clamps the column", func(t *testing.T) {
		b.SetValue("long line\nab")
		// cursor at end of "ab" (x=2,y=1); moving up keeps x=2
		b.CursorUp()
		cursorAt(t, b, 2, 0)
	})

	t.Run("down clamps the column", func(t *testing.T) {
		b.SetValue("long\nab")
		b.CursorUp() // (2,0) after clamp against "long": x stays 2
		cursorAt(t, b, 2, 0)
		b.CursorRight() // (3,0)
		b.CursorDown()
		cursorAt(t, b, 2, 1)
	})

	t.Run("left wraps to previous line end", func(t *testing.T) {
		b.SetValue("ab\ncd")
		b.CursorUp()
		b.CursorDown()
		for i := 0; i < 2; i++ {
			b.CursorLeft()
		}
		cursorAt(t, b, 0, 1)
		b.CursorLeft()
		cursorAt(t, b, 2, 0)
	})

	t.Run("right wraps to next line start", func(t *testing.T) {
		b.SetValue("ab\ncd")
		b.CursorUp() // (2,0)
		b.CursorRight()
		cursorAt(t, b, 0, 1)
	})

	t.Run("movement at edges is a no-op", func(t *testing.T) {
		b := NewBuffer()
		b.CursorLeft()
		b.CursorUp()
		b.CursorRight()
		b.CursorDown()
		cursorAt(t, b, 0, 0)
	})
}

func TestBuffer_ClearAndSetValue(t *testing.T) {
	b := NewBuffer()
	require.True(t, b.Empty())

	b.SetValue("select 1\nfrom t")
	require.False(t, b.Empty())
	require.Len(t, b.Lines(), 2)
	cursorAt(t, b, 6, 1)

	b.Clear()
	require.True(t, b.Empty())
	cursorAt(t, b, 0, 0)
}

func TestBuffer_UnicodeRunes(t *testing.T) {
	b := NewBuffer()
	b.InsertString("héllo")
	cursorAt(t, b, 5, 0)
	b.Backspace()
	require.Equal(t, "héll", b.Value())
}
