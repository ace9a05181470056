package app

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBuildResult(t *testing.T) {
	log := zerolog.Nop()

	t.Run("caps rows at the limit with a notice", func(t *testing.T) {
		rows := make([][]string, 1500)
		for i := range rows {
			rows[i] = []string{fmt.Sprintf("%d", i)}
		}
		res, notice := BuildResult([]string{"id"}, rows, log)
		require.Len(t, res.Rows, MaxRows)
		require.True(t, res.Truncated)
		require.Equal(t, "Results limited to 1000 rows", notice)
	})

	t.Run("no notice under the limit", func(t *testing.T) {
		res, notice := BuildResult([]string{"id"}, [][]string{{"1"}, {"2"}}, log)
		require.Len(t, res.Rows, 2)
		require.False(t, res.Truncated)
		require.Empty(t, notice)
	})

	t.Run("drops rows narrower than the header", func(t *testing.T) {
		rows := [][]string{
			{"1", "alice"},
			{"2"},
			{"3", "carol"},
		}
		res, _ := BuildResult([]string{"id", "name"}, rows, log)
		require.Len(t, res.Rows, 2)
		require.Equal(t, "alice", res.Rows[0][1])
		require.Equal(t, "carol", res.Rows[1][1])
	})

	t.Run("trims rows wider than the header", func(t *testing.T) {
		rows := [][]string{{"1", "alice", "extra"}}
		res, _ := BuildResult([]string{"id", "name"}, rows, log)
		require.Len(t, res.Rows[0], 2)
	})
}

func TestSanitizeCell(t *testing.T) {
	t.Run("strips control characters but keeps tabs and newlines", func(t *testing.T) {
		require.Equal(t, "a\tb\nc", sanitizeCell("a\t\x00b\x07\nc\x1b"))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		require.Equal(t, "x", sanitizeCell("  x  "))
	})

	t.Run("empty becomes NULL", func(t *testing.T) {
		require.Equal(t, "NULL", sanitizeCell(""))
		require.Equal(t, "NULL", sanitizeCell("   "))
		require.Equal(t, "NULL", sanitizeCell("\x00\x01"))
	})
}
