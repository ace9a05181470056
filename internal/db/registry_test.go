package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubClient struct {
	Client
	closed int
}

func (c *stubClient) Close() error {
	c.closed++
	return nil
}

func TestRegistry(t *testing.T) {
	t.Run("empty registry returns ErrNoConnection", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Get()
		require.ErrorIs(t, err, ErrNoConnection)
		require.False(t, r.Connected())
	})

	t.Run("set closes the previous client", func(t *testing.T) {
		r := NewRegistry()
		first := &stubClient{}
		second := &stubClient{}

		r.Set(first)
		require.True(t, r.Connected())

		r.Set(second)
		require.Equal(t, 1, first.closed)
		require.Equal(t, 0, second.closed)

		got, err := r.Get()
		require.NoError(t, err)
		require.Same(t, Client(second), got)
	})

	t.Run("clear closes and empties the slot", func(t *testing.T) {
		r := NewRegistry()
		c := &stubClient{}
		r.Set(c)

		r.Clear()
		require.Equal(t, 1, c.closed)
		require.False(t, r.Connected())

		// A second clear is a no-op.
		r.Clear()
		require.Equal(t, 1, c.closed)
	})
}

func TestTxGuard(t *testing.T) {
	var g TxGuard
	require.NoError(t, g.EnsureOpen("execute"))

	g.Finalize()
	err := g.EnsureOpen("commit")
	require.ErrorIs(t, err, ErrTxFinalized)

	var txErr *TxError
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "commit", txErr.Op)
}
