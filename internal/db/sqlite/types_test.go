package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTypeFor_Affinity(t *testing.T) {
	cases := []struct {
		name string
		want columnType
	}{
		{"INTEGER", typeInteger},
		{"int", typeInteger},
		{"BIGINT", typeInteger},
		{"VARCHAR(255)", typeText},
		{"TEXT", typeText},
		{"CLOB", typeText},
		{"BLOB", typeBlob},
		{"REAL", typeReal},
		{"DOUBLE PRECISION", typeReal},
		{"FLOAT", typeReal},
		{"NUMERIC", typeNumeric},
		{"DECIMAL(10,2)", typeNumeric},
		{"BOOLEAN", typeBoolean},
		{"DATETIME", typeDateTime},
		{"", typeUnknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, typeFor(tc.name), "type %q", tc.name)
	}
}

func TestDecode(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		require.Equal(t, "42", decode(typeInteger, int64(42)).Display())
		require.Equal(t, "42", decode(typeInteger, []byte("42")).Display())
		require.True(t, decode(typeInteger, []byte("abc")).IsNull())
	})

	t.Run("real", func(t *testing.T) {
		require.Equal(t, "1.5", decode(typeReal, 1.5).Display())
		require.Equal(t, "2", decode(typeReal, int64(2)).Display())
	})

	t.Run("numeric stays text", func(t *testing.T) {
		require.Equal(t, "10.500", decode(typeNumeric, "10.500").Display())
	})

	t.Run("boolean from stored integer", func(t *testing.T) {
		require.Equal(t, "true", decode(typeBoolean, int64(1)).Display())
		require.Equal(t, "false", decode(typeBoolean, int64(0)).Display())
	})

	t.Run("datetime", func(t *testing.T) {
		ts := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
		require.Equal(t, "2024-03-15 09:30:45", decode(typeDateTime, ts).Display())
		// Stored as text it is passed through.
		require.Equal(t, "2024-03-15 09:30:45", decode(typeDateTime, "2024-03-15 09:30:45").Display())
	})

	t.Run("blob is base64", func(t *testing.T) {
		require.Equal(t, "aGVsbG8=", decode(typeBlob, []byte("hello")).Display())
	})

	t.Run("dynamic typing falls back on the stored value", func(t *testing.T) {
		require.Equal(t, "7", decode(typeUnknown, int64(7)).Display())
		require.Equal(t, "1.5", decode(typeUnknown, 1.5).Display())
		require.Equal(t, "x", decode(typeUnknown, "x").Display())
	})

	t.Run("nil is null", func(t *testing.T) {
		require.True(t, decode(typeText, nil).IsNull())
	})
}
