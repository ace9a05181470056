package mysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTypeFor(t *testing.T) {
	cases := []struct {
		name string
		want columnType
	}{
		{"TINYINT", typeTinyInt},
		{"SMALLINT", typeSmallInt},
		{"MEDIUMINT", typeMediumInt},
		{"INT", typeInt},
		{"BIGINT", typeBigInt},
		{"DECIMAL", typeDecimal},
		{"DOUBLE", typeDouble},
		{"VARCHAR", typeVarchar},
		{"LONGTEXT", typeLongText},
		{"DATETIME", typeDateTime},
		{"YEAR", typeYear},
		{"MEDIUMBLOB", typeMediumBlob},
		{"JSON", typeJSON},
		{"ENUM", typeEnum},
		{"SET", typeSet},
		{"GEOMETRY", typeUnknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, typeFor(tc.name), "type %s", tc.name)
	}
}

func TestDecode_IntegerRanges(t *testing.T) {
	// The text protocol hands integers back as []byte.
	t.Run("tinyint", func(t *testing.T) {
		require.Equal(t, "127", decode(typeTinyInt, []byte("127")).Display())
		require.True(t, decode(typeTinyInt, []byte("128")).IsNull())
	})

	t.Run("mediumint", func(t *testing.T) {
		require.Equal(t, "8388607", decode(typeMediumInt, []byte("8388607")).Display())
		require.Equal(t, "-8388608", decode(typeMediumInt, []byte("-8388608")).Display())
		require.True(t, decode(typeMediumInt, []byte("8388608")).IsNull())
	})

	t.Run("int from int64", func(t *testing.T) {
		require.Equal(t, "100", decode(typeInt, int64(100)).Display())
	})

	t.Run("malformed becomes null", func(t *testing.T) {
		require.True(t, decode(typeBigInt, []byte("abc")).IsNull())
	})
}

func TestDecode_NumericAndText(t *testing.T) {
	t.Run("decimal stays text", func(t *testing.T) {
		require.Equal(t, "99999.99999", decode(typeDecimal, []byte("99999.99999")).Display())
	})

	t.Run("double", func(t *testing.T) {
		require.Equal(t, "3.5", decode(typeDouble, []byte("3.5")).Display())
		require.Equal(t, "3.5", decode(typeFloat, float64(3.5)).Display())
	})

	t.Run("boolean from tinyint value", func(t *testing.T) {
		require.Equal(t, "true", decode(typeBoolean, int64(1)).Display())
		require.Equal(t, "false", decode(typeBoolean, []byte("0")).Display())
	})

	t.Run("varchar and enum", func(t *testing.T) {
		require.Equal(t, "red", decode(typeVarchar, []byte("red")).Display())
		require.Equal(t, "small", decode(typeEnum, "small").Display())
		require.Equal(t, "a,b", decode(typeSet, []byte("a,b")).Display())
	})
}

func TestDecode_Temporal(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	require.Equal(t, "2024-03-15", decode(typeDate, ts).Display())
	require.Equal(t, "2024-03-15 09:30:45", decode(typeDateTime, ts).Display())
	require.Equal(t, "2024-03-15 09:30:45", decode(typeTimestamp, ts).Display())
	// TIME is a duration and is kept textual.
	require.Equal(t, "838:59:59", decode(typeTime, []byte("838:59:59")).Display())
	require.Equal(t, "2024", decode(typeYear, []byte("2024")).Display())
}

func TestDecode_BinaryAndJSON(t *testing.T) {
	t.Run("blob is base64", func(t *testing.T) {
		require.Equal(t, "aGVsbG8=", decode(typeBlob, []byte("hello")).Display())
	})

	t.Run("json keeps key order", func(t *testing.T) {
		v := decode(typeJSON, []byte(`{"z": 1, "a": 2}`))
		require.Equal(t, `{"z":1,"a":2}`, v.Display())
	})

	t.Run("nil is null", func(t *testing.T) {
		require.True(t, decode(typeVarchar, nil).IsNull())
	})
}
