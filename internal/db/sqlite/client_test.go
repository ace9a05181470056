package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := Connect(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestDescribeTable(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	require.NoError(t, c.Execute(ctx, `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		note TEXT DEFAULT 'none'
	)`))

	schema, err := c.DescribeTable(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, "users", schema.TableName)

	names := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		names[i] = col.Name
	}
	require.Equal(t, []string{"id", "name", "note"}, names)

	t.Run("nullability follows the notnull flag", func(t *testing.T) {
		require.True(t, schema.Columns[0].IsNullable)
		require.False(t, schema.Columns[1].IsNullable)
	})

	t.Run("declared types survive verbatim", func(t *testing.T) {
		require.Equal(t, "INTEGER", schema.Columns[0].DataType)
		require.Equal(t, "TEXT", schema.Columns[1].DataType)
	})

	t.Run("defaults keep the declared literal", func(t *testing.T) {
		require.Nil(t, schema.Columns[1].Default)
		require.NotNil(t, schema.Columns[2].Default)
		require.Equal(t, "'none'", *schema.Columns[2].Default)
	})
}

func TestListTablesAndDatabases(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	require.NoError(t, c.Execute(ctx, "CREATE TABLE users (id INTEGER)"))
	require.NoError(t, c.Execute(ctx, "CREATE TABLE orders (id INTEGER)"))

	tables, err := c.ListTables(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"orders", "users"}, tables)

	dbs, err := c.ListDatabases(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, dbs)
}

func TestQueryWithColumnOrder(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	require.NoError(t, c.Execute(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, note TEXT)"))
	require.NoError(t, c.Execute(ctx, "INSERT INTO users VALUES (1, 'ada', 'first')"))
	require.NoError(t, c.Execute(ctx, "INSERT INTO users VALUES (2, 'bob', NULL)"))

	cols, rows, err := c.QueryWithColumnOrder(ctx, "SELECT id, name, note FROM users ORDER BY id")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "note"}, cols)
	require.Equal(t, [][]string{
		{"1", "ada", "first"},
		{"2", "bob", "NULL"},
	}, rows)
}
