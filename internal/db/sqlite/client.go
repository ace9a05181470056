package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/relishdb/relish/internal/db"
	_ "modernc.org/sqlite"
)

// Client implements db.Client for SQLite on top of database/sql with the
// pure-Go modernc driver.
type Client struct {
	sqldb *sql.DB
}

// Connect opens the database file at path, creating it if absent.
func Connect(ctx context.Context, path string) (*Client, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &db.ConnError{Cause: err}
	}

	// SQLite serializes writers; one connection avoids lock contention.
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, &db.ConnError{Cause: err}
	}

	return &Client{sqldb: sqldb}, nil
}

// Close releases the underlying handle.
func (c *Client) Close() error {
	return c.sqldb.Close()
}

// Execute runs a non-result statement.
func (c *Client) Execute(ctx context.Context, query string) error {
	if _, err := c.sqldb.ExecContext(ctx, query); err != nil {
		return &db.ExecError{Query: query, Cause: err}
	}
	return nil
}

// Query runs a result-producing statement and decodes each row into an
// ordered object keyed by the result's column names.
func (c *Client) Query(ctx context.Context, query string) ([]db.Value, error) {
	names, types, data, err := c.scanAll(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]db.Value, 0, len(data))
	for _, raw := range data {
		fields := make([]db.Field, len(names))
		for i, name := range names {
			fields[i] = db.Field{Key: name, Val: decode(types[i], raw[i])}
		}
		out = append(out, db.Object(fields))
	}
	return out, nil
}

// QueryWithColumnOrder runs the query and returns column names and
// stringified cell values as parallel slices.
func (c *Client) QueryWithColumnOrder(ctx context.Context, query string) ([]string, [][]string, error) {
	names, types, data, err := c.scanAll(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(data))
	for _, raw := range data {
		row := make([]string, len(names))
		for i := range names {
			row[i] = decode(types[i], raw[i]).Display()
		}
		rows = append(rows, row)
	}
	return names, rows, nil
}

func (c *Client) scanAll(ctx context.Context, query string) ([]string, []columnType, [][]any, error) {
	rows, err := c.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, nil, &db.ExecError{Query: query, Cause: err}
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, nil, &db.ExecError{Query: query, Cause: err}
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, nil, &db.ExecError{Query: query, Cause: err}
	}
	types := make([]columnType, len(colTypes))
	for i, ct := range colTypes {
		types[i] = typeFor(ct.DatabaseTypeName())
	}

	var data [][]any
	for rows.Next() {
		raw := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, nil, &db.ExecError{Query: query, Cause: err}
		}
		data = append(data, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, &db.ExecError{Query: query, Cause: err}
	}
	return names, types, data, nil
}

// ListDatabases returns the single logical database of a file connection.
func (c *Client) ListDatabases(context.Context) ([]string, error) {
	return []string{"main"}, nil
}

// ListTables returns the user tables recorded in sqlite_master.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	const query = "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name"
	rows, err := c.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, &db.ExecError{Query: query, Cause: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &db.ExecError{Query: query, Cause: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DescribeTable returns column metadata for a table. The name is interpolated
// as-is; callers must not pass untrusted input.
func (c *Client) DescribeTable(ctx context.Context, table string) (db.TableSchema, error) {
	query := fmt.Sprintf("PRAGMA table_info('%s')", table)
	rows, err := c.sqldb.QueryContext(ctx, query)
	if err != nil {
		return db.TableSchema{}, &db.ExecError{Query: query, Cause: err}
	}
	defer rows.Close()

	schema := db.TableSchema{TableName: table}
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, dataType   string
			def              sql.NullString
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &def, &pk); err != nil {
			return db.TableSchema{}, &db.ExecError{Query: query, Cause: err}
		}
		col := db.ColumnSchema{
			Name:       name,
			DataType:   dataType,
			IsNullable: notNull == 0,
		}
		if def.Valid {
			v := def.String
			col.Default = &v
		}
		schema.Columns = append(schema.Columns, col)
	}
	return schema, rows.Err()
}

// Begin opens a transaction.
func (c *Client) Begin(ctx context.Context) (db.Tx, error) {
	tx, err := c.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return nil, &db.TxError{Op: "begin", Cause: err}
	}
	return &sqlTx{tx: tx}, nil
}

type sqlTx struct {
	db.TxGuard
	tx *sql.Tx
}

func (t *sqlTx) Execute(ctx context.Context, query string) error {
	if err := t.EnsureOpen("execute"); err != nil {
		return err
	}
	if _, err := t.tx.ExecContext(ctx, query); err != nil {
		return &db.TxError{Op: "execute", Cause: err}
	}
	return nil
}

func (t *sqlTx) Commit(context.Context) error {
	if err := t.EnsureOpen("commit"); err != nil {
		return err
	}
	t.Finalize()
	if err := t.tx.Commit(); err != nil {
		return &db.TxError{Op: "commit", Cause: err}
	}
	return nil
}

func (t *sqlTx) Rollback(context.Context) error {
	if err := t.EnsureOpen("rollback"); err != nil {
		return err
	}
	t.Finalize()
	if err := t.tx.Rollback(); err != nil {
		return &db.TxError{Op: "rollback", Cause: err}
	}
	return nil
}
