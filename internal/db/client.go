package db

import "context"

// Backend identifies one of the supported database kinds.
type Backend int

const (
	BackendPostgres Backend = iota
	BackendMySQL
	BackendSQLite
)

func (b Backend) String() string {
	switch b {
	case BackendPostgres:
		return "Postgres"
	case BackendMySQL:
		return "MySQL"
	case BackendSQLite:
		return "SQLite"
	default:
		return "unknown"
	}
}

// Client is the uniform contract every backend implements. All query results
// are decoded through the backend's column type map into canonical Values.
type Client interface {
	// Execute runs a statement that produces no result set.
	Execute(ctx context.Context, query string) error

	// Query runs a result-producing statement. Each row becomes one ordered
	// object whose keys are the result's column names in backend order.
	Query(ctx context.Context, query string) ([]Value, error)

	// QueryWithColumnOrder runs the same query but returns column names and
	// stringified cell values as parallel slices. Display paths should prefer
	// this method.
	QueryWithColumnOrder(ctx context.Context, query string) ([]string, [][]string, error)

	// ListDatabases returns the names of the databases visible to the
	// connection.
	ListDatabases(ctx context.Context) ([]string, error)

	// ListTables returns the table names of the connected database.
	ListTables(ctx context.Context) ([]string, error)

	// DescribeTable returns column metadata for a table. The table name is
	// interpolated into the catalog query as-is; callers must not pass
	// untrusted names.
	DescribeTable(ctx context.Context, table string) (TableSchema, error)

	// Begin opens a transaction bound to one connection.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the connection pool. Any transaction that was neither
	// committed nor rolled back is rolled back when its connection is
	// released.
	Close() error
}

// Tx is a short-lived transaction handle. Commit and Rollback finalize the
// handle; every later call returns a TxError wrapping ErrTxFinalized.
type Tx interface {
	Execute(ctx context.Context, query string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxGuard tracks whether a transaction handle has been finalized. Backend
// transaction types embed it and check EnsureOpen before touching the
// underlying driver.
type TxGuard struct {
	done bool
}

func (g *TxGuard) EnsureOpen(op string) error {
	if g.done {
		return &TxError{Op: op, Cause: ErrTxFinalized}
	}
	return nil
}

func (g *TxGuard) Finalize() {
	g.done = true
}
