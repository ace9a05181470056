package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relishdb/relish/internal/db"
	"github.com/relishdb/relish/internal/db/mysql"
	"github.com/relishdb/relish/internal/db/postgres"
	"github.com/relishdb/relish/internal/db/sqlite"
)

// ConnParams holds the credentials and endpoint of a server connection.
type ConnParams struct {
	Username string
	Password string
	Hostname string
	Port     string
}

// DialFunc opens a backend client for the given target. The target is a
// connection URL for server backends and a file path for SQLite.
type DialFunc func(ctx context.Context, backend db.Backend, target string) (db.Client, error)

// Dial is the production DialFunc.
func Dial(ctx context.Context, backend db.Backend, target string) (db.Client, error) {
	switch backend {
	case db.BackendPostgres:
		return postgres.Connect(ctx, target)
	case db.BackendMySQL:
		return mysql.Connect(ctx, target)
	case db.BackendSQLite:
		return sqlite.Connect(ctx, target)
	default:
		return nil, db.ErrUnsupported
	}
}

// Service coordinates application-level operations between the UI and the
// active database connection.
type Service struct {
	registry *db.Registry
	dial     DialFunc
	log      zerolog.Logger
}

// NewService creates a service around the given connection registry.
func NewService(registry *db.Registry, log zerolog.Logger) *Service {
	return &Service{registry: registry, dial: Dial, log: log}
}

// NewServiceWithDial creates a service with a custom dialer. Used in tests.
func NewServiceWithDial(registry *db.Registry, dial DialFunc, log zerolog.Logger) *Service {
	return &Service{registry: registry, dial: dial, log: log}
}

// ConnURL builds the connection URL for a server backend.
func ConnURL(backend db.Backend, p ConnParams, database string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s",
		urlScheme(backend), p.Username, p.Password, p.Hostname, p.Port, database)
}

func urlScheme(backend db.Backend) string {
	switch backend {
	case db.BackendPostgres:
		return "postgres"
	case db.BackendMySQL:
		return "mysql"
	default:
		return strings.ToLower(backend.String())
	}
}

// defaultDatabase is the maintenance database each server backend guarantees
// to exist, used for the initial connection before one is chosen.
func defaultDatabase(backend db.Backend) string {
	switch backend {
	case db.BackendPostgres:
		return "postgres"
	case db.BackendMySQL:
		return "mysql"
	default:
		return ""
	}
}

// ConnectDefault connects to the backend's default maintenance database so
// the available databases can be listed.
func (s *Service) ConnectDefault(ctx context.Context, backend db.Backend, p ConnParams) error {
	return s.ConnectTo(ctx, backend, p, defaultDatabase(backend))
}

// ConnectTo connects to a specific database, replacing any previous
// connection.
func (s *Service) ConnectTo(ctx context.Context, backend db.Backend, p ConnParams, database string) error {
	url := ConnURL(backend, p, database)
	s.log.Info().
		Str("backend", backend.String()).
		Str("host", p.Hostname).
		Str("port", p.Port).
		Str("database", database).
		Msg("connecting")

	client, err := s.dial(ctx, backend, url)
	if err != nil {
		s.log.Error().Err(err).Msg("connect failed")
		return err
	}
	s.registry.Set(client)
	return nil
}

// ConnectFile connects to a file-backed database, replacing any previous
// connection.
func (s *Service) ConnectFile(ctx context.Context, backend db.Backend, path string) error {
	s.log.Info().Str("backend", backend.String()).Str("path", path).Msg("connecting")
	client, err := s.dial(ctx, backend, path)
	if err != nil {
		s.log.Error().Err(err).Msg("connect failed")
		return err
	}
	s.registry.Set(client)
	return nil
}

// Disconnect closes the active connection, if any.
func (s *Service) Disconnect() {
	s.registry.Clear()
}

// FetchDatabases lists the databases visible to the active connection.
func (s *Service) FetchDatabases(ctx context.Context) ([]string, error) {
	client, err := s.registry.Get()
	if err != nil {
		return nil, err
	}
	return client.ListDatabases(ctx)
}

// FetchTables lists the tables of the connected database.
func (s *Service) FetchTables(ctx context.Context) ([]string, error) {
	client, err := s.registry.Get()
	if err != nil {
		return nil, err
	}
	return client.ListTables(ctx)
}

// DescribeTable returns column metadata for a table.
func (s *Service) DescribeTable(ctx context.Context, table string) (db.TableSchema, error) {
	client, err := s.registry.Get()
	if err != nil {
		return db.TableSchema{}, err
	}
	return client.DescribeTable(ctx, table)
}

// Begin opens a transaction on the active connection.
func (s *Service) Begin(ctx context.Context) (db.Tx, error) {
	client, err := s.registry.Get()
	if err != nil {
		return nil, err
	}
	return client.Begin(ctx)
}

// ExecuteSQL runs user-entered SQL. SELECT statements return a tabular
// result; everything else is executed for effect and acknowledged through
// the message. Exactly one of result and message is meaningful on success.
func (s *Service) ExecuteSQL(ctx context.Context, query string) (*Result, string, error) {
	client, err := s.registry.Get()
	if err != nil {
		return nil, "", err
	}

	trimmed := strings.TrimSpace(query)
	if isSelect(trimmed) {
		columns, rows, err := client.QueryWithColumnOrder(ctx, trimmed)
		if err != nil {
			s.log.Error().Err(err).Msg("query failed")
			return nil, "", err
		}
		res, notice := BuildResult(columns, rows, s.log)
		s.log.Info().Int("rows", len(res.Rows)).Bool("truncated", res.Truncated).Msg("query executed")
		return res, notice, nil
	}

	if err := client.Execute(ctx, trimmed); err != nil {
		s.log.Error().Err(err).Msg("statement failed")
		return nil, "", err
	}
	s.log.Info().Msg("statement executed")
	return nil, "Non-SELECT query executed successfully.", nil
}

// isSelect reports whether the statement produces a result set. The check is
// a case-insensitive prefix match on the trimmed text.
func isSelect(query string) bool {
	if len(query) < len("select") {
		return false
	}
	return strings.EqualFold(query[:len("select")], "select")
}
