package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/relishdb/relish/internal/app"
	"github.com/relishdb/relish/internal/config"
	"github.com/relishdb/relish/internal/db"
)

type fakeClient struct {
	databases []string
	tables    []string
}

func (f *fakeClient) Execute(context.Context, string) error { return nil }
func (f *fakeClient) Query(context.Context, string) ([]db.Value, error) {
	return nil, nil
}
func (f *fakeClient) QueryWithColumnOrder(context.Context, string) ([]string, [][]string, error) {
	return []string{"id"}, [][]string{{"1"}}, nil
}
func (f *fakeClient) ListDatabases(context.Context) ([]string, error) { return f.databases, nil }
func (f *fakeClient) ListTables(context.Context) ([]string, error)    { return f.tables, nil }
func (f *fakeClient) DescribeTable(_ context.Context, table string) (db.TableSchema, error) {
	return db.TableSchema{TableName: table}, nil
}
func (f *fakeClient) Begin(context.Context) (db.Tx, error) { return nil, db.ErrUnsupported }
func (f *fakeClient) Close() error                         { return nil }

func newTestModel() Model {
	registry := db.NewRegistry()
	dial := func(context.Context, db.Backend, string) (db.Client, error) {
		return &fakeClient{databases: []string{"postgres"}, tables: []string{"users"}}, nil
	}
	service := app.NewServiceWithDial(registry, dial, zerolog.Nop())
	return NewModel(service, &config.Config{}, nil, zerolog.Nop())
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestScreenFlow_BackendSelection(t *testing.T) {
	m := newTestModel()
	require.Equal(t, ScreenDbType, m.screen)

	t.Run("enter on a server backend opens the connection form", func(t *testing.T) {
		got := update(t, m, key(tea.KeyEnter))
		require.Equal(t, ScreenConnInput, got.screen)
		require.Equal(t, db.BackendPostgres, got.backend)

		got = update(t, got, key(tea.KeyEsc))
		require.Equal(t, ScreenDbType, got.screen)
	})

	t.Run("third backend shows the coming soon popup", func(t *testing.T) {
		got := update(t, m, key(tea.KeyDown))
		got = update(t, got, key(tea.KeyDown))
		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, ScreenPopup, got.screen)
		require.Contains(t, got.popupMsg, "coming soon")

		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, ScreenDbType, got.screen)
	})

	t.Run("any key dismisses the popup", func(t *testing.T) {
		got := update(t, m, key(tea.KeyDown))
		got = update(t, got, key(tea.KeyDown))
		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, ScreenPopup, got.screen)

		got = update(t, got, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		require.Equal(t, ScreenDbType, got.screen)
	})

	t.Run("cursor clamps at the list edges", func(t *testing.T) {
		got := update(t, m, key(tea.KeyUp))
		require.Equal(t, 0, got.dbTypeCursor)
		for i := 0; i < 10; i++ {
			got = update(t, got, key(tea.KeyDown))
		}
		require.Equal(t, len(backendChoices)-1, got.dbTypeCursor)
	})
}

func TestScreenFlow_ConnectAndSelectDatabase(t *testing.T) {
	m := newTestModel()
	m = update(t, m, key(tea.KeyEnter)) // to connection form

	t.Run("successful connect moves to database selection", func(t *testing.T) {
		got := update(t, m, connectedMsg{err: nil})
		require.Equal(t, ScreenDbSelect, got.screen)
		require.True(t, got.needsDBRefresh)

		got = update(t, got, databasesLoadedMsg{seq: got.fetchSeq, names: []string{"postgres", "shop"}})
		require.False(t, got.needsDBRefresh)
		require.Equal(t, []string{"postgres", "shop"}, got.databases)
	})

	t.Run("failed connect shows the error modal", func(t *testing.T) {
		got := update(t, m, connectedMsg{err: db.ErrNoConnection})
		require.Equal(t, ScreenConnInput, got.screen)
		require.NotEmpty(t, got.connErr)

		got = update(t, got, key(tea.KeyEnter))
		require.Empty(t, got.connErr)
	})

	t.Run("stale list replies are discarded", func(t *testing.T) {
		got := update(t, m, connectedMsg{err: nil})
		stale := got.fetchSeq - 1
		got = update(t, got, databasesLoadedMsg{seq: stale, names: []string{"old"}})
		require.Empty(t, got.databases)
		require.True(t, got.needsDBRefresh)
	})
}

func TestScreenFlow_TableView(t *testing.T) {
	m := newTestModel()
	m = update(t, m, key(tea.KeyEnter)) // form
	m = update(t, m, connectedMsg{err: nil})
	m = update(t, m, dbConnectedMsg{database: "shop"})

	require.Equal(t, ScreenTableView, m.screen)
	require.Equal(t, FocusTables, m.focus)
	require.Equal(t, "shop", m.database)

	t.Run("tab cycles focus forward and back", func(t *testing.T) {
		got := update(t, m, key(tea.KeyTab))
		require.Equal(t, FocusEditor, got.focus)
		got = update(t, got, key(tea.KeyTab))
		require.Equal(t, FocusResults, got.focus)
		got = update(t, got, key(tea.KeyTab))
		require.Equal(t, FocusTables, got.focus)

		got = update(t, got, key(tea.KeyShiftTab))
		require.Equal(t, FocusResults, got.focus)
	})

	t.Run("tables load resets cursor and expansion", func(t *testing.T) {
		got := update(t, m, tablesLoadedMsg{seq: m.fetchSeq, names: []string{"orders", "users"}})
		require.Equal(t, []string{"orders", "users"}, got.tables)
		require.Equal(t, 0, got.tableCursor)
		require.Equal(t, -1, got.expandedTable)
	})

	t.Run("enter toggles schema expansion", func(t *testing.T) {
		got := update(t, m, tablesLoadedMsg{seq: m.fetchSeq, names: []string{"orders"}})
		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, 0, got.expandedTable)
		got = update(t, got, schemaLoadedMsg{table: "orders", schema: db.TableSchema{TableName: "orders"}})
		require.Contains(t, got.schemas, "orders")
		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, -1, got.expandedTable)
	})

	t.Run("f1 returns to database selection and clears panes", func(t *testing.T) {
		got := m
		got.editor.SetQuery("SELECT 1")
		got = update(t, got, key(tea.KeyF1))
		require.Equal(t, ScreenDbSelect, got.screen)
		require.True(t, got.needsDBRefresh)
		require.Empty(t, got.editor.Value())
	})

	t.Run("query results land in the results pane", func(t *testing.T) {
		res := &app.Result{Columns: []string{"id"}, Rows: [][]string{{"1"}}}
		got := update(t, m, queryExecutedMsg{res: res})
		require.Equal(t, ScreenTableView, got.screen)

		got = update(t, got, queryExecutedMsg{message: "Non-SELECT query executed successfully."})
		require.Equal(t, ScreenTableView, got.screen)
	})

	t.Run("every successful execution refreshes the table list", func(t *testing.T) {
		m := update(t, m, tablesLoadedMsg{seq: m.fetchSeq, names: []string{"users"}})
		require.False(t, m.needsTablesRefresh)

		res := &app.Result{Columns: []string{"id"}, Rows: [][]string{{"1"}}}
		next, cmd := m.Update(queryExecutedMsg{res: res})
		got, ok := next.(Model)
		require.True(t, ok)
		require.True(t, got.needsTablesRefresh)
		require.NotNil(t, cmd)
		require.Greater(t, got.fetchSeq, m.fetchSeq)

		next, cmd = m.Update(queryExecutedMsg{message: "Non-SELECT query executed successfully."})
		got, ok = next.(Model)
		require.True(t, ok)
		require.True(t, got.needsTablesRefresh)
		require.NotNil(t, cmd)
	})

	t.Run("a failed execution leaves the table list alone", func(t *testing.T) {
		got := update(t, m, tablesLoadedMsg{seq: m.fetchSeq, names: []string{"users"}})
		require.False(t, got.needsTablesRefresh)

		got = update(t, got, queryExecutedMsg{err: db.ErrNoConnection})
		require.False(t, got.needsTablesRefresh)
	})

	t.Run("a failed describe collapses the expansion", func(t *testing.T) {
		got := m
		// The schemas map is shared across the value copies the other
		// subtests make; start from an empty one so their entries don't
		// leak into this scenario.
		got.schemas = make(map[string]db.TableSchema)
		got = update(t, got, tablesLoadedMsg{seq: got.fetchSeq, names: []string{"orders"}})
		got = update(t, got, key(tea.KeyEnter))
		require.Equal(t, 0, got.expandedTable)

		got = update(t, got, schemaLoadedMsg{table: "orders", err: db.ErrNoConnection})
		require.Equal(t, -1, got.expandedTable)
		require.NotContains(t, got.schemas, "orders")
	})
}
