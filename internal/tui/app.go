package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/relishdb/relish/internal/app"
	"github.com/relishdb/relish/internal/config"
	"github.com/relishdb/relish/internal/db"
	"github.com/relishdb/relish/internal/tui/editor"
	"github.com/relishdb/relish/internal/tui/results"
	"github.com/relishdb/relish/internal/tui/statusbar"
)

// Screen identifies the active screen of the session.
type Screen int

const (
	ScreenDbType Screen = iota
	ScreenConnInput
	ScreenDbSelect
	ScreenTableView
	ScreenPopup
)

// Focus identifies a focusable area of the table view.
type Focus int

const (
	FocusTables Focus = iota
	FocusEditor
	FocusResults
)

func (f Focus) String() string {
	switch f {
	case FocusTables:
		return "tables"
	case FocusEditor:
		return "editor"
	case FocusResults:
		return "results"
	default:
		return "unknown"
	}
}

// Operation timeouts.
const (
	connectTimeout = 10 * time.Second
	queryTimeout   = 30 * time.Second
	listTimeout    = 5 * time.Second
)

const debugCap = 100

// backendChoices is the selection order on the first screen.
var backendChoices = []db.Backend{db.BackendPostgres, db.BackendMySQL, db.BackendSQLite}

// Messages for async operations. Listing messages carry the fetch sequence
// number so results of a superseded fetch can be discarded.
type (
	connectedMsg struct {
		err error
	}
	dbConnectedMsg struct {
		database string
		err      error
	}
	databasesLoadedMsg struct {
		seq   int
		names []string
		err   error
	}
	tablesLoadedMsg struct {
		seq   int
		names []string
		err   error
	}
	queryExecutedMsg struct {
		res     *app.Result
		notice  string
		message string
		err     error
	}
	schemaLoadedMsg struct {
		table  string
		schema db.TableSchema
		err    error
	}
	connectionSavedMsg struct {
		err error
	}
)

// Model is the top-level bubbletea model orchestrating all screens.
type Model struct {
	service *app.Service
	cfg     *config.Config
	secrets config.SecretStore
	log     zerolog.Logger

	screen     Screen
	prevScreen Screen
	popupMsg   string

	// Backend selection
	dbTypeCursor int
	backend      db.Backend

	// Connection input
	form    connForm
	connErr string

	// Database selection
	databases      []string
	dbCursor       int
	dbScroll       int
	needsDBRefresh bool

	// Table view
	tables             []string
	tableCursor        int
	tablesScroll       int
	needsTablesRefresh bool
	expandedTable      int
	schemas            map[string]db.TableSchema
	database           string

	editor    editor.Model
	results   results.Model
	statusbar statusbar.Model
	focus     Focus

	// fetchSeq guards list fetches; a reply with a stale seq is dropped.
	fetchSeq int

	debug     []string
	showDebug bool

	width  int
	height int
}

// NewModel creates the top-level model.
func NewModel(service *app.Service, cfg *config.Config, secrets config.SecretStore, log zerolog.Logger) Model {
	return Model{
		service:       service,
		cfg:           cfg,
		secrets:       secrets,
		log:           log,
		screen:        ScreenDbType,
		expandedTable: -1,
		schemas:       make(map[string]db.TableSchema),
		editor:        editor.New(),
		results:       results.New(),
		statusbar:     statusbar.New(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "f12" {
			m.showDebug = !m.showDebug
			return m, nil
		}
		switch m.screen {
		case ScreenDbType:
			return m.updateDbType(msg)
		case ScreenConnInput:
			return m.updateConnInput(msg)
		case ScreenDbSelect:
			return m.updateDbSelect(msg)
		case ScreenTableView:
			return m.updateTableView(msg)
		case ScreenPopup:
			return m.updatePopup(msg)
		}

	case connectedMsg:
		if msg.err != nil {
			m.connErr = msg.err.Error()
			m.pushDebug("connect failed: " + msg.err.Error())
			return m, nil
		}
		m.connErr = ""
		m.screen = ScreenDbSelect
		m.needsDBRefresh = true
		m.statusbar.SetConnected(true, m.backend.String())
		m.pushDebug("connected to " + m.backend.String())
		return m, tea.Batch(m.fetchDatabasesCmd(), m.saveConnectionCmd())

	case dbConnectedMsg:
		if msg.err != nil {
			return m.showPopup("Connection failed: " + msg.err.Error()), nil
		}
		m.database = msg.database
		m.screen = ScreenTableView
		m.needsTablesRefresh = true
		m.expandedTable = -1
		m.schemas = make(map[string]db.TableSchema)
		m.setFocus(FocusTables)
		m.statusbar.SetConnected(true, m.backend.String()+"/"+msg.database)
		m.pushDebug("selected database " + msg.database)
		m.layout()
		return m, m.fetchTablesCmd()

	case databasesLoadedMsg:
		if msg.seq != m.fetchSeq {
			m.pushDebug("dropped stale database list")
			return m, nil
		}
		if msg.err != nil {
			m.pushDebug("list databases failed: " + msg.err.Error())
			return m.showPopup("Could not list databases: " + msg.err.Error()), nil
		}
		m.databases = msg.names
		m.dbCursor = 0
		m.dbScroll = 0
		m.needsDBRefresh = false
		return m, nil

	case tablesLoadedMsg:
		if msg.seq != m.fetchSeq {
			m.pushDebug("dropped stale table list")
			return m, nil
		}
		if msg.err != nil {
			m.pushDebug("list tables failed: " + msg.err.Error())
			m.statusbar.SetMessage("Could not list tables: " + msg.err.Error())
			return m, nil
		}
		m.tables = msg.names
		m.tableCursor = 0
		m.tablesScroll = 0
		m.expandedTable = -1
		m.needsTablesRefresh = false
		return m, nil

	case queryExecutedMsg:
		if msg.err != nil {
			m.results.SetError(msg.err)
			m.pushDebug("query failed: " + msg.err.Error())
			return m, nil
		}
		if msg.res != nil {
			m.results.SetResult(msg.res, msg.notice)
			m.pushDebug(fmt.Sprintf("query returned %d rows", msg.res.RowCount))
		} else {
			m.results.SetSuccess(msg.message)
			m.pushDebug("statement executed")
		}
		// Any successful statement may have changed the table list.
		m.needsTablesRefresh = true
		return m, m.fetchTablesCmd()

	case schemaLoadedMsg:
		if msg.err != nil {
			m.expandedTable = -1
			m.statusbar.SetMessage("Could not describe " + msg.table + ": " + msg.err.Error())
			return m, nil
		}
		m.schemas[msg.table] = msg.schema
		return m, nil

	case connectionSavedMsg:
		if msg.err != nil {
			m.pushDebug("could not save connection: " + msg.err.Error())
		}
		return m, nil

	case results.StatusNotifyMsg:
		m.results.SetStatus(msg.Message)
		return m, nil

	case editor.ExecuteQueryMsg:
		m.results.SetLoading(true)
		return m, m.executeQueryCmd(msg.Query)
	}

	return m, nil
}

func (m Model) updateDbType(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.dbTypeCursor > 0 {
			m.dbTypeCursor--
		}
	case "down", "j":
		if m.dbTypeCursor < len(backendChoices)-1 {
			m.dbTypeCursor++
		}
	case "enter":
		m.backend = backendChoices[m.dbTypeCursor]
		if m.backend == db.BackendSQLite {
			return m.showPopup("SQLite support is coming soon."), nil
		}
		m.form = newConnForm(m.backend)
		m.connErr = ""
		m.screen = ScreenConnInput
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateConnInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Error modal over the form; dismiss it before touching the form again.
	if m.connErr != "" {
		switch msg.String() {
		case "enter", "esc":
			m.connErr = ""
		}
		return m, nil
	}

	if msg.String() == "esc" {
		m.screen = ScreenDbType
		return m, nil
	}

	form, cmd, submitted := m.form.Update(msg)
	m.form = form
	if submitted {
		return m, m.connectCmd(m.form.Params())
	}
	return m, cmd
}

func (m Model) updateDbSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.dbCursor > 0 {
			m.dbCursor--
		}
	case "down", "j":
		if m.dbCursor < len(m.databases)-1 {
			m.dbCursor++
		}
	case "enter":
		if m.dbCursor < len(m.databases) {
			return m, m.connectToDatabaseCmd(m.databases[m.dbCursor])
		}
	case "r":
		m.needsDBRefresh = true
		return m, m.fetchDatabasesCmd()
	case "esc":
		m.service.Disconnect()
		m.statusbar.SetConnected(false, "")
		m.screen = ScreenConnInput
		return m, nil
	case "q":
		return m, tea.Quit
	}
	m.dbScroll = results.FollowScroll(m.dbScroll, m.dbCursor, m.listVisible())
	return m, nil
}

func (m Model) updateTableView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "f1":
		m.editor.Clear()
		m.results.Clear()
		m.screen = ScreenDbSelect
		m.needsDBRefresh = true
		return m, m.fetchDatabasesCmd()
	case "tab":
		m.cycleFocus()
		return m, nil
	case "shift+tab":
		m.cycleFocusBack()
		return m, nil
	case "f5", "ctrl+e":
		if query := m.editor.Value(); query != "" {
			m.results.SetLoading(true)
			return m, m.executeQueryCmd(query)
		}
		return m, nil
	}

	if m.focus == FocusTables {
		return m.updateTablesList(msg)
	}
	return m.updateComponents(msg)
}

func (m Model) updateTablesList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.tableCursor > 0 {
			m.tableCursor--
		}
	case "down", "j":
		if m.tableCursor < len(m.tables)-1 {
			m.tableCursor++
		}
	case "enter":
		if m.tableCursor >= len(m.tables) {
			break
		}
		if m.expandedTable == m.tableCursor {
			m.expandedTable = -1
			break
		}
		m.expandedTable = m.tableCursor
		table := m.tables[m.tableCursor]
		if _, ok := m.schemas[table]; !ok {
			return m, m.describeTableCmd(table)
		}
	case "s":
		if m.tableCursor < len(m.tables) {
			query := fmt.Sprintf("SELECT * FROM %s LIMIT 100", m.tables[m.tableCursor])
			m.editor.SetQuery(query)
			m.results.SetLoading(true)
			return m, m.executeQueryCmd(query)
		}
	case "r":
		m.needsTablesRefresh = true
		return m, m.fetchTablesCmd()
	}
	m.tablesScroll = results.FollowScroll(m.tablesScroll, m.tableCursor, m.listVisible())
	return m, nil
}

func (m Model) updatePopup(tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the popup.
	m.screen = m.prevScreen
	return m, nil
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusEditor:
		m.editor, cmd = m.editor.Update(msg)
	case FocusResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) showPopup(message string) Model {
	m.prevScreen = m.screen
	if m.screen == ScreenPopup {
		m.prevScreen = ScreenDbType
	}
	m.popupMsg = message
	m.screen = ScreenPopup
	return m
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case FocusTables:
		m.setFocus(FocusEditor)
	case FocusEditor:
		m.setFocus(FocusResults)
	case FocusResults:
		m.setFocus(FocusTables)
	}
}

func (m *Model) cycleFocusBack() {
	switch m.focus {
	case FocusTables:
		m.setFocus(FocusResults)
	case FocusEditor:
		m.setFocus(FocusTables)
	case FocusResults:
		m.setFocus(FocusEditor)
	}
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.editor.SetFocused(f == FocusEditor)
	m.results.SetFocused(f == FocusResults)
	m.statusbar.SetActiveFocus(f.String())
}

func (m *Model) pushDebug(line string) {
	m.log.Debug().Msg(line)
	m.debug = append(m.debug, time.Now().Format("15:04:05")+" "+line)
	if len(m.debug) > debugCap {
		m.debug = m.debug[len(m.debug)-debugCap:]
	}
}

func (m Model) listVisible() int {
	v := m.height - 8
	if v < 1 {
		v = 1
	}
	return v
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	statusHeight := 1
	availHeight := m.height - statusHeight - 2

	tablesWidth := m.tablesPaneWidth()
	rightWidth := m.width - tablesWidth - 1

	editorHeight := availHeight * 40 / 100
	if editorHeight < 5 {
		editorHeight = 5
	}
	resultsHeight := availHeight - editorHeight - 2

	m.editor.SetSize(rightWidth-2, editorHeight)
	m.results.SetSize(rightWidth-2, resultsHeight)
	m.statusbar.SetWidth(m.width)
}

func (m Model) tablesPaneWidth() int {
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	if w > 38 {
		w = 38
	}
	return w
}

// Async commands

func (m *Model) connectCmd(p app.ConnParams) tea.Cmd {
	service := m.service
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		err := service.ConnectDefault(ctx, backend, p)
		return connectedMsg{err: err}
	}
}

func (m *Model) connectToDatabaseCmd(database string) tea.Cmd {
	service := m.service
	backend := m.backend
	p := m.form.Params()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		err := service.ConnectTo(ctx, backend, p, database)
		return dbConnectedMsg{database: database, err: err}
	}
}

func (m *Model) fetchDatabasesCmd() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		names, err := service.FetchDatabases(ctx)
		return databasesLoadedMsg{seq: seq, names: names, err: err}
	}
}

func (m *Model) fetchTablesCmd() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		names, err := service.FetchTables(ctx)
		return tablesLoadedMsg{seq: seq, names: names, err: err}
	}
}

func (m *Model) describeTableCmd(table string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		schema, err := service.DescribeTable(ctx, table)
		return schemaLoadedMsg{table: table, schema: schema, err: err}
	}
}

func (m *Model) executeQueryCmd(query string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		res, message, err := service.ExecuteSQL(ctx, query)
		notice := ""
		if res != nil && res.Truncated {
			notice = "Results limited to 1000 rows"
		}
		return queryExecutedMsg{res: res, notice: notice, message: message, err: err}
	}
}

func (m *Model) saveConnectionCmd() tea.Cmd {
	cfg := m.cfg
	secrets := m.secrets
	backend := m.backend
	p := m.form.Params()
	return func() tea.Msg {
		driver := strings.ToLower(backend.String())
		conn := config.Connection{
			Name:     fmt.Sprintf("%s-%s-%s", driver, p.Hostname, p.Port),
			Driver:   driver,
			Host:     p.Hostname,
			Username: p.Username,
		}
		conn.Port, _ = strconv.Atoi(p.Port)
		cfg.AddConnection(conn)
		if err := config.Save(cfg); err != nil {
			return connectionSavedMsg{err: err}
		}
		if secrets != nil && p.Password != "" {
			if err := secrets.SetPassword(conn.Name, p.Password); err != nil {
				return connectionSavedMsg{err: err}
			}
		}
		return connectionSavedMsg{err: nil}
	}
}
