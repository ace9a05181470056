package postgres

// SQL queries for PostgreSQL catalog introspection.
const (
	queryListDatabases = `
		SELECT datname
		FROM pg_database
		WHERE datistemplate = false
		ORDER BY datname`

	queryListTables = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	// The table name is interpolated by the caller; see Client.DescribeTable.
	queryDescribeTable = `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = '%s'
		ORDER BY ordinal_position`
)
