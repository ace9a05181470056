package db

// ColumnSchema describes one column of a table as reported by the backend's
// catalog. DataType keeps the backend-native type name.
type ColumnSchema struct {
	Name       string
	DataType   string
	IsNullable bool
	Default    *string
}

// TableSchema is the introspected shape of a table. Indexes is reserved and
// always empty for now.
type TableSchema struct {
	TableName string
	Columns   []ColumnSchema
	Indexes   []string
}

// ColumnNames returns the column names in catalog order.
func (t TableSchema) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
