package schema

// Table is a snapshot of one table's columns and indexes. Columns are in
// ordinal position order, indexes in extraction order.
type Table struct {
	Name    string
	Columns Ordered[Column]
	Indexes Ordered[TableIndex]
}

// NewTable creates an empty table snapshot
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Qualify returns schema.table
func Qualify(schemaName, table string) string {
	return schemaName + "." + table
}
