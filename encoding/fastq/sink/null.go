package sink

// Null discards every row written to it. It is useful for dry runs and for
// exercising the ingestion engine's control flow without a real archive
// backend.
type Null struct {
	tables  TableDescriptor
	opened  bool
	rows    map[string]int
}

func (n *Null) Open(outputPath, schemaName, databaseName, loaderName, loaderVersion string, tables TableDescriptor) error {
	n.tables = tables
	n.opened = true
	n.rows = make(map[string]int)
	return nil
}

func (n *Null) Write(table string, row Row) error {
	n.rows[table]++
	return nil
}

func (n *Null) Close() error {
	n.opened = false
	return nil
}

// RowCount returns the number of rows written to table so far, for tests.
func (n *Null) RowCount(table string) int { return n.rows[table] }
