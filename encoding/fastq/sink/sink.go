// Package sink defines the typed, append-only column writer that the
// ingestion engine pushes spots to. The engine treats this as an external
// collaborator: it knows only the Writer interface and the two table names
// (SEQUENCE, CONSENSUS) it writes to.
package sink

// ColumnDescriptor names one column's storage expression, its element
// width, and an optional default value substituted when a row omits it.
type ColumnDescriptor struct {
	Expression string
	ElemBits   int
	Default    interface{}
}

// TableDescriptor maps table name to column name to descriptor. A column
// absent from a table's map is elided from every row written to that table.
type TableDescriptor map[string]map[string]ColumnDescriptor

// Row is one table row, keyed by column name.
type Row map[string]interface{}

// Writer is the archive writer the ingestion engine pushes spots to. Open is
// called once per run; Write once per spot (per table, for the Nanopore
// SEQUENCE+CONSENSUS case); Close flushes and finalizes the output.
type Writer interface {
	Open(outputPath, schemaName, databaseName, loaderName, loaderVersion string, tables TableDescriptor) error
	Write(table string, row Row) error
	Close() error
}

// Database names the VDB schema database selected for a run.
const (
	DatabaseGenericFastq = "NCBI:SRA:GenericFastq:db"
	DatabaseNanopore     = "NCBI:SRA:GenericFastq:Nanopore:db"
	DatabaseAbsolid      = "NCBI:SRA:GenericFastq:Absolid:db"
	DatabaseLogOdds      = "NCBI:SRA:GenericFastq:LogOdds:db"
	DatabaseNoNames      = "NCBI:SRA:GenericFastq:NoNames:db"
)

// TableSequence and TableConsensus are the two tables the engine ever
// writes to; CONSENSUS is used only for Nanopore 2D rows.
const (
	TableSequence = "SEQUENCE"
	TableConsensus = "CONSENSUS"
)
