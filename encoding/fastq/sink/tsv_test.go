package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
)

func TestTSVWritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	var w TSV
	tables := TableDescriptor{
		TableSequence: {
			"NAME": {Expression: "ascii"},
			"READ": {Expression: "ascii"},
		},
	}
	assert.NoError(t, w.Open(dir, "schema", DatabaseGenericFastq, "loader", "1.0", tables))
	assert.NoError(t, w.Write(TableSequence, Row{"NAME": "read1", "READ": "ACGT"}))
	assert.NoError(t, w.Close())

	out, err := os.ReadFile(filepath.Join(dir, "sequence.tsv"))
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.EQ(t, len(lines), 3)
	assert.EQ(t, lines[1], "NAME\tREAD")
	assert.EQ(t, lines[2], "read1\tACGT")
}

func TestTSVFormatsSliceCells(t *testing.T) {
	dir := t.TempDir()
	var w TSV
	tables := TableDescriptor{
		TableSequence: {
			"READ_LENGTH": {Expression: "uint32", ElemBits: 32},
			"READ_FILTER": {Expression: "uint8", ElemBits: 8},
		},
	}
	assert.NoError(t, w.Open(dir, "schema", DatabaseGenericFastq, "loader", "1.0", tables))
	row := Row{"READ_LENGTH": []int{4, 8}, "READ_FILTER": []bool{false, true}}
	assert.NoError(t, w.Write(TableSequence, row))
	assert.NoError(t, w.Close())

	out, err := os.ReadFile(filepath.Join(dir, "sequence.tsv"))
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.EQ(t, len(lines), 3)
	assert.EQ(t, lines[2], "4,8\t0,1")
}

func TestTSVWriteRejectsUnopenedTable(t *testing.T) {
	var w TSV
	assert.Error(t, w.Write(TableConsensus, Row{"NAME": "x"}))
}
