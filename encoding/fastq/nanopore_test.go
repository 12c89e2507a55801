package fastq

import (
	"strings"
	"testing"

	"github.com/grailbio/fastqload/encoding/fastq/sink"
)

func newTestNanoporeReader(t *testing.T, filename, data string) Reader {
	t.Helper()
	return newFourLineReader(newLineSource(strings.NewReader(data)), false, filename)
}

func TestAssembleNanoporeJoinsTemplateComplementAnd2D(t *testing.T) {
	w := &recordingWriter{}
	a := newTestAssembler(w)

	template := newTestNanoporeReader(t, "sample.template.fastq", "@channel_1_read_5\nACGT\n+\nIIII\n")
	complement := newTestNanoporeReader(t, "sample.complement.fastq", "@channel_1_read_5\nTTTT\n+\n!!!!\n")
	twoD := newTestNanoporeReader(t, "sample.2d.fastq", "@channel_1_read_5\nGGGG\n+\nIIII\n")

	if err := a.AssembleNanopore(template, complement, twoD); err != nil {
		t.Fatalf("AssembleNanopore: %v", err)
	}

	seqRows, consensusRows := 0, 0
	for _, row := range w.rows {
		switch row["READ"] {
		case "ACGTTTTT":
			seqRows++
		case "GGGG":
			consensusRows++
		}
	}
	if seqRows != 1 {
		t.Errorf("got %d SEQUENCE rows, want 1", seqRows)
	}
	if consensusRows != 1 {
		t.Errorf("got %d CONSENSUS rows, want 1", consensusRows)
	}
}

func TestAssembleNanoporeFakesConsensusForUnmatched2D(t *testing.T) {
	w := &recordingWriter{}
	a := newTestAssembler(w)

	template := newTestNanoporeReader(t, "sample.template.fastq", "@channel_2_read_9\nACGT\n+\nIIII\n")
	complement := newTestNanoporeReader(t, "sample.complement.fastq", "@channel_2_read_9\nTTTT\n+\n!!!!\n")

	if err := a.AssembleNanopore(template, complement, nil); err != nil {
		t.Fatalf("AssembleNanopore: %v", err)
	}

	if len(w.rows) != 2 {
		t.Fatalf("wrote %d rows, want 2 (one SEQUENCE, one fake CONSENSUS)", len(w.rows))
	}
	var consensusRow map[string]interface{}
	for _, row := range w.rows {
		if row["READ"] == "" {
			consensusRow = row
		}
	}
	if consensusRow == nil {
		t.Fatalf("expected a fake CONSENSUS row to keep SEQUENCE/CONSENSUS rows aligned")
	}
	if consensusRow["READ"] != "" {
		t.Errorf("fake CONSENSUS READ = %v, want empty", consensusRow["READ"])
	}
}

func TestAssembleNanoporeTwoDOnlyEmitsNoSequenceRows(t *testing.T) {
	w := &recordingWriter{}
	a := newTestAssembler(w)

	twoD := newTestNanoporeReader(t, "sample.2d.fastq", "@channel_4_read_2\nGGGG\n+\nIIII\n@channel_4_read_3\nCCCC\n+\nIIII\n")

	if err := a.AssembleNanopore(nil, nil, twoD); err != nil {
		t.Fatalf("AssembleNanopore: %v", err)
	}
	if len(w.rows) != 2 {
		t.Fatalf("wrote %d rows, want 2 (CONSENSUS only, no SEQUENCE)", len(w.rows))
	}
	for _, table := range w.tables {
		if table != sink.TableConsensus {
			t.Errorf("table = %q, want only %q for a standalone 2D file", table, sink.TableConsensus)
		}
	}
}

func TestAssembleNanoporeFakesSequenceForUnmatchedTemplate(t *testing.T) {
	w := &recordingWriter{}
	a := newTestAssembler(w)

	template := newTestNanoporeReader(t, "sample.template.fastq", "@channel_3_read_1\nACGT\n+\nIIII\n")

	if err := a.AssembleNanopore(template, nil, nil); err != nil {
		t.Fatalf("AssembleNanopore: %v", err)
	}
	// With no 2D file and no complement, the template drains as a
	// fake-paired SEQUENCE row, and the absent 2D pass still emits a
	// fake CONSENSUS row so the two tables stay aligned by name.
	if len(w.rows) != 2 {
		t.Fatalf("wrote %d rows, want 2", len(w.rows))
	}
	var sawSequence, sawConsensus bool
	for _, row := range w.rows {
		if row["READ"] == "ACGT" {
			sawSequence = true
		}
		if row["READ"] == "" {
			sawConsensus = true
		}
	}
	if !sawSequence {
		t.Errorf("expected a SEQUENCE row with READ=ACGT (real side only, fake side empty)")
	}
	if !sawConsensus {
		t.Errorf("expected a fake CONSENSUS row")
	}
}
