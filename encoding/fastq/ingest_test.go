package fastq

import (
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fastqload/encoding/fastq/sink"
)

func TestIngestRunFragment(t *testing.T) {
	path := writeTempFile(t, "ingest-frag-*.fastq", "@read1\nACGT\n+\nIIII\n@read2\nGGGG\n+\nIIII\n")

	w := &recordingWriter{}
	cfg := &Config{}
	ing := NewIngest(cfg, w, []string{path})

	stats, err := ing.Run(vcontext.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", stats.FilesProcessed)
	}
	if len(w.rows) != 2 {
		t.Fatalf("wrote %d rows, want 2", len(w.rows))
	}
	if w.rows[0]["NAME"] != "read1" || w.rows[1]["NAME"] != "read2" {
		t.Errorf("names = %v, %v", w.rows[0]["NAME"], w.rows[1]["NAME"])
	}
}

func TestIngestRunPairedFiles(t *testing.T) {
	r1 := writeTempFile(t, "ingest-pair-r1-*.fastq", "@read/1\nACGT\n+\nIIII\n")
	r2 := writeTempFile(t, "ingest-pair-r2-*.fastq", "@read/2\nTTTT\n+\n!!!!\n")

	w := &recordingWriter{}
	cfg := &Config{}
	ing := NewIngest(cfg, w, []string{r1, r2})

	if _, err := ing.Run(vcontext.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(w.rows) != 1 {
		t.Fatalf("wrote %d rows, want 1", len(w.rows))
	}
	if w.rows[0]["READ"] != "ACGTTTTT" {
		t.Errorf("READ = %v, want ACGTTTTT", w.rows[0]["READ"])
	}
}

func TestIngestRunLone2DFileEmitsConsensusOnly(t *testing.T) {
	path := writeTempFile(t, "sample.2d.*.fastq", "@channel_1_read_1\nGGGG\n+\nIIII\n")

	w := &recordingWriter{}
	cfg := &Config{}
	ing := NewIngest(cfg, w, []string{path})

	if _, err := ing.Run(vcontext.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(w.rows) != 1 {
		t.Fatalf("wrote %d rows, want 1 (CONSENSUS only)", len(w.rows))
	}
	if w.tables[0] != sink.TableConsensus {
		t.Errorf("table = %q, want %q for a standalone 2D file", w.tables[0], sink.TableConsensus)
	}
}

func TestIngestRunRejectsInvalidConfig(t *testing.T) {
	path := writeTempFile(t, "ingest-badcfg-*.fastq", "@read1\nACGT\n+\nIIII\n")

	w := &recordingWriter{}
	cfg := &Config{IgnoreNames: true, OrphanReads: true}
	ing := NewIngest(cfg, w, []string{path})

	if _, err := ing.Run(vcontext.Background()); err == nil {
		t.Fatalf("expected an error from an invalid configuration")
	}
}
