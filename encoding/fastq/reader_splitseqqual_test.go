package fastq

import (
	"strings"
	"testing"
)

func TestSplitSeqQualReaderHappyPath(t *testing.T) {
	seqLS := newLineSource(strings.NewReader(">read1\nACGT\n>read2\nTTTT\n"))
	qualLS := newLineSource(strings.NewReader(">read1\n30 31 32 33\n>read2\n10 11 12 13\n"))
	r := newSplitSeqQualReader(seqLS, qualLS, false, "seq.fasta", "qual.fasta")

	if !r.Read() {
		t.Fatalf("Read() #1 failed: %v", r.Err())
	}
	if r.Defline().Name != "read1" {
		t.Errorf("name = %q, want read1", r.Defline().Name)
	}
	if r.Seq().Upper != "ACGT" {
		t.Errorf("seq = %q, want ACGT", r.Seq().Upper)
	}
	if len(r.Qual().Values) != 4 || r.Qual().Values[0] != 30 {
		t.Errorf("qual values = %v", r.Qual().Values)
	}

	if !r.Read() {
		t.Fatalf("Read() #2 failed: %v", r.Err())
	}
	if r.Defline().Name != "read2" {
		t.Errorf("name = %q, want read2", r.Defline().Name)
	}

	if r.Read() {
		t.Fatalf("expected EOF after two records")
	}
}

func TestSplitSeqQualReaderNameMismatchIsFatal(t *testing.T) {
	seqLS := newLineSource(strings.NewReader(">read1\nACGT\n"))
	qualLS := newLineSource(strings.NewReader(">differentname\n30 31 32 33\n"))
	r := newSplitSeqQualReader(seqLS, qualLS, false, "seq.fasta", "qual.fasta")

	if r.Read() {
		t.Fatalf("expected Read() to fail on a seq/qual name mismatch")
	}
	if !IsKind(r.Err(), FatalStream) {
		t.Errorf("expected a FatalStream error, got %v", r.Err())
	}
}
