package fastq

import (
	"strings"
	"testing"
)

func TestDetectShapeNormal(t *testing.T) {
	ls := newLineSource(strings.NewReader("@read1\nACGT\n+\nIIII\n@read2\nTTTT\n+\n!!!!\n"))
	typ, err := detectShape(ls, false, "test.fastq")
	if err != nil {
		t.Fatalf("detectShape: %v", err)
	}
	if typ != TypeNormal {
		t.Errorf("type = %v, want TypeNormal", typ)
	}
	// detectShape must restore the stream: a reader built on ls afterwards
	// should still see the first record.
	r := newFourLineReader(ls, false, "test.fastq")
	if !r.Read() {
		t.Fatalf("Read() after detectShape failed: %v", r.Err())
	}
	if r.Defline().Name != "read1" {
		t.Errorf("name = %q, want read1", r.Defline().Name)
	}
}

func TestDetectShapeMultiLine(t *testing.T) {
	ls := newLineSource(strings.NewReader("@read1\nAC\nGT\n+\nII\nII\n@read2\nAC\nGT\n+\nII\nII\n"))
	typ, err := detectShape(ls, false, "test.fastq")
	if err != nil {
		t.Fatalf("detectShape: %v", err)
	}
	if typ != TypeMultiLine {
		t.Errorf("type = %v, want TypeMultiLine", typ)
	}
}

func TestDetectShapeEightLine(t *testing.T) {
	data := "@pair/1\nACGT\n+\nIIII\n@pair/2\nTTTT\n+\n!!!!\n"
	ls := newLineSource(strings.NewReader(data))
	typ, err := detectShape(ls, false, "test.fastq")
	if err != nil {
		t.Fatalf("detectShape: %v", err)
	}
	if typ != TypeEightLine {
		t.Errorf("type = %v, want TypeEightLine", typ)
	}
}

func TestDetectShapeSingleLine(t *testing.T) {
	ls := newLineSource(strings.NewReader("read1:ACGT:IIII\nread2:TTTT:!!!!\n"))
	typ, err := detectShape(ls, false, "test.fastq")
	if err != nil {
		t.Fatalf("detectShape: %v", err)
	}
	if typ != TypeSingleLine {
		t.Errorf("type = %v, want TypeSingleLine", typ)
	}
}

func TestDetectFastaPairingFindsQualPartner(t *testing.T) {
	seqLS := newLineSource(strings.NewReader(">read1\nACGT\n"))
	qualLS := newLineSource(strings.NewReader(">read1\n30 31 32 33\n"))
	sources := []*lineSource{seqLS, qualLS}
	names := []string{"seq.fasta", "qual.fasta"}
	claimed := []bool{false, false}

	j, ok := detectFastaPairing(0, sources, false, claimed, names)
	if !ok {
		t.Fatalf("expected a quality partner to be found")
	}
	if j != 1 {
		t.Errorf("partner index = %d, want 1", j)
	}
}

func TestDetectFastaPairingNoPartner(t *testing.T) {
	seqLS := newLineSource(strings.NewReader(">read1\nACGT\n"))
	otherLS := newLineSource(strings.NewReader(">somethingelse\nGGGG\n"))
	sources := []*lineSource{seqLS, otherLS}
	names := []string{"a.fasta", "b.fasta"}
	claimed := []bool{false, false}

	if _, ok := detectFastaPairing(0, sources, false, claimed, names); ok {
		t.Errorf("expected no quality partner for unrelated FASTA files")
	}
}
