package fastq

import "testing"

func TestConfigValidateRejectsIgnoreNamesWithOrphanReads(t *testing.T) {
	c := &Config{IgnoreNames: true, OrphanReads: true}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error when ignoreNames and orphanReads are both set")
	}
}

func TestConfigValidateRequiresBothPairFileLists(t *testing.T) {
	c := &Config{Read1PairFiles: []string{"a.fastq"}}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error when only one of read1PairFiles/read2PairFiles is set")
	}
}

func TestConfigValidateRejectsMismatchedPairFileCounts(t *testing.T) {
	c := &Config{Read1PairFiles: []string{"a.fastq", "b.fastq"}, Read2PairFiles: []string{"c.fastq"}}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for mismatched read1/read2 pair file counts")
	}
}

func TestConfigValidateRejectsBadOffset(t *testing.T) {
	c := &Config{OffsetForced: true, Offset: 40}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for an offset outside {0,33,64}")
	}
}

func TestConfigValidateAcceptsGoodOffsets(t *testing.T) {
	for _, off := range []int{0, 33, 64} {
		c := &Config{OffsetForced: true, Offset: off}
		if err := c.Validate(); err != nil {
			t.Errorf("offset %d: unexpected error %v", off, err)
		}
	}
}

func TestConfigValidateRejectsTooManyZeroReadLens(t *testing.T) {
	c := &Config{ReadLens: []int{0, 100, 0}}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for more than one zero (\"fill\") entry in readLens")
	}
}

func TestConfigValidateRejectsReadLensCountOutOfRange(t *testing.T) {
	c := &Config{ReadLens: []int{100}}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected an error for a single-entry readLens")
	}
}

func TestConfigValidateDefaultsMaxErrorCount(t *testing.T) {
	c := &Config{}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.MaxErrorCount != DefaultMaxErrorCount {
		t.Errorf("MaxErrorCount = %d, want default %d", c.MaxErrorCount, DefaultMaxErrorCount)
	}
}

func TestParsePlatform(t *testing.T) {
	cases := map[string]Platform{
		"ILLUMINA": PlatformIllumina,
		"solid":    PlatformABSolid,
		"NANOPORE": PlatformNanopore,
		"sanger":   PlatformLS454,
	}
	for in, want := range cases {
		got, ok := ParsePlatform(in)
		if !ok {
			t.Errorf("ParsePlatform(%q) failed", in)
		}
		if got != want {
			t.Errorf("ParsePlatform(%q) = %v, want %v", in, got, want)
		}
	}
	if _, ok := ParsePlatform("not-a-real-platform"); ok {
		t.Errorf("expected ParsePlatform to reject an unrecognized platform")
	}
}

func TestDatabaseName(t *testing.T) {
	c := &Config{}
	if got := c.DatabaseName(PlatformNanopore); got != "NCBI:SRA:GenericFastq:Nanopore:db" {
		t.Errorf("DatabaseName(Nanopore) = %q", got)
	}
	if got := c.DatabaseName(PlatformABSolid); got != "NCBI:SRA:GenericFastq:Absolid:db" {
		t.Errorf("DatabaseName(ABSolid) = %q", got)
	}
	ignoreNames := &Config{IgnoreNames: true}
	if got := ignoreNames.DatabaseName(PlatformIllumina); got != "NCBI:SRA:GenericFastq:NoNames:db" {
		t.Errorf("DatabaseName(IgnoreNames) = %q", got)
	}
	if got := c.DatabaseName(PlatformIllumina); got != "NCBI:SRA:GenericFastq:db" {
		t.Errorf("DatabaseName(default) = %q", got)
	}
}
