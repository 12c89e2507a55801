package fastq

import "strings"

// Config is the resolved configuration surface for one ingestion run. The
// CLI (cmd/bio-fastq-load) is responsible for parsing flags into this
// struct; this package only validates and applies it.
type Config struct {
	// Offset is the forced quality offset {0, 33, 64}. It applies only when
	// OffsetForced is set; otherwise the quality-encoding prescan decides.
	Offset      int
	OffsetForced bool
	LogOdds     bool

	ReadLens   []int
	ReadTypes  []ReadKind
	ReadLabels []string

	SpotGroup string

	OrphanReads bool

	IgnoreNames bool

	Read1PairFiles []string
	Read2PairFiles []string

	Platform Platform

	MixedDeflines bool

	Schema string

	// OutputPath is passed through to the sink's Open call unchanged.
	OutputPath string

	MaxErrorCount int

	Read1IsTechnical bool
	Read2IsTechnical bool
}

// ReadKind is the Biological/Technical tag for one read of a spot.
type ReadKind int

const (
	Biological ReadKind = 1
	Technical  ReadKind = 0
)

// DefaultMaxErrorCount is applied when Config.MaxErrorCount is zero.
const DefaultMaxErrorCount = 100000

// Validate implements the configuration-time rejections this package
// requires before a run can start.
func (c *Config) Validate() error {
	if c.IgnoreNames && c.OrphanReads {
		return errorf(Configuration, "", "ignoreNames and orphanReads may not both be set")
	}
	if (len(c.Read1PairFiles) > 0) != (len(c.Read2PairFiles) > 0) {
		return errorf(Configuration, "", "read1PairFiles and read2PairFiles must both be present or both absent")
	}
	if len(c.Read1PairFiles) > 0 && len(c.Read1PairFiles) != len(c.Read2PairFiles) {
		return errorf(Configuration, "", "read1PairFiles and read2PairFiles must name the same number of files")
	}
	if c.OffsetForced {
		switch c.Offset {
		case 0, 33, 64:
		default:
			return errorf(Configuration, "", "offset must be one of 0, 33, 64, got %d", c.Offset)
		}
	}
	if len(c.ReadTypes) > 0 && len(c.ReadTypes) != len(c.ReadLens) {
		return errorf(Configuration, "", "readTypes count (%d) must match readLens count (%d)", len(c.ReadTypes), len(c.ReadLens))
	}
	if len(c.ReadLabels) > 0 && len(c.ReadLabels) != len(c.ReadLens) {
		return errorf(Configuration, "", "readLabels count (%d) must match readLens count (%d)", len(c.ReadLabels), len(c.ReadLens))
	}
	zeros := 0
	for _, l := range c.ReadLens {
		if l == 0 {
			zeros++
		}
	}
	if zeros > 1 {
		return errorf(Configuration, "", "readLens may contain at most one zero (\"fill\") entry")
	}
	if len(c.ReadLens) > 0 && (len(c.ReadLens) < 2 || len(c.ReadLens) > 4) {
		return errorf(Configuration, "", "multi-read mode supports 2, 3, or 4 reads, got %d", len(c.ReadLens))
	}
	if c.MaxErrorCount == 0 {
		c.MaxErrorCount = DefaultMaxErrorCount
	}
	return nil
}

// ParsePlatform maps a --platform string to a Platform, per the
// 6.3's recognized set.
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToUpper(s) {
	case "454", "LS454":
		return PlatformLS454, true
	case "ILLUMINA":
		return PlatformIllumina, true
	case "ABI", "SOLID", "ABSOLID", "ABISOLID":
		return PlatformABSolid, true
	case "PACBIO", "PACBIO_SMRT":
		return PlatformPacBio, true
	case "CAPILLARY", "SANGER":
		return PlatformLS454, true
	case "NANOPORE":
		return PlatformNanopore, true
	case "HELICOS":
		return PlatformHelicos, true
	case "ION_TORRENT":
		return PlatformIonTorrent, true
	case "UNDEFINED", "MIXED":
		return PlatformUndefined, true
	default:
		return PlatformUndefined, false
	}
}

// DatabaseName selects the VDB database for the resolved platform.
func (c *Config) DatabaseName(platform Platform) string {
	switch {
	case platform == PlatformNanopore:
		return "NCBI:SRA:GenericFastq:Nanopore:db"
	case platform == PlatformABSolid:
		return "NCBI:SRA:GenericFastq:Absolid:db"
	case c.IgnoreNames:
		return "NCBI:SRA:GenericFastq:NoNames:db"
	case c.LogOdds:
		return "NCBI:SRA:GenericFastq:LogOdds:db"
	default:
		return "NCBI:SRA:GenericFastq:db"
	}
}
