package fastq

// Variant identifies the defline grammar that produced a Defline. Order is
// not meaningful beyond identity; the classification cascade in defline.go
// is what encodes precedence.
type Variant int

const (
	UNDEFINED Variant = iota
	ILLUMINA_NEW
	ILLUMINA_NEW_NO_PREFIX
	ILLUMINA_NEW_WITH_JUNK
	ILLUMINA_NEW_DOUBLE
	ILLUMINA_OLD
	ILLUMINA_OLD_WITH_JUNK
	ILLUMINA_OLD_BC_RN
	ILLUMINA_NEW_OLD
	QIIME_ILLUMINA_NEW
	QIIME_ILLUMINA_NEW_BC
	QIIME_ILLUMINA_OLD
	QIIME_ILLUMINA_OLD_BC
	LS454
	QIIME_454
	PACBIO
	ION_TORRENT
	QIIME_GENERIC
	NANOPORE
	READID_BARCODE
	SANGER_NEWBLER
	HELICOS
	ABSOLID
)

func (v Variant) String() string {
	switch v {
	case UNDEFINED:
		return "UNDEFINED"
	case ILLUMINA_NEW:
		return "ILLUMINA_NEW"
	case ILLUMINA_NEW_NO_PREFIX:
		return "ILLUMINA_NEW_NO_PREFIX"
	case ILLUMINA_NEW_WITH_JUNK:
		return "ILLUMINA_NEW_WITH_JUNK"
	case ILLUMINA_NEW_DOUBLE:
		return "ILLUMINA_NEW_DOUBLE"
	case ILLUMINA_OLD:
		return "ILLUMINA_OLD"
	case ILLUMINA_OLD_WITH_JUNK:
		return "ILLUMINA_OLD_WITH_JUNK"
	case ILLUMINA_OLD_BC_RN:
		return "ILLUMINA_OLD_BC_RN"
	case ILLUMINA_NEW_OLD:
		return "ILLUMINA_NEW_OLD"
	case QIIME_ILLUMINA_NEW:
		return "QIIME_ILLUMINA_NEW"
	case QIIME_ILLUMINA_NEW_BC:
		return "QIIME_ILLUMINA_NEW_BC"
	case QIIME_ILLUMINA_OLD:
		return "QIIME_ILLUMINA_OLD"
	case QIIME_ILLUMINA_OLD_BC:
		return "QIIME_ILLUMINA_OLD_BC"
	case LS454:
		return "LS454"
	case QIIME_454:
		return "QIIME_454"
	case PACBIO:
		return "PACBIO"
	case ION_TORRENT:
		return "ION_TORRENT"
	case QIIME_GENERIC:
		return "QIIME_GENERIC"
	case NANOPORE:
		return "NANOPORE"
	case READID_BARCODE:
		return "READID_BARCODE"
	case SANGER_NEWBLER:
		return "SANGER_NEWBLER"
	case HELICOS:
		return "HELICOS"
	case ABSOLID:
		return "ABSOLID"
	default:
		return "UNKNOWN_VARIANT"
	}
}

// Platform is the sequencing platform a Defline was produced by, used to
// select the SEQUENCE/CONSENSUS column set and the column-sink database
// name.
type Platform int

const (
	PlatformUndefined Platform = iota
	PlatformIllumina
	PlatformLS454
	PlatformPacBio
	PlatformIonTorrent
	PlatformNanopore
	PlatformHelicos
	PlatformABSolid
)

func (p Platform) String() string {
	switch p {
	case PlatformIllumina:
		return "ILLUMINA"
	case PlatformLS454:
		return "LS454"
	case PlatformPacBio:
		return "PACBIO"
	case PlatformIonTorrent:
		return "ION_TORRENT"
	case PlatformNanopore:
		return "NANOPORE"
	case PlatformHelicos:
		return "HELICOS"
	case PlatformABSolid:
		return "ABSOLID"
	default:
		return "UNDEFINED"
	}
}

// PoreRead identifies the Nanopore read kind within a pore event.
type PoreRead int

const (
	PoreNone PoreRead = iota
	PoreTemplate
	PoreComplement
	Pore2D
)

func (p PoreRead) String() string {
	switch p {
	case PoreTemplate:
		return "template"
	case PoreComplement:
		return "complement"
	case Pore2D:
		return "2D"
	default:
		return ""
	}
}

// TagType is the ABI SOLiD read tag, distinguishing fragment/mate-pair
// sub-reads.
type TagType int

const (
	TagNone TagType = iota
	TagF3
	TagR3
	TagF5BC
	TagBC
	TagF5P2
	TagF5RNA
	TagF5DNA
)

func (t TagType) String() string {
	switch t {
	case TagF3:
		return "F3"
	case TagR3:
		return "R3"
	case TagF5BC:
		return "F5-BC"
	case TagBC:
		return "BC"
	case TagF5P2:
		return "F5-P2"
	case TagF5RNA:
		return "F5-RNA"
	case TagF5DNA:
		return "F5-DNA"
	default:
		return ""
	}
}

// Dir is the Sanger/Newbler read direction.
type Dir int

const (
	DirNone Dir = iota
	DirForward
	DirReverse
)

// Defline is the tagged record produced by classifying one header line.
// Only the fields relevant to the matched Variant are populated; the zero
// value of an unused field is never meaningful.
type Defline struct {
	Variant  Variant
	Raw      string // the original header line, including the leading '@'/'>'.
	Platform Platform

	Name       string // canonical name, stable across mates.
	ReadNum    string // "", "1".."5".
	FilterFlag bool   // true if the read failed the platform's quality filter.
	SpotGroup  string // barcode; literal "0" is normalized to "".

	// Illumina fields.
	Prefix string
	Lane   int
	Tile   int
	X      int
	Y      int

	// LS454/Newbler fields.
	DateHash string
	Region   int
	XY       string

	// Ion Torrent fields.
	RunID  string
	Row    int
	Column int

	// Nanopore fields.
	Channel  int
	ReadNo   int
	PoreRead PoreRead
	PoreFile string

	// ABI SOLiD fields.
	Panel   string
	TagType TagType

	// Helicos fields.
	FlowCell string
	HCamera  int
	HField   int
	HPos     int

	// Sanger/Newbler fields.
	TemplateDir Dir

	// QIIME fields.
	QiimeName string
}

// Valid reports whether d was populated by a successful classification.
func (d Defline) Valid() bool { return d.Variant != UNDEFINED || d.Raw != "" }
