package main

// bio-fastq-load ingests one or more FASTQ/FASTA files into the column-sink
// API, inferring file shape, pairing, and quality encoding along the way.
//
// Usage: bio-fastq-load [flags] input.fastq [input2.fastq ...]

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fastqload/encoding/fastq"
	"github.com/grailbio/fastqload/encoding/fastq/sink"
)

var (
	offsetFlag        = flag.String("offset", "", "Force quality offset: 0, 33, or 64 (also accepts PHRED_0/33/64). Disables the encoding prescan.")
	qualityFlag       = flag.String("quality", "", "Alias for -offset.")
	logOddsFlag       = flag.Bool("logOdds", false, "Force log-odds quality. The quality encoding uses it only together with -offset/-quality; flag order does not matter.")
	readLensFlag      = flag.String("readLens", "", "Comma-separated read lengths for multi-read single-file mode. One entry may be 0, meaning \"fill to end\".")
	readTypesFlag     = flag.String("readTypes", "", "Concatenated B|T string, one character per read in -readLens.")
	readLabelsFlag    = flag.String("readLabels", "", "Comma-separated read labels, one per read in -readLens.")
	spotGroupFlag     = flag.String("spotGroup", "", "Literal override for the barcode/spot-group column.")
	orphanReadsFlag   = flag.Bool("orphanReads", false, "Force orphan-tolerant pairing, even if strict pairing would succeed.")
	ignoreNamesFlag   = flag.Bool("ignoreNames", false, "Drop emitted read names.")
	discardNamesFlag  = flag.Bool("discardNames", false, "Alias for -ignoreNames.")
	read1PairFlag     = flag.String("read1PairFiles", "", "Comma-separated explicit read-1 file list. Requires -read2PairFiles.")
	read2PairFlag     = flag.String("read2PairFiles", "", "Comma-separated explicit read-2 file list. Requires -read1PairFiles.")
	platformFlag      = flag.String("platform", "", "Force platform: 454|LS454|ILLUMINA|ABI|SOLID|ABSOLID|ABISOLID|PACBIO|PACBIO_SMRT|CAPILLARY|SANGER|NANOPORE|HELICOS|ION_TORRENT|UNDEFINED|MIXED.")
	mixedDeflinesFlag = flag.Bool("mixedDeflines", false, "Disable per-file defline-variant latching.")
	schemaFlag        = flag.String("schema", "", "Alternate VDB schema name.")
	maxErrorCountFlag = flag.Int("maxErrorCount", fastq.DefaultMaxErrorCount, "Abort after this many record errors.")
	read1TechFlag     = flag.Bool("read1IsTechnical", false, "Mark read 1 of a pair as technical instead of biological.")
	read2TechFlag     = flag.Bool("read2IsTechnical", false, "Mark read 2 of a pair as technical instead of biological.")
	outputFlag        = flag.String("output", "", "Output path passed to the sink writer.")
	formatFlag        = flag.String("format", "tsv", "Sink backend: tsv or null.")
	versionFlag       = flag.Bool("version", false, "Print the version and exit.")
)

const version = "1.0.0"

func parseOffset(s string) (int, bool, error) {
	switch strings.ToUpper(s) {
	case "":
		return 0, false, nil
	case "PHRED_0", "0":
		return 0, true, nil
	case "PHRED_33", "33":
		return 33, true, nil
	case "PHRED_64", "64":
		return 64, true, nil
	default:
		return 0, false, fmt.Errorf("unrecognized offset %q", s)
	}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseReadLens(s string) ([]int, error) {
	fields := splitNonEmpty(s)
	lens := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("readLens: %v", err)
		}
		lens[i] = n
	}
	return lens, nil
}

func parseReadTypes(s string) ([]fastq.ReadKind, error) {
	if s == "" {
		return nil, nil
	}
	kinds := make([]fastq.ReadKind, len(s))
	for i, c := range s {
		switch c {
		case 'B', 'b':
			kinds[i] = fastq.Biological
		case 'T', 't':
			kinds[i] = fastq.Technical
		default:
			return nil, fmt.Errorf("readTypes: unrecognized character %q", c)
		}
	}
	return kinds, nil
}

func buildConfig() (*fastq.Config, error) {
	cfg := &fastq.Config{
		SpotGroup:        *spotGroupFlag,
		OrphanReads:      *orphanReadsFlag,
		IgnoreNames:      *ignoreNamesFlag || *discardNamesFlag,
		Read1PairFiles:   splitNonEmpty(*read1PairFlag),
		Read2PairFiles:   splitNonEmpty(*read2PairFlag),
		MixedDeflines:    *mixedDeflinesFlag,
		Schema:           *schemaFlag,
		MaxErrorCount:    *maxErrorCountFlag,
		Read1IsTechnical: *read1TechFlag,
		Read2IsTechnical: *read2TechFlag,
		LogOdds:          *logOddsFlag,
		OutputPath:       *outputFlag,
	}

	offsetStr := *offsetFlag
	if offsetStr == "" {
		offsetStr = *qualityFlag
	}
	offset, forced, err := parseOffset(offsetStr)
	if err != nil {
		return nil, err
	}
	cfg.Offset, cfg.OffsetForced = offset, forced

	if cfg.ReadLens, err = parseReadLens(*readLensFlag); err != nil {
		return nil, err
	}
	if cfg.ReadTypes, err = parseReadTypes(*readTypesFlag); err != nil {
		return nil, err
	}
	cfg.ReadLabels = splitNonEmpty(*readLabelsFlag)

	if *platformFlag != "" {
		p, ok := fastq.ParsePlatform(*platformFlag)
		if !ok {
			return nil, fmt.Errorf("unrecognized platform %q", *platformFlag)
		}
		cfg.Platform = p
	}
	return cfg, nil
}

func buildSink() sink.Writer {
	switch *formatFlag {
	case "null":
		return &sink.Null{}
	default:
		return &sink.TSV{}
	}
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: bio-fastq-load [flags] input.fastq [input2.fastq ...]

Ingests one or more FASTQ/FASTA files, inferring file shape, file pairing,
and quality encoding, and writes SEQUENCE (and, for Nanopore, CONSENSUS) rows
through the configured sink backend.
`)
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	if *versionFlag {
		fmt.Println(version)
		return
	}

	cfg, err := buildConfig()
	if err != nil {
		log.Error.Printf("fastq: %v", err)
		os.Exit(1)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	w := buildSink()
	ing := fastq.NewIngest(cfg, w, paths)
	stats, err := ing.Run(context.Background())
	if err != nil {
		log.Error.Printf("fastq: %v", err)
		if fastq.IsKind(err, fastq.Configuration) {
			os.Exit(1)
		}
		os.Exit(2)
	}
	log.Info.Printf("fastq: %d file(s), %d record error(s), offset=%d logOdds=%v",
		stats.FilesProcessed, stats.RecordErrors, stats.Offset, stats.LogOdds)
}
