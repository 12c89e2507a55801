package fastq

import (
	"context"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fastqload/encoding/fastq/sink"
)

// Stats summarizes one Ingest.Run. Run fills in FilesProcessed,
// RecordErrors, Offset and LogOdds; SpotsEmitted, ResyncCount and
// RepairCount are not populated and stay zero.
type Stats struct {
	FilesProcessed int
	SpotsEmitted   int
	RecordErrors   int
	ResyncCount    int
	RepairCount    int
	Offset         int
	LogOdds        bool
}

// Ingest drives shape detection through spot emission for a full dataset:
// detect shapes, pair files, prescan the quality encoding, then assemble
// and emit spots. It owns every file handle for the run: byte streams are
// opened at the start and closed at teardown.
type Ingest struct {
	Config *Config
	Sink   sink.Writer
	Paths  []string

	handles []*fileHandle
	plans   []*FilePlan
}

// NewIngest constructs an Ingest for the given input paths and
// configuration. Paths are sorted once here; every later phase relies on
// that order.
func NewIngest(cfg *Config, w sink.Writer, paths []string) *Ingest {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	return &Ingest{Config: cfg, Sink: w, Paths: sorted}
}

// Run executes the full pipeline and returns aggregate Stats. The sink is
// opened and closed by Run; callers only construct it.
func (ing *Ingest) Run(ctx context.Context) (Stats, error) {
	if err := ing.Config.Validate(); err != nil {
		return Stats{}, err
	}

	if err := ing.openFiles(ctx); err != nil {
		return Stats{}, err
	}
	defer ing.closeFiles()

	if err := ing.detectShapes(); err != nil {
		return Stats{}, err
	}
	ing.resolveFastaPairing()
	if err := PlanPairing(ing.plans); err != nil {
		return Stats{}, err
	}

	enc, err := ing.inferEncoding()
	if err != nil {
		return Stats{}, err
	}
	log.Info.Printf("fastq: resolved offset=%d logOdds=%v across %d file(s)", enc.Offset, enc.LogOdds, len(ing.plans))

	tables := ing.tableDescriptor(enc)
	platform := ing.resolvePlatform()
	if err := ing.Sink.Open(ing.Config.OutputPath, ing.Config.Schema, ing.Config.DatabaseName(platform), "bio-fastq-load", moduleVersion, tables); err != nil {
		return Stats{}, errors.E(err, "sink open")
	}

	asm := NewAssembler(ing.Config, enc, ing.Sink)
	if err := ing.emit(asm); err != nil {
		_ = ing.Sink.Close()
		return Stats{}, err
	}
	if err := ing.Sink.Close(); err != nil {
		return Stats{}, errors.E(err, "sink close")
	}

	return ing.collectStats(asm, enc), nil
}

// moduleVersion is reported to the sink as the loader version.
const moduleVersion = "1.0.0"

func (ing *Ingest) openFiles(ctx context.Context) error {
	var errp errors.Once
	for _, p := range ing.Paths {
		fh := newFileHandle(ctx, p, &errp)
		ing.handles = append(ing.handles, fh)
	}
	return errp.Err()
}

func (ing *Ingest) closeFiles() {
	for _, fh := range ing.handles {
		if err := fh.close(); err != nil {
			log.Error.Printf("fastq: close %s: %v", fh.path, err)
		}
	}
}

func (ing *Ingest) detectShapes() error {
	ing.plans = make([]*FilePlan, len(ing.handles))
	for i, fh := range ing.handles {
		ls, err := fh.open()
		if err != nil {
			return errors.E(err, "open", fh.path)
		}
		typ, err := ing.detectOneShape(ls, fh.path)
		if err != nil {
			return err
		}
		ing.plans[i] = &FilePlan{Path: fh.path, Type: typ, LS: ls}
	}
	return nil
}

// detectOneShape handles the '>'-led branch of shape detection, which
// (unlike '@'-led files) needs visibility into sibling files to find a
// quality partner; the rest of shape detection is handled by detectShape.
func (ing *Ingest) detectOneShape(ls *lineSource, path string) (FileType, error) {
	lead, ok := ls.next()
	if !ok {
		return 0, errorf(Shape, path, "empty input")
	}
	ls.pushback(lead)
	if len(lead) > 0 && lead[0] == '>' {
		return TypeFasta, nil // seq/qual vs. plain-FASTA is resolved once all files are open, in resolveFastaPairing.
	}
	return detectShape(ls, ing.Config.MixedDeflines, path)
}

// resolveFastaPairing runs after every file has an initial FASTA guess,
// promoting pairs that validate as seq+qual to TypeSeqQual and leaving
// genuine FASTA-only files as TypeFasta.
func (ing *Ingest) resolveFastaPairing() {
	claimed := make([]bool, len(ing.plans))
	sources := make([]*lineSource, len(ing.plans))
	names := make([]string, len(ing.plans))
	for i, p := range ing.plans {
		sources[i] = p.LS
		names[i] = p.Path
	}
	for i, p := range ing.plans {
		if p.Type != TypeFasta || claimed[i] {
			continue
		}
		if j, ok := detectFastaPairing(i, sources, ing.Config.MixedDeflines, claimed, names); ok {
			ing.plans[i].Type, ing.plans[j].Type = TypeSeqQual, TypeSeqQual
			ing.plans[i].PairOf, ing.plans[j].PairOf = j, i
			ing.plans[j].Claimed = true
			claimed[i], claimed[j] = true, true
		}
	}
}

func (ing *Ingest) inferEncoding() (EncodingResult, error) {
	readers := make([]Reader, 0, len(ing.plans))
	for _, p := range ing.plans {
		if p.Type == TypeSeqQual {
			continue // paired seq/qual readers are constructed at emit time, once mates are known.
		}
		readers = append(readers, newReaderForType(p.LS, p.Type, ing.Config.MixedDeflines, p.Path))
	}
	if ing.Config.OffsetForced {
		return EncodingResult{Offset: ing.Config.Offset, LogOdds: ing.Config.LogOdds}, nil
	}
	return InferEncoding(readers, len(ing.Config.ReadLens) > 0)
}

func (ing *Ingest) resolvePlatform() Platform {
	if ing.Config.Platform != PlatformUndefined {
		return ing.Config.Platform
	}
	for _, p := range ing.plans {
		line, ok := p.LS.next()
		if ok {
			p.LS.pushback(line)
			if d, matched := classify(line, UNDEFINED); matched && d.Platform != PlatformUndefined {
				return d.Platform
			}
		}
	}
	return PlatformUndefined
}

// emit assembles and writes every resolved pair/fragment in plan order.
func (ing *Ingest) emit(asm *Assembler) error {
	for i, p := range ing.plans {
		if p.Claimed {
			continue // already consumed as the second half of a pair.
		}
		switch {
		case p.Type == TypeSeqQual:
			partner := ing.plans[p.PairOf]
			r := newSplitSeqQualReader(p.LS, partner.LS, ing.Config.MixedDeflines, p.Path, partner.Path)
			if err := asm.AssembleFragment(r); err != nil {
				return err
			}
		case p.PairOf == -1 && p.TwoDOnly:
			r := newReaderForType(p.LS, p.Type, ing.Config.MixedDeflines, p.Path)
			if err := asm.AssembleNanopore(nil, nil, r); err != nil {
				return err
			}
		case p.PairOf == -1:
			r := newReaderForType(p.LS, p.Type, ing.Config.MixedDeflines, p.Path)
			if len(ing.Config.ReadLens) > 0 {
				if err := asm.AssembleMultiRead(r); err != nil {
					return err
				}
			} else if err := asm.AssembleFragment(r); err != nil {
				return err
			}
		case p.PairOf == i && isEightLine(p.Type):
			r := newReaderForType(p.LS, p.Type, ing.Config.MixedDeflines, p.Path)
			if err := asm.AssemblePairOrphanTolerant([]Reader{r}); err != nil {
				return err
			}
		default:
			mate := ing.plans[p.PairOf]
			r1 := newReaderForType(p.LS, p.Type, ing.Config.MixedDeflines, p.Path)
			r2 := newReaderForType(mate.LS, mate.Type, ing.Config.MixedDeflines, mate.Path)
			var err error
			if p.Orphan {
				err = asm.AssemblePairOrphanTolerant([]Reader{r1, r2})
			} else if mate.TwoDOf != -1 || p.TwoDOf != -1 {
				twoD := ing.plans[pickTwoDOf(p, mate)]
				r3 := newReaderForType(twoD.LS, twoD.Type, ing.Config.MixedDeflines, twoD.Path)
				err = asm.AssembleNanopore(r1, r2, r3)
			} else {
				err = asm.AssemblePair(r1, r2)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func pickTwoDOf(a, b *FilePlan) int {
	if a.TwoDOf != -1 {
		return a.TwoDOf
	}
	return b.TwoDOf
}

func isEightLine(t FileType) bool {
	switch t {
	case TypeEightLine, TypeMultiLineEightLine, TypeEightLineFasta, TypeMultiLineEightLineFasta, TypeEightLineSeqQual, TypeMultiLineEightLineSeqQual:
		return true
	default:
		return false
	}
}

func (ing *Ingest) tableDescriptor(enc EncodingResult) sink.TableDescriptor {
	qualExpr := enc.QualityExpression()
	seqCols := map[string]sink.ColumnDescriptor{
		"NAME":        {Expression: "ascii"},
		"SPOT_GROUP":  {Expression: "ascii"},
		"PLATFORM":    {Expression: "ascii"},
		"READ":        {Expression: "ascii"},
		"READ_START":  {Expression: "uint32", ElemBits: 32},
		"READ_LENGTH": {Expression: "uint32", ElemBits: 32},
		"READ_TYPE":   {Expression: "uint8", ElemBits: 8},
		"READ_FILTER": {Expression: "uint8", ElemBits: 8},
		"QUALITY":     {Expression: qualExpr},
	}
	if enc.NeedsClipCol {
		seqCols["CLIP_QUALITY_LEFT"] = sink.ColumnDescriptor{Expression: "uint32", ElemBits: 32}
		seqCols["CLIP_QUALITY_RIGHT"] = sink.ColumnDescriptor{Expression: "uint32", ElemBits: 32}
	}
	tables := sink.TableDescriptor{sink.TableSequence: seqCols}
	if ing.needsConsensusTable() {
		consensusCols := map[string]sink.ColumnDescriptor{
			"NAME":        {Expression: "ascii"},
			"SPOT_GROUP":  {Expression: "ascii"},
			"READ":        {Expression: "ascii"},
			"READ_LENGTH": {Expression: "uint32", ElemBits: 32},
			"READ_FILTER": {Expression: "uint8", ElemBits: 8},
			"QUALITY":     {Expression: qualExpr},
			"CHANNEL":     {Expression: "uint32", ElemBits: 32},
			"READ_NO":     {Expression: "uint32", ElemBits: 32},
		}
		tables[sink.TableConsensus] = consensusCols
	}
	return tables
}

func (ing *Ingest) needsConsensusTable() bool {
	if ing.Config.Platform == PlatformNanopore {
		return true
	}
	for _, p := range ing.plans {
		if p.TwoDOf != -1 || p.TwoDOnly {
			return true
		}
	}
	return false
}

func (ing *Ingest) collectStats(asm *Assembler, enc EncodingResult) Stats {
	return Stats{
		FilesProcessed: len(ing.plans),
		RecordErrors:   asm.errorCount,
		Offset:         enc.Offset,
		LogOdds:        enc.LogOdds,
	}
}
