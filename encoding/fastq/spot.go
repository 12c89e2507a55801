package fastq

import (
	"github.com/grailbio/fastqload/encoding/fastq/sink"
)

// Spot is the canonical unit the assembler emits: one biological sample
// made of 1-N reads.
type Spot struct {
	Name       string
	SpotGroup  string
	Platform   Platform
	Seq        string
	QualASCII  string
	QualValues []int
	Numeric    bool

	ReadStart  []int
	ReadLength []int
	ReadType   []int
	ReadFilter []bool

	ClipQualityLeft, ClipQualityRight []int

	Channel, ReadNo int
	Table           string
}

// Assembler combines one, two, or three synchronized Readers
// into Spots and push them to a sink.Writer.
type Assembler struct {
	cfg        *Config
	enc        EncodingResult
	w          sink.Writer
	errorCount int
}

func NewAssembler(cfg *Config, enc EncodingResult, w sink.Writer) *Assembler {
	return &Assembler{cfg: cfg, enc: enc, w: w}
}

// recordError accounts a Record-kind error against maxErrorCount, promoting
// it to Exceeded once the budget is spent. Non-Record
// errors pass through unchanged.
func (a *Assembler) recordError(err error) error {
	if err == nil {
		return nil
	}
	if !IsKind(err, Record) {
		return err
	}
	a.errorCount++
	if a.errorCount > a.cfg.MaxErrorCount {
		return errorf(Exceeded, "", "record error count %d exceeded maxErrorCount %d", a.errorCount, a.cfg.MaxErrorCount)
	}
	return nil
}

// emitName applies the configured name-emission rule.
func (a *Assembler) emitName(d Defline) string {
	if a.cfg.IgnoreNames {
		return ""
	}
	if d.QiimeName != "" {
		return d.QiimeName + "_" + d.Name
	}
	return d.Name
}

// spotGroup applies the configured spot-group precedence.
func (a *Assembler) spotGroup(d Defline) string {
	if a.cfg.SpotGroup != "" {
		return a.cfg.SpotGroup
	}
	return d.SpotGroup
}

func orFilters(flags ...bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}
	return false
}

// AssemblePair implements the two-reader "Pair write" case. If the
// configuration (or the file pairing engine) declared orphan mode, AssemblePairOrphanTolerant
// should be used instead.
func (a *Assembler) AssemblePair(r1, r2 Reader) error {
	for {
		ok1, ok2 := r1.Read(), r2.Read()
		if err := a.recordError(r1.Err()); err != nil {
			return err
		}
		if err := a.recordError(r2.Err()); err != nil {
			return err
		}
		if !ok1 && !ok2 {
			break
		}
		if ok1 != ok2 {
			return errorf(FatalStream, "", "paired readers desynchronized: one exhausted before the other")
		}
		spot := a.buildPairSpot(r1.Defline(), r1.Seq(), r1.Qual(), r2.Defline(), r2.Seq(), r2.Qual())
		if err := a.write(spot); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) buildPairSpot(d1 Defline, seq1 Sequence, qual1 Quality, d2 Defline, seq2 Sequence, qual2 Quality) Spot {
	readType := [2]int{int(Biological), int(Biological)}
	if a.cfg.Read1IsTechnical {
		readType[0] = int(Technical)
	}
	if a.cfg.Read2IsTechnical {
		readType[1] = int(Technical)
	}
	filtered := orFilters(d1.FilterFlag, d2.FilterFlag)

	platform := d1.Platform
	if platform == PlatformUndefined {
		platform = d2.Platform
	}

	spot := Spot{
		Name:       a.emitName(d1),
		SpotGroup:  a.spotGroup(d1),
		Platform:   platform,
		Seq:        seq1.Upper + seq2.Upper,
		ReadStart:  []int{0, seq1.Len()},
		ReadLength: []int{seq1.Len(), seq2.Len()},
		ReadType:   readType[:],
		ReadFilter: []bool{filtered, filtered},
		Table:      sink.TableSequence,
	}
	combineQuality(&spot, qual1, qual2)
	combineClip(&spot, seq1, seq2)
	return spot
}

// AssembleFragment implements the single-read "Fragment write" case.
func (a *Assembler) AssembleFragment(r Reader) error {
	for r.Read() {
		if err := a.recordError(r.Err()); err != nil {
			return err
		}
		d, seq, qual := r.Defline(), r.Seq(), r.Qual()
		spot := Spot{
			Name:       a.emitName(d),
			SpotGroup:  a.spotGroup(d),
			Platform:   d.Platform,
			Seq:        seq.Upper,
			ReadStart:  []int{0},
			ReadLength: []int{seq.Len()},
			ReadType:   []int{int(Biological)},
			ReadFilter: []bool{d.FilterFlag},
			Table:      sink.TableSequence,
		}
		combineQuality(&spot, qual, Quality{})
		combineClip(&spot, seq, Sequence{})
		if err := a.write(spot); err != nil {
			return err
		}
	}
	return a.recordError(r.Err())
}

// AssembleMultiRead implements the "Multi-read single file" case: one file
// whose records each carry 2-4 reads' worth of sequence/quality, split per
// cfg.ReadLens. Exactly one zero entry means "fill to end".
func (a *Assembler) AssembleMultiRead(r Reader) error {
	for r.Read() {
		if err := a.recordError(r.Err()); err != nil {
			return err
		}
		d, seq, qual := r.Defline(), r.Seq(), r.Qual()
		starts, lens, err := splitMultiRead(seq.Len(), a.cfg.ReadLens)
		if err != nil {
			return err
		}
		readType := make([]int, len(lens))
		for i := range readType {
			if i < len(a.cfg.ReadTypes) {
				readType[i] = int(a.cfg.ReadTypes[i])
			} else {
				readType[i] = int(Biological)
			}
		}
		filters := make([]bool, len(lens))
		for i := range filters {
			filters[i] = d.FilterFlag
		}
		spot := Spot{
			Name:       a.emitName(d),
			SpotGroup:  a.spotGroup(d),
			Platform:   d.Platform,
			Seq:        seq.Upper,
			ReadStart:  starts,
			ReadLength: lens,
			ReadType:   readType,
			ReadFilter: filters,
			Table:      sink.TableSequence,
		}
		combineQuality(&spot, qual, Quality{})
		if err := a.write(spot); err != nil {
			return err
		}
	}
	return a.recordError(r.Err())
}

// splitMultiRead turns a total length and a configured read-length list
// (one zero entry allowed, meaning "fill to end") into start/length arrays.
func splitMultiRead(total int, readLens []int) (starts, lens []int, err error) {
	fillIdx := -1
	sum := 0
	for i, l := range readLens {
		if l == 0 {
			fillIdx = i
			continue
		}
		sum += l
	}
	lens = make([]int, len(readLens))
	copy(lens, readLens)
	if fillIdx >= 0 {
		fill := total - sum
		if fill < 0 {
			return nil, nil, errorf(Record, "", "configured read lengths exceed sequence length %d", total)
		}
		lens[fillIdx] = fill
	} else if sum != total {
		return nil, nil, errorf(Record, "", "configured read lengths sum to %d, sequence is %d", sum, total)
	}
	starts = make([]int, len(lens))
	pos := 0
	for i, l := range lens {
		starts[i] = pos
		pos += l
	}
	return starts, lens, nil
}

// combineQuality merges qual1 (and, if non-zero, qual2) into spot. Numeric
// quality concatenates the two []int slices directly; the sink's QUALITY
// column is typed, so no separator token is needed between them.
func combineQuality(spot *Spot, qual1, qual2 Quality) {
	if qual1.Numeric {
		spot.Numeric = true
		spot.QualValues = append(append([]int{}, qual1.Values...), qual2.Values...)
		return
	}
	spot.QualASCII = qual1.ASCII + qual2.ASCII
}

func combineClip(spot *Spot, seq1, seq2 Sequence) {
	if seq1.ClipLeft == 0 && seq1.ClipRight == 0 && seq2.ClipLeft == 0 && seq2.ClipRight == 0 {
		return
	}
	spot.ClipQualityLeft = []int{seq1.ClipLeft, seq2.ClipLeft}
	spot.ClipQualityRight = []int{seq1.ClipRight, seq2.ClipRight}
}

// AssemblePairOrphanTolerant implements the "Orphan reconciliation" case of
// orphan reconciliation: records from one or more readers arrive in arbitrary
// mate order; two name-keyed maps hold whichever side has been seen so far,
// and a drain pass after EOF emits whatever never found a mate as fragments.
func (a *Assembler) AssemblePairOrphanTolerant(readers []Reader) error {
	pairedRead1 := newOrphanMap()
	pairedRead2 := newOrphanMap()

	for _, r := range readers {
		for r.Read() {
			if err := a.recordError(r.Err()); err != nil {
				return err
			}
			d, seq, qual := r.Defline(), r.Seq(), r.Qual()
			carrier := &orphanCarrier{defline: d, seq: seq, qual: qual}

			if readSide(d) == 1 {
				if mate, ok := pairedRead2.lookupAndDelete(d.Name); ok {
					spot := a.buildPairSpot(d, seq, qual, mate.defline, mate.seq, mate.qual)
					if err := a.write(spot); err != nil {
						return err
					}
					continue
				}
				pairedRead1.insert(d.Name, carrier)
			} else {
				if mate, ok := pairedRead1.lookupAndDelete(d.Name); ok {
					spot := a.buildPairSpot(mate.defline, mate.seq, mate.qual, d, seq, qual)
					if err := a.write(spot); err != nil {
						return err
					}
					continue
				}
				pairedRead2.insert(d.Name, carrier)
			}
		}
		if err := a.recordError(r.Err()); err != nil {
			return err
		}
	}

	var drainErr error
	drain := func(name string, c *orphanCarrier) {
		if drainErr != nil {
			return
		}
		spot := Spot{
			Name:       a.emitName(c.defline),
			SpotGroup:  a.spotGroup(c.defline),
			Platform:   c.defline.Platform,
			Seq:        c.seq.Upper,
			ReadStart:  []int{0},
			ReadLength: []int{c.seq.Len()},
			ReadType:   []int{int(Biological)},
			ReadFilter: []bool{c.defline.FilterFlag},
			Table:      sink.TableSequence,
		}
		combineQuality(&spot, c.qual, Quality{})
		drainErr = a.write(spot)
	}
	pairedRead1.drain(drain)
	pairedRead2.drain(drain)
	return drainErr
}

// readSide decides whether a Defline plays the "read 1" or "read 2" role
// when no sibling is known yet, using the same platform-specific rules as
// isPairedDeflines.
func readSide(d Defline) int {
	switch {
	case d.ReadNum == "1":
		return 1
	case d.ReadNum == "2":
		return 2
	case d.Platform == PlatformNanopore:
		if d.PoreRead == PoreTemplate {
			return 1
		}
		return 2
	case d.Platform == PlatformABSolid:
		if d.TagType == TagF3 {
			return 1
		}
		return 2
	default:
		return 1
	}
}

// write renders spot as a sink.Row and pushes it to the configured table.
func (a *Assembler) write(spot Spot) error {
	row := sink.Row{
		"NAME":        spot.Name,
		"SPOT_GROUP":  spot.SpotGroup,
		"PLATFORM":    spot.Platform.String(),
		"READ":        spot.Seq,
		"READ_START":  spot.ReadStart,
		"READ_LENGTH": spot.ReadLength,
		"READ_TYPE":   spot.ReadType,
		"READ_FILTER": spot.ReadFilter,
	}
	if spot.Numeric {
		row["QUALITY"] = spot.QualValues
	} else {
		row["QUALITY"] = spot.QualASCII
	}
	if spot.ClipQualityLeft != nil {
		row["CLIP_QUALITY_LEFT"] = spot.ClipQualityLeft
		row["CLIP_QUALITY_RIGHT"] = spot.ClipQualityRight
	}
	if spot.Channel != 0 || spot.ReadNo != 0 {
		row["CHANNEL"] = spot.Channel
		row["READ_NO"] = spot.ReadNo
	}
	table := spot.Table
	if table == "" {
		table = sink.TableSequence
	}
	return a.w.Write(table, row)
}
