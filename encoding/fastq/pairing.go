package fastq

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/fastqload/util"
)

// FilePlan describes one input file after shape detection, the unit the
// file pairing engine
// operates on.
type FilePlan struct {
	Path string
	Type FileType
	LS   *lineSource

	Claimed bool
	// PairOf is the index of this file's mate file, the file's own index for
	// an eight-line self-pair, or -1 if this file is a fragment or still
	// unresolved.
	PairOf int
	// TwoDOf is the index of the Nanopore 2D-companion file, or -1.
	TwoDOf int
	// Orphan is set once Phase B determines the file must be read in
	// orphan-tolerant mode (records may arrive out of mate order).
	Orphan bool
	// TwoDOnly marks a standalone Nanopore 2D file with no template/complement
	// mate: it emits CONSENSUS rows only, no SEQUENCE rows.
	TwoDOnly bool
}

// PlanPairing is the two-phase (plus Nanopore Phase C) file pairing
// engine: files must already carry Type from shape detection, sorted by
// Path (files are enumerated in sorted order).
func PlanPairing(files []*FilePlan) error {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for i := range files {
		// TypeSeqQual pairs are resolved by shape detection (they require two-stream
		// probing that only the shape detector can do); leave them alone.
		if files[i].Type != TypeSeqQual {
			files[i].PairOf, files[i].TwoDOf = -1, -1
		}
	}

	if err := pairStrict(files); err != nil {
		return err
	}
	if err := pairOrphanTolerant(files); err != nil {
		return err
	}
	pairNanopore2D(files)
	return validatePairedTypes(files)
}

// pairStrict is Phase A: read one record from each unclaimed file and test
// every later unclaimed file for a match.
func pairStrict(files []*FilePlan) error {
	for i := range files {
		if files[i].Claimed || files[i].PairOf != -1 {
			continue
		}
		d1, ok1, err := peekOneDefline(files[i])
		if err != nil {
			return err
		}
		if !ok1 {
			continue
		}
		for j := i + 1; j < len(files); j++ {
			if files[j].Claimed {
				continue
			}
			d2, ok2, err := peekOneDefline(files[j])
			if err != nil {
				return err
			}
			if !ok2 {
				continue
			}
			result, matched := isPairedDeflines(d1, d2, false)
			if !matched {
				continue
			}
			files[i].PairOf, files[j].PairOf = j, i
			files[j].Claimed = true
			_ = result // which side is "read 1" is recomputed per-record at spot assembly time.
			break
		}
	}
	return nil
}

// peekOneDefline reads the first record's Defline without consuming it
// permanently: the underlying lineSource is restarted afterward.
func peekOneDefline(fp *FilePlan) (Defline, bool, error) {
	r := newReaderForType(fp.LS, fp.Type, true, fp.Path)
	ok := r.Read()
	if err := fp.LS.restart(); err != nil {
		return Defline{}, false, err
	}
	if !ok {
		return Defline{}, false, nil
	}
	return r.Defline(), true, nil
}

// pairOrphanTolerant is Phase B: for files strict pairing left unclaimed,
// scan up to maxOrphanScan records building a name->defline index, detect
// within-file eight-line interleaving, then cross-reference other unpaired
// files.
func pairOrphanTolerant(files []*FilePlan) error {
	indices := make(map[int]map[string]Defline)
	for i := range files {
		if files[i].Claimed || files[i].PairOf != -1 {
			continue
		}
		idx, repeated, err := scanOrphanIndex(files[i])
		if err != nil {
			return err
		}
		indices[i] = idx
		if repeated {
			files[i].Orphan = true
			files[i].PairOf = i // self-paired eight-line file.
			switch files[i].Type {
			case TypeNormal:
				files[i].Type = TypeEightLine
			case TypeMultiLine:
				files[i].Type = TypeMultiLineEightLine
			}
		}
	}

	for i := range files {
		if files[i].Claimed || files[i].PairOf != -1 {
			continue
		}
		idxI, ok := indices[i]
		if !ok {
			continue
		}
		for j := range files {
			if j == i || files[j].Claimed || files[j].PairOf != -1 {
				continue
			}
			idxJ, ok := indices[j]
			if !ok {
				continue
			}
			if namesOverlap(idxI, idxJ) {
				files[i].PairOf, files[j].PairOf = j, i
				files[i].Orphan, files[j].Orphan = true, true
				files[j].Claimed = true
				break
			}
		}
	}
	return nil
}

// scanOrphanIndex reads up to maxOrphanScan records from fp, returning a
// name->Defline index and whether any name repeated (within-file eight-line
// signal).
func scanOrphanIndex(fp *FilePlan) (map[string]Defline, bool, error) {
	r := newReaderForType(fp.LS, fp.Type, true, fp.Path)
	idx := make(map[string]Defline)
	repeated := false
	for i := 0; i < maxOrphanScan && r.Read(); i++ {
		d := r.Defline()
		if prior, ok := idx[d.Name]; ok {
			// util.Levenshtein panics unless both inputs have the same length.
			if prior.SpotGroup != d.SpotGroup && len(prior.SpotGroup) == len(d.SpotGroup) {
				diff := util.Levenshtein(prior.SpotGroup, d.SpotGroup, "", "")
				log.Debug.Printf("fastq: orphan scan: %s repeats name %q with divergent spot group (distance %d)", fp.Path, d.Name, diff)
			}
			repeated = true
		}
		idx[d.Name] = d
	}
	if r.Err() != nil && !IsKind(r.Err(), FatalStream) {
		return nil, false, r.Err()
	}
	if err := fp.LS.restart(); err != nil {
		return nil, false, err
	}
	return idx, repeated, nil
}

func namesOverlap(a, b map[string]Defline) bool {
	for name := range a {
		if _, ok := b[name]; ok {
			return true
		}
	}
	return false
}

// pairNanopore2D is Phase C: for each paired file without a 2D companion,
// the first other unclaimed file whose first probeLimit records are all 2D
// reads is marked as its 2D companion. Record names are not compared between
// the two files. A file that is itself
// exclusively 2D and was never claimed as anyone's pair or companion has no
// template/complement mate at all; it is marked TwoDOnly instead, so it
// emits through the CONSENSUS-only path rather than as a plain fragment.
func pairNanopore2D(files []*FilePlan) {
	for i := range files {
		if files[i].Claimed || files[i].PairOf == -1 || files[i].TwoDOf != -1 {
			continue
		}
		for j := range files {
			if j == i || files[j].Claimed {
				continue
			}
			if fileIsExclusively2D(files[j]) {
				files[i].TwoDOf = j
				files[j].Claimed = true
				break
			}
		}
	}
	for i := range files {
		if files[i].Claimed || files[i].PairOf != -1 {
			continue
		}
		if fileIsExclusively2D(files[i]) {
			files[i].TwoDOnly = true
		}
	}
}

func fileIsExclusively2D(fp *FilePlan) bool {
	r := newReaderForType(fp.LS, fp.Type, true, fp.Path)
	count := 0
	all2D := true
	for i := 0; i < probeLimit && r.Read(); i++ {
		count++
		if r.Defline().PoreRead != Pore2D {
			all2D = false
			break
		}
	}
	_ = fp.LS.restart()
	return count > 0 && all2D
}

// validatePairedTypes enforces that paired files share a file type;
// otherwise it is fatal.
func validatePairedTypes(files []*FilePlan) error {
	for i := range files {
		if files[i].PairOf == -1 || files[i].PairOf == i {
			continue
		}
		j := files[i].PairOf
		if files[i].Type != files[j].Type {
			return errorf(Shape, files[i].Path, "paired file %s has incompatible type %s vs %s", files[j].Path, files[j].Type, files[i].Type)
		}
	}
	return nil
}

// newReaderForType constructs the Reader variant matching typ over a
// single lineSource (the split-seq-qual variant needs two streams and is
// constructed directly by its caller in ingest.go instead).
func newReaderForType(ls *lineSource, typ FileType, mixedDeflines bool, filename string) Reader {
	switch typ {
	case TypeSingleLine:
		return newSingleLineReader(ls, mixedDeflines, filename)
	case TypeMultiLine, TypeMultiLineEightLine:
		return newMultiLineReader(ls, mixedDeflines, filename)
	case TypeFasta, TypeEightLineFasta:
		return newFastaReader(ls, mixedDeflines, filename)
	case TypeMultiLineFasta, TypeMultiLineEightLineFasta:
		return newFastaReader(ls, mixedDeflines, filename)
	default:
		return newFourLineReader(ls, mixedDeflines, filename)
	}
}
