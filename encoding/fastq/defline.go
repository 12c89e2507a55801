package fastq

import "strconv"

// classify runs the ordered, disjoint cascade of defline matchers over one
// header line. Order matters: several grammars accept strict supersets of
// others, so later matchers in the cascade are only tried once earlier ones
// have failed. hint, when not UNDEFINED, restricts the cascade to the
// single already-latched variant for the owning file; pass UNDEFINED (or
// set mixedDeflines) to re-run the full cascade.
func classify(line string, hint Variant) (Defline, bool) {
	if hint != UNDEFINED {
		if d, ok := matchVariant(hint, line); ok {
			return d, true
		}
		return Defline{}, false
	}
	for _, step := range cascade {
		if d, ok := step(line); ok {
			return d, true
		}
	}
	return Defline{Variant: UNDEFINED, Raw: line, Name: undefinedName(line)}, true
}

// cascade lists the classification steps in priority order. Each step
// may itself try several sub-patterns (e.g. matchIlluminaNew tries three).
var cascade = []func(string) (Defline, bool){
	matchHelicos,
	matchAbsolid,
	matchIlluminaNew,
	matchIlluminaOld,
	matchQiimeIlluminaNew,
	matchQiimeIlluminaOld,
	matchLS454,
	matchQiime454,
	matchPacbio,
	matchIonTorrent,
	matchIlluminaOldBCRN,
	matchQiimeGeneric,
	matchNanopore,
	matchReadIDBarcode,
	matchSangerNewbler,
}

// matchVariant re-applies only the matcher(s) that can produce the given
// latched variant. It is used once mixedDeflines is not set and a file has
// already committed to a variant.
func matchVariant(v Variant, line string) (Defline, bool) {
	switch v {
	case HELICOS:
		return matchHelicos(line)
	case ABSOLID:
		return matchAbsolid(line)
	case ILLUMINA_NEW, ILLUMINA_NEW_NO_PREFIX, ILLUMINA_NEW_WITH_JUNK, ILLUMINA_NEW_DOUBLE:
		return matchIlluminaNew(line)
	case ILLUMINA_OLD, ILLUMINA_OLD_WITH_JUNK:
		return matchIlluminaOld(line)
	case ILLUMINA_OLD_BC_RN:
		return matchIlluminaOldBCRN(line)
	case QIIME_ILLUMINA_NEW, QIIME_ILLUMINA_NEW_BC:
		return matchQiimeIlluminaNew(line)
	case QIIME_ILLUMINA_OLD, QIIME_ILLUMINA_OLD_BC:
		return matchQiimeIlluminaOld(line)
	case LS454:
		return matchLS454(line)
	case QIIME_454:
		return matchQiime454(line)
	case PACBIO:
		return matchPacbio(line)
	case ION_TORRENT:
		return matchIonTorrent(line)
	case QIIME_GENERIC:
		return matchQiimeGeneric(line)
	case NANOPORE:
		return matchNanopore(line)
	case READID_BARCODE:
		return matchReadIDBarcode(line)
	case SANGER_NEWBLER:
		return matchSangerNewbler(line)
	default:
		return Defline{}, false
	}
}

// undefinedName returns the first non-whitespace token of line, stripped of
// a leading '@'/'>', for the UNDEFINED fallback grammar.
func undefinedName(line string) string {
	i := 0
	for i < len(line) && (line[i] == '@' || line[i] == '>') {
		i++
	}
	start := i
	for i < len(line) && line[i] != ' ' && line[i] != '\t' {
		i++
	}
	return line[start:i]
}

// normalizeSpotGroup normalizes a literal "0" spot group to empty.
func normalizeSpotGroup(sg string) string {
	if sg == "0" {
		return ""
	}
	return sg
}

// applyIlluminaExtraNumberDiscard implements the old-Illumina "extra number"
// edge case: when the last two fields (y and x) are both small indices (<3),
// up to two leading fields are dropped, as long as at least four remain. It
// returns the remaining fields and the number dropped, and keeps no state.
// buildIlluminaOld calls it for every line with exactly the four
// lane/tile/x/y fields, so no field is dropped there, and no discard count
// is fixed per file.
func applyIlluminaExtraNumberDiscard(fields []string) (shifted []string, discarded int) {
	if len(fields) < 4 {
		return fields, 0
	}
	n := len(fields)
	y, yerr := strconv.Atoi(fields[n-1])
	x, xerr := strconv.Atoi(fields[n-2])
	if yerr != nil || xerr != nil || y >= 3 || x >= 3 {
		return fields, 0
	}
	// Drop a leading field only while more than four fields remain.
	discard := 0
	for discard < 2 && n-discard > 4 {
		discard++
	}
	return fields[discard:], discard
}

// isPairedDeflines implements the pairing predicate used by shape
// detection, file pairing, and spot assembly.
// It returns (result, ok) where ok is false for "refuse to pair"/"no match":
// result 0 means the boolean "true" case (used only for split seq/qual
// file pairing), 1 or 2 select which defline is read 1.
func isPairedDeflines(d1, d2 Defline, sameReadNum bool) (result int, matched bool) {
	if sameReadNum {
		if d1.Name == d2.Name && d1.ReadNum == d2.ReadNum {
			if (d1.TagType != TagNone || d2.TagType != TagNone) && d1.TagType != d2.TagType {
				return 0, false
			}
			return 0, true
		}
		return 0, false
	}
	if d1.Name != d2.Name {
		return 0, false
	}
	if d1.ReadNum != "" && d2.ReadNum != "" {
		if d1.ReadNum < d2.ReadNum {
			return 1, true
		}
		return 2, true
	}
	if d1.Platform == PlatformNanopore || d2.Platform == PlatformNanopore {
		if d1.PoreRead == PoreComplement && d2.PoreRead == Pore2D {
			return 0, false
		}
		if d2.PoreRead == PoreComplement && d1.PoreRead == Pore2D {
			return 0, false
		}
		if d1.PoreRead == PoreTemplate {
			return 1, true
		}
		if d2.PoreRead == PoreTemplate {
			return 2, true
		}
		return 1, true
	}
	if d1.Platform == PlatformABSolid || d2.Platform == PlatformABSolid {
		if d1.TagType == TagF3 {
			return 1, true
		}
		if d2.TagType == TagF3 {
			return 2, true
		}
		return 1, true
	}
	if d1.Raw == d2.Raw {
		// Exact tie: defline1 is read 1.
		return 1, true
	}
	if d1.Raw < d2.Raw {
		return 1, true
	}
	return 2, true
}
