package fastq

import (
	"regexp"
	"strconv"
	"strings"
)

// Illumina "new" (Casava 1.8+) style:
//   @<instrument>:<run>:<flowcell>:<lane>:<tile>:<x>:<y> <read>:<filter>:<control>:<index>
// Three sub-patterns are tried in order: canonical (instrument present),
// no-prefix (instrument omitted, line starts directly at <run>), and
// with-junk (trailing text after the index tag, e.g. a secondary comment).
var (
	illuminaNewCanonical = regexp.MustCompile(
		`^[@>](\S+):(\d+):(\S+):(\d+):(\d+):(\d+):(\d+)(?:\s+(\d*):([YN]):(\d+)(?::([A-Za-z0-9+.-]*))?)?\s*$`)
	illuminaNewNoPrefix = regexp.MustCompile(
		`^[@>](\d+):(\S+):(\d+):(\d+):(\d+):(\d+)(?:\s+(\d*):([YN]):(\d+)(?::([A-Za-z0-9+.-]*))?)?\s*$`)
	illuminaNewWithJunk = regexp.MustCompile(
		`^[@>](\S+):(\d+):(\S+):(\d+):(\d+):(\d+):(\d+)\s+(\d*):([YN]):(\d+)(?::([A-Za-z0-9+.-]*))?\s+\S.*$`)
)

func matchIlluminaNew(line string) (Defline, bool) {
	if m := illuminaNewCanonical.FindStringSubmatch(line); m != nil {
		return buildIlluminaNew(line, ILLUMINA_NEW, m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8], m[9], m[10], m[11]), true
	}
	if m := illuminaNewNoPrefix.FindStringSubmatch(line); m != nil {
		return buildIlluminaNew(line, ILLUMINA_NEW_NO_PREFIX, "", m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8], m[9], m[10]), true
	}
	if m := illuminaNewWithJunk.FindStringSubmatch(line); m != nil {
		return buildIlluminaNew(line, ILLUMINA_NEW_WITH_JUNK, m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8], m[9], m[10], m[11]), true
	}
	return Defline{}, false
}

func buildIlluminaNew(line string, variant Variant, prefix, run, flowcell, lane, tile, x, y, read, filter, control, index string) Defline {
	name := line
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		name = line[:idx]
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, "@"), ">")

	d := Defline{
		Variant:    variant,
		Raw:        line,
		Platform:   PlatformIllumina,
		Prefix:     prefix,
		Name:       name,
		ReadNum:    read,
		FilterFlag: filter == "Y",
		SpotGroup:  normalizeSpotGroup(index),
	}
	d.Lane, _ = strconv.Atoi(lane)
	d.Tile, _ = strconv.Atoi(tile)
	d.X, _ = strconv.Atoi(x)
	d.Y, _ = strconv.Atoi(y)
	_ = control
	_ = run
	_ = flowcell

	// ILLUMINA_NEW_DOUBLE: the header carries both
	// mates' names concatenated into the spot group. Trim the suffix
	// starting at the occurrence of Name within SpotGroup, minus the
	// one-character separator that precedes it.
	if d.SpotGroup != "" {
		if i := strings.Index(d.SpotGroup, d.Name); i > 0 {
			d.SpotGroup = d.SpotGroup[:i-1]
			d.Variant = ILLUMINA_NEW_DOUBLE
		}
	}
	return d
}

// Illumina "old" (pre-Casava) style:
//   @<instrument>:<lane>:<tile>:<x>:<y>[#<barcode>][/<readnum>]
// using either ':' or '_' as the field separator. Five sub-patterns are
// tried in order: with-junk-tail, colon-separated, underscore-separated,
// with-junk-2, no-prefix.
var (
	illuminaOldColon    = regexp.MustCompile(`^[@>](\S+?):(\d+):(\d+):(\d+):(\d+)(?:#([A-Za-z0-9]+))?(?:/(\d))?\s*$`)
	illuminaOldUnderscr = regexp.MustCompile(`^[@>](\S+?)_(\d+)_(\d+)_(\d+)_(\d+)(?:#([A-Za-z0-9]+))?(?:/(\d))?\s*$`)
	illuminaOldNoPrefix = regexp.MustCompile(`^[@>](\d+):(\d+):(\d+):(\d+)(?:#([A-Za-z0-9]+))?(?:/(\d))?\s*$`)
	illuminaOldJunkTail = regexp.MustCompile(`^[@>](\S+?):(\d+):(\d+):(\d+):(\d+)(?:#([A-Za-z0-9]+))?(?:/(\d))?\s+\S.*$`)
	illuminaOldJunk2    = regexp.MustCompile(`^[@>](\S+?)_(\d+)_(\d+)_(\d+)_(\d+)(?:#([A-Za-z0-9]+))?(?:/(\d))?\s+\S.*$`)
)

func matchIlluminaOld(line string) (Defline, bool) {
	if m := illuminaOldJunkTail.FindStringSubmatch(line); m != nil {
		return buildIlluminaOld(line, ILLUMINA_OLD_WITH_JUNK, m[1], "", m[2], m[3], m[4], m[5], m[6], m[7]), true
	}
	if m := illuminaOldColon.FindStringSubmatch(line); m != nil {
		return buildIlluminaOld(line, ILLUMINA_OLD, m[1], "", m[2], m[3], m[4], m[5], m[6], m[7]), true
	}
	if m := illuminaOldUnderscr.FindStringSubmatch(line); m != nil {
		return buildIlluminaOld(line, ILLUMINA_OLD, m[1], "", m[2], m[3], m[4], m[5], m[6], m[7]), true
	}
	if m := illuminaOldJunk2.FindStringSubmatch(line); m != nil {
		return buildIlluminaOld(line, ILLUMINA_OLD_WITH_JUNK, m[1], "", m[2], m[3], m[4], m[5], m[6], m[7]), true
	}
	if m := illuminaOldNoPrefix.FindStringSubmatch(line); m != nil {
		return buildIlluminaOld(line, ILLUMINA_OLD, "", m[1], m[2], m[3], m[4], m[5], m[6], ""), true
	}
	return Defline{}, false
}

func buildIlluminaOld(line string, variant Variant, prefix, extraLane, lane, tile, x, y, barcode, readnum string) Defline {
	fields := []string{lane, tile, x, y}
	shifted, discarded := applyIlluminaExtraNumberDiscard(fields)
	_ = discarded
	lane, tile, x, y = shifted[0], shifted[1], shifted[2], shifted[3]

	name := line
	if i := strings.IndexByte(line, '#'); i >= 0 {
		name = line[:i]
	} else if i := strings.IndexByte(line, '/'); i >= 0 {
		name = line[:i]
	} else if i := strings.IndexByte(line, ' '); i >= 0 {
		name = line[:i]
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, "@"), ">")

	d := Defline{
		Variant:    variant,
		Raw:        line,
		Platform:   PlatformIllumina,
		Prefix:     prefix,
		Name:       name,
		ReadNum:    readnum,
		SpotGroup:  normalizeSpotGroup(barcode),
	}
	d.Lane, _ = strconv.Atoi(lane)
	d.Tile, _ = strconv.Atoi(tile)
	d.X, _ = strconv.Atoi(x)
	d.Y, _ = strconv.Atoi(y)
	return d
}

// ILLUMINA_OLD_BC_RN degenerate forms: only a barcode, only a read number,
// or both, with no lane/tile/x/y coordinates at all.
var (
	illuminaBCRNBoth = regexp.MustCompile(`^[@>](\S+?)#([A-Za-z0-9]+)/(\d)\s*$`)
	illuminaBCOnly   = regexp.MustCompile(`^[@>](\S+?)#([A-Za-z0-9]+)\s*$`)
	illuminaRNOnly   = regexp.MustCompile(`^[@>](\S+?)/(\d)\s*$`)
)

func matchIlluminaOldBCRN(line string) (Defline, bool) {
	if m := illuminaBCRNBoth.FindStringSubmatch(line); m != nil {
		return Defline{Variant: ILLUMINA_OLD_BC_RN, Raw: line, Platform: PlatformIllumina, Name: m[1], SpotGroup: normalizeSpotGroup(m[2]), ReadNum: m[3]}, true
	}
	if m := illuminaBCOnly.FindStringSubmatch(line); m != nil {
		return Defline{Variant: ILLUMINA_OLD_BC_RN, Raw: line, Platform: PlatformIllumina, Name: m[1], SpotGroup: normalizeSpotGroup(m[2])}, true
	}
	if m := illuminaRNOnly.FindStringSubmatch(line); m != nil {
		return Defline{Variant: ILLUMINA_OLD_BC_RN, Raw: line, Platform: PlatformIllumina, Name: m[1], ReadNum: m[2]}, true
	}
	return Defline{}, false
}

// QIIME wraps an Illumina defline with a secondary "orig_bc=... new_bc=...
// bc_diffs=..." suffix, or a bare "bc=" tag, that upgrades the variant
// without changing the embedded Illumina fields.
var qiimeBCSuffix = regexp.MustCompile(`\s(?:orig_bc|new_bc|bc_diffs|bc)=\S+`)

func matchQiimeIlluminaNew(line string) (Defline, bool) {
	base, qiimeLine := splitQiimeName(line)
	d, ok := matchIlluminaNew(qiimeLine)
	if !ok {
		return Defline{}, false
	}
	d.Raw = line
	d.QiimeName = base
	if qiimeBCSuffix.MatchString(line) {
		d.Variant = QIIME_ILLUMINA_NEW_BC
	} else {
		d.Variant = QIIME_ILLUMINA_NEW
	}
	return d, true
}

func matchQiimeIlluminaOld(line string) (Defline, bool) {
	base, qiimeLine := splitQiimeName(line)
	d, ok := matchIlluminaOld(qiimeLine)
	if !ok {
		return Defline{}, false
	}
	d.Raw = line
	d.QiimeName = base
	if qiimeBCSuffix.MatchString(line) {
		d.Variant = QIIME_ILLUMINA_OLD_BC
	} else {
		d.Variant = QIIME_ILLUMINA_OLD
	}
	return d, true
}

// splitQiimeName recognizes the QIIME convention of prefixing a sequencer
// defline with a sample label and underscore-separated ordinal, e.g.
// "sample1_42 EAS139:136:...". It returns the QIIME name and the remaining
// line re-anchored with a leading '@' so the embedded grammar's own matchers
// still apply.
func splitQiimeName(line string) (qiimeName, rest string) {
	lead := line
	if len(lead) > 0 && (lead[0] == '@' || lead[0] == '>') {
		lead = lead[1:]
	}
	sp := strings.IndexByte(lead, ' ')
	if sp < 0 {
		return "", line
	}
	first := lead[:sp]
	us := strings.LastIndexByte(first, '_')
	if us < 0 {
		return "", line
	}
	return first, "@" + lead[sp+1:]
}
