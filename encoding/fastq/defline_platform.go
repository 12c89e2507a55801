package fastq

import (
	"regexp"
	"strconv"
	"strings"
)

// Helicos: VHE-<flowcell>_<camera>_<field>_<position>, an all-numeric
// 4- or 5-tuple following a literal "VHE-" prefix.
var helicosRe = regexp.MustCompile(`^[@>]VHE-(\d+)_(\d+)_(\d+)_(\d+)(?:_(\d+))?\s*$`)

func matchHelicos(line string) (Defline, bool) {
	m := helicosRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	name := strings.Fields(strings.TrimPrefix(strings.TrimPrefix(line, "@"), ">"))[0]
	d := Defline{Variant: HELICOS, Raw: line, Platform: PlatformHelicos, Name: name}
	d.HCamera, _ = strconv.Atoi(m[2])
	d.HField, _ = strconv.Atoi(m[3])
	d.HPos, _ = strconv.Atoi(m[4])
	d.FlowCell = m[1]
	return d, true
}

// ABI SOLiD: <panel>_<x>_<y>_<tag>, where tag is one of the seven ABI tag
// types. The tag suffix is required for recognition (it is what lets this
// grammar run ahead of the generic old-Illumina cascade).
var absolidRe = regexp.MustCompile(`^[@>](\S+)_(F3|R3|F5-BC|BC|F5-P2|F5-RNA|F5-DNA)\s*$`)

func matchAbsolid(line string) (Defline, bool) {
	m := absolidRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	d := Defline{Variant: ABSOLID, Raw: line, Platform: PlatformABSolid, Name: m[1]}
	switch m[2] {
	case "F3":
		d.TagType = TagF3
	case "R3":
		d.TagType = TagR3
	case "F5-BC":
		d.TagType = TagF5BC
	case "BC":
		d.TagType = TagBC
	case "F5-P2":
		d.TagType = TagF5P2
	case "F5-RNA":
		d.TagType = TagF5RNA
	case "F5-DNA":
		d.TagType = TagF5DNA
	}
	return d, true
}

// LS454/Newbler: <optional prefix><7 alnum date/hash><2-digit region>
// <5 alnum xy>[/n].
var ls454Re = regexp.MustCompile(`^[@>]([A-Za-z0-9]*?)([A-Za-z0-9]{7})(\d{2})([A-Za-z0-9]{5})(?:/(\d))?\s*$`)

func matchLS454(line string) (Defline, bool) {
	m := ls454Re.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(line, "@"), ">")
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	d := Defline{Variant: LS454, Raw: line, Platform: PlatformLS454, Name: name, DateHash: m[2], XY: m[4], ReadNum: m[5]}
	d.Region, _ = strconv.Atoi(m[3])
	return d, true
}

func matchQiime454(line string) (Defline, bool) {
	base, qiimeLine := splitQiimeName(line)
	d, ok := matchLS454(qiimeLine)
	if !ok {
		return Defline{}, false
	}
	d.Raw = line
	d.QiimeName = base
	d.Variant = QIIME_454
	return d, true
}

// PacBio: m<run>_<date>_<instrument>_s<set>_p<part>/<hole>/<start>_<end>.
var pacbioRe = regexp.MustCompile(`^[@>]m(\d+)_(\d+)_(\S+?)_s(\d+)_p(\d+)/(\d+)/(\d+)_(\d+)\s*$`)

func matchPacbio(line string) (Defline, bool) {
	m := pacbioRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(line, "@"), ">")
	d := Defline{Variant: PACBIO, Raw: line, Platform: PlatformPacBio, Name: name}
	return d, true
}

// Ion Torrent: <5-alnum runid>:<1-5 digit row>:<1-5 digit column>.
var ionTorrentRe = regexp.MustCompile(`^[@>]([A-Za-z0-9]{5}):(\d{1,5}):(\d{1,5})\s*$`)

func matchIonTorrent(line string) (Defline, bool) {
	m := ionTorrentRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(line, "@"), ">")
	d := Defline{Variant: ION_TORRENT, Raw: line, Platform: PlatformIonTorrent, Name: name, RunID: m[1]}
	d.Row, _ = strconv.Atoi(m[2])
	d.Column, _ = strconv.Atoi(m[3])
	return d, true
}

// QIIME_GENERIC: any remaining name with a barcode tail, used as the
// catch-all QIIME form when none of the platform-specific QIIME wrappers
// matched.
var qiimeGenericRe = regexp.MustCompile(`^[@>](\S+?)_(\d+)\s`)

func matchQiimeGeneric(line string) (Defline, bool) {
	if !qiimeBCSuffix.MatchString(line) {
		return Defline{}, false
	}
	m := qiimeGenericRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	return Defline{
		Variant:   QIIME_GENERIC,
		Raw:       line,
		QiimeName: m[1],
		Name:      m[1] + "_" + m[2],
	}, true
}

// Nanopore: two grammars for the read identifier.
//   channel_<N>_read_<N>[_twodirections]
//   ch<N>_file<N>
// A line matching either is marked Pore2D when it also carries a
// "_twodirections", "_2d" or "-2d" token (case-insensitive). A line in
// neither form is not matched here, whatever 2D token it carries.
var (
	nanoporeChannelReadRe = regexp.MustCompile(`^[@>].*?channel_(\d+)_read_(\d+)(_twodirections)?`)
	nanoporeChFileRe      = regexp.MustCompile(`^[@>].*?ch(\d+)_file(\d+)`)
	nanopore2DToken       = regexp.MustCompile(`(?i)(_twodirections|-2d\b|_2d\b)`)
)

func matchNanopore(line string) (Defline, bool) {
	if m := nanoporeChannelReadRe.FindStringSubmatch(line); m != nil {
		d := Defline{Variant: NANOPORE, Raw: line, Platform: PlatformNanopore, Name: line}
		d.Channel, _ = strconv.Atoi(m[1])
		d.ReadNo, _ = strconv.Atoi(m[2])
		d.Name = "channel_" + m[1] + "_read_" + m[2]
		if m[3] != "" || nanopore2DToken.MatchString(line) {
			d.PoreRead = Pore2D
		}
		return d, true
	}
	if m := nanoporeChFileRe.FindStringSubmatch(line); m != nil {
		d := Defline{Variant: NANOPORE, Raw: line, Platform: PlatformNanopore, Name: "ch" + m[1] + "_file" + m[2]}
		d.Channel, _ = strconv.Atoi(m[1])
		d.ReadNo, _ = strconv.Atoi(m[2])
		if nanopore2DToken.MatchString(line) {
			d.PoreRead = Pore2D
		}
		return d, true
	}
	return Defline{}, false
}

// applyNanoporeFilenameHint resolves PoreRead for an untagged Nanopore
// record whose type can only be inferred from the containing filename's
// ".2D."/".template."/".complement." substrings. Readers
// call this once per file using their own path, since classify has no
// access to it.
func applyNanoporeFilenameHint(d Defline, filename string) Defline {
	if d.Platform != PlatformNanopore || d.PoreRead != PoreNone {
		return d
	}
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, ".2d.") || strings.Contains(lower, "_2d.") || strings.Contains(lower, "-2d."):
		d.PoreRead = Pore2D
	case strings.Contains(lower, ".template."):
		d.PoreRead = PoreTemplate
	case strings.Contains(lower, ".complement."):
		d.PoreRead = PoreComplement
	}
	return d
}

// READID_BARCODE: "read_id=<id> barcode=<tag>" key=value style deflines.
var readIDBarcodeRe = regexp.MustCompile(`read_id=(\S+)\s+barcode=(\S+)`)

func matchReadIDBarcode(line string) (Defline, bool) {
	m := readIDBarcodeRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	return Defline{Variant: READID_BARCODE, Raw: line, Name: m[1], SpotGroup: normalizeSpotGroup(m[2])}, true
}

// SANGER_NEWBLER: "template=<name> dir=F|R".
var sangerNewblerRe = regexp.MustCompile(`template=(\S+)\s+dir=([FR])`)

func matchSangerNewbler(line string) (Defline, bool) {
	m := sangerNewblerRe.FindStringSubmatch(line)
	if m == nil {
		return Defline{}, false
	}
	d := Defline{Variant: SANGER_NEWBLER, Raw: line, Name: m[1]}
	if m[2] == "F" {
		d.TemplateDir = DirForward
	} else {
		d.TemplateDir = DirReverse
	}
	return d, true
}
