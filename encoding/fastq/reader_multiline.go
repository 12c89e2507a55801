package fastq

import "strings"

// multiLineReader implements the multi-line FASTQ variant: a defline
// followed by one or more sequence lines, a '+' line, then one or more
// quality lines, each block terminated by the next defline (or '+' line, for
// the seq block) rather than by a fixed line count.
type multiLineReader struct {
	ls       *lineSource
	latch    deflineLatch
	filename string
	offset   int

	defline Defline
	seq     Sequence
	qual    Quality

	// saved holds a defline line read while scanning for the end of the
	// previous record's quality block; it seeds the next Read() instead of
	// going through ls.pushback, since it was already consumed past the
	// record boundary.
	saved   string
	hasSaved bool

	spotCount   int
	resyncCount int
	repairCount int
	eof         bool
	err         error
}

func newMultiLineReader(ls *lineSource, mixedDeflines bool, filename string) *multiLineReader {
	ls.skipHeader()
	return &multiLineReader{ls: ls, latch: deflineLatch{mixed: mixedDeflines}, filename: filename}
}

func (r *multiLineReader) Read() bool {
	if r.err != nil || r.eof {
		return false
	}
	line, ok := r.nextLine()
	if !ok {
		r.eof = true
		return false
	}
	if !r.tryRecordFrom(line) {
		return r.resync()
	}
	return r.err == nil
}

func (r *multiLineReader) nextLine() (string, bool) {
	if r.hasSaved {
		r.hasSaved = false
		return r.saved, true
	}
	return r.ls.next()
}

func (r *multiLineReader) tryRecordFrom(line string) bool {
	if !isDeflineLead(line) {
		return false
	}
	d, ok := r.latch.classify(line)
	if !ok {
		return false
	}
	d = applyNanoporeFilenameHint(d, r.filename)

	var seqLines []string
	for i := 0; ; i++ {
		if i >= maxInterDeflineLines {
			r.err = errorf(Shape, r.filename, "sequence block exceeded %d lines without a '+' terminator", maxInterDeflineLines)
			return true
		}
		next, ok := r.ls.next()
		if !ok {
			r.err = errorf(FatalStream, r.filename, "truncated record: missing '+' line")
			return true
		}
		if len(next) > 0 && next[0] == '+' {
			break
		}
		seqLines = append(seqLines, next)
	}
	seq, seqOK := NormalizeSequence(strings.Join(seqLines, ""))
	if !seqOK {
		r.err = errorf(FatalStream, r.filename, "unparseable sequence block")
		return true
	}

	var qualLines []string
	var terminator string
	hasTerminator := false
	for i := 0; ; i++ {
		if i >= maxInterDeflineLines {
			r.err = errorf(Shape, r.filename, "quality block exceeded %d lines without finding the next defline", maxInterDeflineLines)
			return true
		}
		next, ok := r.ls.next()
		if !ok {
			break
		}
		if isDeflineLead(next) && len(qualLines) > 0 {
			terminator, hasTerminator = next, true
			break
		}
		qualLines = append(qualLines, next)
	}
	qual, err := NormalizeQuality(strings.Join(qualLines, ""), qualityAuto, r.offset)
	if err != nil {
		r.err = err
		return true
	}
	qual = qual.StripQuotesIfMismatched(seq.Len())

	qlen := qual.Len()
	repaired := false
	switch {
	case qlen == seq.Len():
	case qlen < seq.Len():
		qual = padQuality(qual, seq.Len())
		repaired = true
	default:
		qual = truncateQuality(qual, seq.Len())
		repaired = true
	}
	if repaired {
		r.repairCount++
	}

	if hasTerminator {
		r.saved, r.hasSaved = terminator, true
	}

	r.defline, r.seq, r.qual = d, seq, qual
	r.spotCount++
	return true
}

func (r *multiLineReader) resync() bool {
	for i := 0; i < maxResyncLines; i++ {
		line, ok := r.nextLine()
		if !ok {
			r.eof = true
			r.err = errorf(FatalStream, r.filename, "could not resync: reached EOF")
			return false
		}
		if !isDeflineLead(line) {
			continue
		}
		r.resyncCount++
		if r.tryRecordFrom(line) {
			if r.err != nil {
				return false
			}
			return true
		}
	}
	r.err = errorf(FatalStream, r.filename, "could not resync within %d lines", maxResyncLines)
	return false
}

func (r *multiLineReader) Restart() error {
	if err := r.ls.restart(); err != nil {
		return err
	}
	r.spotCount, r.eof, r.err = 0, false, nil
	r.saved, r.hasSaved = "", false
	return nil
}

func (r *multiLineReader) EOF() bool        { return r.eof }
func (r *multiLineReader) SpotCount() int   { return r.spotCount }
func (r *multiLineReader) Defline() Defline { return r.defline }
func (r *multiLineReader) Seq() Sequence    { return r.seq }
func (r *multiLineReader) Qual() Quality    { return r.qual }
func (r *multiLineReader) Err() error       { return r.err }
func (r *multiLineReader) ResyncCount() int { return r.resyncCount }
func (r *multiLineReader) RepairCount() int { return r.repairCount }
func (r *multiLineReader) SetOffset(off int) { r.offset = off }
