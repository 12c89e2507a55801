package fastq

import "strings"

// singleLineReader implements the single-line variant: an entire record is
// one colon-separated line; the last colon-field is the quality, the one
// before it the sequence, and the remaining fields rejoin (with ':') into the
// defline, which need not start with '@' or '>'.
type singleLineReader struct {
	ls       *lineSource
	latch    deflineLatch
	filename string
	offset   int

	defline Defline
	seq     Sequence
	qual    Quality

	spotCount   int
	resyncCount int
	repairCount int
	eof         bool
	err         error
}

func newSingleLineReader(ls *lineSource, mixedDeflines bool, filename string) *singleLineReader {
	ls.skipHeader()
	return &singleLineReader{ls: ls, latch: deflineLatch{mixed: mixedDeflines}, filename: filename}
}

func (r *singleLineReader) Read() bool {
	if r.err != nil || r.eof {
		return false
	}
	line, ok := r.ls.next()
	if !ok {
		r.eof = true
		return false
	}
	if !r.tryRecordFrom(line) {
		return r.resync()
	}
	return r.err == nil
}

func (r *singleLineReader) tryRecordFrom(line string) bool {
	fields := strings.Split(line, ":")
	if len(fields) < 3 {
		return false
	}
	n := len(fields)
	qualField, seqField := fields[n-1], fields[n-2]
	deflineStr := strings.Join(fields[:n-2], ":")

	d, ok := r.latch.classify(deflineStr)
	if !ok {
		return false
	}
	d = applyNanoporeFilenameHint(d, r.filename)

	seq, seqOK := NormalizeSequence(seqField)
	if !seqOK {
		r.err = errorf(FatalStream, r.filename, "unparseable sequence field: %q", seqField)
		return true
	}
	qual, err := NormalizeQuality(qualField, qualityAuto, r.offset)
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

	r.defline, r.seq, r.qual = d, seq, qual
	r.spotCount++
	return true
}

func (r *singleLineReader) resync() bool {
	for i := 0; i < maxResyncLines; i++ {
		line, ok := r.ls.next()
		if !ok {
			r.eof = true
			r.err = errorf(FatalStream, r.filename, "could not resync: reached EOF")
			return false
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

func (r *singleLineReader) Restart() error {
	if err := r.ls.restart(); err != nil {
		return err
	}
	r.spotCount, r.eof, r.err = 0, false, nil
	return nil
}

func (r *singleLineReader) EOF() bool        { return r.eof }
func (r *singleLineReader) SpotCount() int   { return r.spotCount }
func (r *singleLineReader) Defline() Defline { return r.defline }
func (r *singleLineReader) Seq() Sequence    { return r.seq }
func (r *singleLineReader) Qual() Quality    { return r.qual }
func (r *singleLineReader) Err() error       { return r.err }
func (r *singleLineReader) ResyncCount() int { return r.resyncCount }
func (r *singleLineReader) RepairCount() int { return r.repairCount }
func (r *singleLineReader) SetOffset(off int) { r.offset = off }
