package fastq

// fourLineReader implements the "normal" four-line FASTQ variant: defline,
// seq, '+' line, qual. It also backs the eight-line variant, which is the
// same grammar with pairing deciding that consecutive records alternate
// mates within one file.
type fourLineReader struct {
	ls       *lineSource
	latch    deflineLatch
	filename string
	offset   int // ASCII quality offset, 0 during the quality-encoding prescan.

	defline Defline
	seq     Sequence
	qual    Quality

	spotCount   int
	resyncCount int
	repairCount int
	eof         bool
	err         error
}

func newFourLineReader(ls *lineSource, mixedDeflines bool, filename string) *fourLineReader {
	ls.skipHeader()
	return &fourLineReader{ls: ls, latch: deflineLatch{mixed: mixedDeflines}, filename: filename}
}

func (r *fourLineReader) Read() bool {
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

// tryRecordFrom attempts to parse one full record starting with line as the
// defline candidate. It returns false (without setting r.err) when the
// defline itself fails to parse, so the caller can resync; any failure past
// that point sets r.err (a FatalStream for a truncated or malformed record,
// or the quality parser's own error) and ends the stream.
func (r *fourLineReader) tryRecordFrom(line string) bool {
	if !isDeflineLead(line) {
		return false
	}
	d, ok := r.latch.classify(line)
	if !ok {
		return false
	}
	d = applyNanoporeFilenameHint(d, r.filename)

	seqLine, ok := r.ls.next()
	if !ok {
		r.err = errorf(FatalStream, r.filename, "truncated record: missing sequence line after %q", line)
		return true
	}
	seq, seqOK := NormalizeSequence(seqLine)
	if !seqOK {
		r.err = errorf(FatalStream, r.filename, "unparseable sequence line: %q", seqLine)
		return true
	}

	plusLine, ok := r.ls.next()
	if !ok {
		r.err = errorf(FatalStream, r.filename, "truncated record: missing '+' line after %q", seqLine)
		return true
	}
	if len(plusLine) == 0 || plusLine[0] != '+' {
		r.err = errorf(FatalStream, r.filename, "expected '+' line, got %q", plusLine)
		return true
	}

	qualLine, ok := r.ls.next()
	if !ok {
		r.err = errorf(FatalStream, r.filename, "truncated record: missing quality line")
		return true
	}

	seq, qual, repaired, rerr := repairSeqQual(seq, qualLine, r.ls, r.offset)
	if rerr != nil {
		r.err = rerr
		return true
	}
	if repaired {
		r.repairCount++
	}

	r.defline, r.seq, r.qual = d, seq, qual
	r.spotCount++
	return true
}

// repairSeqQual implements the seq/qual length repair rules: pad, truncate,
// or fabricate missing quality. If qualLine itself parses as a defline, the quality is
// considered missing entirely and is fabricated; the line is pushed back so
// the next Read() sees it as the next record's defline.
func repairSeqQual(seq Sequence, qualLine string, ls *lineSource, offset int) (Sequence, Quality, bool, error) {
	if isDeflineLead(qualLine) {
		if d, ok := classify(qualLine, UNDEFINED); ok && d.Variant != UNDEFINED {
			ls.pushback(qualLine)
			return seq, fabricateQuality(seq.Len(), false), true, nil
		}
	}
	qual, err := NormalizeQuality(qualLine, qualityAuto, offset)
	if err != nil {
		return seq, Quality{}, false, err
	}
	qual = qual.StripQuotesIfMismatched(seq.Len())

	qlen := qual.Len()
	switch {
	case qlen == seq.Len():
		return seq, qual, false, nil
	case qlen < seq.Len():
		return seq, padQuality(qual, seq.Len()), true, nil
	default:
		return seq, truncateQuality(qual, seq.Len()), true, nil
	}
}

// fabricateQuality builds the '?' (Phred 30 @ offset 33) or " 30"-repeated
// quality string used when a quality line is missing or a FASTA record has
// none at all.
func fabricateQuality(length int, numeric bool) Quality {
	if numeric {
		values := make([]int, length)
		for i := range values {
			values[i] = 30
		}
		return Quality{Numeric: true, Values: values, Min: 30, Max: 30}
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = '?'
	}
	return Quality{ASCII: string(b), Min: 30, Max: 30}
}

func padQuality(q Quality, length int) Quality {
	if q.Numeric {
		for len(q.Values) < length {
			q.Values = append(q.Values, 30)
		}
		return q
	}
	pad := make([]byte, length-len(q.ASCII))
	for i := range pad {
		pad[i] = '?'
	}
	q.ASCII = q.ASCII + string(pad)
	return q
}

func truncateQuality(q Quality, length int) Quality {
	if q.Numeric {
		q.Values = q.Values[:length]
		return q
	}
	q.ASCII = q.ASCII[:length]
	return q
}

// resync consumes and discards lines, reparsing
// each as a defline candidate, up to maxResyncLines or EOF. The first line
// that both parses as a defline and yields a complete record restarts the
// record cycle.
func (r *fourLineReader) resync() bool {
	for i := 0; i < maxResyncLines; i++ {
		line, ok := r.ls.next()
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
				// A subsequent structural failure after a resync point is
				// still fatal; don't loop forever trying the same ground.
				return false
			}
			return true
		}
	}
	r.err = errorf(FatalStream, r.filename, "could not resync within %d lines", maxResyncLines)
	return false
}

func (r *fourLineReader) Restart() error {
	if err := r.ls.restart(); err != nil {
		return err
	}
	r.spotCount, r.eof, r.err = 0, false, nil
	return nil
}

func (r *fourLineReader) EOF() bool          { return r.eof }
func (r *fourLineReader) SpotCount() int     { return r.spotCount }
func (r *fourLineReader) Defline() Defline   { return r.defline }
func (r *fourLineReader) Seq() Sequence      { return r.seq }
func (r *fourLineReader) Qual() Quality      { return r.qual }
func (r *fourLineReader) Err() error         { return r.err }
func (r *fourLineReader) ResyncCount() int   { return r.resyncCount }
func (r *fourLineReader) RepairCount() int   { return r.repairCount }
func (r *fourLineReader) SetOffset(off int)  { r.offset = off }
