package fastq

import "strings"

// splitSeqQualReader implements the split seq+qual variant: two FASTA-style
// (">") byte streams, one carrying sequences and the other qualities, paired
// defline by defline. A name mismatch between the two sides is fatal (spec
// section 4.4/4.9).
type splitSeqQualReader struct {
	seqLS, qualLS     *lineSource
	seqLatch, qualLatch deflineLatch
	seqFilename, qualFilename string
	offset int

	defline Defline
	seq     Sequence
	qual    Quality

	spotCount int
	eof       bool
	err       error
}

func newSplitSeqQualReader(seqLS, qualLS *lineSource, mixedDeflines bool, seqFilename, qualFilename string) *splitSeqQualReader {
	seqLS.skipHeader()
	qualLS.skipHeader()
	return &splitSeqQualReader{
		seqLS: seqLS, qualLS: qualLS,
		seqLatch:  deflineLatch{mixed: mixedDeflines},
		qualLatch: deflineLatch{mixed: mixedDeflines},
		seqFilename: seqFilename, qualFilename: qualFilename,
	}
}

func (r *splitSeqQualReader) Read() bool {
	if r.err != nil || r.eof {
		return false
	}

	seqD, seq, ok := r.readFastaBlock(r.seqLS, &r.seqLatch, r.seqFilename)
	if !ok {
		r.eof = true
		return false
	}
	qualD, rawQual, ok := r.readFastaBlock(r.qualLS, &r.qualLatch, r.qualFilename)
	if !ok {
		r.err = errorf(FatalStream, r.qualFilename, "quality stream exhausted before sequence stream")
		return false
	}

	sameReadNum := seqD.ReadNum != "" && seqD.ReadNum == qualD.ReadNum
	if _, matched := isPairedDeflines(seqD, qualD, true); !matched && !sameReadNum {
		if seqD.Name != qualD.Name {
			r.err = errorf(FatalStream, r.seqFilename, "seq/qual defline name mismatch: %q vs %q", seqD.Name, qualD.Name)
			return false
		}
	}

	seqVal, seqOK := NormalizeSequence(seq)
	if !seqOK {
		r.err = errorf(FatalStream, r.seqFilename, "unparseable sequence block")
		return false
	}
	qual, err := NormalizeQuality(rawQual, qualityAuto, r.offset)
	if err != nil {
		r.err = err
		return false
	}

	r.defline, r.seq, r.qual = seqD, seqVal, qual
	r.spotCount++
	return true
}

// readFastaBlock reads one ">"-led defline and the sequence-or-quality text
// lines that follow it up to (but not including) the next defline, which is
// pushed back for the following call.
func (r *splitSeqQualReader) readFastaBlock(ls *lineSource, latch *deflineLatch, filename string) (Defline, string, bool) {
	line, ok := ls.next()
	if !ok {
		return Defline{}, "", false
	}
	if !isDeflineLead(line) {
		return Defline{}, "", false
	}
	d, ok := latch.classify(line)
	if !ok {
		return Defline{}, "", false
	}

	var parts []string
	for {
		next, ok := ls.next()
		if !ok {
			break
		}
		if isDeflineLead(next) {
			ls.pushback(next)
			break
		}
		parts = append(parts, next)
	}
	_ = filename
	return d, strings.Join(parts, ""), true
}

func (r *splitSeqQualReader) Restart() error {
	if err := r.seqLS.restart(); err != nil {
		return err
	}
	if err := r.qualLS.restart(); err != nil {
		return err
	}
	r.spotCount, r.eof, r.err = 0, false, nil
	return nil
}

func (r *splitSeqQualReader) EOF() bool        { return r.eof }
func (r *splitSeqQualReader) SpotCount() int   { return r.spotCount }
func (r *splitSeqQualReader) Defline() Defline { return r.defline }
func (r *splitSeqQualReader) Seq() Sequence    { return r.seq }
func (r *splitSeqQualReader) Qual() Quality    { return r.qual }
func (r *splitSeqQualReader) Err() error       { return r.err }
func (r *splitSeqQualReader) SetOffset(off int) { r.offset = off }
