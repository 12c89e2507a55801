package fastq

import (
	"strings"

	"github.com/pkg/errors"
)

// fastaReader implements the FASTA-only variant (seq with no quality line):
// defline, then one or more sequence lines terminated by the next defline.
// Quality is fabricated as '?' repeated over the sequence length (Phred 30 at
// offset 33), following the same name→sequence accumulation style as
// encoding/fasta.Fasta. Its failure messages are built with
// github.com/pkg/errors and wrapped by errorsWrap into this package's
// FatalStream *Error, like the other readers' failures.
type fastaReader struct {
	ls       *lineSource
	latch    deflineLatch
	filename string

	defline Defline
	seq     Sequence
	qual    Quality

	saved    string
	hasSaved bool

	spotCount   int
	resyncCount int
	eof         bool
	err         error
}

func newFastaReader(ls *lineSource, mixedDeflines bool, filename string) *fastaReader {
	ls.skipHeader()
	return &fastaReader{ls: ls, latch: deflineLatch{mixed: mixedDeflines}, filename: filename}
}

func (r *fastaReader) Read() bool {
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

func (r *fastaReader) nextLine() (string, bool) {
	if r.hasSaved {
		r.hasSaved = false
		return r.saved, true
	}
	return r.ls.next()
}

func (r *fastaReader) tryRecordFrom(line string) bool {
	if !isDeflineLead(line) {
		return false
	}
	d, ok := r.latch.classify(line)
	if !ok {
		return false
	}
	d = applyNanoporeFilenameHint(d, r.filename)

	var parts []string
	for {
		next, ok := r.ls.next()
		if !ok {
			break
		}
		if isDeflineLead(next) {
			r.saved, r.hasSaved = next, true
			break
		}
		parts = append(parts, next)
	}
	seq, seqOK := NormalizeSequence(strings.Join(parts, ""))
	if !seqOK {
		r.err = errorsWrap(r.filename, "unparseable FASTA sequence block")
		return true
	}

	r.defline, r.seq = d, seq
	r.qual = fabricateQuality(seq.Len(), false)
	r.spotCount++
	return true
}

func (r *fastaReader) resync() bool {
	for i := 0; i < maxResyncLines; i++ {
		line, ok := r.nextLine()
		if !ok {
			r.eof = true
			r.err = errorsWrap(r.filename, "could not resync: reached EOF")
			return false
		}
		if !isDeflineLead(line) {
			continue
		}
		r.resyncCount++
		if r.tryRecordFrom(line) {
			return r.err == nil
		}
	}
	r.err = errorsWrap(r.filename, "could not resync within resync window")
	return false
}

func errorsWrap(filename, msg string) *Error {
	return &Error{Kind: FatalStream, Path: filename, Err: errors.New(msg)}
}

func (r *fastaReader) Restart() error {
	if err := r.ls.restart(); err != nil {
		return err
	}
	r.spotCount, r.eof, r.err = 0, false, nil
	r.saved, r.hasSaved = "", false
	return nil
}

func (r *fastaReader) EOF() bool        { return r.eof }
func (r *fastaReader) SpotCount() int   { return r.spotCount }
func (r *fastaReader) Defline() Defline { return r.defline }
func (r *fastaReader) Seq() Sequence    { return r.seq }
func (r *fastaReader) Qual() Quality    { return r.qual }
func (r *fastaReader) Err() error       { return r.err }
func (r *fastaReader) ResyncCount() int { return r.resyncCount }
