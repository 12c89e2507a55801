package fastq

// probeLimit bounds the multi-line probe's record scan.
const probeLimit = 1000

// detectShape picks a Reader variant for a single already-opened
// lineSource by peeking its first non-header byte. It does not attempt
// cross-file seq+qual pairing; that is layered on top by
// Ingest.detectOneShape and Ingest.resolveFastaPairing, which see every
// file in the batch.
func detectShape(ls *lineSource, mixedDeflines bool, filename string) (FileType, error) {
	lead, ok := ls.next()
	if !ok {
		return 0, errorf(Shape, filename, "empty input")
	}
	ls.pushback(lead)

	if len(lead) == 0 {
		return 0, errorf(Shape, filename, "empty first line")
	}
	switch lead[0] {
	case '@':
		return detectFastqShape(ls, mixedDeflines, filename)
	case '>':
		return 0, errorf(Shape, filename, "FASTA-led file requires cross-file seq/qual probing")
	default:
		if probeSingleLine(ls, mixedDeflines, filename) {
			return TypeSingleLine, nil
		}
		return 0, errorf(Shape, filename, "first line %q is neither a defline nor single-line record", lead)
	}
}

// detectFastqShape distinguishes normal/multi-line/eight-line variants for a
// '@'-led file by probing up to probeLimit records.
func detectFastqShape(ls *lineSource, mixedDeflines bool, filename string) (FileType, error) {
	maxSeqLines, maxQualLines, err := probeLineCounts(ls, filename)
	if err != nil {
		return 0, err
	}
	if maxSeqLines > maxInterDeflineLines || maxQualLines > maxInterDeflineLines {
		return 0, errorf(Shape, filename, "inter-defline gap exceeds %d lines", maxInterDeflineLines)
	}
	multiLine := maxSeqLines > 1 || maxQualLines > 1

	eight, err := probeEightLine(ls, mixedDeflines, multiLine, filename)
	if err != nil {
		return 0, err
	}

	switch {
	case multiLine && eight:
		return TypeMultiLineEightLine, nil
	case multiLine:
		return TypeMultiLine, nil
	case eight:
		return TypeEightLine, nil
	default:
		return TypeNormal, nil
	}
}

// probeLineCounts scans up to probeLimit records counting lines between
// deflines, to decide normal vs multi-line. It always
// restores ls to its original position.
func probeLineCounts(ls *lineSource, filename string) (maxSeq, maxQual int, err error) {
	r := newFourLineReader(ls, true, filename)
	for i := 0; i < probeLimit; i++ {
		if !r.Read() {
			break
		}
	}
	if r.err != nil && IsKind(r.err, FatalStream) {
		// The four-line assumption may simply be wrong; fall back to the
		// multi-line probe below rather than failing outright.
		if restartErr := ls.restart(); restartErr != nil {
			return 0, 0, restartErr
		}
		return probeMultiLineCounts(ls, filename)
	}
	if err := ls.restart(); err != nil {
		return 0, 0, err
	}
	return 1, 1, nil
}

// probeMultiLineCounts is used once the four-line assumption fails; it walks
// raw lines counting run lengths between '@'/'+' boundaries.
func probeMultiLineCounts(ls *lineSource, filename string) (maxSeq, maxQual int, err error) {
	var seqRun, qualRun int
	state := 0 // 0=expect defline, 1=in seq, 2=in qual
	for i := 0; i < maxInterDeflineLines; i++ {
		line, ok := ls.next()
		if !ok {
			break
		}
		switch {
		case isDeflineLead(line) && state != 1:
			if seqRun > maxSeq {
				maxSeq = seqRun
			}
			if qualRun > maxQual {
				maxQual = qualRun
			}
			seqRun, qualRun, state = 0, 0, 1
		case len(line) > 0 && line[0] == '+' && state == 1:
			state = 2
		case state == 1:
			seqRun++
		case state == 2:
			qualRun++
		}
	}
	if seqRun > maxSeq {
		maxSeq = seqRun
	}
	if qualRun > maxQual {
		maxQual = qualRun
	}
	if err := ls.restart(); err != nil {
		return 0, 0, err
	}
	if maxSeq == 0 {
		maxSeq = 1
	}
	if maxQual == 0 {
		maxQual = 1
	}
	return maxSeq, maxQual, nil
}

// probeEightLine reads two records and tests isPairedDeflines to see whether
// the file interleaves read1/read2 under shared names.
func probeEightLine(ls *lineSource, mixedDeflines bool, multiLine bool, filename string) (bool, error) {
	var r Reader
	if multiLine {
		r = newMultiLineReader(ls, mixedDeflines, filename)
	} else {
		r = newFourLineReader(ls, mixedDeflines, filename)
	}
	if !r.Read() {
		if err := ls.restart(); err != nil {
			return false, err
		}
		return false, nil
	}
	d1 := r.Defline()
	if !r.Read() {
		if err := ls.restart(); err != nil {
			return false, err
		}
		return false, nil
	}
	d2 := r.Defline()
	_, matched := isPairedDeflines(d1, d2, false)
	if err := ls.restart(); err != nil {
		return false, err
	}
	return matched, nil
}

// probeSingleLine tries to parse the first few lines as single-line records.
func probeSingleLine(ls *lineSource, mixedDeflines bool, filename string) bool {
	r := newSingleLineReader(ls, mixedDeflines, filename)
	ok := r.Read()
	if err := ls.restart(); err != nil {
		return false
	}
	return ok && r.err == nil
}

// detectFastaPairing implements the '>'-led branch of shape detection:
// probe each other unclaimed '>'-led file as a candidate quality partner by
// reading one spot with file idx as the sequence side; the first that
// validates wins. The swapped roles are tried when the caller reaches the
// other file as idx. claimed indices are never reconsidered as a seq side
// themselves.
func detectFastaPairing(idx int, candidates []*lineSource, mixedDeflines bool, claimed []bool, filenames []string) (partner int, ok bool) {
	for j := range candidates {
		if j == idx || claimed[j] {
			continue
		}
		if trySeqQualRoles(candidates[idx], candidates[j], mixedDeflines, filenames[idx], filenames[j]) {
			return j, true
		}
	}
	return -1, false
}

func trySeqQualRoles(a, b *lineSource, mixedDeflines bool, aName, bName string) bool {
	r := newSplitSeqQualReader(a, b, mixedDeflines, aName, bName)
	ok := r.Read()
	_ = a.restart()
	_ = b.restart()
	return ok && r.err == nil
}
