package fastq

// EncodingResult is the outcome of the quality-encoding prescan: the Phred offset and
// log-odds flag to apply for the rest of the run, plus whether any
// sequence's soft-clip margins were observed.
type EncodingResult struct {
	Offset       int
	LogOdds      bool
	Numeric      bool
	NeedsClipCol bool
}

// InferEncoding scans up to maxPrescanSpots records across
// files, tracking global min/max quality and whether any record was numeric,
// then apply decideEncoding's decision table. readLensConfigured
// indicates whether --readLens was supplied, which gates NeedsClipCol.
func InferEncoding(readers []Reader, readLensConfigured bool) (EncodingResult, error) {
	var (
		min, max     int
		haveAny      bool
		numericSeen  bool
		asciiSeen    bool
		sawClip      bool
		spotsScanned int
	)

	// Readers default to offset 0, so ASCII Min/Max arrive as raw byte
	// values; they are re-based to offset 33 below because the decision
	// table's thresholds are stated at that offset. Numeric values are used
	// as read.
	for spotsScanned < maxPrescanSpots {
		advanced := false
		for _, r := range readers {
			if r.EOF() || !r.Read() {
				continue
			}
			advanced = true
			spotsScanned++

			seq := r.Seq()
			if seq.ClipLeft > 0 || seq.ClipRight > 0 {
				sawClip = true
			}

			q := r.Qual()
			qmin, qmax := q.Min, q.Max
			if q.Numeric {
				numericSeen = true
				if seq.Space == ColorSpace {
					if qmin < -1 {
						qmin = -1
					}
					if qmin == -1 {
						qmin = 0
					}
				}
			} else {
				asciiSeen = true
				q33 := q.withRange(33)
				qmin, qmax = q33.Min, q33.Max
			}
			if !haveAny || qmin < min {
				min = qmin
			}
			if !haveAny || qmax > max {
				max = qmax
			}
			haveAny = true

			if spotsScanned >= maxPrescanSpots {
				break
			}
		}
		if !advanced {
			break
		}
	}
	for _, r := range readers {
		if err := r.Restart(); err != nil {
			return EncodingResult{}, err
		}
	}

	res := decideEncoding(haveAny, numericSeen, asciiSeen, min, max)
	res.NeedsClipCol = sawClip && readLensConfigured
	if res.Offset == 33 && res.LogOdds {
		return EncodingResult{}, errorf(FatalStream, "", "offset 33 combined with log-odds quality is invalid")
	}
	return res, nil
}

// decideEncoding applies the offset/log-odds decision table in isolation, so it
// can be exercised directly by tests without constructing Readers.
func decideEncoding(haveAny, numeric, ascii bool, min, max int) EncodingResult {
	if !haveAny {
		return EncodingResult{Offset: 33}
	}
	if numeric && !ascii {
		if min >= 0 {
			return EncodingResult{Offset: 0, Numeric: true}
		}
		return EncodingResult{Offset: 0, LogOdds: true, Numeric: true}
	}
	if min > 25 && max > 45 {
		if min+33-64 >= 0 {
			return EncodingResult{Offset: 64}
		}
		return EncodingResult{Offset: 64, LogOdds: true}
	}
	return EncodingResult{Offset: 33}
}

// QualityExpression names the column-sink expression for a resolved
// encoding.
func (e EncodingResult) QualityExpression() string {
	switch {
	case e.Numeric && e.LogOdds:
		return "log_odds"
	case e.Numeric:
		return "phred"
	case e.LogOdds && e.Offset == 64:
		return "log_odds_64"
	case e.Offset == 64:
		return "phred_64"
	default:
		return "phred_33"
	}
}
