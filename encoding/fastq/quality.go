package fastq

import (
	"strconv"
	"strings"
)

// Quality is the normalized form of a qual line.
type Quality struct {
	Original string
	Numeric  bool
	ASCII    string // populated when !Numeric; quotes already stripped.
	Values   []int  // populated when Numeric: whitespace-split integers.
	Min, Max int     // ASCII: byte value minus offset. Numeric: raw value.
}

// NormalizeQuality validates and normalizes a quality line. forceMode selects ASCII parsing even in
// the presence of whitespace (used once the encoding has been locked to a
// non-numeric offset); pass qualityAuto to let whitespace presence decide,
// as the ASCII-offset pass does. offset is subtracted from ASCII byte
// values to produce Min/Max (pass 0 during the quality-encoding prescan, when the true
// offset is not yet known).
type QualityMode int

const (
	qualityAuto QualityMode = iota
	qualityForceASCII
)

func NormalizeQuality(raw string, mode QualityMode, offset int) (Quality, error) {
	s := strings.TrimSpace(raw)
	hasWS := strings.ContainsAny(s, " \t")

	if hasWS && mode != qualityForceASCII {
		fields := strings.Fields(s)
		values := make([]int, 0, len(fields))
		min, max := 0, 0
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Quality{Original: raw}, errorf(Record, "", "invalid numeric quality token %q", f)
			}
			if v < 0 {
				if -v > 100 {
					return Quality{Original: raw}, errorf(FatalStream, "", "numeric quality magnitude over 100: %d", v)
				}
			} else if v > 100 {
				return Quality{Original: raw}, errorf(FatalStream, "", "numeric quality magnitude over 100: %d", v)
			}
			values = append(values, v)
			if i == 0 || v < min {
				min = v
			}
			if i == 0 || v > max {
				max = v
			}
		}
		return Quality{Original: raw, Numeric: true, Values: values, Min: min, Max: max}, nil
	}

	ascii := s
	return Quality{Original: raw, ASCII: ascii, Min: 0, Max: 0, Values: nil}.withRange(offset), nil
}

// withRange computes the byte-value range of an ASCII quality string,
// subtracting offset, as a value receiver so callers keep using the
// expression form above.
func (q Quality) withRange(offset int) Quality {
	if q.Numeric || len(q.ASCII) == 0 {
		return q
	}
	min, max := 255, 0
	for i := 0; i < len(q.ASCII); i++ {
		b := int(q.ASCII[i])
		if b < min {
			min = b
		}
		if b > max {
			max = b
		}
	}
	q.Min = min - offset
	q.Max = max - offset
	return q
}

// Len returns the number of quality values (ASCII byte count or numeric
// token count).
func (q Quality) Len() int {
	if q.Numeric {
		return len(q.Values)
	}
	return len(q.ASCII)
}

// StripQuotesIfMismatched implements the double-quote repair rule from
// ASCII quality may be double-quoted on both
// ends; the quotes are stripped only when doing so corrects a length
// mismatch of exactly 2 against seqLen.
func (q Quality) StripQuotesIfMismatched(seqLen int) Quality {
	if q.Numeric || len(q.ASCII) < 2 {
		return q
	}
	if q.ASCII[0] != '"' || q.ASCII[len(q.ASCII)-1] != '"' {
		return q
	}
	if q.Len()-seqLen == 2 {
		q.ASCII = q.ASCII[1 : len(q.ASCII)-1]
	}
	return q
}
