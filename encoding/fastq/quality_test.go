package fastq

import "testing"

func TestNormalizeQualityASCII(t *testing.T) {
	q, err := NormalizeQuality("!$$$%%", qualityAuto, 33)
	if err != nil {
		t.Fatalf("NormalizeQuality: %v", err)
	}
	if q.Numeric {
		t.Fatalf("expected ASCII quality")
	}
	if q.ASCII != "!$$$%%" {
		t.Errorf("ascii = %q", q.ASCII)
	}
	if q.Len() != 6 {
		t.Errorf("len = %d, want 6", q.Len())
	}
}

func TestNormalizeQualityNumeric(t *testing.T) {
	q, err := NormalizeQuality("30 31 32 33", qualityAuto, 0)
	if err != nil {
		t.Fatalf("NormalizeQuality: %v", err)
	}
	if !q.Numeric {
		t.Fatalf("expected numeric quality")
	}
	if len(q.Values) != 4 || q.Values[0] != 30 || q.Values[3] != 33 {
		t.Errorf("values = %v", q.Values)
	}
	if q.Min != 30 || q.Max != 33 {
		t.Errorf("min/max = (%d,%d), want (30,33)", q.Min, q.Max)
	}
}

func TestNormalizeQualityNumericMagnitudeOverLimit(t *testing.T) {
	_, err := NormalizeQuality("30 101 32", qualityAuto, 0)
	if err == nil {
		t.Fatalf("expected an error for a numeric quality value over 100")
	}
	if !IsKind(err, FatalStream) {
		t.Errorf("expected a FatalStream error, got %v", err)
	}
}

func TestNormalizeQualityForceASCIIIgnoresWhitespace(t *testing.T) {
	q, err := NormalizeQuality("3 0 3 1", qualityForceASCII, 33)
	if err != nil {
		t.Fatalf("NormalizeQuality: %v", err)
	}
	if q.Numeric {
		t.Fatalf("expected ASCII parsing when forced, got numeric")
	}
}

func TestStripQuotesIfMismatched(t *testing.T) {
	q := Quality{ASCII: `"IIII"`}
	stripped := q.StripQuotesIfMismatched(4)
	if stripped.ASCII != "IIII" {
		t.Errorf("ascii = %q, want quotes stripped", stripped.ASCII)
	}

	same := Quality{ASCII: `"IIII"`}
	unstripped := same.StripQuotesIfMismatched(6)
	if unstripped.ASCII != `"IIII"` {
		t.Errorf("ascii = %q, want quotes left alone when length mismatch isn't exactly 2", unstripped.ASCII)
	}
}
