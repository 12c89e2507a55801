package fastq

import "testing"

func TestDeflineLatchLocksToFirstVariant(t *testing.T) {
	l := deflineLatch{}
	d1, ok := l.classify("@HWI-ST1276:71:C1162ACXX:1:1101:1208:2458 1:N:0:CGATGT")
	if !ok || d1.Variant != ILLUMINA_NEW {
		t.Fatalf("first classify: got %+v, ok=%v", d1, ok)
	}
	if l.latched != ILLUMINA_NEW {
		t.Errorf("latched = %v, want ILLUMINA_NEW", l.latched)
	}

	// A line that wouldn't match ILLUMINA_NEW under the full cascade should
	// still fail once latched, rather than silently re-dispatching.
	_, ok = l.classify("@plainname")
	if ok {
		t.Errorf("expected the latch to reject a non-matching line once latched")
	}
}

func TestDeflineLatchMixedReclassifiesEveryLine(t *testing.T) {
	l := deflineLatch{mixed: true}
	d1, ok := l.classify("@HWI-ST1276:71:C1162ACXX:1:1101:1208:2458 1:N:0:CGATGT")
	if !ok || d1.Variant != ILLUMINA_NEW {
		t.Fatalf("first classify: got %+v, ok=%v", d1, ok)
	}
	d2, ok := l.classify("@plainname")
	if !ok {
		t.Fatalf("classify should always succeed via the UNDEFINED fallback")
	}
	if d2.Variant != UNDEFINED {
		t.Errorf("variant = %v, want UNDEFINED under mixedDeflines", d2.Variant)
	}
}
