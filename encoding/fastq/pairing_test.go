package fastq

import (
	"strings"
	"testing"
)

func newTestPlan(path, data string, typ FileType) *FilePlan {
	ls := newLineSource(strings.NewReader(data))
	return &FilePlan{Path: path, Type: typ, LS: ls}
}

func TestPlanPairingStrictPairsTwoFiles(t *testing.T) {
	files := []*FilePlan{
		newTestPlan("b_R2.fastq", "@read/2\nTTTT\n+\n!!!!\n", TypeNormal),
		newTestPlan("a_R1.fastq", "@read/1\nACGT\n+\nIIII\n", TypeNormal),
	}
	if err := PlanPairing(files); err != nil {
		t.Fatalf("PlanPairing: %v", err)
	}
	// PlanPairing sorts by Path: a_R1.fastq ends up at index 0.
	if files[0].Path != "a_R1.fastq" {
		t.Fatalf("expected sort by path, got %q first", files[0].Path)
	}
	if files[0].PairOf != 1 || files[1].PairOf != 0 {
		t.Errorf("PairOf = (%d,%d), want (1,0)", files[0].PairOf, files[1].PairOf)
	}
	if !files[1].Claimed {
		t.Errorf("expected the second file in pair order to be marked Claimed")
	}
}

func TestPlanPairingFragmentIsUnpaired(t *testing.T) {
	files := []*FilePlan{
		newTestPlan("single.fastq", "@lonely\nACGT\n+\nIIII\n", TypeNormal),
	}
	if err := PlanPairing(files); err != nil {
		t.Fatalf("PlanPairing: %v", err)
	}
	if files[0].PairOf != -1 {
		t.Errorf("PairOf = %d, want -1 for an unpaired fragment file", files[0].PairOf)
	}
}

func TestPlanPairingMarksLone2DFileTwoDOnly(t *testing.T) {
	files := []*FilePlan{
		newTestPlan("sample.2d.fastq", "@channel_1_read_1\nGGGG\n+\nIIII\n", TypeNormal),
	}
	if err := PlanPairing(files); err != nil {
		t.Fatalf("PlanPairing: %v", err)
	}
	if files[0].PairOf != -1 {
		t.Errorf("PairOf = %d, want -1 for a standalone 2D file with no template/complement mate", files[0].PairOf)
	}
	if !files[0].TwoDOnly {
		t.Errorf("expected a standalone, exclusively-2D file to be marked TwoDOnly")
	}
}

func TestValidatePairedTypesRejectsMismatch(t *testing.T) {
	files := []*FilePlan{
		{Path: "a.fastq", Type: TypeNormal, PairOf: 1},
		{Path: "b.fastq", Type: TypeMultiLine, PairOf: 0},
	}
	err := validatePairedTypes(files)
	if err == nil {
		t.Fatalf("expected an error for mismatched paired file types")
	}
	if !IsKind(err, Shape) {
		t.Errorf("expected a Shape error, got %v", err)
	}
}
