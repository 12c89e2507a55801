package fastq

import "testing"

func TestDecideEncodingNoData(t *testing.T) {
	res := decideEncoding(false, false, false, 0, 0)
	if res.Offset != 33 {
		t.Errorf("offset = %d, want 33 for an empty scan", res.Offset)
	}
}

func TestDecideEncodingNumericNonNegative(t *testing.T) {
	res := decideEncoding(true, true, false, 0, 40)
	if res.Offset != 0 || !res.Numeric || res.LogOdds {
		t.Errorf("got %+v, want {Offset:0 Numeric:true LogOdds:false}", res)
	}
}

func TestDecideEncodingNumericNegativeIsLogOdds(t *testing.T) {
	res := decideEncoding(true, true, false, -5, 40)
	if res.Offset != 0 || !res.Numeric || !res.LogOdds {
		t.Errorf("got %+v, want {Offset:0 Numeric:true LogOdds:true}", res)
	}
}

func TestDecideEncodingASCIIPhred33Default(t *testing.T) {
	res := decideEncoding(true, false, true, 10, 50)
	if res.Offset != 33 || res.LogOdds {
		t.Errorf("got %+v, want {Offset:33 LogOdds:false}", res)
	}
}

func TestDecideEncodingASCIIPhred64(t *testing.T) {
	res := decideEncoding(true, false, true, 40, 50)
	if res.Offset != 64 || res.LogOdds {
		t.Errorf("got %+v, want {Offset:64 LogOdds:false}", res)
	}
}

func TestDecideEncodingASCIILogOdds64(t *testing.T) {
	res := decideEncoding(true, false, true, 26, 50)
	if res.Offset != 64 || !res.LogOdds {
		t.Errorf("got %+v, want {Offset:64 LogOdds:true}", res)
	}
}

func TestQualityExpression(t *testing.T) {
	cases := []struct {
		res  EncodingResult
		want string
	}{
		{EncodingResult{Numeric: true, LogOdds: true}, "log_odds"},
		{EncodingResult{Numeric: true}, "phred"},
		{EncodingResult{LogOdds: true, Offset: 64}, "log_odds_64"},
		{EncodingResult{Offset: 64}, "phred_64"},
		{EncodingResult{Offset: 33}, "phred_33"},
	}
	for _, c := range cases {
		if got := c.res.QualityExpression(); got != c.want {
			t.Errorf("QualityExpression(%+v) = %q, want %q", c.res, got, c.want)
		}
	}
}
