package buffer

import "testing"

func TestDeltaTransform(t *testing.T) {
	insert := InsertDelta(5, 3)
	replace := Delta{Start: 5, End: 10, InsertLen: 2}

	tests := []struct {
		name  string
		d     Delta
		off   int
		after bool
		want  int
	}{
		{"before insert", insert, 4, false, 4},
		{"at insert, before", insert, 5, false, 5},
		{"at insert, after", insert, 5, true, 8},
		{"past insert", insert, 6, false, 9},
		{"before replace", replace, 2, true, 2},
		{"at replace start", replace, 5, false, 5},
		{"at replace start, after", replace, 5, true, 7},
		{"inside deletion", replace, 7, false, 5},
		{"inside deletion, after", replace, 7, true, 7},
		{"at deletion end", replace, 10, false, 7},
		{"past deletion", replace, 20, false, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Transform(tt.off, tt.after); got != tt.want {
				t.Errorf("Transform(%d, %v) = %d, want %d", tt.off, tt.after, got, tt.want)
			}
		})
	}
}

func TestDeltaIdentity(t *testing.T) {
	d := InsertDelta(7, 0)
	if !d.IsIdentity() {
		t.Fatal("empty insert should be identity")
	}
	for off := 0; off < 20; off++ {
		for _, after := range []bool{false, true} {
			if got := d.Transform(off, after); got != off {
				t.Errorf("identity moved %d to %d", off, got)
			}
		}
	}
}

func TestDeltaMetrics(t *testing.T) {
	d := Delta{Start: 3, End: 8, InsertLen: 2}
	if d.DeletedLen() != 5 || d.Shift() != -3 || d.InsertEnd() != 5 {
		t.Errorf("metrics = %d %d %d", d.DeletedLen(), d.Shift(), d.InsertEnd())
	}
}

func TestLineEnding(t *testing.T) {
	if DetectLineEnding("a\r\nb\r\nc\n") != LineEndingCRLF {
		t.Error("expected CRLF")
	}
	if DetectLineEnding("plain") != LineEndingLF {
		t.Error("expected LF default")
	}
	if got := NormalizeLineEndings("a\r\nb\nc", LineEndingCRLF); got != "a\r\nb\r\nc" {
		t.Errorf("CRLF normalize = %q", got)
	}
	if got := NormalizeLineEndings("a\r\nb\nc", LineEndingLF); got != "a\nb\nc" {
		t.Errorf("LF normalize = %q", got)
	}
	le, err := ParseLineEnding("CRLF")
	if err != nil || le.Sequence() != "\r\n" {
		t.Errorf("ParseLineEnding = %v, %v", le, err)
	}
	if _, err := ParseLineEnding("cr"); err == nil {
		t.Error("expected error for unsupported line ending")
	}
}

func TestTransformRangeDrift(t *testing.T) {
	d := InsertDelta(10, 5)

	start, end := d.TransformRange(10, 20, DriftInside)
	if start != 10 || end != 25 {
		t.Errorf("inside at start edge = [%d,%d), want [10,25)", start, end)
	}
	start, end = d.TransformRange(10, 20, DriftOutside)
	if start != 15 || end != 25 {
		t.Errorf("outside at start edge = [%d,%d), want [15,25)", start, end)
	}
	start, end = d.TransformRange(0, 10, DriftInside)
	if start != 0 || end != 15 {
		t.Errorf("inside at end edge = [%d,%d), want [0,15)", start, end)
	}
	start, end = d.TransformRange(0, 10, DriftOutside)
	if start != 0 || end != 10 {
		t.Errorf("outside at end edge = [%d,%d), want [0,10)", start, end)
	}
}

func TestParseDrift(t *testing.T) {
	for _, d := range []Drift{DriftInside, DriftOutside} {
		got, err := ParseDrift(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDrift(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDrift("sideways"); err == nil {
		t.Error("ParseDrift should reject unknown names")
	}
}
