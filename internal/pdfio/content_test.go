package pdfio

import "testing"

func TestScanContentBasic(t *testing.T) {
	stream := []byte(`BT
/F1 18 Tf
72 700 Td
(Introduction) Tj
ET
BT
/F2 10 Tf
72 660 Td
(Large language models are now everywhere.) Tj
ET`)
	lines := ScanContent(stream)
	if len(lines) != 2 {
		t.Fatalf("got %d lines %v, want 2", len(lines), lines)
	}
	if lines[0].Text != "Introduction" || lines[0].FontSize != 18 {
		t.Errorf("line 0 = %+v, want Introduction at 18pt", lines[0])
	}
	if lines[1].Text != "Large language models are now everywhere." || lines[1].FontSize != 10 {
		t.Errorf("line 1 = %+v, want body text at 10pt", lines[1])
	}
	if lines[0].Y <= lines[1].Y {
		t.Errorf("heading y %.1f should be above body y %.1f", lines[0].Y, lines[1].Y)
	}
}

func TestScanContentTJArray(t *testing.T) {
	stream := []byte(`BT /F1 12 Tf 72 700 Td [(Ref)-20(eren)-18(ces)] TJ ET`)
	lines := ScanContent(stream)
	if len(lines) != 1 {
		t.Fatalf("got %d lines %v, want 1", len(lines), lines)
	}
	if lines[0].Text != "References" {
		t.Errorf("text = %q, want References", lines[0].Text)
	}
}

func TestScanContentLineBreaks(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			"Td breaks",
			`BT /F1 10 Tf 0 700 Td (first line) Tj 0 -14 Td (second line) Tj ET`,
			[]string{"first line", "second line"},
		},
		{
			"T* breaks",
			`BT /F1 10 Tf 0 700 Td (one) Tj T* (two) Tj ET`,
			[]string{"one", "two"},
		},
		{
			"quote breaks",
			`BT /F1 10 Tf 0 700 Td (one) Tj (two) ' ET`,
			[]string{"one", "two"},
		},
		{
			"Tm positions",
			`BT /F1 10 Tf 1 0 0 1 72 700 Tm (alpha) Tj 1 0 0 1 72 680 Tm (beta) Tj ET`,
			[]string{"alpha", "beta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := ScanContent([]byte(tt.stream))
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(tt.want))
			}
			for i, w := range tt.want {
				if lines[i].Text != w {
					t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
				}
			}
		})
	}
}

func TestScanContentTmScaling(t *testing.T) {
	// Text size 1 scaled by the text matrix to an effective 16pt.
	stream := []byte(`BT /F1 1 Tf 16 0 0 16 72 700 Tm (Discussion) Tj ET`)
	lines := ScanContent(stream)
	if len(lines) != 1 {
		t.Fatalf("got %d lines %v, want 1", len(lines), lines)
	}
	if lines[0].FontSize != 16 {
		t.Errorf("effective size = %.1f, want 16", lines[0].FontSize)
	}
}

func TestScanContentBoldFont(t *testing.T) {
	stream := []byte(`BT /Helvetica-Bold 10 Tf 72 700 Td (Acknowledgments) Tj ET`)
	lines := ScanContent(stream)
	if len(lines) != 1 || !lines[0].Bold {
		t.Fatalf("got %v, want one bold line", lines)
	}
}

func TestScanContentEscapes(t *testing.T) {
	stream := []byte(`BT /F1 10 Tf 0 700 Td (paren \( and \) pair \\ done) Tj ET`)
	lines := ScanContent(stream)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := `paren ( and ) pair \ done`
	if lines[0].Text != want {
		t.Errorf("text = %q, want %q", lines[0].Text, want)
	}
}

func TestScanContentOctalEscape(t *testing.T) {
	stream := []byte(`BT /F1 10 Tf 0 700 Td (A\040B) Tj ET`)
	lines := ScanContent(stream)
	if len(lines) != 1 || lines[0].Text != "A B" {
		t.Fatalf("got %v, want %q", lines, "A B")
	}
}

func TestScanContentEmptyAndGarbage(t *testing.T) {
	if lines := ScanContent(nil); len(lines) != 0 {
		t.Errorf("nil stream produced %v", lines)
	}
	if lines := ScanContent([]byte("q 1 0 0 1 0 0 cm /Im1 Do Q")); len(lines) != 0 {
		t.Errorf("image-only stream produced %v", lines)
	}
}
