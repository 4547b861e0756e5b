package workbook

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/xuri/excelize/v2"
)

func newXlsxPart(t *testing.T, setup func(f *excelize.File)) *opc.Part {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if setup != nil {
		setup(f)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return opc.NewPart("/ppt/embeddings/Book1.xlsx", opc.CTXlsx, buf.Bytes())
}

func readCell(t *testing.T, part *opc.Part, sheet, cell string) string {
	t.Helper()
	blob, err := part.Blob()
	if err != nil {
		t.Fatalf("blob: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get %s: %v", cell, err)
	}
	return v
}

func TestUpdateCategories_UsesFormulaRange(t *testing.T) {
	part := newXlsxPart(t, nil)
	wb := New(part)

	if err := wb.UpdateCategories("Sheet1!$A$2:$B$4", 2, []string{"x", "y", "z"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	for cell, want := range map[string]string{"B2": "x", "B3": "y", "B4": "z", "A2": ""} {
		if got := readCell(t, part, "Sheet1", cell); got != want {
			t.Errorf("%s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestUpdateCategories_FallbackColumn(t *testing.T) {
	part := newXlsxPart(t, nil)
	wb := New(part)

	if err := wb.UpdateCategories("", 1, []string{"a", "b"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := readCell(t, part, "Sheet1", "A2"); got != "a" {
		t.Errorf("A2: expected %q, got %q", "a", got)
	}
	if got := readCell(t, part, "Sheet1", "A3"); got != "b" {
		t.Errorf("A3: expected %q, got %q", "b", got)
	}
}

func TestUpdateCategories_UnknownSheetFallsBack(t *testing.T) {
	part := newXlsxPart(t, nil)
	if err := New(part).UpdateCategories("Gone!$C$5:$C$6", 1, []string{"a", "b"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := readCell(t, part, "Sheet1", "A2"); got != "a" {
		t.Errorf("A2: expected %q, got %q", "a", got)
	}
}

func TestUpdateCategories_CorruptBlob(t *testing.T) {
	part := opc.NewPart("/ppt/embeddings/Book1.xlsx", opc.CTXlsx, []byte("not a workbook"))
	before, _ := part.Blob()
	if err := New(part).UpdateCategories("", 1, []string{"a"}); err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
	after, _ := part.Blob()
	if !bytes.Equal(before, after) {
		t.Error("expected blob to be left untouched on failure")
	}
}

func TestParseRef(t *testing.T) {
	cases := []struct {
		in   string
		want Ref
	}{
		{"Sheet1!$A$2:$A$5", Ref{Sheet: "Sheet1", Col: 1, Row: 2, EndCol: 1, EndRow: 5}},
		{"'My ''Data'''!$B$3:$C$9", Ref{Sheet: "My 'Data'", Col: 2, Row: 3, EndCol: 3, EndRow: 9}},
		{"Sheet1!$D$7", Ref{Sheet: "Sheet1", Col: 4, Row: 7, EndCol: 4, EndRow: 7}},
		{"A2:B3", Ref{Col: 1, Row: 2, EndCol: 2, EndRow: 3}},
	}
	for _, c := range cases {
		got, err := ParseRef(c.in)
		if err != nil {
			t.Errorf("ParseRef(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseRef(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "Sheet1!", "Sheet1!$A$x"} {
		if _, err := ParseRef(bad); !errors.Is(err, ErrBadRef) {
			t.Errorf("ParseRef(%q): expected ErrBadRef, got %v", bad, err)
		}
	}
}
