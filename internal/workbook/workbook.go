// Package workbook edits the spreadsheet embedded in a chart part, the
// source of truth a chart's cached labels and values are derived from.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/xuri/excelize/v2"
)

// ErrBadRef is returned by ParseRef for formulas that are not a plain
// sheet-qualified cell or range reference.
var ErrBadRef = errors.New("unsupported cell reference")

// ChartWorkbook is the xlsx package embedded behind a chart part.
type ChartWorkbook struct {
	part *opc.Part
}

// New wraps the embedded xlsx part.
func New(part *opc.Part) *ChartWorkbook {
	return &ChartWorkbook{part: part}
}

// Part returns the embedded package part.
func (w *ChartWorkbook) Part() *opc.Part { return w.part }

// UpdateCategories writes labels into the leaf category column, one row per
// label. formula is the chart's category reference (c:f); when it cannot be
// used the labels go to column max(depth,1) of the first sheet, from row 2.
func (w *ChartWorkbook) UpdateCategories(formula string, depth int, labels []string) error {
	blob, err := w.part.Blob()
	if err != nil {
		return err
	}
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return fmt.Errorf("open embedded workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("embedded workbook has no sheets")
	}
	target := Ref{Sheet: sheets[0], Col: max(depth, 1), Row: 2}
	if ref, err := ParseRef(formula); err == nil {
		if ref.Sheet == "" || slices.Contains(sheets, ref.Sheet) {
			target.Col, target.Row = ref.EndCol, ref.Row
			if ref.Sheet != "" {
				target.Sheet = ref.Sheet
			}
		}
	}

	for i, label := range labels {
		cell, err := excelize.CoordinatesToCellName(target.Col, target.Row+i)
		if err != nil {
			return fmt.Errorf("cell for row %d: %w", target.Row+i, err)
		}
		if err := f.SetCellStr(target.Sheet, cell, label); err != nil {
			return fmt.Errorf("set %s!%s: %w", target.Sheet, cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("write embedded workbook: %w", err)
	}
	w.part.SetBlob(buf.Bytes())
	return nil
}

// Ref is a parsed reference such as Sheet1!$A$2:$B$5. Columns and rows are
// 1-based; Col/Row address the first cell and EndCol/EndRow the last.
type Ref struct {
	Sheet  string
	Col    int
	Row    int
	EndCol int
	EndRow int
}

// ParseRef parses a sheet-qualified cell or range reference.
func ParseRef(formula string) (Ref, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return Ref{}, ErrBadRef
	}

	var ref Ref
	cells := formula
	if i := strings.LastIndex(formula, "!"); i >= 0 {
		ref.Sheet = unquoteSheet(formula[:i])
		cells = formula[i+1:]
	}

	first, last, isRange := strings.Cut(cells, ":")
	var err error
	if ref.Col, ref.Row, err = cellCoords(first); err != nil {
		return Ref{}, err
	}
	ref.EndCol, ref.EndRow = ref.Col, ref.Row
	if isRange {
		if ref.EndCol, ref.EndRow, err = cellCoords(last); err != nil {
			return Ref{}, err
		}
	}
	return ref, nil
}

func cellCoords(cell string) (int, int, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(cell, "$", ""))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRef, cell)
	}
	return col, row, nil
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
