// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package xlsx reads and writes document snapshots as Excel workbooks. This
// is the interchange format for pull exports and the S3 mirror; reading one
// back reconstructs the same snapshot the live source produced.
package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

// imageFormula matches the =IMAGE("url") formula an image cell is written
// back as.
var imageFormula = regexp.MustCompile(`(?i)^=?IMAGE\(\s*"([^"]+)"`)

type File struct {
	Path string
}

func Open(path string) *File {
	return &File{Path: path}
}

func (f *File) String() string {
	return "xlsx:" + f.Path
}

// Snapshot loads the workbook into a Document. Cell variants are recovered
// from the workbook's cell types and number formats.
func (f *File) Snapshot(ctx context.Context) (*snapshot.Document, error) {
	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", f.Path, err)
	}
	defer wb.Close()

	title := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
	doc := snapshot.NewDocument(title)

	for _, name := range wb.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := wb.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		grid := make(snapshot.Grid, 0, len(rows))
		for r, cells := range rows {
			row := make(snapshot.Row, 0, len(cells))
			for c, raw := range cells {
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				v, err := f.cell(wb, name, axis, raw)
				if err != nil {
					return nil, fmt.Errorf("sheet %q cell %s: %w", name, axis, err)
				}
				row = append(row, v)
			}
			grid = append(grid, row)
		}
		doc.Add(snapshot.Sheet{Name: name, Grid: grid})
	}

	return doc, nil
}

// cell converts one workbook cell to its snapshot variant.
func (f *File) cell(wb *excelize.File, sheet, axis, raw string) (snapshot.Value, error) {
	if formula, err := wb.GetCellFormula(sheet, axis); err == nil && formula != "" {
		if m := imageFormula.FindStringSubmatch(formula); m != nil {
			return snapshot.ImageValue(m[1]), nil
		}
	}

	typ, err := wb.GetCellType(sheet, axis)
	if err != nil {
		return snapshot.Value{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return snapshot.BoolValue(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if raw == "" {
			// Empty cell within the populated extent.
			return snapshot.TextValue(""), nil
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Unset cells can still hold plain text.
			formatted, _ := wb.GetCellValue(sheet, axis)
			return snapshot.TextValue(formatted), nil
		}
		if dateFormatted(wb, sheet, axis) {
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return snapshot.Value{}, fmt.Errorf("bad date serial %v: %w", serial, err)
			}
			return snapshot.TimeValue(t), nil
		}
		return snapshot.NumberValue(serial), nil
	case excelize.CellTypeDate:
		formatted, _ := wb.GetCellValue(sheet, axis)
		t, err := parseISODate(formatted, raw)
		if err != nil {
			return snapshot.Value{}, err
		}
		return snapshot.TimeValue(t), nil
	default:
		formatted, _ := wb.GetCellValue(sheet, axis)
		return snapshot.TextValue(formatted), nil
	}
}

// dateFormatted reports whether the cell carries one of the builtin date or
// time number formats.
func dateFormatted(wb *excelize.File, sheet, axis string) bool {
	styleID, err := wb.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	style, err := wb.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	fmtID := style.NumFmt
	return (fmtID >= 14 && fmtID <= 22) || (fmtID >= 45 && fmtID <= 47)
}
