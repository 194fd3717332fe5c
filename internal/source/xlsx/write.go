// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

func parseISODate(candidates ...string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date cell %q", candidates[0])
}

// Encode writes the document as an xlsx workbook. Image cells become
// =IMAGE("url") formulas so a later Snapshot of the file restores them.
func Encode(doc *snapshot.Document) (*bytes.Buffer, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	for i, name := range doc.Names() {
		if i == 0 {
			// Rename the default sheet rather than leaving it empty.
			defaultSheet := wb.GetSheetName(0)
			if err := wb.SetSheetName(defaultSheet, name); err != nil {
				return nil, err
			}
		} else if _, err := wb.NewSheet(name); err != nil {
			return nil, err
		}

		sheet, _ := doc.Sheet(name)
		for r, row := range sheet.Grid {
			for c, v := range row {
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := setCell(wb, name, axis, v); err != nil {
					return nil, fmt.Errorf("sheet %q cell %s: %w", name, axis, err)
				}
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf, nil
}

func setCell(wb *excelize.File, sheet, axis string, v snapshot.Value) error {
	switch v.Kind() {
	case snapshot.Absent:
		return nil
	case snapshot.Text:
		return wb.SetCellStr(sheet, axis, v.Text())
	case snapshot.Number:
		return wb.SetCellFloat(sheet, axis, v.Number(), -1, 64)
	case snapshot.Bool:
		return wb.SetCellBool(sheet, axis, v.Bool())
	case snapshot.Time:
		return wb.SetCellValue(sheet, axis, v.Time())
	case snapshot.Image:
		// Cache the URL as the cell value so range reads see the cell even
		// though the formula result is never calculated.
		if err := wb.SetCellStr(sheet, axis, v.URL()); err != nil {
			return err
		}
		return wb.SetCellFormula(sheet, axis, fmt.Sprintf("IMAGE(%q)", v.URL()))
	}
	return fmt.Errorf("unknown value kind %d", v.Kind())
}
