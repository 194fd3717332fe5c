// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

// ChangeKind categorizes one detected difference.
type ChangeKind int

const (
	SheetAdded ChangeKind = iota
	SheetRemoved
	RowCountDelta
	ColumnCountDelta
	CellChanged
)

func (k ChangeKind) String() string {
	switch k {
	case SheetAdded:
		return "sheet-added"
	case SheetRemoved:
		return "sheet-removed"
	case RowCountDelta:
		return "row-count-delta"
	case ColumnCountDelta:
		return "column-count-delta"
	case CellChanged:
		return "cell-changed"
	}
	return "unknown"
}

// Change describes exactly one difference between two snapshots. Row and Col
// are zero-based; -1 when not applicable. Delta is signed, positive meaning
// the source side has more than the backup side.
type Change struct {
	Kind  ChangeKind `json:"kind"`
	Sheet string     `json:"sheet"`
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Delta int        `json:"delta,omitempty"`
}

// String renders the change as one self-contained line. Rows and columns are
// 1-based in the text, columns as their A1-style labels.
func (c Change) String() string {
	switch c.Kind {
	case SheetAdded:
		return fmt.Sprintf("Sheet %q added", c.Sheet)
	case SheetRemoved:
		return fmt.Sprintf("Sheet %q removed", c.Sheet)
	case RowCountDelta:
		return fmt.Sprintf("Sheet %q: row count changed by %+d", c.Sheet, c.Delta)
	case ColumnCountDelta:
		return fmt.Sprintf("Sheet %q, row %d: column count changed by %+d", c.Sheet, c.Row+1, c.Delta)
	case CellChanged:
		return fmt.Sprintf("Sheet %q, cell %s changed", c.Sheet, cellRef(c.Row, c.Col))
	}
	return fmt.Sprintf("Sheet %q: unknown change", c.Sheet)
}

// cellRef builds the A1-style reference for zero-based coordinates.
func cellRef(row, col int) string {
	label, err := snapshot.ColumnLabel(col + 1)
	if err != nil {
		// Can only happen on a grid wider than any real spreadsheet.
		label = fmt.Sprintf("[%d]", col+1)
	}
	return fmt.Sprintf("%s%d", label, row+1)
}
