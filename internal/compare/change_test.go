// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeString(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   string
	}{
		{
			"sheet added",
			Change{Kind: SheetAdded, Sheet: "Totals", Row: -1, Col: -1},
			`Sheet "Totals" added`,
		},
		{
			"sheet removed",
			Change{Kind: SheetRemoved, Sheet: "Old", Row: -1, Col: -1},
			`Sheet "Old" removed`,
		},
		{
			"rows added",
			Change{Kind: RowCountDelta, Sheet: "Totals", Row: -1, Col: -1, Delta: 3},
			`Sheet "Totals": row count changed by +3`,
		},
		{
			"rows removed",
			Change{Kind: RowCountDelta, Sheet: "Totals", Row: -1, Col: -1, Delta: -2},
			`Sheet "Totals": row count changed by -2`,
		},
		{
			"column delta is row-scoped",
			Change{Kind: ColumnCountDelta, Sheet: "Totals", Row: 4, Col: -1, Delta: 1},
			`Sheet "Totals", row 5: column count changed by +1`,
		},
		{
			"cell in first column",
			Change{Kind: CellChanged, Sheet: "Totals", Row: 0, Col: 0},
			`Sheet "Totals", cell A1 changed`,
		},
		{
			"cell past column Z",
			Change{Kind: CellChanged, Sheet: "Totals", Row: 4, Col: 27},
			`Sheet "Totals", cell AB5 changed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.change.String())
		})
	}
}

func TestChangeKindString(t *testing.T) {
	assert.Equal(t, "sheet-added", SheetAdded.String())
	assert.Equal(t, "sheet-removed", SheetRemoved.String())
	assert.Equal(t, "row-count-delta", RowCountDelta.String())
	assert.Equal(t, "column-count-delta", ColumnCountDelta.String())
	assert.Equal(t, "cell-changed", CellChanged.String())
}
