// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

func doc(title string, sheets ...snapshot.Sheet) *snapshot.Document {
	d := snapshot.NewDocument(title)
	for _, s := range sheets {
		d.Add(s)
	}
	return d
}

func grid(rows ...snapshot.Row) snapshot.Grid {
	return snapshot.Grid(rows)
}

func row(cells ...snapshot.Value) snapshot.Row {
	return snapshot.Row(cells)
}

func TestCompileIdentical(t *testing.T) {
	g := grid(
		row(snapshot.TextValue("name"), snapshot.TextValue("count")),
		row(snapshot.TextValue("widgets"), snapshot.NumberValue(41)),
	)
	source := doc("Inventory", snapshot.Sheet{Name: "Totals", Grid: g})
	backup := doc("Inventory 2026-08-28", snapshot.Sheet{Name: "Totals", Grid: g})

	rep := Compile(source, backup, false)
	assert.False(t, rep.ChangeNeeded)
	assert.Empty(t, rep.Changes)
	assert.False(t, rep.AlreadyExists)
}

func TestCompileSheetAddedAndRemoved(t *testing.T) {
	source := doc("Inventory",
		snapshot.Sheet{Name: "New", Grid: grid(row(snapshot.TextValue("x")))},
		snapshot.Sheet{Name: "Shared"},
	)
	backup := doc("Inventory 2026-08-28",
		snapshot.Sheet{Name: "Old", Grid: grid(row(snapshot.TextValue("y")))},
		snapshot.Sheet{Name: "Shared"},
	)

	rep := Compile(source, backup, false)
	require.Len(t, rep.Changes, 2)
	assert.True(t, rep.ChangeNeeded)

	// Union of names in ascending order: New, Old, Shared.
	assert.Equal(t, Change{Kind: SheetAdded, Sheet: "New", Row: -1, Col: -1}, rep.Changes[0])
	assert.Equal(t, Change{Kind: SheetRemoved, Sheet: "Old", Row: -1, Col: -1}, rep.Changes[1])
}

// An added or removed sheet yields exactly one record; its cells are not
// walked.
func TestCompileAddedSheetNotWalked(t *testing.T) {
	source := doc("Inventory", snapshot.Sheet{Name: "Big", Grid: grid(
		row(snapshot.TextValue("a"), snapshot.TextValue("b")),
		row(snapshot.NumberValue(1), snapshot.NumberValue(2)),
	)})
	backup := doc("Inventory 2026-08-28")

	rep := Compile(source, backup, false)
	require.Len(t, rep.Changes, 1)
	assert.Equal(t, SheetAdded, rep.Changes[0].Kind)
}

func TestCompileRowCountDelta(t *testing.T) {
	tests := []struct {
		name      string
		src, bak  int
		wantDelta int
	}{
		{"rows added", 5, 2, 3},
		{"rows removed", 2, 5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var src, bak snapshot.Grid
			for i := 0; i < tt.src; i++ {
				src = append(src, row(snapshot.TextValue("r")))
			}
			for i := 0; i < tt.bak; i++ {
				bak = append(bak, row(snapshot.TextValue("r")))
			}

			rep := Compile(
				doc("s", snapshot.Sheet{Name: "Totals", Grid: src}),
				doc("b", snapshot.Sheet{Name: "Totals", Grid: bak}),
				false)

			require.Len(t, rep.Changes, 1)
			got := rep.Changes[0]
			assert.Equal(t, RowCountDelta, got.Kind)
			assert.Equal(t, tt.wantDelta, got.Delta)
			assert.Equal(t, -1, got.Row)
			assert.Equal(t, -1, got.Col)
		})
	}
}

func TestCompileColumnCountDelta(t *testing.T) {
	src := grid(row(snapshot.TextValue("a"), snapshot.TextValue("b"), snapshot.TextValue("c")))
	bak := grid(row(snapshot.TextValue("a")))

	rep := Compile(
		doc("s", snapshot.Sheet{Name: "Wide", Grid: src}),
		doc("b", snapshot.Sheet{Name: "Wide", Grid: bak}),
		false)

	require.Len(t, rep.Changes, 1)
	assert.Equal(t, Change{Kind: ColumnCountDelta, Sheet: "Wide", Row: 0, Col: -1, Delta: 2}, rep.Changes[0])
}

// Every difference is reported; the walk never stops at the first hit.
func TestCompileCollectsEverything(t *testing.T) {
	src := grid(
		row(snapshot.TextValue("a"), snapshot.NumberValue(1)),
		row(snapshot.TextValue("x"), snapshot.BoolValue(true), snapshot.TextValue("extra")),
		row(snapshot.TextValue("same")),
	)
	bak := grid(
		row(snapshot.TextValue("A"), snapshot.NumberValue(2)),
		row(snapshot.TextValue("x"), snapshot.BoolValue(false)),
		row(snapshot.TextValue("same")),
		row(snapshot.TextValue("gone")),
	)

	rep := Compile(
		doc("s", snapshot.Sheet{Name: "Mix", Grid: src}),
		doc("b", snapshot.Sheet{Name: "Mix", Grid: bak}),
		true)

	want := []Change{
		{Kind: RowCountDelta, Sheet: "Mix", Row: -1, Col: -1, Delta: -1},
		{Kind: CellChanged, Sheet: "Mix", Row: 0, Col: 0},
		{Kind: CellChanged, Sheet: "Mix", Row: 0, Col: 1},
		{Kind: ColumnCountDelta, Sheet: "Mix", Row: 1, Col: -1, Delta: 1},
		{Kind: CellChanged, Sheet: "Mix", Row: 1, Col: 1},
	}
	assert.Equal(t, want, rep.Changes)
	assert.True(t, rep.ChangeNeeded)
	assert.True(t, rep.AlreadyExists)
}

// A same-day backup may exist while the live sheet has since changed; both
// flags can be true at once.
func TestCompileAlreadyExistsPassthrough(t *testing.T) {
	source := doc("s", snapshot.Sheet{Name: "T", Grid: grid(row(snapshot.NumberValue(1)))})
	backup := doc("b", snapshot.Sheet{Name: "T", Grid: grid(row(snapshot.NumberValue(2)))})

	rep := Compile(source, backup, true)
	assert.True(t, rep.AlreadyExists)
	assert.True(t, rep.ChangeNeeded)

	rep = Compile(source, source, true)
	assert.True(t, rep.AlreadyExists)
	assert.False(t, rep.ChangeNeeded)
}

func TestCompileTimeCellsCompareByInstant(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	source := doc("s", snapshot.Sheet{Name: "T", Grid: grid(row(snapshot.TimeValue(noon)))})
	backup := doc("b", snapshot.Sheet{Name: "T", Grid: grid(row(snapshot.TimeValue(noon.In(ny))))})

	rep := Compile(source, backup, false)
	assert.False(t, rep.ChangeNeeded)
}

func TestPairSheets(t *testing.T) {
	source := doc("s", snapshot.Sheet{Name: "B"}, snapshot.Sheet{Name: "A"})
	backup := doc("b", snapshot.Sheet{Name: "C"}, snapshot.Sheet{Name: "B"})

	pairs := PairSheets(source, backup)
	require.Len(t, pairs, 3)

	assert.Equal(t, "A", pairs[0].Name)
	assert.NotNil(t, pairs[0].Source)
	assert.Nil(t, pairs[0].Backup)

	assert.Equal(t, "B", pairs[1].Name)
	assert.NotNil(t, pairs[1].Source)
	assert.NotNil(t, pairs[1].Backup)

	assert.Equal(t, "C", pairs[2].Name)
	assert.Nil(t, pairs[2].Source)
	assert.NotNil(t, pairs[2].Backup)
}
