// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"sort"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

// SheetPair aligns one sheet name across two snapshots. At least one side is
// always non-nil.
type SheetPair struct {
	Name   string
	Source *snapshot.Sheet
	Backup *snapshot.Sheet
}

// Report is the complete outcome of comparing a live snapshot against its
// most recent backup. ChangeNeeded is derived from Changes; AlreadyExists is
// the caller-supplied same-day-backup flag and has no causal relationship to
// ChangeNeeded (a snapshot may already have today's backup recorded while
// still differing from it).
type Report struct {
	ChangeNeeded  bool     `json:"changeNeeded"`
	Changes       []Change `json:"changes"`
	AlreadyExists bool     `json:"alreadyExists"`
}

// PairSheets aligns the sheets of two snapshots by name. The result covers
// the union of names in ascending ordinal order, one pair per name.
func PairSheets(source, backup *snapshot.Document) []SheetPair {
	names := make(map[string]struct{}, source.Len()+backup.Len())
	for _, n := range source.Names() {
		names[n] = struct{}{}
	}
	for _, n := range backup.Names() {
		names[n] = struct{}{}
	}

	ordered := make([]string, 0, len(names))
	for n := range names {
		ordered = append(ordered, n)
	}
	sort.Strings(ordered)

	pairs := make([]SheetPair, 0, len(ordered))
	for _, n := range ordered {
		pair := SheetPair{Name: n}
		if s, ok := source.Sheet(n); ok {
			pair.Source = &s
		}
		if b, ok := backup.Sheet(n); ok {
			pair.Backup = &b
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// compareGrids walks two grids of a sheet present on both sides and collects
// every difference. Order is fixed: the row-count delta first, then rows in
// index order, each row's column-count delta before its cell changes.
// Differences never short-circuit the walk; the report is a complete account,
// not an existence check.
func compareGrids(name string, source, backup snapshot.Grid) []Change {
	var changes []Change

	if len(source) != len(backup) {
		changes = append(changes, Change{
			Kind:  RowCountDelta,
			Sheet: name,
			Row:   -1,
			Col:   -1,
			Delta: len(source) - len(backup),
		})
	}

	rows := min(len(source), len(backup))
	for i := 0; i < rows; i++ {
		if len(source[i]) != len(backup[i]) {
			changes = append(changes, Change{
				Kind:  ColumnCountDelta,
				Sheet: name,
				Row:   i,
				Col:   -1,
				Delta: len(source[i]) - len(backup[i]),
			})
		}

		cols := min(len(source[i]), len(backup[i]))
		for j := 0; j < cols; j++ {
			if !source[i][j].Equal(backup[i][j]) {
				changes = append(changes, Change{
					Kind:  CellChanged,
					Sheet: name,
					Row:   i,
					Col:   j,
				})
			}
		}
	}

	return changes
}

// Compile compares the live snapshot against the backup snapshot and
// assembles the ordered change list. alreadyExists is passed through
// verbatim; whether a same-day backup file exists is a storage concern the
// comparison has no view of.
func Compile(source, backup *snapshot.Document, alreadyExists bool) Report {
	var changes []Change

	for _, pair := range PairSheets(source, backup) {
		switch {
		case pair.Backup == nil:
			changes = append(changes, Change{Kind: SheetAdded, Sheet: pair.Name, Row: -1, Col: -1})
		case pair.Source == nil:
			changes = append(changes, Change{Kind: SheetRemoved, Sheet: pair.Name, Row: -1, Col: -1})
		default:
			changes = append(changes, compareGrids(pair.Name, pair.Source.Grid, pair.Backup.Grid)...)
		}
	}

	return Report{
		ChangeNeeded:  len(changes) > 0,
		Changes:       changes,
		AlreadyExists: alreadyExists,
	}
}
