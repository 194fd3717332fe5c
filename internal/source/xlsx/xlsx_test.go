// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetctl/sheetctl/internal/compare"
	"github.com/sheetctl/sheetctl/internal/snapshot"
)

// Encode then Snapshot must reproduce the document well enough that the
// comparison sees no differences.
func TestEncodeSnapshotRoundTrip(t *testing.T) {
	doc := snapshot.NewDocument("inventory")
	doc.Add(snapshot.Sheet{Name: "Totals", Grid: snapshot.Grid{
		{snapshot.TextValue("name"), snapshot.TextValue("count"), snapshot.TextValue("audited")},
		{snapshot.TextValue("widgets"), snapshot.NumberValue(41.5), snapshot.BoolValue(true)},
		{snapshot.TextValue("3"), snapshot.TextValue(""), snapshot.BoolValue(false)},
	}})
	doc.Add(snapshot.Sheet{Name: "Media", Grid: snapshot.Grid{
		{snapshot.ImageValue("https://example.com/logo.png")},
	}})

	buf, err := Encode(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Open(path).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "inventory", got.Title)
	assert.Equal(t, []string{"Media", "Totals"}, got.Names())

	rep := compare.Compile(doc, got, false)
	assert.False(t, rep.ChangeNeeded, "round trip differences: %v", rep.Changes)
}

func TestEncodeSnapshotRoundTripDates(t *testing.T) {
	// Noon and midnight are exactly representable as workbook serials.
	noon := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	doc := snapshot.NewDocument("dates")
	doc.Add(snapshot.Sheet{Name: "When", Grid: snapshot.Grid{
		{snapshot.TimeValue(noon), snapshot.TimeValue(midnight)},
	}})

	buf, err := Encode(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Open(path).Snapshot(context.Background())
	require.NoError(t, err)

	s, ok := got.Sheet("When")
	require.True(t, ok)
	require.Len(t, s.Grid, 1)
	require.Len(t, s.Grid[0], 2)

	require.Equal(t, snapshot.Time, s.Grid[0][0].Kind())
	assert.True(t, noon.Equal(s.Grid[0][0].Time()), "got %v", s.Grid[0][0].Time())
	assert.True(t, midnight.Equal(s.Grid[0][1].Time()), "got %v", s.Grid[0][1].Time())
}

func TestSnapshotMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx")).Snapshot(context.Background())
	assert.Error(t, err)
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-01T12:00:00Z", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"2026-01-01T12:00:00", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"2026-01-01", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseISODate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "in=%q got %v", tt.in, got)
	}

	_, err := parseISODate("yesterday")
	assert.Error(t, err)
}

func TestImageFormulaPattern(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{`IMAGE("https://example.com/a.png")`, "https://example.com/a.png"},
		{`=IMAGE("https://example.com/a.png")`, "https://example.com/a.png"},
		{`=image( "https://example.com/a.png", 4, 50, 50)`, "https://example.com/a.png"},
	}
	for _, tt := range tests {
		m := imageFormula.FindStringSubmatch(tt.formula)
		require.NotNil(t, m, tt.formula)
		assert.Equal(t, tt.want, m[1])
	}

	assert.Nil(t, imageFormula.FindStringSubmatch(`SUM(A1:A3)`))
	assert.Nil(t, imageFormula.FindStringSubmatch(`CONCAT("IMAGE(", A1)`))
}
