// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

func TestSnapshot(t *testing.T) {
	doc := snapshot.NewDocument("Inventory")
	doc.Add(snapshot.Sheet{Name: "Totals", Grid: snapshot.Grid{
		{snapshot.TextValue("widgets"), snapshot.NumberValue(41)},
	}})

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Open(path).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Inventory", got.Title)

	s, ok := got.Sheet("Totals")
	require.True(t, ok)
	assert.True(t, s.Grid[0][1].Equal(snapshot.NumberValue(41)))
}

func TestSnapshotErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json")).Snapshot(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = Open(path).Snapshot(context.Background())
	assert.Error(t, err)
}
