// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/sheetctl/sheetctl/internal/snapshot"
	"github.com/sheetctl/sheetctl/internal/source/jsonfile"
	"github.com/sheetctl/sheetctl/internal/source/xlsx"
)

// Source materializes a full document snapshot. Implementations own the I/O,
// retries and timeouts; the comparison core only ever sees the finished
// snapshot values.
type Source interface {
	Snapshot(ctx context.Context) (*snapshot.Document, error)
	String() string
}

// Open returns the file-backed Source implementation for path, selected by
// extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		log.Debugf("source: xlsx %s", path)
		return xlsx.Open(path), nil
	case ".json":
		log.Debugf("source: json %s", path)
		return jsonfile.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported snapshot file %q (want .xlsx or .json)", path)
	}
}
