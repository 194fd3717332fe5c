// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package jsonfile reads document snapshots previously exported with
// "sheetctl pull". The format is the snapshot package's JSON codec.
package jsonfile

import (
	"context"
	"fmt"
	"os"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

type File struct {
	Path string
}

func Open(path string) *File {
	return &File{Path: path}
}

func (f *File) Snapshot(ctx context.Context) (*snapshot.Document, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", f.Path, err)
	}

	doc, err := snapshot.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", f.Path, err)
	}
	return doc, nil
}

func (f *File) String() string {
	return "json:" + f.Path
}
