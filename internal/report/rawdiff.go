// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/sheetctl/sheetctl/internal/snapshot"
)

// RenderRaw emits a low-level JSON diff of the two snapshots. This is a
// debugging surface; the compare package's report stays the contract.
func RenderRaw(w io.Writer, source, backup *snapshot.Document, coloring bool) error {
	a, err := json.Marshal(source)
	if err != nil {
		return fmt.Errorf("failed to marshal source snapshot: %w", err)
	}
	b, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("failed to marshal backup snapshot: %w", err)
	}

	differ := gojsondiff.New()

	delta, err := differ.Compare(b, a)
	if err != nil {
		return fmt.Errorf("failed to compare snapshots: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The snapshots are identical.")
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(b, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}

	formatter := formatter.NewAsciiFormatter(jdoc, config)
	diffString, err := formatter.Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, diffString)
	return nil
}
