// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sheetctl/sheetctl/internal/config"
	"github.com/sheetctl/sheetctl/internal/meta"
	"github.com/sheetctl/sheetctl/internal/source/gsheets"
	"github.com/sheetctl/sheetctl/internal/source/xlsx"
)

// pullCommandAction is the action handler for the "pull" subcommand. It
// exports the live snapshot to a local file, .xlsx or .json by extension.
// Exports are what the diff command's file arguments consume.
func pullCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "pull"

	spreadsheet := cmd.String("spreadsheet")
	if spreadsheet == "" {
		return fmt.Errorf("no spreadsheet ID; set --spreadsheet, SHEETCTL_SPREADSHEET or the config key")
	}

	live, err := gsheets.New(ctx, spreadsheet, googleOptions(cmd)...)
	if err != nil {
		return err
	}
	doc, err := live.Snapshot(ctx)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" {
		path = doc.Title + ".xlsx"
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		buf, err := xlsx.Encode(doc)
		if err != nil {
			return err
		}
		data = buf.Bytes()
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q (want .xlsx or .json)", filepath.Ext(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Infof("exported %d sheets to %s", doc.Len(), path)
	return nil
}

// pullCommandBuilder constructs the cli.Command for "pull".
func pullCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "export the live snapshot to a local file",
		UsageText: "sheetctl pull [path] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewSpreadsheetFlag("pull", meta.Config.Source),
			NewCredentialsFlag("pull", meta.Config.Source),
		}, NewGlobalFlags()...),
		Action: pullCommandAction,
	}
}
