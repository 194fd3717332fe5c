// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sheetctl/sheetctl/internal/backup"
	"github.com/sheetctl/sheetctl/internal/compare"
	"github.com/sheetctl/sheetctl/internal/config"
	"github.com/sheetctl/sheetctl/internal/meta"
	"github.com/sheetctl/sheetctl/internal/report"
	"github.com/sheetctl/sheetctl/internal/snapshot"
	"github.com/sheetctl/sheetctl/internal/source"
	"github.com/sheetctl/sheetctl/internal/source/gsheets"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// resolves two snapshots and reports their differences without touching the
// backup folder's contents:
//
//	diff A B   two exported snapshot files
//	diff A     the live spreadsheet against an exported snapshot
//	diff +     pick two backup copies interactively
//	diff       the live spreadsheet against the latest backup
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	sourceDoc, backupDoc, err := resolveSnapshots(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.String("output") == "raw" {
		return report.RenderRaw(os.Stdout, sourceDoc, backupDoc,
			cmd.Bool("color") || report.AutoColor())
	}

	rep := compare.Compile(sourceDoc, backupDoc, false)
	ropts := reportOptions(cmd, cmd.String("spreadsheet"), cmd.String("folder"))
	return report.Spit(os.Stdout, rep, cmd.String("output"), ropts)
}

func resolveSnapshots(ctx context.Context, cmd *cli.Command) (*snapshot.Document, *snapshot.Document, error) {
	args := cmd.Args().Slice()

	switch len(args) {
	case 2:
		src, err := source.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		bak, err := source.Open(args[1])
		if err != nil {
			return nil, nil, err
		}
		return snapshotPair(ctx, src, bak)

	case 1:
		if args[0] == "+" {
			return pickBackupSnapshots(ctx, cmd)
		}

		bak, err := source.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		live, err := liveSource(ctx, cmd)
		if err != nil {
			return nil, nil, err
		}
		return snapshotPair(ctx, live, bak)

	case 0:
		spreadsheet, folder, err := requireIdentifiers(cmd)
		if err != nil {
			return nil, nil, err
		}
		live, err := gsheets.New(ctx, spreadsheet, googleOptions(cmd)...)
		if err != nil {
			return nil, nil, err
		}
		store, err := backup.NewStore(ctx, spreadsheet, folder, googleOptions(cmd)...)
		if err != nil {
			return nil, nil, err
		}
		latest, err := store.Latest(ctx)
		if err != nil {
			return nil, nil, err
		}
		sourceDoc, err := live.Snapshot(ctx)
		if err != nil {
			return nil, nil, err
		}
		backupDoc, err := store.Snapshot(ctx, latest)
		if err != nil {
			return nil, nil, err
		}
		return sourceDoc, backupDoc, nil

	default:
		return nil, nil, fmt.Errorf("diff takes at most two snapshot arguments")
	}
}

func liveSource(ctx context.Context, cmd *cli.Command) (source.Source, error) {
	spreadsheet := cmd.String("spreadsheet")
	if spreadsheet == "" {
		return nil, fmt.Errorf("no spreadsheet ID; set --spreadsheet, SHEETCTL_SPREADSHEET or the config key")
	}
	return gsheets.New(ctx, spreadsheet, googleOptions(cmd)...)
}

func snapshotPair(ctx context.Context, src, bak source.Source) (*snapshot.Document, *snapshot.Document, error) {
	sourceDoc, err := src.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", src, err)
	}
	backupDoc, err := bak.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", bak, err)
	}
	return sourceDoc, backupDoc, nil
}

// pickBackupSnapshots lets the user select two backup copies from the
// folder. The older pick plays the backup side.
func pickBackupSnapshots(ctx context.Context, cmd *cli.Command) (*snapshot.Document, *snapshot.Document, error) {
	spreadsheet, folder, err := requireIdentifiers(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := backup.NewStore(ctx, spreadsheet, folder, googleOptions(cmd)...)
	if err != nil {
		return nil, nil, err
	}

	files, err := store.List(ctx, 25)
	if err != nil {
		return nil, nil, err
	}
	if len(files) < 2 {
		return nil, nil, fmt.Errorf("need at least two backups to pick from, found %d", len(files))
	}

	selected := SelectBackups(files)
	if len(selected) != 2 {
		return nil, nil, fmt.Errorf("no backups selected")
	}

	newer, older := selected[0], selected[1]
	if older.Created.After(newer.Created) {
		newer, older = older, newer
	}
	log.Debugf("picked %s vs %s", newer.Name, older.Name)

	sourceDoc, err := store.Snapshot(ctx, newer)
	if err != nil {
		return nil, nil, err
	}
	backupDoc, err := store.Snapshot(ctx, older)
	if err != nil {
		return nil, nil, err
	}
	return sourceDoc, backupDoc, nil
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action/validator handlers.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two snapshots",
		UsageText: "sheetctl diff [A] [B] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewSpreadsheetFlag("diff", meta.Config.Source),
			NewFolderFlag("diff", meta.Config.Source),
			NewCredentialsFlag("diff", meta.Config.Source),
		}, NewGlobalFlags()...),
		Action: diffCommandAction,
	}
}
