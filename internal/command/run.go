// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/sheetctl/sheetctl/internal/backup"
	s3mirror "github.com/sheetctl/sheetctl/internal/backup/s3"
	"github.com/sheetctl/sheetctl/internal/compare"
	"github.com/sheetctl/sheetctl/internal/config"
	"github.com/sheetctl/sheetctl/internal/meta"
	"github.com/sheetctl/sheetctl/internal/report"
	"github.com/sheetctl/sheetctl/internal/snapshot"
	"github.com/sheetctl/sheetctl/internal/source/gsheets"
	"github.com/sheetctl/sheetctl/internal/source/xlsx"
)

// runCommandAction is the action handler for the "run" subcommand: one full
// backup cycle. Fetch the live snapshot and the latest backup's snapshot,
// compile the comparison report, and when warranted create the day's backup,
// mirror it, and send the notification.
func runCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "run"

	spreadsheet, folder, err := requireIdentifiers(cmd)
	if err != nil {
		return err
	}

	opts := googleOptions(cmd)

	live, err := gsheets.New(ctx, spreadsheet, opts...)
	if err != nil {
		return err
	}
	store, err := backup.NewStore(ctx, spreadsheet, folder, opts...)
	if err != nil {
		return err
	}

	sourceDoc, err := live.Snapshot(ctx)
	if err != nil {
		return err
	}
	log.Debugf("live snapshot: %d sheets", sourceDoc.Len())

	today := time.Now()
	exists, err := store.ExistsForDate(ctx, sourceDoc.Title, today)
	if err != nil {
		return err
	}

	backupDoc, err := latestBackupSnapshot(ctx, store)
	if err != nil {
		return err
	}

	rep := compare.Compile(sourceDoc, backupDoc, exists)
	ropts := reportOptions(cmd, spreadsheet, folder)
	if err := report.Spit(os.Stdout, rep, cmd.String("output"), ropts); err != nil {
		return err
	}

	if !rep.ChangeNeeded && !cmd.Bool("force") {
		log.Infof("no changes detected, nothing to do")
		return nil
	}
	if cmd.Bool("dry-run") {
		log.Infof("dry run, skipping backup and notification")
		return nil
	}

	created, err := store.Create(ctx, sourceDoc.Title, today)
	if err != nil {
		return err
	}

	if err := mirrorBackup(ctx, sourceDoc, created.Name); err != nil {
		// The Drive copy exists; a failed mirror shouldn't sink the run.
		log.WithError(err).Warnf("mirror failed")
	}

	subject := fmt.Sprintf("Backup report for %s", sourceDoc.Title)
	if err := newMailer().Send(ctx, subject, report.Text(rep, ropts)); err != nil {
		return err
	}

	return nil
}

// latestBackupSnapshot materializes the snapshot of the most recent backup.
// An empty folder compares against an empty document, so a first run reports
// every sheet as added and creates the initial backup.
func latestBackupSnapshot(ctx context.Context, store *backup.Store) (*snapshot.Document, error) {
	latest, err := store.Latest(ctx)
	if errors.Is(err, backup.ErrNoBackups) {
		log.Infof("backup folder is empty, comparing against an empty snapshot")
		return snapshot.NewDocument(""), nil
	}
	if err != nil {
		return nil, err
	}

	log.Infof("latest backup %q created %s", latest.Name, humanize.Time(latest.Created))
	return store.Snapshot(ctx, latest)
}

// mirrorBackup uploads the snapshot as a workbook to the configured S3
// bucket. No bucket configured means no mirror.
func mirrorBackup(ctx context.Context, doc *snapshot.Document, name string) error {
	bucket, err := config.GetString("mirror.bucket")
	if err != nil || bucket == "" {
		log.Debug("no mirror bucket configured")
		return nil
	}

	prefix, _ := config.GetString("mirror.prefix", "")
	region, _ := config.GetString("mirror.region", "")
	profile, _ := config.GetString("mirror.profile", "")

	mirror, err := s3mirror.NewMirror(ctx, bucket, prefix, region, profile)
	if err != nil {
		return err
	}

	buf, err := xlsx.Encode(doc)
	if err != nil {
		return err
	}

	return mirror.Put(ctx, name, buf.Bytes())
}

// runCommandBuilder constructs the cli.Command for "run", wiring metadata,
// flags, and the action handler.
func runCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run one backup cycle",
		UsageText: "sheetctl run [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewSpreadsheetFlag("run", meta.Config.Source),
			NewFolderFlag("run", meta.Config.Source),
			NewCredentialsFlag("run", meta.Config.Source),
			forceFlag,
			dryRunFlag,
		}, NewGlobalFlags()...),
		Action: runCommandAction,
	}
}
