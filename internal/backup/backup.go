// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package backup manages the Drive folder that holds the daily backup copies
// of the spreadsheet. The comparison core never touches this; it only sees
// the snapshots and the already-exists flag the store produces.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sheetctl/sheetctl/internal/cacheutil"
	"github.com/sheetctl/sheetctl/internal/log"
	"github.com/sheetctl/sheetctl/internal/snapshot"
	"github.com/sheetctl/sheetctl/internal/source/gsheets"
)

// ErrNoBackups is returned by Latest when the backup folder is empty.
var ErrNoBackups = fmt.Errorf("no backups found")

// File is one backup copy in the folder.
type File struct {
	ID       string
	Name     string
	Created  time.Time
	Modified time.Time
}

// Store wraps the Drive backup folder for one spreadsheet. Backup copies are
// themselves Sheets files, so reading one back goes through the gsheets
// source.
type Store struct {
	svc           *drive.Service
	spreadsheetID string
	folderID      string
	opts          []option.ClientOption
}

func NewStore(ctx context.Context, spreadsheetID, folderID string, opts ...option.ClientOption) (*Store, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		folderID:      folderID,
		opts:          opts,
	}, nil
}

func (s *Store) String() string {
	return "drive:" + s.folderID
}

// BackupName computes the dated file name for one day's backup.
func BackupName(title string, day time.Time) string {
	return fmt.Sprintf("%s %s", title, day.Format("2006-01-02"))
}

// Latest returns the most recently created backup copy.
func (s *Store) Latest(ctx context.Context) (*File, error) {
	files, err := s.list(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoBackups
	}
	return files[0], nil
}

// List returns up to limit backup copies, most recent first.
func (s *Store) List(ctx context.Context, limit int64) ([]*File, error) {
	return s.list(ctx, limit)
}

func (s *Store) list(ctx context.Context, limit int64) ([]*File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		escapeQuery(s.folderID))

	var resp *drive.FileList
	err := withBackoff(ctx, func() error {
		var callErr error
		resp, callErr = s.svc.Files.List().
			Q(q).
			OrderBy("createdTime desc").
			PageSize(limit).
			Fields("files(id, name, createdTime, modifiedTime)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backup folder %s: %w", s.folderID, err)
	}

	files := make([]*File, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, toFile(f))
	}
	return files, nil
}

// ExistsForDate reports whether the folder already holds a backup named for
// the given day. This is purely a storage fact; the caller feeds it into the
// report untouched.
func (s *Store) ExistsForDate(ctx context.Context, title string, day time.Time) (bool, error) {
	name := BackupName(title, day)
	q := fmt.Sprintf("'%s' in parents and name = '%s' and trashed = false",
		escapeQuery(s.folderID), escapeQuery(name))

	var resp *drive.FileList
	err := withBackoff(ctx, func() error {
		var callErr error
		resp, callErr = s.svc.Files.List().
			Q(q).
			PageSize(1).
			Fields("files(id)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to check for backup %q: %w", name, err)
	}
	return len(resp.Files) > 0, nil
}

// Create copies the live spreadsheet into the backup folder under the dated
// name. The copy is the physical backup; the caller decides when one is
// warranted.
func (s *Store) Create(ctx context.Context, title string, day time.Time) (*File, error) {
	name := BackupName(title, day)

	var created *drive.File
	err := withBackoff(ctx, func() error {
		var callErr error
		created, callErr = s.svc.Files.Copy(s.spreadsheetID, &drive.File{
			Name:    name,
			Parents: []string{s.folderID},
		}).
			Fields("id, name, createdTime, modifiedTime").
			SupportsAllDrives(true).
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backup %q: %w", name, err)
	}

	log.Infof("created backup %s (%s)", created.Name, created.Id)
	return toFile(created), nil
}

// Snapshot materializes the document snapshot of one backup copy. Backup
// files never change after creation, so snapshots are cached by file ID and
// modification time.
func (s *Store) Snapshot(ctx context.Context, f *File) (*snapshot.Document, error) {
	sub := []string{s.spreadsheetID, s.folderID}
	key := f.ID + "@" + f.Modified.UTC().Format(time.RFC3339)

	if entry, ok := cacheutil.Read(sub, key); ok {
		doc, err := snapshot.DecodeDocument(entry.Data)
		if err == nil {
			return doc, nil
		}
		log.WithError(err).Warnf("discarding corrupt cache entry %s", entry.Path)
	}

	client, err := gsheets.New(ctx, f.ID, s.opts...)
	if err != nil {
		return nil, err
	}
	doc, err := client.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := cacheutil.Write(sub, key, data); err != nil {
			log.WithError(err).Warnf("failed to cache backup snapshot %s", f.ID)
		}
	}
	return doc, nil
}

func toFile(f *drive.File) *File {
	created, _ := time.Parse(time.RFC3339, f.CreatedTime)
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return &File{
		ID:       f.Id,
		Name:     f.Name,
		Created:  created,
		Modified: modified,
	}
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// withBackoff retries fn with exponential backoff when the Drive API
// rate-limits us.
func withBackoff(ctx context.Context, fn func() error) error {
	const maxRetries = 15
	const maxBackoff = 60 * time.Second

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Warnf("rate limited by Drive API, retrying in %v", backoff)
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return err
	}
	return fmt.Errorf("giving up after %d retries: %w", maxRetries, err)
}
