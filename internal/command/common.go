// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"

	"github.com/sheetctl/sheetctl/internal/config"
	"github.com/sheetctl/sheetctl/internal/meta"
	"github.com/sheetctl/sheetctl/internal/notify"
	"github.com/sheetctl/sheetctl/internal/report"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// googleOptions builds the client options for the Sheets and Drive services
// from the --credentials flag. With no key file, Application Default
// Credentials apply.
func googleOptions(cmd *cli.Command) []option.ClientOption {
	if path := cmd.String("credentials"); path != "" {
		return []option.ClientOption{option.WithCredentialsFile(path)}
	}
	return nil
}

// requireIdentifiers pulls the spreadsheet and folder IDs off the command and
// rejects a run without them. These identifiers only ever travel through
// flags and config, never globals.
func requireIdentifiers(cmd *cli.Command) (spreadsheet, folder string, err error) {
	spreadsheet = cmd.String("spreadsheet")
	folder = cmd.String("folder")
	if spreadsheet == "" {
		return "", "", fmt.Errorf("no spreadsheet ID; set --spreadsheet, SHEETCTL_SPREADSHEET or the config key")
	}
	if folder == "" {
		return "", "", fmt.Errorf("no backup folder ID; set --folder, SHEETCTL_FOLDER or the config key")
	}
	return spreadsheet, folder, nil
}

// reportOptions assembles the rendering options shared by run and diff.
func reportOptions(cmd *cli.Command, spreadsheet, folder string) report.Options {
	return report.Options{
		Spreadsheet: spreadsheet,
		Folder:      folder,
		Forced:      cmd.Bool("force"),
		Color:       cmd.Bool("color"),
	}
}

// newMailer builds the notification mailer from config. A missing notify
// section yields a disabled mailer.
func newMailer() *notify.Mailer {
	to, err := config.GetStringSlice("notify.to")
	if err != nil || len(to) == 0 {
		return &notify.Mailer{}
	}

	host, _ := config.GetString("notify.host", "localhost")
	port, _ := config.GetInt("notify.port", 25)
	from, _ := config.GetString("notify.from", "sheetctl@localhost")
	user, _ := config.GetString("notify.user", "")
	password, _ := config.GetString("notify.password", "")

	return &notify.Mailer{
		Host:     host,
		Port:     port,
		From:     from,
		To:       to,
		Username: user,
		Password: password,
	}
}
