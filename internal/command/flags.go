// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var (
	forceFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "force",
		Aliases:     []string{"F"},
		Usage:       "create the backup even when no changes are detected",
		HideDefault: true,
	}

	dryRunFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "dry-run",
		Usage:       "report only; skip the backup copy, mirror and notification",
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
	}

	return
}

// NewSpreadsheetFlag constructs the "spreadsheet" flag, optionally namespaced
// to a command and config file. params[1] is the config file.
func NewSpreadsheetFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "spreadsheet",
		Aliases: []string{"s"},
		Usage:   "ID of the live spreadsheet",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SHEETCTL_SPREADSHEET"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewFolderFlag constructs the "folder" flag for the Drive backup folder,
// optionally namespaced to a command and config file. params[1] is the config
// file.
func NewFolderFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "folder",
		Aliases: []string{"f"},
		Usage:   "ID of the Drive folder holding the backup copies",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SHEETCTL_FOLDER"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewCredentialsFlag constructs the "credentials" flag pointing at a service
// account key file. When empty, Application Default Credentials apply.
func NewCredentialsFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "credentials",
		Usage: "path to a Google service account key file",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SHEETCTL_CREDENTIALS"),
			cli.EnvVar("GOOGLE_APPLICATION_CREDENTIALS"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
