// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/sheetctl/sheetctl/internal/compare"
)

// Options carries the identifiers and flags the fixed text layout needs.
// The identifiers come from config/flags, never from globals.
type Options struct {
	Spreadsheet string
	Folder      string
	Forced      bool
	Color       bool
}

// Spit renders the report to w in the requested output mode. The text mode
// is the canonical layout consumed verbatim for logging and the notification
// body; the other modes exist for terminal and scripting use.
func Spit(w io.Writer, rep compare.Report, output string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(rep)
		if err != nil {
			log.Errorf("report json marshal: %v", err)
			return err
		}
		_, _ = w.Write(jsonOutput)
		return nil
	case "yaml":
		lines := make([]string, 0, len(rep.Changes))
		for _, c := range rep.Changes {
			lines = append(lines, c.String())
		}
		yamlOutput, err := yaml.Marshal(struct {
			ChangeNeeded  bool     `yaml:"changeNeeded"`
			AlreadyExists bool     `yaml:"alreadyExists"`
			Changes       []string `yaml:"changes"`
		}{rep.ChangeNeeded, rep.AlreadyExists, lines})
		if err != nil {
			log.Errorf("report yaml marshal: %v", err)
			return err
		}
		_, _ = w.Write(yamlOutput)
		return nil
	case "table":
		TableWriter(w, rep, opts)
		return nil
	default:
		Render(w, rep, opts)
		return nil
	}
}

// Render writes the canonical multi-line text report: resource identifiers,
// three yes/no lines, then the bulleted change lines or a literal "None.".
func Render(w io.Writer, rep compare.Report, opts Options) {
	fmt.Fprintf(w, "Spreadsheet:      %s\n", opts.Spreadsheet)
	fmt.Fprintf(w, "Backup folder:    %s\n", opts.Folder)
	fmt.Fprintf(w, "Already exists:   %s\n", yesNo(rep.AlreadyExists))
	fmt.Fprintf(w, "Changes detected: %s\n", yesNo(rep.ChangeNeeded))
	fmt.Fprintf(w, "Forced:           %s\n", yesNo(opts.Forced))
	fmt.Fprintln(w, "Changes:")

	if len(rep.Changes) == 0 {
		fmt.Fprintln(w, "None.")
		return
	}

	for _, c := range rep.Changes {
		fmt.Fprintf(w, "  - %s\n", c)
	}
}

// Text returns the canonical text report as a string, for log lines and the
// notification mail body.
func Text(rep compare.Report, opts Options) string {
	var sb strings.Builder
	Render(&sb, rep, opts)
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// AutoColor reports whether colored output is appropriate without an
// explicit --color flag.
func AutoColor() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
