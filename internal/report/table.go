// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/sheetctl/sheetctl/internal/compare"
	"github.com/sheetctl/sheetctl/internal/config"
)

// TableWriter renders the change list in tabular form honoring the color
// option. Output is written to w. If w is nil, os.Stdout is used.
func TableWriter(w io.Writer, rep compare.Report, opts Options) {
	if w == nil {
		w = os.Stdout
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present.
	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	fmt.Fprintf(w, "%s  already exists: %s  forced: %s\n",
		headerStyle.Render(opts.Spreadsheet), yesNo(rep.AlreadyExists), yesNo(opts.Forced))

	if len(rep.Changes) == 0 {
		fmt.Fprintln(w, "None.")
		return
	}

	// We build the table rows from the change list.
	var rows [][]string
	for _, c := range rep.Changes {
		row := []string{c.Kind.String(), c.Sheet, oneBased(c.Row), oneBased(c.Col), deltaCell(c)}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(2)
			}

			return style
		}).
		Headers("change", "sheet", "row", "col", "delta").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

func oneBased(idx int) string {
	if idx < 0 {
		return "-"
	}
	return strconv.Itoa(idx + 1)
}

func deltaCell(c compare.Change) string {
	if c.Kind != compare.RowCountDelta && c.Kind != compare.ColumnCountDelta {
		return "-"
	}
	return fmt.Sprintf("%+d", c.Delta)
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".header", "18", "45")
	even = resolveColor(key+".even", "236", "252")
	odd = resolveColor(key+".odd", "240", "248")

	return header, even, odd
}
