// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package gsheets materializes document snapshots from the Google Sheets
// API. It is the live side of every comparison and also reads backup copies,
// which are themselves Sheets files in the backup folder.
package gsheets

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sheetctl/sheetctl/internal/log"
	"github.com/sheetctl/sheetctl/internal/snapshot"
)

var imageFormula = regexp.MustCompile(`(?i)^=IMAGE\(\s*"([^"]+)"`)

// getFields trims the grid payload to what snapshot conversion needs.
const getFields = "properties(title,timeZone)," +
	"sheets(properties.title," +
	"data.rowData.values(effectiveValue,userEnteredValue.formulaValue,effectiveFormat.numberFormat.type))"

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) String() string {
	return "gsheets:" + c.spreadsheetID
}

// Snapshot fetches the whole spreadsheet grid and converts it into an
// immutable Document.
func (c *Client) Snapshot(ctx context.Context) (*snapshot.Document, error) {
	ss, err := c.getWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if tz := ss.Properties.TimeZone; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			log.Warnf("unknown spreadsheet timezone %q, using UTC", tz)
		}
	}

	doc := snapshot.NewDocument(ss.Properties.Title)
	for _, sh := range ss.Sheets {
		doc.Add(snapshot.Sheet{
			Name: sh.Properties.Title,
			Grid: convertGrid(sh, loc),
		})
	}
	return doc, nil
}

// getWithRetry fetches spreadsheet grid data, backing off exponentially when
// the API rate-limits us.
func (c *Client) getWithRetry(ctx context.Context) (*sheets.Spreadsheet, error) {
	const maxRetries = 15
	const maxBackoff = 60 * time.Second

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		var ss *sheets.Spreadsheet
		ss, err = c.svc.Spreadsheets.Get(c.spreadsheetID).
			IncludeGridData(true).
			Fields(googleapi.Field(getFields)).
			Context(ctx).Do()
		if err == nil {
			return ss, nil
		}

		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Warnf("rate limited by Sheets API, retrying in %v", backoff)
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return nil, fmt.Errorf("failed to fetch spreadsheet %s: %w", c.spreadsheetID, err)
	}
	return nil, fmt.Errorf("failed to fetch spreadsheet %s after %d retries: %w", c.spreadsheetID, maxRetries, err)
}

// convertGrid flattens the API's grid data into rows trimmed to their
// populated extent.
func convertGrid(sh *sheets.Sheet, loc *time.Location) snapshot.Grid {
	var grid snapshot.Grid
	for _, data := range sh.Data {
		for _, rowData := range data.RowData {
			row := make(snapshot.Row, 0, len(rowData.Values))
			for _, cell := range rowData.Values {
				row = append(row, convertCell(cell, loc))
			}
			grid = append(grid, trimRow(row))
		}
	}
	return trimGrid(grid)
}

// convertCell maps one API cell onto the closed value variant. Image cells
// have no effective value; they are recognized by their =IMAGE formula and
// carry the resolved URL.
func convertCell(cell *sheets.CellData, loc *time.Location) snapshot.Value {
	if cell == nil {
		return snapshot.Value{}
	}

	if ue := cell.UserEnteredValue; ue != nil && ue.FormulaValue != nil {
		if m := imageFormula.FindStringSubmatch(*ue.FormulaValue); m != nil {
			return snapshot.ImageValue(m[1])
		}
	}

	ev := cell.EffectiveValue
	if ev == nil {
		return snapshot.Value{}
	}

	switch {
	case ev.StringValue != nil:
		return snapshot.TextValue(*ev.StringValue)
	case ev.BoolValue != nil:
		return snapshot.BoolValue(*ev.BoolValue)
	case ev.NumberValue != nil:
		if isDateFormat(cell) {
			return snapshot.TimeValue(serialToTime(*ev.NumberValue, loc))
		}
		return snapshot.NumberValue(*ev.NumberValue)
	default:
		return snapshot.Value{}
	}
}

func isDateFormat(cell *sheets.CellData) bool {
	if cell.EffectiveFormat == nil || cell.EffectiveFormat.NumberFormat == nil {
		return false
	}
	switch cell.EffectiveFormat.NumberFormat.Type {
	case "DATE", "TIME", "DATE_TIME":
		return true
	}
	return false
}

// serialToTime converts a spreadsheet serial day number to the absolute
// instant it denotes in the spreadsheet's timezone. Rounded to the
// millisecond to absorb float jitter in the serial representation.
func serialToTime(serial float64, loc *time.Location) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, loc)
	ms := math.Round(serial * 24 * 60 * 60 * 1000)
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// trimRow drops trailing absent cells so rows end at their populated extent.
// Interior gaps become empty text, matching what a range read returns.
func trimRow(row snapshot.Row) snapshot.Row {
	end := len(row)
	for end > 0 && row[end-1].IsAbsent() {
		end--
	}
	row = row[:end]
	for i, v := range row {
		if v.IsAbsent() {
			row[i] = snapshot.TextValue("")
		}
	}
	return row
}

func trimGrid(grid snapshot.Grid) snapshot.Grid {
	end := len(grid)
	for end > 0 && len(grid[end-1]) == 0 {
		end--
	}
	return grid[:end]
}
