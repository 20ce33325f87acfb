// Package google persists month sheets into a Google Sheets spreadsheet.
//
// Auth follows the service-account convention: credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"reconcile/internal/layout"
	ports "reconcile/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ports.GridWriter = (*Client)(nil)

// New creates a client for the given spreadsheet using service-account
// credentials from the environment.
func New(ctx context.Context, spreadsheetID string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inlineJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credsFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inlineJSON == "" && credsFile == "" {
		credsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inlineJSON != "":
		credentialsJSON = []byte(inlineJSON)
	case credsFile != "":
		data, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// WriteSheet adds a new tab named after the month and writes the grid with
// USER_ENTERED input so formulas stay formulas. A duplicate tab name is
// rejected by the AddSheet request before any value is written.
func (c *Client) WriteSheet(ctx context.Context, name string, grid layout.Grid) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	addResp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	sheetID := addResp.Replies[0].AddSheet.Properties.SheetId

	data := make([]*gsheet.ValueRange, 0, len(grid.Cells))
	for _, cell := range grid.Cells {
		value := cell.Value
		if cell.Formula != "" {
			value = "=" + cell.Formula
		}
		data = append(data, &gsheet.ValueRange{
			Range:  fmt.Sprintf("%s!%s", name, cell.Ref),
			Values: [][]any{{value}},
		})
	}
	_, err = c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write values to %q: %w", name, err)
	}

	if len(grid.Merges) == 0 {
		return nil
	}
	requests := make([]*gsheet.Request, 0, len(grid.Merges))
	for _, m := range grid.Merges {
		requests = append(requests, &gsheet.Request{
			MergeCells: &gsheet.MergeCellsRequest{
				MergeType: "MERGE_ALL",
				Range: &gsheet.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(m.FromRow - 1),
					EndRowIndex:      int64(m.ToRow),
					StartColumnIndex: int64(m.FromCol - 1),
					EndColumnIndex:   int64(m.ToCol),
				},
			},
		})
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("merge title cells in %q: %w", name, err)
	}
	return nil
}
