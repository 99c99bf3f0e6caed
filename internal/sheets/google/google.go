package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dailyoffice/internal/core"
	"dailyoffice/internal/log"
	ports "dailyoffice/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads the dataset from one sheet of a Google spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.TableReader = (*Client)(nil)

// New creates a Sheets client for spreadsheetID. sheetBase is prefixed with
// year unless it already starts with a 4-digit year, so "Readings" becomes
// "2026 Readings".
func New(ctx context.Context, spreadsheetID, sheetBase string, year int) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if strings.TrimSpace(sheetBase) == "" {
		return nil, errors.New("missing GOOGLE_SHEET_NAME")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return newWithService(svc, spreadsheetID, yearPrefixedName(sheetBase, year)), nil
}

func newWithService(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// SheetName returns the resolved sheet (tab) name.
func (c *Client) SheetName() string {
	return c.sheetName
}

// newSheetsService initializes a read-only Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	// Also check the standard Google Cloud environment variable
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	logger := log.FromContext(ctx).WithComponent(log.ComponentSheets)
	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.DebugContext(ctx, "Reading credentials from file", log.FieldPath, serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTable fetches every populated cell of the sheet. The first row is the header.
func (c *Client) ReadTable(ctx context.Context) (core.Table, error) {
	if c.svc == nil {
		return core.Table{}, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("'%s'", strings.ReplaceAll(c.sheetName, "'", "''"))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %s: %w", c.sheetName, err)
	}
	log.FromContext(ctx).WithComponent(log.ComponentSheets).DebugContext(ctx, "Read sheet values",
		"sheet", c.sheetName,
		log.FieldCount, len(resp.Values))
	return tableFromValues(resp.Values), nil
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
