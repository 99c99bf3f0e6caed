package backend

import (
	"context"

	"dailyoffice/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SourceResult contains the dataset reader and optional cleanup function
type SourceResult struct {
	Source sheets.TableReader
	// Describe names the source in logs and the run summary.
	Describe string
	Cleanup  CleanupFunc
}

// Factory creates dataset readers based on configuration
type Factory interface {
	CreateSource(ctx context.Context, config Config) (*SourceResult, error)
}

// Config holds configuration for source creation
type Config struct {
	Type SourceType
	Year int

	// CSV specific
	CSVPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

// SourceType represents where the dataset is read from
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SheetsSource SourceType = "sheets"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, SheetsSource:
		return true
	default:
		return false
	}
}
