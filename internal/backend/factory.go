package backend

import (
	"context"
	"fmt"

	"dailyoffice/internal/log"
	"dailyoffice/internal/sheets/csvfile"
	gsheet "dailyoffice/internal/sheets/google"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new source factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (*SourceResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVSource:
		return f.createCSVSource(ctx, config)
	case SheetsSource:
		return f.createSheetsSource(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVSource(ctx context.Context, config Config) (*SourceResult, error) {
	reader := csvfile.New(config.CSVPath)

	f.logger.InfoContext(ctx, "Using CSV source", log.FieldSource, config.Type, log.FieldPath, reader.Path())

	return &SourceResult{
		Source:   reader,
		Describe: reader.Path(),
		Cleanup:  func() error { return nil },
	}, nil
}

func (f *DefaultFactory) createSheetsSource(ctx context.Context, config Config) (*SourceResult, error) {
	client, err := gsheet.New(ctx, config.GoogleSpreadsheetID, config.GoogleSheetName, config.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.InfoContext(ctx, "Using Google Sheets source",
		log.FieldSource, config.Type,
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet", client.SheetName())

	return &SourceResult{
		Source:   client,
		Describe: fmt.Sprintf("sheet %q", client.SheetName()),
		Cleanup:  func() error { return nil },
	}, nil
}
