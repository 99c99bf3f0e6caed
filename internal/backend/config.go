package backend

import (
	"fmt"

	"dailyoffice/internal/config"
)

// FromAppConfig converts the application config to source config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sourceType := SourceType(appConfig.DataSource)
	if !sourceType.IsValid() {
		return Config{}, fmt.Errorf("invalid data source in config: %s", appConfig.DataSource)
	}

	return Config{
		Type: sourceType,
		Year: appConfig.SiteYear,

		CSVPath: appConfig.CSVPath,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleSheetName:     appConfig.GoogleSheetName,
	}, nil
}

// Validate validates the source configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Type)
	}

	switch c.Type {
	case CSVSource:
		if c.CSVPath == "" {
			return fmt.Errorf("CSV path is required for csv source")
		}
	case SheetsSource:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets source")
		}
		if c.GoogleSheetName == "" {
			return fmt.Errorf("Google Sheet name is required for sheets source")
		}
	}

	return nil
}
