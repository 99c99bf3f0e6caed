package config

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
)

const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"

	DefaultYear = 2026
)

type Config struct {
	// Source data
	DataSource  string
	CSVPath     string
	SiteYear    int
	ColorColumn string

	// Output
	OutputDir     string
	RenderWorkers int

	// Page context
	AnalyticsID  string
	ColorMap     ColorMap
	ColorMapFile string

	// Build manifest (optional)
	ManifestPath string

	// AMQP build notifications (optional)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Google Sheets source
	GoogleSpreadsheetID string
	GoogleSheetName     string

	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		DataSource:  getEnv("DATA_SOURCE", SourceCSV),
		CSVPath:     getEnv("CSV_PATH", "data/acn-prayers-2026.csv"),
		SiteYear:    getEnvInt("SITE_YEAR", DefaultYear),
		ColorColumn: getEnv("COLOR_COLUMN", "Color"),

		OutputDir:     getEnv("OUTPUT_DIR", "build"),
		RenderWorkers: getEnvInt("RENDER_WORKERS", runtime.GOMAXPROCS(0)),

		AnalyticsID:  os.Getenv("ANALYTICS_ID"),
		ColorMap:     DefaultColorMap(),
		ColorMapFile: getEnv("COLOR_MAP_FILE", ""),

		ManifestPath: getEnv("BUILD_MANIFEST_PATH", ""),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "dailyoffice"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "site.built"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.ColorMapFile != "" {
		cm, err := LoadColorMap(cfg.ColorMapFile)
		if err != nil {
			return nil, err
		}
		cfg.ColorMap = cm
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			errors = append(errors, "CSV path cannot be empty when using csv source")
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of %v", c.DataSource, []string{SourceCSV, SourceSheets}))
	}

	if c.SiteYear < 1 || c.SiteYear > 9999 {
		errors = append(errors, fmt.Sprintf("invalid site year %d: must be between 1 and 9999", c.SiteYear))
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		errors = append(errors, "output directory cannot be empty")
	}

	if c.RenderWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid render workers %d: must be at least 1", c.RenderWorkers))
	} else if c.RenderWorkers > 256 {
		errors = append(errors, fmt.Sprintf("invalid render workers %d: must be at most 256", c.RenderWorkers))
	}

	if err := c.ColorMap.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
