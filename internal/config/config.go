package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"retail-insights/internal/domain"
)

// Source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

type Config struct {
	// Input
	Source      string
	CSVPath     string
	SQLitePath  string
	SQLiteTable string

	// Pipeline
	ErrorPolicy string

	// Output
	SummaryDir  string
	StoreReport bool

	// ImportCSV copies the CSV input into the SQLite raw table instead of
	// producing a report. Set from the -import flag only.
	ImportCSV bool

	LogLevel string
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are used for variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Source:      getEnv("RETAIL_SOURCE", SourceCSV),
		CSVPath:     getEnv("RETAIL_CSV_PATH", getEnv("CSV_PATH", "retail_sales_clean.csv")),
		SQLitePath:  getEnv("RETAIL_SQLITE_PATH", "./data/retail.db"),
		SQLiteTable: getEnv("RETAIL_SQLITE_TABLE", "retail_sales_raw"),

		ErrorPolicy: getEnv("RETAIL_ERROR_POLICY", string(domain.ErrorPolicyAbort)),

		SummaryDir:  getEnv("RETAIL_SUMMARY_DIR", ""),
		StoreReport: getEnvBool("RETAIL_STORE_REPORT", false),

		LogLevel: getEnv("RETAIL_LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.Source {
	case SourceCSV:
		if c.CSVPath == "" {
			errors = append(errors, "CSV path cannot be empty when using csv source")
		}
	case SourceSQLite:
		if c.SQLiteTable == "" {
			errors = append(errors, "SQLite table cannot be empty when using sqlite source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid source '%s': must be one of [%s %s]", c.Source, SourceCSV, SourceSQLite))
	}

	if c.UsesSQLite() && c.SQLitePath == "" {
		errors = append(errors, "SQLite database path cannot be empty when the sqlite source, report store or import is used")
	}
	if c.ImportCSV && c.CSVPath == "" {
		errors = append(errors, "CSV path cannot be empty when importing")
	}

	if _, err := domain.ParseErrorPolicy(c.ErrorPolicy); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// UsesSQLite reports whether the run needs the SQLite store opened.
func (c *Config) UsesSQLite() bool {
	return c.Source == SourceSQLite || c.StoreReport || c.ImportCSV
}

// Location returns the source location for the configured source kind.
func (c *Config) Location() string {
	if c.Source == SourceSQLite {
		return c.SQLiteTable
	}
	return c.CSVPath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
