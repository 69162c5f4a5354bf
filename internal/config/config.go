// Package config defines the application configuration and loads it
// from a YAML file with environment variable overrides.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the forecasting run.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig describes where the observations come from and how the
// wide CSV is interpreted.
type DataConfig struct {
	URL          string        `mapstructure:"url"`           // CSV export URL
	DateColumn   string        `mapstructure:"date_column"`   // Name of the date column
	DateFormat   string        `mapstructure:"date_format"`   // Go time layout for dates
	Targets      []string      `mapstructure:"targets"`       // Value columns to forecast
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // HTTP timeout for the download
}

// ForecastConfig controls the order search and forecast horizon.
type ForecastConfig struct {
	Horizon          int     `mapstructure:"horizon"`            // Months to forecast ahead
	SeasonalPeriod   int     `mapstructure:"seasonal_period"`    // Observations per seasonal cycle
	MaxOrder         int     `mapstructure:"max_order"`          // Upper bound for p, d and q
	MaxSeasonalOrder int     `mapstructure:"max_seasonal_order"` // Upper bound for P, D and Q
	Confidence       float64 `mapstructure:"confidence"`         // Prediction interval level
	Workers          int     `mapstructure:"workers"`            // Concurrent per-gas fits
	AbortOnFailure   bool    `mapstructure:"abort_on_failure"`   // Stop on the first failed gas
}

// OutputConfig names the artifacts the run produces.
type OutputConfig struct {
	CSVPath       string `mapstructure:"csv_path"`       // Forecast table
	ChartPath     string `mapstructure:"chart_path"`     // Interactive HTML dashboard
	WorkbookPath  string `mapstructure:"workbook_path"`  // Optional Excel workbook, empty disables
	LogoPath      string `mapstructure:"logo_path"`      // Optional logo embedded in the dashboard
	HistoryMonths int    `mapstructure:"history_months"` // Months of history shown per panel
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// Validate checks the complete configuration.
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates data configuration
func (c *DataConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}

	if c.DateColumn == "" {
		return fmt.Errorf("date_column is required")
	}

	if c.DateFormat == "" {
		return fmt.Errorf("date_format is required")
	}

	if len(c.Targets) == 0 {
		return fmt.Errorf("targets is required")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, target := range c.Targets {
		if target == "" {
			return fmt.Errorf("targets cannot contain empty names")
		}
		if seen[target] {
			return fmt.Errorf("duplicate target: %s", target)
		}
		seen[target] = true
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}

	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if c.Horizon < 1 {
		return fmt.Errorf("horizon must be at least 1")
	}

	if c.SeasonalPeriod < 2 {
		return fmt.Errorf("seasonal_period must be at least 2")
	}

	if c.MaxOrder < 0 {
		return fmt.Errorf("max_order cannot be negative")
	}

	if c.MaxSeasonalOrder < 0 {
		return fmt.Errorf("max_seasonal_order cannot be negative")
	}

	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("confidence must be between 0 and 1 exclusive")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	return nil
}

// Validate validates output configuration
func (c *OutputConfig) Validate() error {
	if c.CSVPath == "" {
		return fmt.Errorf("csv_path is required")
	}

	if c.ChartPath == "" {
		return fmt.Errorf("chart_path is required")
	}

	if c.HistoryMonths < 1 {
		return fmt.Errorf("history_months must be at least 1")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
