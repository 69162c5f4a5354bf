package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultSourceURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRjhwQGnOCm51KTrr-xAgLjm1CwIyE9OzSB4WsP8xEvn6YpACXp36ikIMnwqZ2Fyw/pub?gid=1720832544&single=true&output=csv"

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")         // Current directory
		v.AddConfigPath("./configs") // Project configs directory
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides. Nested keys map dots to
	// underscores, so forecast.horizon becomes GHG_FORECAST_HORIZON.
	v.SetEnvPrefix("GHG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.url", defaultSourceURL)
	v.SetDefault("data.date_column", "Date")
	v.SetDefault("data.date_format", "Jan-2006")
	v.SetDefault("data.targets", []string{
		"CO2_seasonal",
		"CH4_seasonal",
		"N2O_seasonal",
		"SF6_seasonal",
	})
	v.SetDefault("data.fetch_timeout", "60s")

	// Forecast defaults
	v.SetDefault("forecast.horizon", 6)
	v.SetDefault("forecast.seasonal_period", 12)
	v.SetDefault("forecast.max_order", 1)
	v.SetDefault("forecast.max_seasonal_order", 1)
	v.SetDefault("forecast.confidence", 0.95)
	v.SetDefault("forecast.workers", 1)
	v.SetDefault("forecast.abort_on_failure", false)

	// Output defaults
	v.SetDefault("output.csv_path", "ghg_sarima_forecasts_next_6_months.csv")
	v.SetDefault("output.chart_path", "index.html")
	v.SetDefault("output.workbook_path", "")
	v.SetDefault("output.logo_path", "logo_bmkg.png")
	v.SetDefault("output.history_months", 12)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			URL:        defaultSourceURL,
			DateColumn: "Date",
			DateFormat: "Jan-2006",
			Targets: []string{
				"CO2_seasonal",
				"CH4_seasonal",
				"N2O_seasonal",
				"SF6_seasonal",
			},
			FetchTimeout: 60 * time.Second,
		},
		Forecast: ForecastConfig{
			Horizon:          6,
			SeasonalPeriod:   12,
			MaxOrder:         1,
			MaxSeasonalOrder: 1,
			Confidence:       0.95,
			Workers:          1,
			AbortOnFailure:   false,
		},
		Output: OutputConfig{
			CSVPath:       "ghg_sarima_forecasts_next_6_months.csv",
			ChartPath:     "index.html",
			WorkbookPath:  "",
			LogoPath:      "logo_bmkg.png",
			HistoryMonths: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
