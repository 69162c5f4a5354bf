// Command ghg-forecast downloads monthly greenhouse gas observations,
// fits a SARIMA model per gas via grid search and writes the six
// month forecasts as a CSV table and an interactive HTML chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/alberthnahas/ghg-pred-arima/internal/config"
	"github.com/alberthnahas/ghg-pred-arima/internal/dataset"
	"github.com/alberthnahas/ghg-pred-arima/internal/logging"
	"github.com/alberthnahas/ghg-pred-arima/internal/pipeline"
	"github.com/alberthnahas/ghg-pred-arima/internal/report"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ghg-forecast %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
		return
	}

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	logging.SetGlobal(logger)

	runID := uuid.New().String()[:8]
	logger = logger.With("run_id", runID)

	logger.Info("GHG forecast starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime)

	// 3. Create context cancelled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Download and clean the observations
	logger.Info("Fetching observations", "url", cfg.Data.URL, "targets", len(cfg.Data.Targets))
	series, err := dataset.Fetch(ctx, cfg.Data)
	if err != nil {
		logger.Fatal("Failed to load data", "error", err)
	}
	logger.Info("Data loaded", "rows", series[0].Len(), "series", len(series))

	// 5. Search, fit and forecast each gas
	runner := pipeline.New(cfg, logger)
	outcome, err := runner.Run(ctx, series)
	if err != nil {
		logger.Fatal("Forecasting failed", "error", err)
	}
	for _, gas := range outcome.Failed {
		logger.Warn("No forecast produced", "gas", gas)
	}

	// 6. Write the forecast table
	if err := report.SaveCSV(cfg.Output.CSVPath, outcome.Records); err != nil {
		logger.Fatal("Failed to write CSV", "error", err)
	}
	logger.Info("Forecast table written", "path", cfg.Output.CSVPath, "records", len(outcome.Records))

	// 7. Render the interactive chart. The logo is decoration, so a
	// missing or unreadable file never stops the run.
	var logo []byte
	if cfg.Output.LogoPath != "" {
		logo, err = report.LoadLogo(cfg.Output.LogoPath)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("Logo not found, rendering without it", "path", cfg.Output.LogoPath)
			} else {
				logger.Warn("Failed to read logo, rendering without it",
					"path", cfg.Output.LogoPath, "error", err)
			}
			logo = nil
		}
	}
	if err := report.SaveChart(cfg.Output.ChartPath, outcome.Panels, logo); err != nil {
		logger.Fatal("Failed to render chart", "error", err)
	}
	logger.Info("Chart written", "path", cfg.Output.ChartPath, "panels", len(outcome.Panels))

	// 8. Optional workbook export
	if cfg.Output.WorkbookPath != "" {
		if err := report.SaveWorkbook(cfg.Output.WorkbookPath, outcome.Panels); err != nil {
			logger.Fatal("Failed to write workbook", "error", err)
		}
		logger.Info("Workbook written", "path", cfg.Output.WorkbookPath)
	}

	logger.Info("Forecast run complete",
		"gases", len(outcome.Panels), "failed", len(outcome.Failed))
}
