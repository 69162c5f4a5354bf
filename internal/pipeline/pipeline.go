// Package pipeline runs the per-gas forecasting flow: order search,
// model refit, forecasting and result assembly.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alberthnahas/ghg-pred-arima/internal/config"
	"github.com/alberthnahas/ghg-pred-arima/internal/logging"
	"github.com/alberthnahas/ghg-pred-arima/internal/report"
	"github.com/alberthnahas/ghg-pred-arima/ordersearch"
	"github.com/alberthnahas/ghg-pred-arima/sarima"
	"github.com/alberthnahas/ghg-pred-arima/stats"
	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// Runner orchestrates model selection and forecasting for a set of
// aligned series.
type Runner struct {
	cfg    *config.Config
	logger *logging.Logger
}

// Outcome aggregates the per-gas results in input order.
type Outcome struct {
	Records []report.Record
	Panels  []report.Panel
	Failed  []string
}

type gasResult struct {
	records []report.Record
	panel   report.Panel
}

// New creates a Runner. A nil logger falls back to the global one.
func New(cfg *config.Config, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Global()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run forecasts every series and assembles the results in the order
// the series were given. Failed series are skipped with a warning
// unless abort_on_failure is set; it is an error for every series to
// fail.
func (r *Runner) Run(ctx context.Context, series []*timeseries.Series) (*Outcome, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to forecast")
	}

	grid := ordersearch.Grid{
		MaxAR:           r.cfg.Forecast.MaxOrder,
		MaxDiff:         r.cfg.Forecast.MaxOrder,
		MaxMA:           r.cfg.Forecast.MaxOrder,
		MaxSeasonalAR:   r.cfg.Forecast.MaxSeasonalOrder,
		MaxSeasonalDiff: r.cfg.Forecast.MaxSeasonalOrder,
		MaxSeasonalMA:   r.cfg.Forecast.MaxSeasonalOrder,
		Period:          r.cfg.Forecast.SeasonalPeriod,
	}

	r.logger.Info("starting forecasts",
		"series", len(series),
		"horizon", r.cfg.Forecast.Horizon,
		"candidates", grid.Candidates(),
		"workers", r.cfg.Forecast.Workers)

	results := make([]*gasResult, len(series))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Forecast.Workers)

	for i, s := range series {
		i, s := i, s
		g.Go(func() error {
			res, err := r.forecastGas(gctx, s, grid)
			if err != nil {
				if r.cfg.Forecast.AbortOnFailure {
					return fmt.Errorf("%s: %w", s.Name, err)
				}
				r.logger.Warn("skipping series", "gas", s.Name, "error", err)
				return nil
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	for i, res := range results {
		if res == nil {
			outcome.Failed = append(outcome.Failed, series[i].Name)
			continue
		}
		outcome.Records = append(outcome.Records, res.records...)
		outcome.Panels = append(outcome.Panels, res.panel)
	}

	if len(outcome.Panels) == 0 {
		return nil, fmt.Errorf("all %d series failed", len(series))
	}

	return outcome, nil
}

func (r *Runner) forecastGas(ctx context.Context, s *timeseries.Series, grid ordersearch.Grid) (*gasResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := r.logger.With("gas", s.Name)

	last, ok := s.LastTimestamp()
	if !ok {
		return nil, fmt.Errorf("series has no timestamps")
	}

	strength := stats.SeasonalStrength(s, r.cfg.Forecast.SeasonalPeriod)
	log.Debug("analyzing series",
		"observations", s.Len(),
		"mean", s.Mean(),
		"seasonal_strength", strength)

	search, err := ordersearch.Search(s, grid)
	if err != nil {
		return nil, fmt.Errorf("order search: %w", err)
	}

	// Refit the winning order on a fresh model. The optimizer is
	// deterministic, so this reproduces the AIC found by the search.
	model := sarima.New(search.Order, search.Seasonal)
	if err := model.Fit(s); err != nil {
		return nil, fmt.Errorf("fit %s%s: %w", search.Order, search.Seasonal, err)
	}

	log.Info("model selected",
		"order", search.Order.String(),
		"seasonal_order", search.Seasonal.String(),
		"aic", model.AIC,
		"evaluated", search.Evaluated,
		"skipped", search.Skipped)

	summary := model.Summary()
	if summary != nil && summary.LjungBox != nil {
		log.Debug("residual diagnostics",
			"ljung_box_p", summary.LjungBox.PValue,
			"durbin_watson", summary.DurbinWatson)
	}

	fc, err := model.Forecast(r.cfg.Forecast.Horizon, r.cfg.Forecast.Confidence)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	dates := timeseries.MonthsAfter(last, r.cfg.Forecast.Horizon)
	records := make([]report.Record, r.cfg.Forecast.Horizon)
	for h := range records {
		records[h] = report.Record{
			Gas:      s.Name,
			Date:     dates[h],
			Forecast: fc.Mean[h],
			Lower:    fc.Lower[h],
			Upper:    fc.Upper[h],
		}
	}

	return &gasResult{
		records: records,
		panel: report.Panel{
			Gas:      s.Name,
			History:  s.Tail(r.cfg.Output.HistoryMonths),
			Forecast: records,
			Level:    r.cfg.Forecast.Confidence,
		},
	}, nil
}
