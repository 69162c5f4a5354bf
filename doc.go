// Package ghgpredarima forecasts monthly greenhouse gas concentrations
// with seasonal ARIMA models.
//
// The module fits one SARIMA model per gas series (CO2, CH4, N2O and
// SF6), selecting the model orders by exhaustive grid search on AIC,
// and projects each series six months ahead together with prediction
// intervals. A single batch run downloads the observations, fits the
// models and writes a forecast CSV plus an interactive HTML chart.
//
// # Quick Start
//
// Fit a SARIMA model:
//
//	series := timeseries.NewMonthly("CO2_seasonal", start, values)
//	model := sarima.New(sarima.Order{AR: 1, Diff: 1, MA: 1}, sarima.SeasonalOrder{Diff: 1, MA: 1, Period: 12})
//	model.Fit(series)
//	fc, _ := model.Forecast(6, 0.95)
//
// Use the grid search for automatic order selection:
//
//	result, _ := ordersearch.Search(series, ordersearch.DefaultGrid())
//	model := sarima.New(result.Order, result.Seasonal)
//	model.Fit(series)
//
// Or run the whole batch tool:
//
//	go run ./cmd/ghg-forecast -config config.yaml
//
// # Packages
//
// The module is organized into the following packages:
//
//   - sarima: Seasonal ARIMA models with CSS estimation
//   - ordersearch: Exhaustive grid search over model orders
//   - stats: Autocorrelation, information criteria, residual diagnostics
//   - timeseries: Monthly series data structures and CSV loading
//   - internal/dataset: Remote observation retrieval and cleaning
//   - internal/pipeline: Per-gas search, fit and forecast orchestration
//   - internal/report: CSV, HTML chart and Excel workbook output
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package ghgpredarima
