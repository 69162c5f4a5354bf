// Package sarima implements Seasonal ARIMA (SARIMA) models for time series with seasonality.
//
// SARIMA models extend ARIMA to handle seasonal patterns. A SARIMA(p,d,q)(P,D,Q)[m] model includes:
//   - Non-seasonal components: AR(p), I(d), MA(q)
//   - Seasonal components: SAR(P), SI(D), SMA(Q) at seasonal period m
//
// # Basic Usage
//
// Create and fit a SARIMA model for monthly data (m=12):
//
//	// SARIMA(1,0,0)(1,1,0)[12]
//	model := sarima.New(
//	    sarima.Order{AR: 1, Diff: 0, MA: 0},
//	    sarima.SeasonalOrder{AR: 1, Diff: 1, MA: 0, Period: 12},
//	)
//
//	err := model.Fit(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Forecast the next 6 months with a 95% interval
//	fc, err := model.Forecast(6, 0.95)
//	// fc.Mean, fc.Lower, fc.Upper
//
// # Common Models
//
// Popular SARIMA configurations:
//
//	// Airline model: SARIMA(0,1,1)(0,1,1)[12] for monthly data
//	model := sarima.New(
//	    sarima.Order{Diff: 1, MA: 1},
//	    sarima.SeasonalOrder{Diff: 1, MA: 1, Period: 12},
//	)
//
// # Model Selection
//
// Use information criteria to select the best model:
//
//	// Compare AIC values (lower is better)
//	fmt.Printf("AIC: %.2f, AICc: %.2f, BIC: %.2f\n",
//	    model.AIC, model.AICc, model.BIC)
//
// For automatic order selection over a candidate grid, use the ordersearch
// package.
package sarima
