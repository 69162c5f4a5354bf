// Package stats provides statistical tests and analysis functions for time series.
//
// This package includes autocorrelation functions, information criteria, and
// diagnostic tests for seasonal ARIMA model validation.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	// Autocorrelation Function
//	acf := stats.ACF(series, 20)
//
//	// Partial Autocorrelation Function
//	pacf := stats.PACF(series, 20)
//
//	// Yule-Walker AR coefficient estimates from the ACF
//	phi := stats.YuleWalker(acf, 2)
//
// # Information Criteria
//
// Compare fitted models:
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	// ic.AIC, ic.AICc, ic.BIC
//
// # Residual Diagnostics
//
// Test residuals for autocorrelation:
//
//	// Ljung-Box test
//	lb := stats.LjungBox(residuals, 10, p+q)
//	if lb.PValue > 0.05 {
//	    // Residuals are white noise (good)
//	}
//
//	// Durbin-Watson statistic
//	dw, ok := stats.DurbinWatson(residuals.Values)
//
// # Time Series Decomposition
//
// Decompose a series into trend, seasonal, and residual components:
//
//	decomp := stats.Decompose(series, 12, "additive")
//	// decomp.Trend, decomp.Seasonal, decomp.Residual
//
//	// Strength of the seasonal signal in [0, 1]
//	fs := stats.SeasonalStrength(series, 12)
package stats
