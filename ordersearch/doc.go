// Package ordersearch implements automatic SARIMA order selection.
//
// The search is an exhaustive grid over all order combinations up to the
// configured maxima, ranked by AIC. This mirrors the usual practice of
// evaluating every (p,d,q)(P,D,Q)[m] candidate in a small grid rather than
// trusting unit-root heuristics to pick the differencing orders.
//
// # Basic Usage
//
//	grid := ordersearch.DefaultGrid() // orders 0..1, period 12
//
//	result, err := ordersearch.Search(series, grid)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("best SARIMA%s%s AIC=%.2f (fitted %d, skipped %d)\n",
//	    result.Order, result.Seasonal, result.AIC,
//	    result.Evaluated, result.Skipped)
//
// The caller refits the winning order on the series to obtain the model
// used for forecasting:
//
//	model := sarima.New(result.Order, result.Seasonal)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	fc, err := model.Forecast(6, 0.95)
//
// # Failure Modes
//
// Candidates that fail to fit are skipped and counted in Result.Skipped.
// If no candidate at all can be fitted the search returns ErrNoModel; if
// the series is shorter than the minimum required by even the simplest
// candidate it returns ErrInsufficientData without evaluating anything.
package ordersearch
