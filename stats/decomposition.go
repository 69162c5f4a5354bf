package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// DecompositionResult represents the decomposition of a time series.
type DecompositionResult struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
	Type     string // "additive" or "multiplicative"
}

// Decompose performs seasonal decomposition of a time series.
// Uses classical decomposition with moving average for trend.
// Type can be "additive" (Y = T + S + R) or "multiplicative" (Y = T * S * R).
func Decompose(series *timeseries.Series, period int, decompositionType string) *DecompositionResult {
	n := series.Len()
	if period <= 1 || n < 2*period {
		return nil
	}

	if decompositionType != "additive" && decompositionType != "multiplicative" {
		decompositionType = "additive"
	}

	// Step 1: Calculate trend using centered moving average
	trend := calculateTrend(series, period)

	// Step 2: Detrend the series
	detrended := make([]float64, n)
	if decompositionType == "multiplicative" {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend.Values[i]) && trend.Values[i] != 0 {
				detrended[i] = series.Values[i] / trend.Values[i]
			} else {
				detrended[i] = math.NaN()
			}
		}
	} else {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend.Values[i]) {
				detrended[i] = series.Values[i] - trend.Values[i]
			} else {
				detrended[i] = math.NaN()
			}
		}
	}

	// Step 3: Calculate seasonal component by averaging within each period
	seasonalPattern := make([]float64, period)
	counts := make([]int, period)

	for i := 0; i < n; i++ {
		if !math.IsNaN(detrended[i]) {
			seasonIdx := i % period
			seasonalPattern[seasonIdx] += detrended[i]
			counts[seasonIdx]++
		}
	}

	for i := 0; i < period; i++ {
		if counts[i] > 0 {
			seasonalPattern[i] /= float64(counts[i])
		}
	}

	// Normalize seasonal component
	sum := 0.0
	for _, v := range seasonalPattern {
		sum += v
	}
	mean := sum / float64(period)
	if decompositionType == "multiplicative" {
		for i := range seasonalPattern {
			seasonalPattern[i] /= mean
		}
	} else {
		for i := range seasonalPattern {
			seasonalPattern[i] -= mean
		}
	}

	// Extend seasonal pattern to full series length
	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = seasonalPattern[i%period]
	}

	// Step 4: Calculate residual
	residual := make([]float64, n)
	if decompositionType == "multiplicative" {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend.Values[i]) && trend.Values[i] != 0 && seasonal[i] != 0 {
				residual[i] = series.Values[i] / (trend.Values[i] * seasonal[i])
			} else {
				residual[i] = math.NaN()
			}
		}
	} else {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend.Values[i]) {
				residual[i] = series.Values[i] - trend.Values[i] - seasonal[i]
			} else {
				residual[i] = math.NaN()
			}
		}
	}

	return &DecompositionResult{
		Original: series,
		Trend: &timeseries.Series{
			Values:     trend.Values,
			Timestamps: series.Timestamps,
			Name:       "trend",
		},
		Seasonal: &timeseries.Series{
			Values:     seasonal,
			Timestamps: series.Timestamps,
			Name:       "seasonal",
		},
		Residual: &timeseries.Series{
			Values:     residual,
			Timestamps: series.Timestamps,
			Name:       "residual",
		},
		Period: period,
		Type:   decompositionType,
	}
}

// calculateTrend calculates trend using centered moving average.
func calculateTrend(series *timeseries.Series, period int) *timeseries.Series {
	n := series.Len()
	trend := make([]float64, n)

	for i := range trend {
		trend[i] = math.NaN()
	}

	halfPeriod := period / 2

	if period%2 == 0 {
		// Even period: use 2xperiod MA (centered)
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := 0.0
			// First and last values get half weight
			sum += series.Values[i-halfPeriod] * 0.5
			sum += series.Values[i+halfPeriod] * 0.5
			for j := i - halfPeriod + 1; j < i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		// Odd period: simple centered MA
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := 0.0
			for j := i - halfPeriod; j <= i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	return &timeseries.Series{
		Values:     trend,
		Timestamps: series.Timestamps,
		Name:       "trend",
	}
}

// SeasonalStrength calculates the strength of seasonality:
// F_S = max(0, 1 - Var(R) / Var(S+R))
// where S is the seasonal component and R the residual of an additive
// decomposition. Values near 1 indicate strong seasonality.
func SeasonalStrength(series *timeseries.Series, period int) float64 {
	if period <= 1 || series.Len() < 2*period {
		return 0
	}

	decomp := Decompose(series, period, "additive")
	if decomp == nil {
		return 0
	}

	varR := nanVariance(decomp.Residual.Values)

	seasonalPlusResid := make([]float64, len(decomp.Seasonal.Values))
	for i := range seasonalPlusResid {
		if !math.IsNaN(decomp.Seasonal.Values[i]) && !math.IsNaN(decomp.Residual.Values[i]) {
			seasonalPlusResid[i] = decomp.Seasonal.Values[i] + decomp.Residual.Values[i]
		} else {
			seasonalPlusResid[i] = math.NaN()
		}
	}
	varSR := nanVariance(seasonalPlusResid)

	if varSR == 0 {
		return 0
	}

	strength := 1 - varR/varSR
	if strength < 0 {
		strength = 0
	}

	return strength
}

// nanVariance calculates the sample variance of a slice, ignoring NaN values.
func nanVariance(data []float64) float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	if len(valid) < 2 {
		return 0
	}

	return stat.Variance(valid, nil)
}
