// Package sarima implements Seasonal ARIMA (SARIMA) models.
package sarima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/alberthnahas/ghg-pred-arima/stats"
	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// ErrInsufficientData is returned when a series is too short to fit the
// requested order.
var ErrInsufficientData = errors.New("insufficient data points for the specified order")

// ErrNotFitted is returned when forecasting is attempted before Fit.
var ErrNotFitted = errors.New("model must be fitted before forecasting")

// Order represents the non-seasonal part of a SARIMA specification.
type Order struct {
	AR   int // Autoregressive order (p)
	Diff int // Differencing order (d)
	MA   int // Moving average order (q)
}

// String formats the order as (p,d,q).
func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.AR, o.Diff, o.MA)
}

// SeasonalOrder represents the seasonal part of a SARIMA specification.
type SeasonalOrder struct {
	AR     int // Seasonal autoregressive order (P)
	Diff   int // Seasonal differencing order (D)
	MA     int // Seasonal moving average order (Q)
	Period int // Seasonal period (m), e.g. 12 for monthly data
}

// String formats the seasonal order as (P,D,Q)[m].
func (o SeasonalOrder) String() string {
	return fmt.Sprintf("(%d,%d,%d)[%d]", o.AR, o.Diff, o.MA, o.Period)
}

// Model represents a SARIMA model.
type Model struct {
	Order    Order
	Seasonal SeasonalOrder

	ARCoeffs  []float64 // Non-seasonal AR coefficients
	MACoeffs  []float64 // Non-seasonal MA coefficients
	SARCoeffs []float64 // Seasonal AR coefficients
	SMACoeffs []float64 // Seasonal MA coefficients
	Intercept float64
	Variance  float64
	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64

	fitted     bool
	data       *timeseries.Series
	diffData   *timeseries.Series
	residuals  []float64
	fittedVals []float64
}

// Forecast holds point forecasts with a symmetric prediction interval.
type Forecast struct {
	Mean  []float64
	Lower []float64
	Upper []float64
}

// New creates a new SARIMA model with the specified order.
func New(order Order, seasonal SeasonalOrder) *Model {
	return &Model{
		Order:     order,
		Seasonal:  seasonal,
		ARCoeffs:  make([]float64, order.AR),
		MACoeffs:  make([]float64, order.MA),
		SARCoeffs: make([]float64, seasonal.AR),
		SMACoeffs: make([]float64, seasonal.MA),
	}
}

// MinObservations returns the minimum series length required to fit this
// model's order.
func (m *Model) MinObservations() int {
	return m.Order.AR + m.Order.MA + m.Order.Diff +
		(m.Seasonal.AR+m.Seasonal.Diff+m.Seasonal.MA)*m.Seasonal.Period + 20
}

// Fit fits the SARIMA model to the given time series data.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.seasonalActive() && m.Seasonal.Period < 2 {
		return errors.New("seasonal period must be at least 2")
	}

	if series.Len() < m.MinObservations() {
		return fmt.Errorf("%w: need %d observations, have %d",
			ErrInsufficientData, m.MinObservations(), series.Len())
	}

	m.data = series

	// Apply non-seasonal differencing
	diffSeries := series
	for i := 0; i < m.Order.Diff; i++ {
		diffSeries = diffSeries.Diff()
		if diffSeries.Len() == 0 {
			return errors.New("differencing resulted in empty series")
		}
	}

	// Apply seasonal differencing
	for i := 0; i < m.Seasonal.Diff; i++ {
		diffSeries = diffSeries.SeasonalDiff(m.Seasonal.Period)
		if diffSeries.Len() == 0 {
			return errors.New("seasonal differencing resulted in empty series")
		}
	}

	m.diffData = diffSeries

	if err := m.fitCSS(); err != nil {
		return err
	}

	m.calculateIC()
	m.fitted = true
	return nil
}

func (m *Model) seasonalActive() bool {
	return m.Seasonal.AR > 0 || m.Seasonal.Diff > 0 || m.Seasonal.MA > 0
}

// fitCSS fits the model using Conditional Sum of Squares estimation.
func (m *Model) fitCSS() error {
	y := m.diffData.Values
	n := len(y)
	p := m.Order.AR
	sp := m.Seasonal.AR
	period := m.Seasonal.Period

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	m.Intercept = mean

	// Initialize AR coefficients from Yule-Walker estimates
	if p > 0 {
		acf := stats.ACF(m.diffData, p)
		if est := stats.YuleWalker(acf, p); est != nil {
			for i := 0; i < p; i++ {
				m.ARCoeffs[i] = clamp(est[i], -0.99, 0.99)
			}
		}
	}

	// Initialize seasonal AR coefficients from the ACF at seasonal lags
	if sp > 0 {
		acf := stats.ACF(m.diffData, sp*period)
		if acf != nil {
			for i := 0; i < sp; i++ {
				idx := (i + 1) * period
				if idx < len(acf) {
					m.SARCoeffs[i] = acf[idx] * 0.5
				}
			}
		}
	}

	// Initialize MA and SMA coefficients to small values
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}
	for i := range m.SMACoeffs {
		m.SMACoeffs[i] = 0.1
	}

	return m.optimizeCSS(y)
}

// predictAt computes the one-step prediction at index t from values y and
// residuals. MA terms only use residuals below residLimit so that forecast
// recursion never consumes future residuals.
func (m *Model) predictAt(y, residuals []float64, t, residLimit int) float64 {
	p := m.Order.AR
	q := m.Order.MA
	sp := m.Seasonal.AR
	sq := m.Seasonal.MA
	period := m.Seasonal.Period

	pred := m.Intercept

	for i := 0; i < p && t-i-1 >= 0; i++ {
		pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
	}

	for i := 0; i < sp; i++ {
		lag := (i + 1) * period
		if t-lag >= 0 {
			pred += m.SARCoeffs[i] * (y[t-lag] - m.Intercept)
		}
	}

	for i := 0; i < q && t-i-1 >= 0; i++ {
		if t-i-1 < residLimit {
			pred += m.MACoeffs[i] * residuals[t-i-1]
		}
	}

	for i := 0; i < sq; i++ {
		lag := (i + 1) * period
		if t-lag >= 0 && t-lag < residLimit {
			pred += m.SMACoeffs[i] * residuals[t-lag]
		}
	}

	return pred
}

// optimizeCSS optimizes SARIMA parameters with adaptive learning and momentum.
func (m *Model) optimizeCSS(y []float64) error {
	n := len(y)
	p := m.Order.AR
	q := m.Order.MA
	sp := m.Seasonal.AR
	sq := m.Seasonal.MA
	period := m.Seasonal.Period

	maxIter := 200
	tolerance := 1e-8
	learningRate := 0.005
	momentum := 0.9
	decay := 0.99

	// Momentum terms
	arMomentum := make([]float64, p)
	maMomentum := make([]float64, q)
	sarMomentum := make([]float64, sp)
	smaMomentum := make([]float64, sq)

	// Start index to avoid boundary issues
	startIdx := max(max(p, q), max(sp*period, sq*period))
	if startIdx >= n-10 {
		startIdx = 0
	}

	// Track best solution
	bestSSE := math.Inf(1)
	bestARCoeffs := make([]float64, p)
	bestMACoeffs := make([]float64, q)
	bestSARCoeffs := make([]float64, sp)
	bestSMACoeffs := make([]float64, sq)
	noImproveCount := 0

	for iter := 0; iter < maxIter; iter++ {
		// Calculate residuals with current parameters
		residuals := make([]float64, n)
		currentSSE := 0.0

		for t := startIdx; t < n; t++ {
			pred := m.predictAt(y, residuals, t, n)
			residuals[t] = y[t] - pred
			currentSSE += residuals[t] * residuals[t]
		}

		// Track best solution
		if currentSSE < bestSSE {
			bestSSE = currentSSE
			copy(bestARCoeffs, m.ARCoeffs)
			copy(bestMACoeffs, m.MACoeffs)
			copy(bestSARCoeffs, m.SARCoeffs)
			copy(bestSMACoeffs, m.SMACoeffs)
			noImproveCount = 0
		} else {
			noImproveCount++
		}

		// Early stopping
		if noImproveCount > 20 {
			break
		}

		// Calculate gradients
		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		sarGrad := make([]float64, sp)
		smaGrad := make([]float64, sq)

		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}

			for i := 0; i < sp; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.Intercept)
				}
			}

			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}

			for i := 0; i < sq; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		// Update parameters with momentum
		for i := 0; i < p; i++ {
			arMomentum[i] = momentum*arMomentum[i] + learningRate*arGrad[i]/float64(n)
			m.ARCoeffs[i] -= arMomentum[i]
			m.ARCoeffs[i] = clamp(m.ARCoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < sp; i++ {
			sarMomentum[i] = momentum*sarMomentum[i] + learningRate*sarGrad[i]/float64(n)
			m.SARCoeffs[i] -= sarMomentum[i]
			m.SARCoeffs[i] = clamp(m.SARCoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			maMomentum[i] = momentum*maMomentum[i] + learningRate*maGrad[i]/float64(n)
			m.MACoeffs[i] -= maMomentum[i]
			m.MACoeffs[i] = clamp(m.MACoeffs[i], -0.99, 0.99)
		}
		for i := 0; i < sq; i++ {
			smaMomentum[i] = momentum*smaMomentum[i] + learningRate*smaGrad[i]/float64(n)
			m.SMACoeffs[i] -= smaMomentum[i]
			m.SMACoeffs[i] = clamp(m.SMACoeffs[i], -0.99, 0.99)
		}

		// Decay learning rate
		learningRate *= decay

		// Convergence check
		if iter > 0 && math.Abs(currentSSE-bestSSE) < tolerance {
			break
		}
	}

	// Restore best solution
	copy(m.ARCoeffs, bestARCoeffs)
	copy(m.MACoeffs, bestMACoeffs)
	copy(m.SARCoeffs, bestSARCoeffs)
	copy(m.SMACoeffs, bestSMACoeffs)

	// Calculate final residuals and fitted values
	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)

	for t := 0; t < n; t++ {
		pred := m.predictAt(y, m.residuals, t, n)
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	// Calculate variance
	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}

	numParams := p + q + sp + sq + 1
	if count > numParams {
		m.Variance = sse / float64(count-numParams)
	} else {
		m.Variance = sse / float64(count)
	}

	return nil
}

// calculateIC calculates the Gaussian log-likelihood and information criteria.
func (m *Model) calculateIC() {
	n := len(m.residuals)
	k := m.Order.AR + m.Order.MA + m.Seasonal.AR + m.Seasonal.MA + 1

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	ic := stats.CalculateIC(m.LogLik, n, k)
	m.AIC = ic.AIC
	m.AICc = ic.AICc
	m.BIC = ic.BIC
}

// Forecast generates forecasts for the specified number of steps ahead with
// a symmetric prediction interval at the given confidence level (e.g. 0.95).
func (m *Model) Forecast(steps int, level float64) (*Forecast, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("confidence level must be in (0, 1), got %g", level)
	}

	d := m.Order.Diff
	sd := m.Seasonal.Diff
	period := m.Seasonal.Period

	y := m.diffData.Values
	n := len(y)

	// Extended arrays: future residuals are zero
	extY := make([]float64, n+steps)
	copy(extY, y)

	extResiduals := make([]float64, n+steps)
	copy(extResiduals, m.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		extY[t] = m.predictAt(extY, extResiduals, t, n)
		extResiduals[t] = 0
	}

	mean := make([]float64, steps)
	copy(mean, extY[n:])

	// Integrate back to the original scale
	mean = m.integrate(mean)

	z := distuv.UnitNormal.Quantile((1 + level) / 2)

	lower := make([]float64, steps)
	upper := make([]float64, steps)

	for h := 0; h < steps; h++ {
		se := math.Sqrt(m.Variance)

		// Variance grows with horizon for integrated and seasonally
		// integrated series
		growthFactor := 1.0
		if d > 0 {
			growthFactor *= math.Sqrt(float64(h + 1))
		}
		if sd > 0 && period > 0 {
			seasonalCycles := float64(h/period + 1)
			growthFactor *= math.Sqrt(seasonalCycles)
		}

		se *= growthFactor
		lower[h] = mean[h] - z*se
		upper[h] = mean[h] + z*se
	}

	return &Forecast{Mean: mean, Lower: lower, Upper: upper}, nil
}

// integrate undoes differencing to return forecasts on the original scale.
// Differencing in Fit is first non-seasonal (d times), then seasonal (sd
// times), so integration first undoes seasonal, then non-seasonal.
func (m *Model) integrate(forecasts []float64) []float64 {
	d := m.Order.Diff
	sd := m.Seasonal.Diff
	period := m.Seasonal.Period
	original := m.data.Values
	n := len(original)

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	// The seasonal integration anchors on the non-seasonally differenced
	// series, matching the order of operations in Fit.
	nonSeasonalDiff := original
	for i := 0; i < d; i++ {
		if len(nonSeasonalDiff) <= 1 {
			break
		}
		newDiff := make([]float64, len(nonSeasonalDiff)-1)
		for j := 1; j < len(nonSeasonalDiff); j++ {
			newDiff[j-1] = nonSeasonalDiff[j] - nonSeasonalDiff[j-1]
		}
		nonSeasonalDiff = newDiff
	}

	// Step 1: Undo seasonal differencing
	// z_t = y_t - y_{t-m}, so y_t = z_t + y_{t-m}
	if sd > 0 && period > 0 {
		nDiff := len(nonSeasonalDiff)
		for i := 0; i < sd; i++ {
			for j := 0; j < len(result); j++ {
				if j < period {
					idx := nDiff - period + j
					if idx >= 0 && idx < nDiff {
						result[j] += nonSeasonalDiff[idx]
					}
				} else {
					result[j] += result[j-period]
				}
			}
		}
	}

	// Step 2: Undo non-seasonal differencing
	// y'_t = y_t - y_{t-1}, so y_t = y'_t + y_{t-1}: cumulative sum from
	// the last original value
	for i := 0; i < d; i++ {
		lastVal := original[n-1]
		for j := 0; j < len(result); j++ {
			if j == 0 {
				result[j] += lastVal
			} else {
				result[j] += result[j-1]
			}
		}
	}

	return result
}

// Residuals returns the model residuals on the differenced scale.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the fitted values on the differenced scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// Summary represents a fitted model summary.
type Summary struct {
	Order        Order
	Seasonal     SeasonalOrder
	ARCoeffs     []float64
	MACoeffs     []float64
	SARCoeffs    []float64
	SMACoeffs    []float64
	Intercept    float64
	Variance     float64
	AIC          float64
	AICc         float64
	BIC          float64
	LogLik       float64
	NObs         int
	LjungBox     *stats.LjungBoxResult
	DurbinWatson float64
}

// Summary returns a summary of the fitted model with residual diagnostics.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	residSeries := timeseries.New("residuals", m.residuals)
	fitdf := m.Order.AR + m.Order.MA + m.Seasonal.AR + m.Seasonal.MA
	lb := stats.LjungBox(residSeries, 10, fitdf)

	dw, _ := stats.DurbinWatson(m.residuals)

	return &Summary{
		Order:        m.Order,
		Seasonal:     m.Seasonal,
		ARCoeffs:     m.ARCoeffs,
		MACoeffs:     m.MACoeffs,
		SARCoeffs:    m.SARCoeffs,
		SMACoeffs:    m.SMACoeffs,
		Intercept:    m.Intercept,
		Variance:     m.Variance,
		AIC:          m.AIC,
		AICc:         m.AICc,
		BIC:          m.BIC,
		LogLik:       m.LogLik,
		NObs:         len(m.data.Values),
		LjungBox:     lb,
		DurbinWatson: dw,
	}
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
