package stats

import (
	"math"
	"testing"

	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

func TestACF(t *testing.T) {
	// Create a simple AR(1) process
	n := 100
	phi := 0.8
	values := make([]float64, n)
	values[0] = 0
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}

	series := timeseries.New("ar1", values)
	acf := ACF(series, 10)

	if acf == nil {
		t.Fatal("ACF returned nil")
	}

	// ACF at lag 0 should be 1
	if math.Abs(acf[0]-1.0) > 1e-10 {
		t.Errorf("ACF at lag 0 should be 1, got %f", acf[0])
	}

	// ACF values should decay for AR(1)
	for i := 1; i < len(acf)-1; i++ {
		if math.Abs(acf[i]) > math.Abs(acf[i-1])+0.1 {
			t.Logf("ACF may not be decaying properly at lag %d", i)
		}
	}
}

func TestACFConstantSeries(t *testing.T) {
	series := timeseries.New("flat", []float64{5, 5, 5, 5, 5})
	if acf := ACF(series, 3); acf != nil {
		t.Errorf("Expected nil ACF for zero-variance series, got %v", acf)
	}
}

func TestPACF(t *testing.T) {
	// Create a simple AR(1) process
	n := 100
	phi := 0.7
	values := make([]float64, n)
	values[0] = 0
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}

	series := timeseries.New("ar1", values)
	pacf := PACF(series, 10)

	if pacf == nil {
		t.Fatal("PACF returned nil")
	}

	// PACF at lag 0 should be 1
	if math.Abs(pacf[0]-1.0) > 1e-10 {
		t.Errorf("PACF at lag 0 should be 1, got %f", pacf[0])
	}

	// For AR(1), PACF should be significant only at lag 1
	if math.Abs(pacf[1]) < 0.3 {
		t.Logf("PACF at lag 1 seems low for AR(1) with phi=0.7: %f", pacf[1])
	}
}

func TestYuleWalker(t *testing.T) {
	// AR(1): the first-order estimate equals acf[1]
	n := 200
	phi := 0.6
	values := make([]float64, n)
	values[0] = 0
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%7)-3)/5
	}

	series := timeseries.New("ar1", values)
	acf := ACF(series, 5)

	est := YuleWalker(acf, 1)
	if est == nil {
		t.Fatal("YuleWalker returned nil")
	}
	if math.Abs(est[0]-acf[1]) > 1e-12 {
		t.Errorf("AR(1) estimate should equal acf[1]=%f, got %f", acf[1], est[0])
	}
	if est[0] < 0.3 || est[0] > 0.95 {
		t.Errorf("AR(1) estimate %f far from true phi=%f", est[0], phi)
	}

	// Higher order still returns the requested number of coefficients
	est2 := YuleWalker(acf, 2)
	if len(est2) != 2 {
		t.Fatalf("Expected 2 coefficients, got %d", len(est2))
	}
	t.Logf("AR(2) Yule-Walker estimates: %v", est2)
}

func TestYuleWalkerInvalidInput(t *testing.T) {
	if est := YuleWalker([]float64{1.0, 0.5}, 0); est != nil {
		t.Errorf("Expected nil for order 0, got %v", est)
	}
	if est := YuleWalker([]float64{1.0, 0.5}, 2); est != nil {
		t.Errorf("Expected nil when acf too short, got %v", est)
	}
}

func TestLjungBox(t *testing.T) {
	// White noise should pass Ljung-Box test (no autocorrelation)
	n := 100
	whiteNoise := make([]float64, n)
	for i := range whiteNoise {
		whiteNoise[i] = float64(i%7-3) / 3
	}

	series := timeseries.New("noise", whiteNoise)
	result := LjungBox(series, 10, 0)

	if result == nil {
		t.Fatal("LjungBox returned nil")
	}

	if result.PValue < 0 || result.PValue > 1 {
		t.Errorf("P-value out of range: %f", result.PValue)
	}

	t.Logf("Ljung-Box - Q: %f, P-Value: %f, DOF: %d",
		result.Statistic, result.PValue, result.DOF)

	// Autocorrelated series should yield a larger Q
	autocorrelated := make([]float64, n)
	autocorrelated[0] = 0
	for i := 1; i < n; i++ {
		autocorrelated[i] = 0.9*autocorrelated[i-1] + float64(i%7-3)/10
	}

	series2 := timeseries.New("ar", autocorrelated)
	result2 := LjungBox(series2, 10, 0)

	if result2 == nil {
		t.Fatal("LjungBox returned nil for autocorrelated data")
	}

	if result2.Statistic <= result.Statistic {
		t.Errorf("Expected larger Q for autocorrelated series: %f <= %f",
			result2.Statistic, result.Statistic)
	}
	if result2.PValue > 0.05 {
		t.Errorf("Expected small p-value for strongly autocorrelated series, got %f",
			result2.PValue)
	}

	t.Logf("Ljung-Box Autocorrelated - Q: %f, P-Value: %f",
		result2.Statistic, result2.PValue)
}

func TestLjungBoxDOF(t *testing.T) {
	n := 50
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i%5-2) / 2
	}
	series := timeseries.New("x", values)

	// fitdf reduces degrees of freedom, floored at 1
	result := LjungBox(series, 10, 3)
	if result == nil {
		t.Fatal("LjungBox returned nil")
	}
	if result.DOF != 7 {
		t.Errorf("Expected DOF 7, got %d", result.DOF)
	}

	result = LjungBox(series, 2, 5)
	if result == nil {
		t.Fatal("LjungBox returned nil")
	}
	if result.DOF != 1 {
		t.Errorf("Expected DOF floor of 1, got %d", result.DOF)
	}
}

func TestDurbinWatson(t *testing.T) {
	tests := []struct {
		name      string
		residuals []float64
		high      bool
	}{
		{
			name:      "no autocorrelation",
			residuals: []float64{1, -1, 1, -1, 1, -1, 1, -1},
			high:      true, // Alternating pattern = high DW
		},
		{
			name:      "positive autocorrelation",
			residuals: []float64{1, 1, 1, 1, -1, -1, -1, -1},
			high:      false, // Low DW
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dw, ok := DurbinWatson(tt.residuals)
			if !ok {
				t.Fatal("DurbinWatson failed")
			}
			if tt.high && dw < 2 {
				t.Errorf("Expected high DW, got %f", dw)
			}
			if !tt.high && dw > 2 {
				t.Errorf("Expected low DW, got %f", dw)
			}
		})
	}
}

func TestDecompose(t *testing.T) {
	// Create data with trend and seasonality
	n := 120 // 10 years of monthly data
	period := 12
	values := make([]float64, n)

	for i := 0; i < n; i++ {
		trend := float64(i) * 0.5
		seasonal := 10 * math.Sin(2*math.Pi*float64(i%period)/float64(period))
		noise := float64(i%5-2) / 5
		values[i] = trend + seasonal + noise
	}

	series := timeseries.New("synthetic", values)
	result := Decompose(series, period, "additive")

	if result == nil {
		t.Fatal("Decompose returned nil")
	}

	if result.Trend.Len() != n {
		t.Errorf("Trend length mismatch: expected %d, got %d", n, result.Trend.Len())
	}

	if result.Seasonal.Len() != n {
		t.Errorf("Seasonal length mismatch: expected %d, got %d", n, result.Seasonal.Len())
	}

	if result.Residual.Len() != n {
		t.Errorf("Residual length mismatch: expected %d, got %d", n, result.Residual.Len())
	}

	// Check that components roughly sum to original (for additive)
	// Skip edges where trend may be NaN
	for i := period; i < n-period; i++ {
		reconstructed := result.Trend.Values[i] + result.Seasonal.Values[i] + result.Residual.Values[i]
		original := series.Values[i]
		if !math.IsNaN(reconstructed) && math.Abs(reconstructed-original) > 1.0 {
			t.Errorf("Reconstruction error at index %d: original=%f, reconstructed=%f",
				i, original, reconstructed)
		}
	}
}

func TestDecomposeTooShort(t *testing.T) {
	series := timeseries.New("short", []float64{1, 2, 3, 4, 5})
	if result := Decompose(series, 12, "additive"); result != nil {
		t.Error("Expected nil for series shorter than two periods")
	}
}

func TestSeasonalStrength(t *testing.T) {
	n := 120
	period := 12

	// Strongly seasonal series
	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = 100 + 20*math.Sin(2*math.Pi*float64(i%period)/float64(period)) + float64(i%5-2)/10
	}
	strengthSeasonal := SeasonalStrength(timeseries.New("seasonal", seasonal), period)

	// Pure pseudo-noise series
	noise := make([]float64, n)
	for i := 0; i < n; i++ {
		noise[i] = float64((i*17)%23-11) / 11
	}
	strengthNoise := SeasonalStrength(timeseries.New("noise", noise), period)

	t.Logf("Seasonal strength: seasonal=%f, noise=%f", strengthSeasonal, strengthNoise)

	if strengthSeasonal < 0.64 {
		t.Errorf("Expected strong seasonality (>= 0.64), got %f", strengthSeasonal)
	}
	if strengthNoise > strengthSeasonal {
		t.Errorf("Noise should not look more seasonal than a seasonal series: %f > %f",
			strengthNoise, strengthSeasonal)
	}

	if s := SeasonalStrength(timeseries.New("short", []float64{1, 2, 3}), period); s != 0 {
		t.Errorf("Expected 0 for too-short series, got %f", s)
	}
}
