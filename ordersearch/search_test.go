package ordersearch

import (
	"errors"
	"math"
	"testing"

	"github.com/alberthnahas/ghg-pred-arima/sarima"
	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

func syntheticMonthly(n int) *timeseries.Series {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		trend := float64(i) * 0.3
		seasonal := 12 * math.Sin(2*math.Pi*float64(i)/12)
		noise := float64(i%5-2) / 2
		values[i] = 100 + trend + seasonal + noise
	}
	return timeseries.New("synthetic", values)
}

func TestDefaultGrid(t *testing.T) {
	grid := DefaultGrid()

	if grid.MaxAR != 1 || grid.MaxDiff != 1 || grid.MaxMA != 1 {
		t.Errorf("Unexpected non-seasonal maxima: %+v", grid)
	}
	if grid.MaxSeasonalAR != 1 || grid.MaxSeasonalDiff != 1 || grid.MaxSeasonalMA != 1 {
		t.Errorf("Unexpected seasonal maxima: %+v", grid)
	}
	if grid.Period != 12 {
		t.Errorf("Expected period 12, got %d", grid.Period)
	}
}

func TestGridCandidates(t *testing.T) {
	if got := DefaultGrid().Candidates(); got != 64 {
		t.Errorf("Expected 64 candidates, got %d", got)
	}

	small := Grid{Period: 12}
	if got := small.Candidates(); got != 1 {
		t.Errorf("Expected 1 candidate for all-zero grid, got %d", got)
	}
}

func TestSearch(t *testing.T) {
	series := syntheticMonthly(120)
	grid := DefaultGrid()

	result, err := Search(series, grid)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if result.Order.AR < 0 || result.Order.AR > grid.MaxAR {
		t.Errorf("AR order out of bounds: %d", result.Order.AR)
	}
	if result.Order.Diff < 0 || result.Order.Diff > grid.MaxDiff {
		t.Errorf("Diff order out of bounds: %d", result.Order.Diff)
	}
	if result.Seasonal.Period != 12 {
		t.Errorf("Expected period 12, got %d", result.Seasonal.Period)
	}

	if math.IsInf(result.AIC, 0) || math.IsNaN(result.AIC) {
		t.Errorf("Expected finite AIC, got %f", result.AIC)
	}

	if result.Evaluated+result.Skipped != grid.Candidates() {
		t.Errorf("Counter mismatch: %d evaluated + %d skipped != %d candidates",
			result.Evaluated, result.Skipped, grid.Candidates())
	}
	if result.Evaluated < 1 {
		t.Error("Expected at least one evaluated candidate")
	}

	t.Logf("Best: SARIMA%s%s AIC=%.2f (evaluated %d, skipped %d)",
		result.Order, result.Seasonal, result.AIC, result.Evaluated, result.Skipped)
}

func TestSearchDeterministic(t *testing.T) {
	series := syntheticMonthly(96)
	grid := DefaultGrid()

	first, err := Search(series, grid)
	if err != nil {
		t.Fatalf("First search failed: %v", err)
	}

	second, err := Search(series, grid)
	if err != nil {
		t.Fatalf("Second search failed: %v", err)
	}

	if first.Order != second.Order || first.Seasonal != second.Seasonal {
		t.Errorf("Search not deterministic: %v%v vs %v%v",
			first.Order, first.Seasonal, second.Order, second.Seasonal)
	}
	if first.AIC != second.AIC {
		t.Errorf("AIC differs between runs: %f vs %f", first.AIC, second.AIC)
	}
}

func TestSearchRefitReproducesAIC(t *testing.T) {
	// Forecasting refits the winning order on the same series; the refit
	// must land on the same model.
	series := syntheticMonthly(96)

	result, err := Search(series, DefaultGrid())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	model := sarima.New(result.Order, result.Seasonal)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Refit failed: %v", err)
	}

	if math.Abs(model.AIC-result.AIC) > 1e-9 {
		t.Errorf("Refit AIC %f differs from search AIC %f", model.AIC, result.AIC)
	}
}

func TestSearchInsufficientData(t *testing.T) {
	series := timeseries.New("short", []float64{1, 2, 3, 4, 5})

	_, err := Search(series, DefaultGrid())
	if err == nil {
		t.Fatal("Expected error for short series, got nil")
	}
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestSearchInvalidPeriod(t *testing.T) {
	series := syntheticMonthly(96)

	grid := DefaultGrid()
	grid.Period = 1

	_, err := Search(series, grid)
	if err == nil {
		t.Fatal("Expected error for period < 2, got nil")
	}
}

func TestSearchSmallerGrid(t *testing.T) {
	// A grid restricted to the trivial candidate still returns a result.
	series := syntheticMonthly(72)

	grid := Grid{Period: 12}
	result, err := Search(series, grid)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	zero := sarima.Order{}
	if result.Order != zero {
		t.Errorf("Expected zero order, got %v", result.Order)
	}
	if result.Evaluated != 1 || result.Skipped != 0 {
		t.Errorf("Expected 1 evaluated, 0 skipped, got %d/%d",
			result.Evaluated, result.Skipped)
	}
}
