// Package ordersearch implements exhaustive SARIMA order selection by AIC.
package ordersearch

import (
	"errors"
	"fmt"
	"math"

	"github.com/alberthnahas/ghg-pred-arima/sarima"
	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// ErrNoModel is returned when every candidate order failed to fit.
var ErrNoModel = errors.New("no candidate model could be fitted")

// ErrInsufficientData is returned when the series is too short for even the
// simplest candidate in the grid.
var ErrInsufficientData = errors.New("series too short for order search")

// Grid defines the candidate space. Every combination of orders from 0 to
// the configured maximum is evaluated, for both the non-seasonal and the
// seasonal component.
type Grid struct {
	MaxAR   int
	MaxDiff int
	MaxMA   int

	MaxSeasonalAR   int
	MaxSeasonalDiff int
	MaxSeasonalMA   int

	Period int
}

// DefaultGrid returns the standard candidate space: orders 0 to 1 in every
// position with a monthly seasonal period.
func DefaultGrid() Grid {
	return Grid{
		MaxAR:           1,
		MaxDiff:         1,
		MaxMA:           1,
		MaxSeasonalAR:   1,
		MaxSeasonalDiff: 1,
		MaxSeasonalMA:   1,
		Period:          12,
	}
}

// Candidates returns the number of order combinations the grid spans.
func (g Grid) Candidates() int {
	return (g.MaxAR + 1) * (g.MaxDiff + 1) * (g.MaxMA + 1) *
		(g.MaxSeasonalAR + 1) * (g.MaxSeasonalDiff + 1) * (g.MaxSeasonalMA + 1)
}

// Result holds the winning order of a search together with counters
// describing how the candidate space was covered.
type Result struct {
	Order    sarima.Order
	Seasonal sarima.SeasonalOrder
	AIC      float64

	Evaluated int // candidates fitted successfully
	Skipped   int // candidates that failed to fit
}

// Search evaluates every candidate order in the grid against the series and
// returns the one with the lowest AIC. Candidates that fail to fit are
// skipped and counted. Ties keep the earliest candidate in enumeration
// order: the non-seasonal orders vary slowest, the seasonal MA order
// fastest.
func Search(series *timeseries.Series, grid Grid) (*Result, error) {
	if grid.Period < 2 {
		return nil, fmt.Errorf("seasonal period must be at least 2, got %d", grid.Period)
	}

	simplest := sarima.New(sarima.Order{}, sarima.SeasonalOrder{Period: grid.Period})
	if series.Len() < simplest.MinObservations() {
		return nil, fmt.Errorf("%w: need at least %d observations, have %d",
			ErrInsufficientData, simplest.MinObservations(), series.Len())
	}

	best := &Result{AIC: math.Inf(1)}
	found := false

	for p := 0; p <= grid.MaxAR; p++ {
		for d := 0; d <= grid.MaxDiff; d++ {
			for q := 0; q <= grid.MaxMA; q++ {
				for sp := 0; sp <= grid.MaxSeasonalAR; sp++ {
					for sd := 0; sd <= grid.MaxSeasonalDiff; sd++ {
						for sq := 0; sq <= grid.MaxSeasonalMA; sq++ {
							order := sarima.Order{AR: p, Diff: d, MA: q}
							seasonal := sarima.SeasonalOrder{
								AR:     sp,
								Diff:   sd,
								MA:     sq,
								Period: grid.Period,
							}

							model := sarima.New(order, seasonal)
							if err := model.Fit(series); err != nil {
								best.Skipped++
								continue
							}
							best.Evaluated++

							if model.AIC < best.AIC {
								best.Order = order
								best.Seasonal = seasonal
								best.AIC = model.AIC
								found = true
							}
						}
					}
				}
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %d candidates attempted", ErrNoModel, best.Evaluated+best.Skipped)
	}

	return best, nil
}
