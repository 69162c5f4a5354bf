// Package timeseries provides data structures for monthly observation series.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series represents a named sequence of observations with monthly timestamps.
type Series struct {
	Name       string
	Timestamps []time.Time
	Values     []float64
}

// New creates a series from values only. Intended for transformations and
// tests where no calendar is attached.
func New(name string, values []float64) *Series {
	return &Series{
		Name:   name,
		Values: values,
	}
}

// NewMonthly creates a series whose timestamps are consecutive months
// starting at start (normalized to the first of the month).
func NewMonthly(name string, start time.Time, values []float64) *Series {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = first.AddDate(0, i, 0)
	}
	return &Series{
		Name:       name,
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(name string, timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Name:       name,
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// LastTimestamp returns the timestamp of the last observation.
// ok is false when the series carries no timestamps.
func (s *Series) LastTimestamp() (time.Time, bool) {
	if len(s.Timestamps) == 0 || len(s.Timestamps) != len(s.Values) {
		return time.Time{}, false
	}
	return s.Timestamps[len(s.Timestamps)-1], true
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the difference of the series at lag n.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Name: s.Name, Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Name:       s.Name + "_diff",
		Timestamps: timestamps,
		Values:     result,
	}
}

// SeasonalDiff calculates the seasonal difference with period m.
func (s *Series) SeasonalDiff(m int) *Series {
	if m <= 0 || len(s.Values) <= m {
		return &Series{Name: s.Name, Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-m)
	for i := m; i < len(s.Values); i++ {
		result[i-m] = s.Values[i] - s.Values[i-m]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[m:])
	}

	return &Series{
		Name:       s.Name + "_seasonal_diff",
		Timestamps: timestamps,
		Values:     result,
	}
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name, Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Name:       s.Name,
		Timestamps: timestamps,
		Values:     values,
	}
}

// Tail returns the last n observations of the series.
func (s *Series) Tail(n int) *Series {
	if n >= s.Len() {
		return s.Copy()
	}
	return s.Slice(s.Len()-n, s.Len())
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Name:       s.Name,
		Timestamps: timestamps,
		Values:     values,
	}
}

// MonthsAfter returns n consecutive monthly timestamps beginning exactly one
// month after t. The day component of t is normalized to the first of the
// month so that month arithmetic never rolls over.
func MonthsAfter(t time.Time, n int) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = first.AddDate(0, i+1, 0)
	}
	return months
}
