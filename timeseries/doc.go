// Package timeseries provides time series data structures and utilities
// for monthly observation data.
//
// # Creating a Series
//
// Create a series from a slice, optionally with a monthly date index:
//
//	values := []float64{412.5, 413.1, 413.8, 414.2}
//	s := timeseries.New("CO2_seasonal", values)
//
//	start := time.Date(2004, time.March, 1, 0, 0, 0, 0, time.UTC)
//	s = timeseries.NewMonthly("CO2_seasonal", start, values)
//
// # Loading from CSV
//
// Load several aligned columns from a wide CSV in one call. Rows where any
// requested column is missing are dropped so every returned series shares
// the same date index:
//
//	opts := timeseries.DefaultWideCSVOptions()
//	opts.Columns = []string{"CO2_seasonal", "CH4_seasonal"}
//	series, err := timeseries.LoadWideCSV("ghg.csv", opts)
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := s.Mean()
//	std := s.Std()
//	min := s.Min()
//	max := s.Max()
//
// # Transformations
//
// Transform the series:
//
//	diff := s.Diff()             // First difference
//	diff2 := s.DiffN(2)          // Second difference
//	sdiff := s.SeasonalDiff(12)  // Seasonal difference at lag 12
//
// # Slicing and Manipulation
//
// Work with subsets of the data:
//
//	subset := s.Slice(10, 50)
//	recent := s.Tail(12)
//	clone := s.Copy()
package timeseries
