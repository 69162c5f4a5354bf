// Package dataset downloads the observation table and turns it into
// aligned monthly series ready for model fitting.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/alberthnahas/ghg-pred-arima/internal/config"
	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// ErrEmptyColumn reports a target column with no usable values.
var ErrEmptyColumn = timeseries.ErrEmptyColumn

// Fetch downloads the CSV export at cfg.URL and parses the configured
// target columns. The returned series are aligned: rows with a missing
// value in any target are dropped from all of them, and the slice
// order matches cfg.Targets.
func Fetch(ctx context.Context, cfg config.DataConfig) ([]*timeseries.Series, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %q fetching data", resp.Status)
	}

	series, err := Parse(resp.Body, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}
	return series, nil
}

// Parse reads a wide CSV from r using the column layout in cfg.
func Parse(r io.Reader, cfg config.DataConfig) ([]*timeseries.Series, error) {
	opts := timeseries.DefaultWideCSVOptions()
	opts.DateColumn = cfg.DateColumn
	opts.DateFormat = cfg.DateFormat
	opts.Columns = cfg.Targets
	return timeseries.LoadWideCSVFromReader(r, opts)
}
