package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyColumn is returned when a requested column contains no valid
// values at all, as opposed to failing later during model fitting.
var ErrEmptyColumn = errors.New("column has no valid values")

// WideCSVOptions holds options for loading a wide CSV: one date column plus
// several named value columns that share the date index.
type WideCSVOptions struct {
	DateColumn string   // Column name for dates (default: "Date")
	DateFormat string   // Date layout (default: "Jan-2006", e.g. "Mar-2004")
	Columns    []string // Value columns to load, in output order
	NAValues   []string // Tokens treated as missing values
	Delimiter  rune     // Field delimiter (default: ',')
}

// DefaultWideCSVOptions returns default options for wide CSV loading.
func DefaultWideCSVOptions() *WideCSVOptions {
	return &WideCSVOptions{
		DateColumn: "Date",
		DateFormat: "Jan-2006",
		NAValues:   []string{"", "#N/A", "N/A", "NA", "NaN", "nan", "null", "NULL", "None"},
		Delimiter:  ',',
	}
}

// LoadWideCSV loads aligned series from a CSV file.
func LoadWideCSV(filename string, opts *WideCSVOptions) ([]*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadWideCSVFromReader(file, opts)
}

// LoadWideCSVFromReader loads one series per requested column from an
// io.Reader. All returned series share an identical timestamp set: rows in
// which any requested column is missing are dropped entirely, and rows are
// sorted ascending by date. A column with no valid values anywhere yields
// ErrEmptyColumn.
func LoadWideCSVFromReader(r io.Reader, opts *WideCSVOptions) ([]*Series, error) {
	if opts == nil {
		opts = DefaultWideCSVOptions()
	}
	if len(opts.Columns) == 0 {
		return nil, errors.New("no value columns requested")
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx := -1
	colIdx := make([]int, len(opts.Columns))
	for i := range colIdx {
		colIdx[i] = -1
	}

	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		if h == opts.DateColumn {
			dateIdx = i
			continue
		}
		for j, name := range opts.Columns {
			if h == name {
				colIdx[j] = i
			}
		}
	}

	if dateIdx == -1 {
		return nil, fmt.Errorf("date column %q not found in header", opts.DateColumn)
	}
	for j, idx := range colIdx {
		if idx == -1 {
			return nil, fmt.Errorf("column %q not found in header", opts.Columns[j])
		}
	}

	na := make(map[string]bool, len(opts.NAValues))
	for _, token := range opts.NAValues {
		na[token] = true
	}

	type row struct {
		date   time.Time
		values []float64 // NaN marks a missing cell
	}

	var rows []row
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
		date, err := parseDate(dateStr, opts.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", line, dateStr, err)
		}

		values := make([]float64, len(colIdx))
		for j, idx := range colIdx {
			cell := strings.TrimSpace(strings.Trim(record[idx], "\""))
			if na[cell] {
				values[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: column %q: invalid value %q", line, opts.Columns[j], cell)
			}
			values[j] = v
		}

		rows = append(rows, row{date: date, values: values})
	}

	if len(rows) == 0 {
		return nil, errors.New("no data rows found")
	}

	// Reject columns that hold nothing but missing values before any row
	// dropping, so the failure names the column instead of looking like a
	// generally empty dataset.
	for j, name := range opts.Columns {
		valid := 0
		for _, rw := range rows {
			if !math.IsNaN(rw.values[j]) {
				valid++
			}
		}
		if valid == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyColumn, name)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})

	// Drop every row with a missing value in any requested column so that
	// all returned series share the identical timestamp set.
	var timestamps []time.Time
	kept := make([][]float64, len(opts.Columns))

	for _, rw := range rows {
		complete := true
		for _, v := range rw.values {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		timestamps = append(timestamps, rw.date)
		for j, v := range rw.values {
			kept[j] = append(kept[j], v)
		}
	}

	if len(timestamps) == 0 {
		return nil, errors.New("no rows with complete values across all requested columns")
	}

	series := make([]*Series, len(opts.Columns))
	for j, name := range opts.Columns {
		ts := make([]time.Time, len(timestamps))
		copy(ts, timestamps)
		series[j] = &Series{
			Name:       name,
			Timestamps: ts,
			Values:     kept[j],
		}
	}

	return series, nil
}

// parseDate parses with the configured layout first, then the ISO date
// layout as a fallback.
func parseDate(s, layout string) (time.Time, error) {
	formats := []string{layout, "2006-01-02"}
	var err error
	for _, f := range formats {
		var t time.Time
		t, err = time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
