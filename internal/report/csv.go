// Package report renders the forecast results as output artifacts: a
// flat CSV table, an interactive HTML chart page and an optional
// Excel workbook.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alberthnahas/ghg-pred-arima/timeseries"
)

// Record is one forecast row: a gas, a month and the point forecast
// with its prediction interval.
type Record struct {
	Gas      string
	Date     time.Time
	Forecast float64
	Lower    float64
	Upper    float64
}

// Panel bundles everything needed to draw one chart panel for a gas.
type Panel struct {
	Gas      string
	History  *timeseries.Series
	Forecast []Record
	Level    float64
}

var csvHeader = []string{"Gas", "Date", "Forecast", "Lower_CI", "Upper_CI"}

const csvDateLayout = "2006-01-02"

// WriteCSV writes forecast records as CSV to w. Dates are formatted
// as ISO calendar dates and floats keep full precision.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Gas,
			rec.Date.Format(csvDateLayout),
			formatFloat(rec.Forecast),
			formatFloat(rec.Lower),
			formatFloat(rec.Upper),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes forecast records to the named file.
func SaveCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
