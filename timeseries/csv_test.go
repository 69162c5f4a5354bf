package timeseries

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWideCSVFromReader(t *testing.T) {
	csvData := `Date,CO2_seasonal,CH4_seasonal
Mar-2004,377.5,1790.2
Apr-2004,377.9,1791.1
May-2004,378.3,1792.5
Jun-2004,378.6,1793.0`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"CO2_seasonal", "CH4_seasonal"}

	series, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(series))
	}

	co2 := series[0]
	if co2.Name != "CO2_seasonal" {
		t.Errorf("Expected first series CO2_seasonal, got %q", co2.Name)
	}
	if co2.Len() != 4 {
		t.Errorf("Expected 4 observations, got %d", co2.Len())
	}

	expected := []float64{377.5, 377.9, 378.3, 378.6}
	for i, v := range expected {
		if co2.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, co2.Values[i])
		}
	}

	first, _ := time.Parse("Jan-2006", "Mar-2004")
	if !co2.Timestamps[0].Equal(first) {
		t.Errorf("Expected first timestamp %v, got %v", first, co2.Timestamps[0])
	}

	t.Logf("Loaded %d aligned rows", co2.Len())
}

func TestLoadWideCSV(t *testing.T) {
	csvData := `Date,CO2_seasonal
Jan-2020,410.1
Feb-2020,410.5
Mar-2020,411.0`

	dir := t.TempDir()
	path := filepath.Join(dir, "ghg.csv")
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatalf("Failed to write CSV file: %v", err)
	}

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"CO2_seasonal"}

	series, err := LoadWideCSV(path, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV file: %v", err)
	}

	if len(series) != 1 {
		t.Fatalf("Expected 1 series, got %d", len(series))
	}
	if series[0].Len() != 3 {
		t.Errorf("Expected 3 observations, got %d", series[0].Len())
	}
	if series[0].Values[2] != 411.0 {
		t.Errorf("Expected last value 411.0, got %v", series[0].Values[2])
	}
}

func TestLoadWideCSVMissingFile(t *testing.T) {
	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A"}

	if _, err := LoadWideCSV(filepath.Join(t.TempDir(), "missing.csv"), opts); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadWideCSVDropsIncompleteRows(t *testing.T) {
	// A missing cell in any requested column drops the whole row, keeping
	// the series aligned.
	csvData := `Date,CO2_seasonal,CH4_seasonal
Jan-2020,410.1,1860.0
Feb-2020,#N/A,1861.2
Mar-2020,411.0,#N/A
Apr-2020,411.4,1862.9`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"CO2_seasonal", "CH4_seasonal"}

	series, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	for _, s := range series {
		if s.Len() != 2 {
			t.Errorf("Series %s: expected 2 rows after dropping, got %d", s.Name, s.Len())
		}
	}

	if series[0].Values[0] != 410.1 || series[0].Values[1] != 411.4 {
		t.Errorf("Unexpected CO2 values: %v", series[0].Values)
	}
	if series[1].Values[0] != 1860.0 || series[1].Values[1] != 1862.9 {
		t.Errorf("Unexpected CH4 values: %v", series[1].Values)
	}
}

func TestLoadWideCSVAlignedTimestamps(t *testing.T) {
	csvData := `Date,A,B
Jan-2021,1,10
Feb-2021,NA,11
Mar-2021,3,12`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A", "B"}

	series, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	a, b := series[0], series[1]
	if a.Len() != b.Len() {
		t.Fatalf("Series lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Timestamps {
		if !a.Timestamps[i].Equal(b.Timestamps[i]) {
			t.Errorf("Timestamp %d differs: %v vs %v", i, a.Timestamps[i], b.Timestamps[i])
		}
	}
}

func TestLoadWideCSVEmptyColumn(t *testing.T) {
	csvData := `Date,A,B
Jan-2021,1,#N/A
Feb-2021,2,#N/A
Mar-2021,3,#N/A`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A", "B"}

	_, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Fatal("Expected error for all-missing column, got nil")
	}
	if !errors.Is(err, ErrEmptyColumn) {
		t.Errorf("Expected ErrEmptyColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "B") {
		t.Errorf("Expected error to name column B, got %v", err)
	}
}

func TestLoadWideCSVMissingColumn(t *testing.T) {
	csvData := `Date,A
Jan-2021,1`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A", "Missing"}

	_, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Fatal("Expected error for missing column, got nil")
	}
	if !strings.Contains(err.Error(), "Missing") {
		t.Errorf("Expected error to name the column, got %v", err)
	}
}

func TestLoadWideCSVInvalidValue(t *testing.T) {
	csvData := `Date,A
Jan-2021,1.5
Feb-2021,garbage`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A"}

	_, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Fatal("Expected error for unparseable value, got nil")
	}
}

func TestLoadWideCSVInvalidDate(t *testing.T) {
	csvData := `Date,A
NotADate,1.5`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A"}

	_, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Fatal("Expected error for unparseable date, got nil")
	}
}

func TestLoadWideCSVSortsByDate(t *testing.T) {
	csvData := `Date,A
Mar-2021,3
Jan-2021,1
Feb-2021,2`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"A"}

	series, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	a := series[0]
	expected := []float64{1, 2, 3}
	for i, v := range expected {
		if a.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, a.Values[i])
		}
	}
	for i := 1; i < len(a.Timestamps); i++ {
		if !a.Timestamps[i].After(a.Timestamps[i-1]) {
			t.Errorf("Timestamps not ascending at index %d", i)
		}
	}
}

func TestLoadWideCSVQuotedFields(t *testing.T) {
	csvData := `"Date","CO2_seasonal"
"Jan-2020","410.1"
"Feb-2020","410.5"`

	opts := DefaultWideCSVOptions()
	opts.Columns = []string{"CO2_seasonal"}

	series, err := LoadWideCSVFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if series[0].Len() != 2 {
		t.Errorf("Expected 2 observations, got %d", series[0].Len())
	}
}

func TestDefaultWideCSVOptions(t *testing.T) {
	opts := DefaultWideCSVOptions()

	if opts.DateColumn != "Date" {
		t.Errorf("Expected default date column 'Date', got '%s'", opts.DateColumn)
	}

	if opts.DateFormat != "Jan-2006" {
		t.Errorf("Expected default date format 'Jan-2006', got '%s'", opts.DateFormat)
	}

	if opts.Delimiter != ',' {
		t.Errorf("Expected default delimiter ',', got '%c'", opts.Delimiter)
	}

	found := false
	for _, token := range opts.NAValues {
		if token == "#N/A" {
			found = true
		}
	}
	if !found {
		t.Error("Expected '#N/A' in default NA tokens")
	}
}
