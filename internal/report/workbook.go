package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Ringkasan"

// WriteWorkbook writes an Excel workbook to w with a summary sheet of
// all forecast records plus one sheet per gas combining the recent
// history with the forecast table.
func WriteWorkbook(w io.Writer, panels []Panel) error {
	f, err := buildWorkbook(panels)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook produced by WriteWorkbook to path.
func SaveWorkbook(path string, panels []Panel) error {
	f, err := buildWorkbook(panels)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(panels []Panel) (*excelize.File, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels to export")
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, panels); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, panels []Panel) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	if err := writeSummarySheet(f, headerStyle, panels); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	for _, panel := range panels {
		if err := writeGasSheet(f, headerStyle, panel); err != nil {
			return fmt.Errorf("sheet %s: %w", panel.Gas, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, panels []Panel) error {
	if err := writeRow(f, summarySheet, 1, "Gas", "Date", "Forecast", "Lower_CI", "Upper_CI"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, panel := range panels {
		for _, rec := range panel.Forecast {
			err := writeRow(f, summarySheet, row,
				rec.Gas, rec.Date.Format(csvDateLayout), rec.Forecast, rec.Lower, rec.Upper)
			if err != nil {
				return err
			}
			row++
		}
	}

	return f.SetColWidth(summarySheet, "A", "E", 16)
}

func writeGasSheet(f *excelize.File, headerStyle int, panel Panel) error {
	sheet := sheetName(panel.Gas)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, "Date", "Observed", "Forecast", "Lower_CI", "Upper_CI"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	row := 2
	if panel.History != nil && len(panel.History.Timestamps) == panel.History.Len() {
		for i, ts := range panel.History.Timestamps {
			err := writeRow(f, sheet, row, ts.Format(csvDateLayout), panel.History.Values[i])
			if err != nil {
				return err
			}
			row++
		}
	}

	for _, rec := range panel.Forecast {
		err := writeRow(f, sheet, row, rec.Date.Format(csvDateLayout), nil, rec.Forecast, rec.Lower, rec.Upper)
		if err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(sheet, "A", "E", 14)
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// sheetName keeps names within the 31 character sheet name limit.
func sheetName(gas string) string {
	if len(gas) > 31 {
		return gas[:31]
	}
	return gas
}
