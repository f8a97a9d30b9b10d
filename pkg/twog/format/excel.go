package format

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/leengari/coremag/pkg/twog"
)

const (
	excelDataSheet   = "Data"
	excelHeaderSheet = "Header"
)

// ExportExcel writes the table as an xlsx workbook for downstream analysis
// tools: one "Header" sheet with the metadata key/value pairs and one "Data"
// sheet with the column header and records. Export only; xlsx is never read
// back.
func ExportExcel(t *twog.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelDataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}
	if _, err := f.NewSheet(excelHeaderSheet); err != nil {
		return fmt.Errorf("failed to create header sheet: %w", err)
	}

	for i, m := range t.Metadata {
		if err := setRow(f, excelHeaderSheet, i, m.Key, m.Value); err != nil {
			return err
		}
	}

	header := make([]interface{}, t.Schema.Len())
	for i, col := range t.Schema.Columns {
		header[i] = col.Name
	}
	if err := setRow(f, excelDataSheet, 0, header...); err != nil {
		return err
	}
	for ri, rec := range t.Records {
		cells := make([]interface{}, len(rec.Values))
		for ci, v := range rec.Values {
			switch v.Kind {
			case twog.KindFloat:
				cells[ci] = v.Float
			case twog.KindInt:
				cells[ci] = v.Int
			default:
				cells[ci] = v.Text
			}
		}
		if err := setRow(f, excelDataSheet, ri+1, cells...); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	slog.Info("exported workbook",
		slog.String("path", path),
		slog.Int("records", t.Len()),
	)
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row+1, sheet, err)
	}
	return nil
}
