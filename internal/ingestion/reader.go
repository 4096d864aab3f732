package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/securecheck/backend/internal/storage/models"
)

var ErrUnsupportedFormat = errors.New("unsupported extract format")

// ReadRows parses a tabular extract into raw records keyed by header. The
// first row is the header. .xlsx/.xlsm files use the first sheet.
func ReadRows(path string) ([]models.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readWorkbook(path string) ([]models.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	// Boolean cells render as TRUE/FALSE; store them the way a text
	// export spells them so the "True" rule applies to both.
	for r, row := range rows {
		for c, value := range row {
			if value != "TRUE" && value != "FALSE" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			if typ, err := f.GetCellType(sheet, cell); err == nil && typ == excelize.CellTypeBool {
				if value == "TRUE" {
					rows[r][c] = "True"
				} else {
					rows[r][c] = "False"
				}
			}
		}
	}

	return toRecords(rows), nil
}

func readCSV(path string) ([]models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return toRecords(rows), nil
}

// toRecords keys each data row by header. Empty cells and cells past the
// end of a short row are left out so they read as absent.
func toRecords(rows [][]string) []models.RawRecord {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(models.RawRecord, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) || row[i] == "" {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records
}
