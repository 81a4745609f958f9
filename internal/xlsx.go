package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name written by ExportXLSX
const ExportSheet = "Expenses"

var exportHeader = []string{"ID", "Date", "Description", "Amount"}

// ExportXLSX writes c to a new workbook at path with one row per expense
func ExportXLSX(path string, c Collection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, title := range exportHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, e := range c {
		row := i + 2
		values := []any{e.ID, e.Date.Format(DateLayout), e.Description, e.Amount}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(ExportSheet, "C", "C", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(ExportSheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}

// ImportXLSX reads expenses from the first sheet of a workbook. The header
// row must contain Description and Amount columns; a Date column is optional.
// Header names are matched case-insensitively, so exported files read back.
func ImportXLSX(path string) ([]ImportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	dateCol, descCol, amountCol := -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
			case "description":
				descCol = j
			case "amount":
				amountCol = j
			}
		}
		if descCol >= 0 && amountCol >= 0 {
			dataStartRow = i + 1
			break
		}
		dateCol, descCol, amountCol = -1, -1, -1
	}

	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Description, Amount)")
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var result []ImportRow
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		r := ImportRow{
			Line:        i + 1,
			Date:        cell(row, dateCol),
			Description: cell(row, descCol),
			Amount:      cell(row, amountCol),
		}
		// Skip empty rows
		if r.Date == "" && r.Description == "" && r.Amount == "" {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}

func init() {
	RegisterImporter("xlsx", ImporterFunc(ImportXLSX), ".xlsx")
}
