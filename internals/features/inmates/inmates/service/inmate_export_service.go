package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"prisonsphere_backend/internals/features/inmates/inmates/model"
)

const exportSheet = "Inmates"

var exportHeaders = []string{
	"Inmate ID", "First Name", "Last Name", "Date of Birth", "Gender", "Admission Date",
	"Sentence (months)", "Crime Details", "Assigned Cell", "Status",
}

// BuildWorkbook renders the inmate registry as a single-sheet xlsx workbook.
func BuildWorkbook(inmates []model.InmateModel) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}

	for r, in := range inmates {
		row := []any{
			in.InmateCode,
			in.InmateFirstName,
			in.InmateLastName,
			in.InmateDateOfBirth.Format("2006-01-02"),
			in.InmateGender,
			in.InmateAdmissionDate.Format("2006-01-02"),
			in.InmateSentenceMonths,
			in.InmateCrimeDetails,
			in.InmateAssignedCell,
			in.InmateStatus,
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, start, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "C", 18)
	_ = f.SetColWidth(exportSheet, "H", "H", 40)
	return f, nil
}
